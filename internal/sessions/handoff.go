package sessions

import (
	"fmt"
	"time"

	"github.com/cleo-engine/cleo/internal/model"
)

// terminalTaskActions mark a task as no longer open for handoff purposes.
var terminalTaskActions = map[string]bool{
	"task.complete": true,
	"task.cancel":   true,
	"task.delete":   true,
}

// computeHandoff derives an end-of-session summary from the session's own
// record plus the audit entries it produced, without needing to load
// todo.json: a task is "open" if the session touched it and never recorded
// a terminal action against it afterward.
func computeHandoff(session *model.Session, entries []model.LogEntry, now time.Time) *model.Handoff {
	touchOrder := make([]string, 0)
	touched := make(map[string]bool)
	open := make(map[string]bool)
	filesSeen := make(map[string]bool)
	var files []string

	for _, e := range entries {
		if e.SessionID != session.ID {
			continue
		}
		if e.TaskID != "" {
			if !touched[e.TaskID] {
				touched[e.TaskID] = true
				touchOrder = append(touchOrder, e.TaskID)
			}
			if terminalTaskActions[e.Action] {
				open[e.TaskID] = false
			} else {
				open[e.TaskID] = true
			}
		}
		if raw, ok := e.Details["files"]; ok {
			if list, ok := raw.([]any); ok {
				for _, v := range list {
					if name, ok := v.(string); ok && !filesSeen[name] {
						filesSeen[name] = true
						files = append(files, name)
					}
				}
			}
		}
	}

	var openTasks []string
	for _, id := range touchOrder {
		if open[id] {
			openTasks = append(openTasks, id)
		}
	}

	var unresolved []string
	for _, d := range session.Decisions {
		if d.Alternatives != nil && len(d.Alternatives) > 0 && d.Rationale == "" {
			unresolved = append(unresolved, d.Decision)
		}
	}

	h := &model.Handoff{
		OpenTasks:           openTasks,
		UnresolvedDecisions: unresolved,
		LastTouchedFiles:    files,
		ComputedAt:          now,
	}
	if len(openTasks) > 0 {
		h.NextRecommendedTask = openTasks[0]
		h.NextAction = fmt.Sprintf("resume %s", openTasks[0])
	} else {
		h.NextAction = "no open tasks; session clean to close"
	}
	return h
}
