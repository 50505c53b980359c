package tasks

import (
	"github.com/cleo-engine/cleo/internal/model"
)

// Verify sets one or more gates on id and recomputes its aggregate passed
// flag against the project's configured gate list. When all configures
// gates pass, Verify may trigger the same parent auto-complete cascade as
// Complete.
func (s *Service) Verify(id string, gates map[model.Gate]bool, all bool) (*model.Task, error) {
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task := findTask(tf.Tasks, id)
	if task == nil {
		return nil, errNotFound(id)
	}

	configured := gatesFromStrings(s.ctx.Config.VerificationGates())
	if all {
		for _, g := range configured {
			task.Verification = task.Verification.Set(g, true)
		}
	} else {
		for g, v := range gates {
			task.Verification = task.Verification.Set(g, v)
		}
	}
	task.Verification = task.Verification.Recompute(configured)
	task.UpdatedAt = s.ctx.Clock.Now()

	if task.Verification.Passed && task.Status == model.StatusDone {
		var autoCompleted []string
		s.maybeAutoCompleteParent(tf, task, &autoCompleted)
	}

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.verify", s.Actor, task.ID, nil, map[string]any{"passed": task.Verification.Passed})
	return task, nil
}
