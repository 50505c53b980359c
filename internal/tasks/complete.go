package tasks

import (
	"fmt"

	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/validate"
)

// CompleteResult reports the completed task plus any ancestor epics that
// were auto-completed as a side effect.
type CompleteResult struct {
	Task                 *model.Task
	AutoCompletedParents []string
}

// Complete marks id done, idempotently: completing an already-done task
// returns E_TASK_COMPLETED rather than mutating it again. Completion fails
// when a dependency isn't done or cancelled, and fails when an epic still
// has incomplete, non-cancelled children unless noAutoComplete is set. When
// the task has a parent, auto-complete may cascade per
// hierarchy.autoCompleteParent.
func (s *Service) Complete(id string, noAutoComplete bool) (*CompleteResult, error) {
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task := findTask(tf.Tasks, id)
	if err := validate.ForComplete()(task); err != nil {
		return nil, err
	}

	if err := checkDependenciesSatisfied(tf.Tasks, task); err != nil {
		return nil, err
	}
	if !noAutoComplete {
		if err := checkNoOpenChildren(tf.Tasks, task); err != nil {
			return nil, err
		}
	}

	before := map[string]any{"status": string(task.Status)}
	now := s.ctx.Clock.Now()
	task.Status = model.StatusDone
	task.CompletedAt = &now
	task.UpdatedAt = now
	task.Verification.Implemented = true
	task.Verification = task.Verification.Recompute(gatesFromStrings(s.ctx.Config.VerificationGates()))

	var autoCompleted []string
	s.maybeAutoCompleteParent(tf, task, &autoCompleted)

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.complete", s.Actor, task.ID, before, map[string]any{"status": "done"})
	return &CompleteResult{Task: task, AutoCompletedParents: autoCompleted}, nil
}

// checkDependenciesSatisfied requires every id in task.Depends to be done or
// cancelled. A dependency missing from the live set is treated as satisfied:
// it can only be absent because it was archived, and archiving requires the
// task to already be terminal.
func checkDependenciesSatisfied(tasks []*model.Task, task *model.Task) error {
	for _, depID := range task.Depends {
		dep := findTask(tasks, depID)
		if dep == nil {
			continue
		}
		if dep.Status != model.StatusDone && dep.Status != model.StatusCancelled {
			return cerr.ErrDependencyError.New("task %s depends on %s, which is %s", task.ID, depID, dep.Status)
		}
	}
	return nil
}

// checkNoOpenChildren requires every non-cancelled child of task to already
// be done before task (an epic) can complete.
func checkNoOpenChildren(tasks []*model.Task, task *model.Task) error {
	for _, t := range tasks {
		if t.ParentID == nil || *t.ParentID != task.ID {
			continue
		}
		if t.Status == model.StatusCancelled || t.Status == model.StatusDone {
			continue
		}
		return cerr.ErrHasChildren.New("task %s has incomplete child %s", task.ID, t.ID)
	}
	return nil
}

// maybeAutoCompleteParent completes task's parent epic when every
// non-cancelled sibling is done and the configured gates are satisfied,
// cascading upward through the hierarchy and recording each promoted
// ancestor's id in completed.
func (s *Service) maybeAutoCompleteParent(tf *model.TodoFile, task *model.Task, completed *[]string) {
	if !s.ctx.Config.AutoCompleteParent() || s.ctx.Config.AutoCompleteMode() == "off" {
		return
	}
	if task.ParentID == nil {
		return
	}
	parent := findTask(tf.Tasks, *task.ParentID)
	if parent == nil || parent.Status == model.StatusDone {
		return
	}

	allDone := true
	for _, t := range tf.Tasks {
		if t.ParentID == nil || *t.ParentID != parent.ID {
			continue
		}
		if t.Status == model.StatusCancelled {
			continue
		}
		if t.Status != model.StatusDone {
			allDone = false
			break
		}
		if s.ctx.Config.RequireVerificationForAutoComplete() {
			gates := gatesFromStrings(s.ctx.Config.VerificationGates())
			if !t.Verification.Recompute(gates).Passed {
				allDone = false
				break
			}
		}
	}
	if !allDone {
		return
	}

	now := s.ctx.Clock.Now()
	parent.Status = model.StatusDone
	parent.CompletedAt = &now
	parent.UpdatedAt = now
	parent.Notes = append(parent.Notes, model.Note{
		Text:      fmt.Sprintf("auto-completed: all children of %s are done", parent.ID),
		Tag:       "AUTO-COMPLETED",
		CreatedAt: now,
	})
	*completed = append(*completed, parent.ID)
	s.maybeAutoCompleteParent(tf, parent, completed)
}

func gatesFromStrings(names []string) []model.Gate {
	gates := make([]model.Gate, 0, len(names))
	for _, n := range names {
		gates = append(gates, model.Gate(n))
	}
	return gates
}

// errNotFound is a convenience wrapper used where a lookup fails before a
// validator chain would otherwise report it.
func errNotFound(id string) error {
	return cerr.ErrTaskNotFound.New("task %s not found", id)
}
