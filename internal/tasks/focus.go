package tasks

import "github.com/cleo-engine/cleo/internal/model"

// SetFocus claims id as the project-wide current task and marks it active,
// clearing active status from whatever task previously held focus. Only one
// task may be active at a time.
func (s *Service) SetFocus(id string) (*model.Task, error) {
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task := findTask(tf.Tasks, id)
	if task == nil {
		return nil, errNotFound(id)
	}

	now := s.ctx.Clock.Now()
	for _, t := range tf.Tasks {
		if t.Status == model.StatusActive && t.ID != id {
			t.Status = model.StatusPending
			t.UpdatedAt = now
		}
	}
	task.Status = model.StatusActive
	task.UpdatedAt = now
	tf.Focus.CurrentTask = id
	if task.Phase != "" {
		tf.Focus.CurrentPhase = task.Phase
	}

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.focus.set", s.Actor, task.ID, nil, nil)
	return task, nil
}

// ClearFocus releases the project-wide focus, reverting the previously
// active task to pending.
func (s *Service) ClearFocus() error {
	tf, err := s.loadTodo()
	if err != nil {
		return err
	}
	now := s.ctx.Clock.Now()
	for _, t := range tf.Tasks {
		if t.Status == model.StatusActive {
			t.Status = model.StatusPending
			t.UpdatedAt = now
		}
	}
	tf.Focus = model.Focus{}

	if err := s.saveTodo(tf); err != nil {
		return err
	}
	return s.audit.Event("", "task.focus.clear", s.Actor, nil)
}
