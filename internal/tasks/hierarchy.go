package tasks

import (
	"sort"

	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
)

// Reparent moves id under newParentID (or to top level when newParentID is
// ""), appending it at the end of the new scope and renumbering both the
// old and new sibling scopes to stay contiguous.
func (s *Service) Reparent(id, newParentID string) (*model.Task, error) {
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task := findTask(tf.Tasks, id)
	if task == nil {
		return nil, errNotFound(id)
	}
	if newParentID == id {
		return nil, cerr.ErrInputInvalid.New("task %s cannot be its own parent", id)
	}

	if task.Type == model.TypeEpic && newParentID != "" {
		return nil, cerr.ErrInvalidParentType.New("epic %s can never have a parent", id)
	}

	var newParent *model.Task
	if newParentID != "" {
		newParent = findTask(tf.Tasks, newParentID)
		if newParent == nil {
			return nil, errNotFound(newParentID)
		}
		if newParent.Type == model.TypeSubtask {
			return nil, cerr.ErrDepthExceeded.New("%s is a subtask and cannot itself have children", newParentID)
		}
		if want := childTypeForDepth(newParent.Depth() + 1); task.Type != want {
			return nil, cerr.ErrInvalidParentType.New("parent %s implies child type %s, got %s", newParentID, want, task.Type)
		}
		if isDescendant(tf.Tasks, newParentID, id) {
			return nil, cerr.ErrInputInvalid.New("moving %s under %s would create a cycle", id, newParentID)
		}
	}

	oldParentID := ""
	if task.ParentID != nil {
		oldParentID = *task.ParentID
	}

	if newParentID != "" {
		task.ParentID = &newParentID
	} else {
		task.ParentID = nil
	}
	task.Position = nextPosition(tf.Tasks, newParentID)
	task.UpdatedAt = s.ctx.Clock.Now()

	renumberScope(tf.Tasks, oldParentID)

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.reparent", s.Actor, task.ID, map[string]any{"parentId": oldParentID}, map[string]any{"parentId": newParentID})
	return task, nil
}

// Promote moves id out from under its parent to the next tier up (subtask
// becomes task, task becomes epic), clearing its parent link.
func (s *Service) Promote(id string) (*model.Task, error) {
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task := findTask(tf.Tasks, id)
	if task == nil {
		return nil, errNotFound(id)
	}
	switch task.Type {
	case model.TypeSubtask:
		task.Type = model.TypeTask
	case model.TypeTask:
		task.Type = model.TypeEpic
	default:
		return nil, cerr.ErrInvalidOperation.New("epic %s cannot be promoted further", id)
	}
	oldParentID := ""
	if task.ParentID != nil {
		oldParentID = *task.ParentID
	}
	task.ParentID = nil
	task.Position = nextPosition(tf.Tasks, "")
	task.UpdatedAt = s.ctx.Clock.Now()
	renumberScope(tf.Tasks, oldParentID)

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.promote", s.Actor, task.ID, nil, map[string]any{"type": string(task.Type)})
	return task, nil
}

// Reorder sets id's position within its current sibling scope to
// newPosition (1-based), shifting other siblings to keep the scope
// contiguous.
func (s *Service) Reorder(id string, newPosition int) (*model.Task, error) {
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task := findTask(tf.Tasks, id)
	if task == nil {
		return nil, errNotFound(id)
	}
	scopeKey := ""
	if task.ParentID != nil {
		scopeKey = *task.ParentID
	}
	var siblings []*model.Task
	for _, t := range tf.Tasks {
		key := ""
		if t.ParentID != nil {
			key = *t.ParentID
		}
		if key == scopeKey {
			siblings = append(siblings, t)
		}
	}
	if newPosition < 1 || newPosition > len(siblings) {
		return nil, cerr.ErrInputInvalid.New("position %d out of range [1,%d]", newPosition, len(siblings))
	}

	for _, t := range siblings {
		switch {
		case t.ID == id:
			continue
		case t.Position >= newPosition && t.Position < task.Position:
			t.Position++
		case t.Position <= newPosition && t.Position > task.Position:
			t.Position--
		}
	}
	task.Position = newPosition
	task.UpdatedAt = s.ctx.Clock.Now()

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.reorder", s.Actor, task.ID, nil, map[string]any{"position": newPosition})
	return task, nil
}

func isDescendant(tasks []*model.Task, candidateID, ancestorID string) bool {
	cur := findTask(tasks, candidateID)
	for cur != nil && cur.ParentID != nil {
		if *cur.ParentID == ancestorID {
			return true
		}
		cur = findTask(tasks, *cur.ParentID)
	}
	return false
}

func renumberScope(tasks []*model.Task, parentID string) {
	var siblings []*model.Task
	for _, t := range tasks {
		key := ""
		if t.ParentID != nil {
			key = *t.ParentID
		}
		if key == parentID {
			siblings = append(siblings, t)
		}
	}
	sort.SliceStable(siblings, func(i, j int) bool { return siblings[i].Position < siblings[j].Position })
	for i, t := range siblings {
		t.Position = i + 1
	}
}
