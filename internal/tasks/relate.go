package tasks

import (
	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/validate"
)

// Relate adds a typed relation edge from id to otherID, deduplicating on
// (otherID, type).
func (s *Service) Relate(id, otherID, relType, reason string) (*model.Task, error) {
	rt, err := validate.ValidateRelationType(relType)
	if err != nil {
		return nil, err
	}

	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task := findTask(tf.Tasks, id)
	if task == nil {
		return nil, errNotFound(id)
	}
	if findTask(tf.Tasks, otherID) == nil {
		return nil, errNotFound(otherID)
	}

	for i, r := range task.Relates {
		if r.TaskID == otherID && r.Type == rt {
			task.Relates[i].Reason = reason
			if err := s.saveTodo(tf); err != nil {
				return nil, err
			}
			return task, nil
		}
	}
	task.Relates = append(task.Relates, model.Relation{TaskID: otherID, Type: rt, Reason: reason})
	task.UpdatedAt = s.ctx.Clock.Now()

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.relate", s.Actor, task.ID, nil, map[string]any{"relatesTo": otherID, "type": string(rt)})
	return task, nil
}

// Unrelate removes a relation edge of type relType from id to otherID.
func (s *Service) Unrelate(id, otherID, relType string) (*model.Task, error) {
	rt, err := validate.ValidateRelationType(relType)
	if err != nil {
		return nil, err
	}
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task := findTask(tf.Tasks, id)
	if task == nil {
		return nil, errNotFound(id)
	}

	kept := task.Relates[:0]
	for _, r := range task.Relates {
		if r.TaskID == otherID && r.Type == rt {
			continue
		}
		kept = append(kept, r)
	}
	task.Relates = kept
	task.UpdatedAt = s.ctx.Clock.Now()

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.unrelate", s.Actor, task.ID, nil, map[string]any{"relatesTo": otherID, "type": string(rt)})
	return task, nil
}
