package tasks

import (
	"time"

	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/duplicate"
	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/validate"
)

// AddInput is the caller-supplied shape for Add; zero values mean "use the
// field's default".
type AddInput struct {
	Title       string
	Description string
	Priority    string
	Type        string
	Size        string
	Phase       string
	ParentID    string
	Labels      []string
	Depends     []string
}

// AddResult reports whether Add created a new task or matched an existing
// one within the duplicate window.
type AddResult struct {
	Task      *model.Task
	Duplicate bool
}

// Add validates in, checks for a recent duplicate, and otherwise creates a
// new task at the next id and position within its parent scope.
func (s *Service) Add(in AddInput) (*AddResult, error) {
	title, err := validate.ValidateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	description, err := validate.ValidateDescription(in.Description)
	if err != nil {
		return nil, err
	}
	priority, err := validate.ValidatePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	taskType, err := validate.ValidateType(in.Type)
	if err != nil {
		return nil, err
	}
	size, err := validate.ValidateSize(in.Size)
	if err != nil {
		return nil, err
	}
	labels, err := validate.NormalizeLabels(in.Labels)
	if err != nil {
		return nil, err
	}

	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}

	if in.ParentID != "" {
		parent := findTask(tf.Tasks, in.ParentID)
		if parent == nil {
			return nil, cerr.ErrTaskNotFound.New("parent task %s not found", in.ParentID)
		}
		if parent.Type == model.TypeSubtask {
			return nil, cerr.ErrDepthExceeded.New("%s is a subtask and cannot itself have children", in.ParentID)
		}
		if want := childTypeForDepth(parent.Depth() + 1); taskType != want {
			return nil, cerr.ErrInvalidParentType.New("parent %s implies child type %s, got %s", in.ParentID, want, taskType)
		}
		siblingCount := 0
		for _, t := range tf.Tasks {
			if t.ParentID != nil && *t.ParentID == in.ParentID {
				siblingCount++
			}
		}
		if max := s.ctx.Config.MaxSiblings(); max > 0 && siblingCount >= max {
			return nil, cerr.ErrInputInvalid.New("parent %s already has %d children, max is %d", in.ParentID, siblingCount, max)
		}
	}

	now := s.ctx.Clock.Now()
	window := time.Duration(s.ctx.Config.DuplicateWindowSeconds()) * time.Second
	if window <= 0 {
		window = duplicate.DefaultWindow
	}
	if existing := duplicate.Find(tf.Tasks, title, in.Phase, now, window); existing != nil {
		return &AddResult{Task: existing, Duplicate: true}, nil
	}

	archivedIDs, err := s.archivedIDSet()
	if err != nil {
		return nil, err
	}
	id, err := s.nextID(tf.Tasks, archivedIDs)
	if err != nil {
		return nil, err
	}

	var parentPtr *string
	if in.ParentID != "" {
		parentPtr = &in.ParentID
	}

	task := &model.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      model.StatusPending,
		Priority:    priority,
		Type:        taskType,
		Size:        size,
		ParentID:    parentPtr,
		Depends:     in.Depends,
		Labels:      labels,
		Phase:       in.Phase,
		Position:    nextPosition(tf.Tasks, in.ParentID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tf.Tasks = append(tf.Tasks, task)
	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.add", s.Actor, task.ID, nil, map[string]any{"title": task.Title})
	return &AddResult{Task: task}, nil
}

// childTypeForDepth returns the task type a node at depth must have, per the
// epic(0) > task(1) > subtask(2) tiering.
func childTypeForDepth(depth int) model.TaskType {
	switch depth {
	case 0:
		return model.TypeEpic
	case 1:
		return model.TypeTask
	default:
		return model.TypeSubtask
	}
}
