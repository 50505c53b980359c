package tasks

import (
	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/validate"
)

// ChildrenMode governs how Delete treats a task's descendants.
type ChildrenMode string

const (
	ChildrenBlock   ChildrenMode = "block"
	ChildrenCascade ChildrenMode = "cascade"
	ChildrenOrphan  ChildrenMode = "orphan"
)

// archiveSource picks manual vs force per the --force flag shared by Cancel
// and Delete.
func archiveSource(force bool) model.ArchiveSource {
	if force {
		return model.ArchiveSourceForce
	}
	return model.ArchiveSourceManual
}

// Cancel marks id cancelled with reason, idempotently: cancelling an
// already-cancelled task returns E_NO_CHANGE. The cancelled task is then
// archived with archiveSource=manual, or force when force is set.
func (s *Service) Cancel(id, reason string, force bool) (*model.Task, error) {
	cancellationReason, err := validate.ValidateCancellationReason(reason)
	if err != nil {
		return nil, err
	}

	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task := findTask(tf.Tasks, id)
	if err := validate.ForCancel()(task); err != nil {
		return nil, err
	}

	before := map[string]any{"status": string(task.Status)}
	now := s.ctx.Clock.Now()
	task.Status = model.StatusCancelled
	task.CancelledAt = &now
	task.CancellationReason = cancellationReason
	task.UpdatedAt = now

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.cancel", s.Actor, task.ID, before, map[string]any{"status": "cancelled", "reason": cancellationReason})

	cancelled := task.Clone()
	if _, err := s.Archive(id, archiveSource(force)); err != nil {
		return nil, err
	}
	return cancelled, nil
}

// DeleteInput is the caller-supplied shape for Delete.
type DeleteInput struct {
	ID       string
	Reason   string
	Children ChildrenMode
	Force    bool
	DryRun   bool
}

// DeleteResult reports what Delete did (or would do, under DryRun) to id
// and its descendants.
type DeleteResult struct {
	Cancelled []string
	Orphaned  []string
	DryRun    bool
}

// Delete cancels id per in.Children: block refuses when id has children,
// cascade cancels and archives every descendant along with id, orphan
// clears descendants' parentId and leaves their status untouched. Every
// cancelled task is archived with archiveSource=manual (or force when
// in.Force is set). DryRun reports what would happen without mutating
// anything.
func (s *Service) Delete(in DeleteInput) (*DeleteResult, error) {
	cancellationReason, err := validate.ValidateCancellationReason(in.Reason)
	if err != nil {
		return nil, err
	}

	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	root := findTask(tf.Tasks, in.ID)
	if root == nil {
		return nil, errNotFound(in.ID)
	}

	children := collectDescendants(tf.Tasks, in.ID)

	mode := in.Children
	if mode == "" {
		mode = ChildrenBlock
	}
	if mode == ChildrenBlock && len(children) > 0 {
		return nil, cerr.ErrHasChildren.New("task %s has %d children; pass --children cascade or --children orphan", in.ID, len(children))
	}

	result := &DeleteResult{DryRun: in.DryRun}

	var toCancel []*model.Task
	if mode == ChildrenCascade {
		toCancel = append(toCancel, children...)
	} else {
		for _, c := range children {
			if c.Status != model.StatusCancelled {
				result.Orphaned = append(result.Orphaned, c.ID)
			}
		}
	}
	toCancel = append(toCancel, root)

	if in.DryRun {
		for _, t := range toCancel {
			if t.Status != model.StatusCancelled {
				result.Cancelled = append(result.Cancelled, t.ID)
			}
		}
		return result, nil
	}

	now := s.ctx.Clock.Now()
	if mode != ChildrenCascade {
		for _, c := range children {
			c.ParentID = nil
			c.Position = nextPosition(tf.Tasks, "")
			c.UpdatedAt = now
		}
	}

	for _, t := range toCancel {
		if t.Status == model.StatusCancelled {
			continue
		}
		t.Status = model.StatusCancelled
		t.CancelledAt = &now
		t.CancellationReason = cancellationReason
		t.UpdatedAt = now
		result.Cancelled = append(result.Cancelled, t.ID)
	}

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	for _, tid := range result.Cancelled {
		_ = s.audit.TaskMutation("", "task.delete", s.Actor, tid, nil, map[string]any{"status": "cancelled", "reason": cancellationReason})
	}
	for _, tid := range result.Orphaned {
		_ = s.audit.TaskMutation("", "task.orphan", s.Actor, tid, nil, map[string]any{"parentId": nil})
	}

	source := archiveSource(in.Force)
	for _, tid := range result.Cancelled {
		if _, err := s.Archive(tid, source); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func collectDescendants(tasks []*model.Task, rootID string) []*model.Task {
	var out []*model.Task
	var visit func(id string)
	visit = func(id string) {
		for _, t := range tasks {
			if t.ParentID != nil && *t.ParentID == id {
				out = append(out, t)
				visit(t.ID)
			}
		}
	}
	visit(rootID)
	return out
}
