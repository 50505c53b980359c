package tasks

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/project"
	"github.com/cleo-engine/cleo/internal/store"
)

func newTestService(t *testing.T) (*Service, *project.FixedClock) {
	t.Helper()
	root := t.TempDir()
	layout := store.NewLayout(root)
	require.NoError(t, layout.EnsureDirs())

	cfg, err := project.Load(root)
	require.NoError(t, err)
	cfg.Set("duplicate.windowSeconds", 60)
	cfg.Set("hierarchy.maxSiblings", 20)

	clock := project.NewFixedClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	ctx := &project.Context{Layout: layout, Config: cfg, Clock: clock}
	return New(ctx, "tester"), clock
}

func TestAddCreatesTaskWithSequentialID(t *testing.T) {
	svc, _ := newTestService(t)
	r1, err := svc.Add(AddInput{Title: "First task"})
	require.NoError(t, err)
	require.Equal(t, "T001", r1.Task.ID)

	r2, err := svc.Add(AddInput{Title: "Second task"})
	require.NoError(t, err)
	require.Equal(t, "T002", r2.Task.ID)
}

func TestAddDetectsDuplicateWithinWindow(t *testing.T) {
	svc, clock := newTestService(t)
	r1, err := svc.Add(AddInput{Title: "Fix login bug", Phase: "impl"})
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	r2, err := svc.Add(AddInput{Title: "Fix login bug", Phase: "impl"})
	require.NoError(t, err)
	require.True(t, r2.Duplicate)
	require.Equal(t, r1.Task.ID, r2.Task.ID)

	clock.Advance(2 * time.Minute)
	r3, err := svc.Add(AddInput{Title: "Fix login bug", Phase: "impl"})
	require.NoError(t, err)
	require.False(t, r3.Duplicate)
	require.NotEqual(t, r1.Task.ID, r3.Task.ID)
}

func TestCompleteIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	r, err := svc.Add(AddInput{Title: "Ship feature"})
	require.NoError(t, err)

	_, err = svc.Complete(r.Task.ID, false)
	require.NoError(t, err)

	_, err = svc.Complete(r.Task.ID, false)
	require.Error(t, err)
}

func TestDeleteCascadesToChildren(t *testing.T) {
	svc, _ := newTestService(t)
	epic, err := svc.Add(AddInput{Title: "Epic", Type: "epic"})
	require.NoError(t, err)
	child, err := svc.Add(AddInput{Title: "Child task", Type: "task", ParentID: epic.Task.ID})
	require.NoError(t, err)

	result, err := svc.Delete(DeleteInput{ID: epic.Task.ID, Reason: "no longer needed", Children: ChildrenCascade})
	require.NoError(t, err)
	require.Contains(t, result.Cancelled, epic.Task.ID)
	require.Contains(t, result.Cancelled, child.Task.ID)

	tf, err := store.Load[model.TodoFile](filepath.Join(store.NewLayout(svc.ctx.Layout.Root).TodoFile))
	require.NoError(t, err)
	for _, task := range tf.Tasks {
		require.Equal(t, model.StatusCancelled, task.Status)
	}
}
