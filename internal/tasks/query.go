package tasks

import (
	"time"

	"github.com/cleo-engine/cleo/internal/audit"
	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/project"
	"github.com/cleo-engine/cleo/internal/store"
	"github.com/cleo-engine/cleo/internal/validate"
)

func checksumOf(tf *model.TodoFile) (string, error) {
	return store.Checksum(tf.Tasks)
}

// LoadForRead returns the current todo.json for callers that only read, such
// as the dispatch registry's list/show handlers.
func LoadForRead(ctx *project.Context) (*model.TodoFile, error) {
	return New(ctx, "").loadTodo()
}

// FindOrNotFound looks up id in tasks, returning ErrTaskNotFound rather than
// a nil task when it is absent.
func FindOrNotFound(tasks []*model.Task, id string) (*model.Task, error) {
	t := findTask(tasks, id)
	if t == nil {
		return nil, cerr.ErrTaskNotFound.New("task %s not found", id)
	}
	return t, nil
}

// ValidationReport is the result of checking a project's whole-state
// invariants and orphan links.
type ValidationReport struct {
	Violations []validate.Violation `json:"violations"`
	OrphanIDs  []string             `json:"orphanIds"`
}

// Validate checks every live task's invariants and orphan links without
// mutating anything.
func Validate(ctx *project.Context) (*ValidationReport, error) {
	s := New(ctx, "")
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	archivedIDs, err := s.archivedIDSet()
	if err != nil {
		return nil, err
	}
	orphans := validate.CheckOrphans(tf.Tasks)
	orphanIDs := make([]string, 0, len(orphans))
	for _, o := range orphans {
		orphanIDs = append(orphanIDs, o.ID)
	}
	return &ValidationReport{
		Violations: validate.CheckInvariants(tf.Tasks, archivedIDs),
		OrphanIDs:  orphanIDs,
	}, nil
}

// FixOrphans applies policy ("unlink" or "cancel") to every orphaned task and
// persists the result, returning the ids it touched.
func FixOrphans(ctx *project.Context, policy string) ([]string, error) {
	s := New(ctx, "system")
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	touched := validate.FixOrphans(tf.Tasks, validate.OrphanPolicy(policy))
	if len(touched) == 0 {
		return touched, nil
	}
	validate.RenumberPositions(tf.Tasks)
	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	return touched, nil
}

// RenumberPositions rewrites every task's Position to a contiguous 1..N
// sequence within its parent scope and persists the result, returning the
// ids whose position changed. A no-op save is skipped.
func RenumberPositions(ctx *project.Context) ([]string, error) {
	s := New(ctx, "system")
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	touched := validate.RenumberPositions(tf.Tasks)
	if len(touched) == 0 {
		return touched, nil
	}
	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	return touched, nil
}

// VerifyChecksum recomputes todo.json's task checksum and compares it
// against the stored one, reporting a mismatch rather than erroring so a
// caller can decide whether to repair it.
func VerifyChecksum(ctx *project.Context) (*validate.ChecksumMismatch, error) {
	s := New(ctx, "")
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	computed, err := checksumOf(tf)
	if err != nil {
		return nil, err
	}
	if computed == tf.Meta.Checksum {
		return nil, nil
	}
	return &validate.ChecksumMismatch{File: ctx.Layout.TodoFile, Stored: tf.Meta.Checksum, Computed: computed}, nil
}

// RepairChecksum recomputes todo.json's checksum from its current contents
// and rewrites the stored value, quarantining a stale or tampered checksum
// without touching task data.
func RepairChecksum(ctx *project.Context) (*validate.ChecksumMismatch, error) {
	mismatch, err := VerifyChecksum(ctx)
	if err != nil {
		return nil, err
	}
	if mismatch == nil {
		return nil, nil
	}
	s := New(ctx, "system")
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	return mismatch, nil
}

// AuditReader returns a Recorder bound to this project's audit log, for
// callers outside the tasks domain (session handoff, drift detection) that
// need to read it without depending on tasks' mutation surface.
func AuditReader(ctx *project.Context) *audit.Recorder {
	lockTimeout := time.Duration(ctx.Config.LockTimeoutSeconds()) * time.Second
	return audit.NewRecorder(ctx.Layout.LogFile, lockTimeout)
}
