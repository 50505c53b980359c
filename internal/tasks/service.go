// Package tasks implements the task domain: add, update, complete, cancel,
// archive, restore, hierarchy edits, verification gates, focus, and
// relations. Every exported method follows the same shape: load the current
// todo.json, build a candidate mutation, validate the candidate against the
// whole file's invariants, and only then persist — so a rejected mutation
// never touches disk.
package tasks

import (
	"fmt"
	"time"

	"github.com/cleo-engine/cleo/internal/audit"
	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/project"
	"github.com/cleo-engine/cleo/internal/store"
	"github.com/cleo-engine/cleo/internal/validate"
)

// Service mutates one project's task domain.
type Service struct {
	ctx    *project.Context
	audit  *audit.Recorder
	Actor  string
}

// New builds a Service bound to ctx's layout, config, and clock.
func New(ctx *project.Context, actor string) *Service {
	lockTimeout := time.Duration(ctx.Config.LockTimeoutSeconds()) * time.Second
	return &Service{
		ctx:   ctx,
		audit: audit.NewRecorder(ctx.Layout.LogFile, lockTimeout),
		Actor: actor,
	}
}

func (s *Service) lockTimeout() time.Duration {
	return time.Duration(s.ctx.Config.LockTimeoutSeconds()) * time.Second
}

// loadTodo reads todo.json, defaulting to an empty file shape on first run.
func (s *Service) loadTodo() (*model.TodoFile, error) {
	tf, err := store.Load[model.TodoFile](s.ctx.Layout.TodoFile)
	if err != nil {
		if code := cerr.CodeOf(err); code == cerr.ErrFileNotFound {
			return &model.TodoFile{Meta: model.Meta{SchemaVersion: model.CurrentSchemaVersion}}, nil
		}
		return nil, err
	}
	return &tf, nil
}

// loadArchive reads todo-archive.json, defaulting to an empty shape.
func (s *Service) loadArchive() (*model.ArchiveFile, error) {
	af, err := store.Load[model.ArchiveFile](s.ctx.Layout.ArchiveFile)
	if err != nil {
		if code := cerr.CodeOf(err); code == cerr.ErrFileNotFound {
			return &model.ArchiveFile{Meta: model.Meta{SchemaVersion: model.CurrentSchemaVersion}}, nil
		}
		return nil, err
	}
	return &af, nil
}

// archivedIDSet collects every archived task's id for dependency/unique-id
// checks that must see across both live and terminal state.
func (s *Service) archivedIDSet() (map[string]bool, error) {
	af, err := s.loadArchive()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(af.ArchivedTasks))
	for _, e := range af.ArchivedTasks {
		ids[e.ID] = true
	}
	return ids, nil
}

// saveTodo validates the candidate file's whole-state invariants, recomputes
// its checksum, and commits atomically.
func (s *Service) saveTodo(tf *model.TodoFile) error {
	archivedIDs, err := s.archivedIDSet()
	if err != nil {
		return err
	}
	if violations := validate.CheckInvariants(tf.Tasks, archivedIDs); len(violations) > 0 {
		return cerr.ErrValidationSchema.New("invariant violations: %v", violations)
	}
	checksum, err := store.Checksum(tf.Tasks)
	if err != nil {
		return err
	}
	tf.Meta.SchemaVersion = model.CurrentSchemaVersion
	tf.Meta.Checksum = checksum
	tf.LastUpdated = s.ctx.Clock.Now()

	return store.Save(s.ctx.Layout.TodoFile, tf, store.SaveOptions{
		Backup:      true,
		BackupDir:   s.ctx.Layout.BackupsDir,
		KeepBackups: 10,
		LockTimeout: s.lockTimeout(),
	})
}

func (s *Service) saveArchive(af *model.ArchiveFile) error {
	checksum, err := store.Checksum(af.ArchivedTasks)
	if err != nil {
		return err
	}
	af.Meta.SchemaVersion = model.CurrentSchemaVersion
	af.Meta.Checksum = checksum
	af.LastUpdated = s.ctx.Clock.Now()

	return store.Save(s.ctx.Layout.ArchiveFile, af, store.SaveOptions{
		Backup:      true,
		BackupDir:   s.ctx.Layout.BackupsDir,
		KeepBackups: 10,
		LockTimeout: s.lockTimeout(),
	})
}

// nextID returns the next numeric task id, left-padded to 3 digits, strictly
// greater than every id present live or archived.
func (s *Service) nextID(live []*model.Task, archived map[string]bool) (string, error) {
	max := 0
	scan := func(id string) {
		var n int
		if _, err := fmt.Sscanf(id, "T%d", &n); err == nil && n > max {
			max = n
		}
	}
	for _, t := range live {
		scan(t.ID)
	}
	for id := range archived {
		scan(id)
	}
	return fmt.Sprintf("T%03d", max+1), nil
}

// nextPosition returns the next position within parentID's scope (top level
// when parentID is "").
func nextPosition(tasks []*model.Task, parentID string) int {
	max := 0
	for _, t := range tasks {
		key := ""
		if t.ParentID != nil {
			key = *t.ParentID
		}
		if key == parentID && t.Position > max {
			max = t.Position
		}
	}
	return max + 1
}

func findTask(tasks []*model.Task, id string) *model.Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
