package tasks

import (
	"time"

	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
)

// Archive moves a terminal (done or cancelled) task out of todo.json into
// todo-archive.json, recording why it was archived.
func (s *Service) Archive(id string, source model.ArchiveSource) (*model.ArchiveEntry, error) {
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task := findTask(tf.Tasks, id)
	if task == nil {
		return nil, errNotFound(id)
	}
	if task.Status != model.StatusDone && task.Status != model.StatusCancelled {
		return nil, cerr.ErrInvalidOperation.New("task %s is not terminal (status=%s)", id, task.Status)
	}

	var remaining []*model.Task
	for _, t := range tf.Tasks {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}
	tf.Tasks = remaining
	renumberScope(tf.Tasks, parentKey(task))

	entry := &model.ArchiveEntry{
		Task: *task,
		Archive: model.ArchiveMeta{
			ArchivedAt:    s.ctx.Clock.Now(),
			ArchiveSource: source,
			CycleTimeDays: cycleTimeDays(task, s.ctx.Clock.Now()),
		},
	}

	af, err := s.loadArchive()
	if err != nil {
		return nil, err
	}
	af.ArchivedTasks = append(af.ArchivedTasks, entry)

	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	if err := s.saveArchive(af); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.archive", s.Actor, id, nil, map[string]any{"source": string(source)})
	return entry, nil
}

// Restore moves an archived task back into todo.json with status, or its
// original status when preserveStatus is true. Restore never reinstates
// done: the caller must pick pending, blocked, or active explicitly.
func (s *Service) Restore(id string, status model.Status, preserveStatus bool) (*model.Task, error) {
	af, err := s.loadArchive()
	if err != nil {
		return nil, err
	}
	var entry *model.ArchiveEntry
	var remaining []*model.ArchiveEntry
	for _, e := range af.ArchivedTasks {
		if e.ID == id {
			entry = e
			continue
		}
		remaining = append(remaining, e)
	}
	if entry == nil {
		return nil, errNotFound(id)
	}
	af.ArchivedTasks = remaining

	task := entry.Restore(status, preserveStatus)
	task.UpdatedAt = s.ctx.Clock.Now()

	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	task.Position = nextPosition(tf.Tasks, parentKey(task))
	tf.Tasks = append(tf.Tasks, task)

	if err := s.saveArchive(af); err != nil {
		return nil, err
	}
	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	_ = s.audit.TaskMutation("", "task.restore", s.Actor, id, nil, map[string]any{"status": string(task.Status)})
	return task, nil
}

// UnarchiveResult tri-partitions a batch unarchive request: ids already live
// are reported NoChange, ids found nowhere are Missing, everything else is
// restored to pending.
type UnarchiveResult struct {
	Restored []string `json:"restored"`
	NoChange []string `json:"noChange"`
	Missing  []string `json:"missing"`
}

// Unarchive restores a batch of archived ids to todo.json as pending tasks.
// An id already live is a no-op (reported, not an error); an id found in
// neither set is reported missing rather than failing the whole batch.
func (s *Service) Unarchive(ids []string) (*UnarchiveResult, error) {
	tf, err := s.loadTodo()
	if err != nil {
		return nil, err
	}
	af, err := s.loadArchive()
	if err != nil {
		return nil, err
	}

	result := &UnarchiveResult{}
	now := s.ctx.Clock.Now()

	for _, id := range ids {
		if findTask(tf.Tasks, id) != nil {
			result.NoChange = append(result.NoChange, id)
			continue
		}
		var entry *model.ArchiveEntry
		var remaining []*model.ArchiveEntry
		for _, e := range af.ArchivedTasks {
			if e.ID == id && entry == nil {
				entry = e
				continue
			}
			remaining = append(remaining, e)
		}
		if entry == nil {
			result.Missing = append(result.Missing, id)
			continue
		}
		af.ArchivedTasks = remaining

		task := entry.Restore(model.StatusPending, false)
		task.UpdatedAt = now
		task.Position = nextPosition(tf.Tasks, parentKey(task))
		tf.Tasks = append(tf.Tasks, task)
		result.Restored = append(result.Restored, id)
	}

	if len(result.Restored) == 0 {
		return result, nil
	}
	if err := s.saveArchive(af); err != nil {
		return nil, err
	}
	if err := s.saveTodo(tf); err != nil {
		return nil, err
	}
	for _, id := range result.Restored {
		_ = s.audit.TaskMutation("", "task.unarchive", s.Actor, id, nil, map[string]any{"status": "pending"})
	}
	return result, nil
}

func parentKey(t *model.Task) string {
	if t.ParentID != nil {
		return *t.ParentID
	}
	return ""
}

// cycleTimeDays measures the time from creation to archival, the duration
// archive-stats averages across the archive to report meanCycleTimeDays.
func cycleTimeDays(t *model.Task, now time.Time) float64 {
	return now.Sub(t.CreatedAt).Hours() / 24
}
