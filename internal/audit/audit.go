// Package audit appends entries to a project's audit trail
// (todo-log.json(l)): one append-only JSONL record per domain mutation,
// carrying before/after snapshots for session handoffs and forensic replay.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/store"
)

// Recorder appends audit entries to a single project's log file under its
// own lock, independent of the todo.json/todo-archive.json transactions.
type Recorder struct {
	path        string
	lockTimeout time.Duration
}

// NewRecorder builds a Recorder targeting path, using lockTimeout for each
// append's advisory lock.
func NewRecorder(path string, lockTimeout time.Duration) *Recorder {
	return &Recorder{path: path, lockTimeout: lockTimeout}
}

// Record appends one entry, filling in ID and Timestamp if unset.
func (r *Recorder) Record(e model.LogEntry) error {
	if e.ID == "" {
		e.ID = "log-" + uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return store.AppendLine(r.path, e, r.lockTimeout)
}

// Read loads every entry from the log, in append order.
func (r *Recorder) Read() ([]model.LogEntry, error) {
	return store.ReadLines[model.LogEntry](r.path)
}

// TaskMutation records a task-domain action with its before/after snapshot,
// the shape session handoffs read to find "last touched" work.
func (r *Recorder) TaskMutation(sessionID, action, actor, taskID string, before, after map[string]any) error {
	return r.Record(model.LogEntry{
		SessionID: sessionID,
		Action:    action,
		Actor:     actor,
		TaskID:    taskID,
		Before:    before,
		After:     after,
	})
}

// Event records an action with free-form detail, for session lifecycle and
// consensus events that have no single task subject.
func (r *Recorder) Event(sessionID, action, actor string, details map[string]any) error {
	return r.Record(model.LogEntry{
		SessionID: sessionID,
		Action:    action,
		Actor:     actor,
		Details:   details,
	})
}
