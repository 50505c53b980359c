package model

import "time"

// ArchiveSource records how an ArchiveEntry came to be archived.
type ArchiveSource string

const (
	ArchiveSourceAuto   ArchiveSource = "auto"
	ArchiveSourceForce  ArchiveSource = "force"
	ArchiveSourceManual ArchiveSource = "manual"
)

// ArchiveMeta is the `_archive` block attached to an archived task.
type ArchiveMeta struct {
	ArchivedAt    time.Time     `json:"archivedAt"`
	CycleTimeDays float64       `json:"cycleTimeDays"`
	ArchiveSource ArchiveSource `json:"archiveSource"`
}

// ArchiveEntry mirrors Task at archival time plus archive metadata.
type ArchiveEntry struct {
	Task
	Archive ArchiveMeta `json:"_archive"`
}

// Restore converts an archive entry back into a live Task. The caller decides
// the resulting status (defaulting to pending); restore never reinstates
// `done`.
func (e *ArchiveEntry) Restore(status Status, preserveStatus bool) *Task {
	t := e.Task.Clone()
	t.CompletedAt = nil
	if preserveStatus && e.Task.Status != StatusDone {
		t.Status = e.Task.Status
	} else if status != "" {
		t.Status = status
	} else {
		t.Status = StatusPending
	}
	if t.Status != StatusCancelled {
		t.CancelledAt = nil
		t.CancellationReason = ""
	}
	return t
}
