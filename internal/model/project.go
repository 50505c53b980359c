package model

import "time"

// Meta is the `_meta` block carried by every top-level file: a schema
// version and a checksum over the canonical form of the file's entity array.
// The wall-clock time of the last write is the file's own `lastUpdated`.
type Meta struct {
	SchemaVersion int    `json:"schemaVersion"`
	Checksum      string `json:"checksum"`
}

// CurrentSchemaVersion is written into every new Meta.
const CurrentSchemaVersion = 1

// PhaseStatus is the lifecycle state of a named project phase.
type PhaseStatus string

const (
	PhasePending   PhaseStatus = "pending"
	PhaseActive    PhaseStatus = "active"
	PhaseCompleted PhaseStatus = "completed"
)

// Phase is one entry of project.phases.
type Phase struct {
	Name        string      `json:"name"`
	Order       int         `json:"order"`
	Status      PhaseStatus `json:"status"`
	StartedAt   *time.Time  `json:"startedAt,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

// ProjectInfo is the `project` block of todo.json.
type ProjectInfo struct {
	Name          string           `json:"name"`
	CurrentPhase  string           `json:"currentPhase,omitempty"`
	Phases        map[string]Phase `json:"phases,omitempty"`
}

// Focus is the top-level `focus` block of todo.json, distinct from a
// session's own `focus` field: it records the project-wide notion of what is
// currently active, kept in sync by the task domain's focus set/clear.
type Focus struct {
	CurrentTask  string `json:"currentTask,omitempty"`
	CurrentPhase string `json:"currentPhase,omitempty"`
}

// TodoFile is the bit-exact shape of todo.json.
type TodoFile struct {
	Meta        Meta        `json:"_meta"`
	Project     ProjectInfo `json:"project"`
	Tasks       []*Task     `json:"tasks"`
	Focus       Focus       `json:"focus"`
	LastUpdated time.Time   `json:"lastUpdated"`
}

// ArchiveStatistics is the optional `statistics` block of todo-archive.json,
// populated by `archive-stats`.
type ArchiveStatistics struct {
	TotalArchived     int                `json:"totalArchived"`
	ByPhase           map[string]int     `json:"byPhase,omitempty"`
	ByLabel           map[string]int     `json:"byLabel,omitempty"`
	ByPriority        map[string]int     `json:"byPriority,omitempty"`
	MeanCycleTimeDays float64            `json:"meanCycleTimeDays"`
}

// ArchiveFile is the bit-exact shape of todo-archive.json.
type ArchiveFile struct {
	Meta          Meta               `json:"_meta"`
	ArchivedTasks []*ArchiveEntry    `json:"archivedTasks"`
	Statistics    *ArchiveStatistics `json:"statistics,omitempty"`
	LastUpdated   time.Time          `json:"lastUpdated"`
}

// SessionsFile is the bit-exact shape of sessions.json, the session
// domain's counterpart to todo.json.
type SessionsFile struct {
	Meta        Meta       `json:"_meta"`
	Sessions    []*Session `json:"sessions"`
	LastUpdated time.Time  `json:"lastUpdated"`
}
