// Package model defines CLEO's entity types: Task, Session, ArchiveEntry,
// LogEntry, and the top-level file formats that persist them. Types here are
// plain data; invariants are enforced by internal/validate, not by methods on
// these structs, so every mutation goes through a pure validate-then-commit
// step rather than mutating state in place.
package model

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusBlocked   Status = "blocked"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

// Priority is the urgency tier of a task.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Type is the hierarchy tier of a task: epic (depth 0), task (depth 1), or
// subtask (depth 2, leaf).
type Type string

const (
	TypeEpic    Type = "epic"
	TypeTask    Type = "task"
	TypeSubtask Type = "subtask"
)

// Size is an optional effort estimate.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// RelationType names the kind of a Relation edge.
type RelationType string

const (
	RelationRelatesTo   RelationType = "relates-to"
	RelationSpawnedFrom RelationType = "spawned-from"
	RelationDeferredTo  RelationType = "deferred-to"
	RelationSupersedes  RelationType = "supersedes"
	RelationDuplicates  RelationType = "duplicates"
)

// Gate names a verification checkpoint on a task.
type Gate string

const (
	GateImplemented    Gate = "implemented"
	GateTestsPassed    Gate = "testsPassed"
	GateQAPassed       Gate = "qaPassed"
	GateSecurityPassed Gate = "securityPassed"
	GateDocumented     Gate = "documented"
)

// DefaultGates is the gate list used when config omits verification.gates.
var DefaultGates = []Gate{GateImplemented}

// Relation is an edge from a task to another task.
type Relation struct {
	TaskID string       `json:"taskId"`
	Type   RelationType `json:"type"`
	Reason string       `json:"reason,omitempty"`
}

// Note is a timestamped, optionally system-tagged annotation on a task.
type Note struct {
	Text      string    `json:"text"`
	Tag       string    `json:"tag,omitempty"` // "CANCELLED" | "AUTO-COMPLETED" | "NOTE"
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is an append-only, attributed remark on a task.
type Comment struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Verification holds the boolean quality gates for a task plus the derived
// conjunction `Passed`.
type Verification struct {
	Implemented    bool `json:"implemented"`
	TestsPassed    bool `json:"testsPassed"`
	QAPassed       bool `json:"qaPassed"`
	SecurityPassed bool `json:"securityPassed"`
	Documented     bool `json:"documented"`
	Passed         bool `json:"passed"`
}

// Get returns the boolean value of the named gate.
func (v Verification) Get(g Gate) bool {
	switch g {
	case GateImplemented:
		return v.Implemented
	case GateTestsPassed:
		return v.TestsPassed
	case GateQAPassed:
		return v.QAPassed
	case GateSecurityPassed:
		return v.SecurityPassed
	case GateDocumented:
		return v.Documented
	default:
		return false
	}
}

// Set returns a copy of v with the named gate set to value.
func (v Verification) Set(g Gate, value bool) Verification {
	switch g {
	case GateImplemented:
		v.Implemented = value
	case GateTestsPassed:
		v.TestsPassed = value
	case GateQAPassed:
		v.QAPassed = value
	case GateSecurityPassed:
		v.SecurityPassed = value
	case GateDocumented:
		v.Documented = value
	}
	return v
}

// Recompute sets Passed to the conjunction of the configured gates.
func (v Verification) Recompute(gates []Gate) Verification {
	if len(gates) == 0 {
		gates = DefaultGates
	}
	v.Passed = true
	for _, g := range gates {
		if !v.Get(g) {
			v.Passed = false
			break
		}
	}
	return v
}

// Task is the unit of work with identity, status, hierarchy, and
// dependencies.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Type        Type     `json:"type"`
	Size        Size     `json:"size,omitempty"`

	ParentID *string  `json:"parentId"`
	Depends  []string `json:"depends,omitempty"`
	Labels   []string `json:"labels,omitempty"`
	Phase    string   `json:"phase,omitempty"`
	Position int      `json:"position"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	CancellationReason string `json:"cancellationReason,omitempty"`

	Notes        []Note       `json:"notes,omitempty"`
	Comments     []Comment    `json:"comments,omitempty"`
	Verification Verification `json:"verification"`
	Relates      []Relation   `json:"relates,omitempty"`
}

// GetID satisfies store.idKeyed so checksums can sort tasks by id.
func (t *Task) GetID() string { return t.ID }

// Depth returns 0 for epics, 1 for tasks, 2 for subtasks — the static depth
// implied by Type, independent of the actual parent chain (graph.Depth
// computes the structural depth, which by invariant may not exceed this
// value; a task or subtask with no parent sits at structural depth 0).
func (t *Task) Depth() int {
	switch t.Type {
	case TypeEpic:
		return 0
	case TypeTask:
		return 1
	case TypeSubtask:
		return 2
	default:
		return -1
	}
}

// Clone returns a deep-enough copy of t suitable for building a candidate
// state: slices and the verification struct are copied so mutating the clone
// never aliases the original.
func (t *Task) Clone() *Task {
	c := *t
	if t.ParentID != nil {
		p := *t.ParentID
		c.ParentID = &p
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	if t.CancelledAt != nil {
		v := *t.CancelledAt
		c.CancelledAt = &v
	}
	c.Depends = append([]string(nil), t.Depends...)
	c.Labels = append([]string(nil), t.Labels...)
	c.Notes = append([]Note(nil), t.Notes...)
	c.Comments = append([]Comment(nil), t.Comments...)
	c.Relates = append([]Relation(nil), t.Relates...)
	return &c
}
