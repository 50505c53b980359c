package model

import "time"

// SessionStatus is the state-machine state of a Session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionSuspended SessionStatus = "suspended"
	SessionEnded     SessionStatus = "ended"
	SessionClosed    SessionStatus = "closed"
)

// Confidence is the self-reported confidence of a session assumption.
// Consensus contributions carry a numeric confidence instead.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Decision is an immutable record appended by recording a decision against a
// session.
type Decision struct {
	Decision     string    `json:"decision"`
	Rationale    string    `json:"rationale,omitempty"`
	Alternatives []string  `json:"alternatives,omitempty"`
	RecordedAt   time.Time `json:"recordedAt"`
}

// Assumption is an immutable record appended by recording an assumption
// against a session.
type Assumption struct {
	Assumption string     `json:"assumption"`
	Confidence Confidence `json:"confidence"`
	RecordedAt time.Time  `json:"recordedAt"`
}

// Handoff is the end-of-session summary computed when a session ends.
type Handoff struct {
	OpenTasks            []string `json:"openTasks"`
	NextRecommendedTask  string   `json:"nextRecommendedTask,omitempty"`
	UnresolvedDecisions  []string `json:"unresolvedDecisions,omitempty"`
	LastTouchedFiles     []string `json:"lastTouchedFiles,omitempty"`
	Note                 string   `json:"note,omitempty"`
	NextAction           string   `json:"nextAction,omitempty"`
	ComputedAt           time.Time `json:"computedAt"`
}

// Session is a time-bounded work context with scope, focus, and decisions.
type Session struct {
	ID           string        `json:"id"`
	Scope        string        `json:"scope"`
	Name         string        `json:"name,omitempty"`
	AgentID      string        `json:"agentId,omitempty"`
	Focus        *string       `json:"focus"`
	Status       SessionStatus `json:"status"`
	StartedAt    time.Time     `json:"startedAt"`
	LastEventAt  time.Time     `json:"lastEventAt"`
	EndedAt      *time.Time    `json:"endedAt,omitempty"`
	Note         string        `json:"note,omitempty"`
	Decisions    []Decision    `json:"decisions,omitempty"`
	Assumptions  []Assumption  `json:"assumptions,omitempty"`
	Handoff      *Handoff      `json:"handoff,omitempty"`
}

// GetID satisfies store.idKeyed so checksums can sort sessions by id.
func (s *Session) GetID() string { return s.ID }

// Clone returns a deep-enough copy for candidate-state construction.
func (s *Session) Clone() *Session {
	c := *s
	if s.Focus != nil {
		f := *s.Focus
		c.Focus = &f
	}
	if s.EndedAt != nil {
		v := *s.EndedAt
		c.EndedAt = &v
	}
	if s.Handoff != nil {
		h := *s.Handoff
		c.Handoff = &h
	}
	c.Decisions = append([]Decision(nil), s.Decisions...)
	c.Assumptions = append([]Assumption(nil), s.Assumptions...)
	return &c
}
