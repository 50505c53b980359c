package sessions

import (
	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
)

// RecordDecision appends an immutable decision entry to session id.
func (s *Service) RecordDecision(id, decision, rationale string, alternatives []string) (*model.Session, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	session := findSession(sf.Sessions, id)
	if session == nil {
		return nil, cerr.ErrSessionNotFound.New("session %s not found", id)
	}
	now := s.ctx.Clock.Now()
	session.Decisions = append(session.Decisions, model.Decision{
		Decision:     decision,
		Rationale:    rationale,
		Alternatives: alternatives,
		RecordedAt:   now,
	})
	session.LastEventAt = now
	if err := s.save(sf); err != nil {
		return nil, err
	}
	_ = s.audit.Event(id, "session.decision", s.Actor, map[string]any{"decision": decision})
	return session, nil
}

// RecordAssumption appends an immutable assumption entry to session id.
func (s *Service) RecordAssumption(id, assumption string, confidence model.Confidence) (*model.Session, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	session := findSession(sf.Sessions, id)
	if session == nil {
		return nil, cerr.ErrSessionNotFound.New("session %s not found", id)
	}
	now := s.ctx.Clock.Now()
	session.Assumptions = append(session.Assumptions, model.Assumption{
		Assumption: assumption,
		Confidence: confidence,
		RecordedAt: now,
	})
	session.LastEventAt = now
	if err := s.save(sf); err != nil {
		return nil, err
	}
	_ = s.audit.Event(id, "session.assumption", s.Actor, map[string]any{"assumption": assumption})
	return session, nil
}
