package sessions

import (
	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
)

// HandoffOf returns the handoff an ended session computed at End time.
// A session that hasn't ended yet has no handoff to show.
func (s *Service) HandoffOf(id string) (*model.Handoff, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if session.Handoff == nil {
		return nil, cerr.ErrSessionState.New("session %s is %s and has no handoff yet; end it first", id, session.Status)
	}
	return session.Handoff, nil
}

// Brief computes a live handoff preview for id without ending the session,
// so another agent can pick up an active or suspended session's context
// mid-flight.
func (s *Service) Brief(id string) (*model.Handoff, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	entries, err := s.audit.Read()
	if err != nil {
		return nil, err
	}
	return computeHandoff(session, entries, s.ctx.Clock.Now()), nil
}

// History returns every audit entry recorded against session id, in
// chronological order.
func (s *Service) History(id string) ([]model.LogEntry, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	entries, err := s.audit.Read()
	if err != nil {
		return nil, err
	}
	var out []model.LogEntry
	for _, e := range entries {
		if e.SessionID == id {
			out = append(out, e)
		}
	}
	return out, nil
}
