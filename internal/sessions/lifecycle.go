package sessions

import (
	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
)

// StartInput is the caller-supplied shape for Start.
type StartInput struct {
	Scope   string
	Name    string
	AgentID string
	Focus   string
}

// Start opens a new active session. A non-empty Focus claims that task for
// the session immediately, subject to the same exclusivity check SetFocus
// enforces.
func (s *Service) Start(in StartInput) (*model.Session, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}

	if in.Focus != "" {
		if holder := focusHolder(sf.Sessions, in.Focus); holder != "" {
			return nil, cerr.ErrFocusClaimed.New("task %s is already focused by session %s", in.Focus, holder)
		}
	}

	now := s.ctx.Clock.Now()
	id, err := newID(now)
	if err != nil {
		return nil, err
	}

	var focus *string
	if in.Focus != "" {
		f := in.Focus
		focus = &f
	}

	session := &model.Session{
		ID:          id,
		Scope:       in.Scope,
		Name:        in.Name,
		AgentID:     in.AgentID,
		Focus:       focus,
		Status:      model.SessionActive,
		StartedAt:   now,
		LastEventAt: now,
	}

	sf.Sessions = append(sf.Sessions, session)
	if err := s.save(sf); err != nil {
		return nil, err
	}
	_ = s.audit.Event(session.ID, "session.start", s.Actor, map[string]any{"scope": session.Scope})
	return session, nil
}

// Suspend parks an active session without ending it, releasing nothing.
func (s *Service) Suspend(id string) (*model.Session, error) {
	return s.transition(id, []model.SessionStatus{model.SessionActive}, model.SessionSuspended, "session.suspend")
}

// Resume reactivates a suspended or ended session. Reopening an ended
// session lets an agent pick back up after an End without losing the
// session id or its accumulated decisions/assumptions.
func (s *Service) Resume(id string) (*model.Session, error) {
	return s.transition(id, []model.SessionStatus{model.SessionSuspended, model.SessionEnded}, model.SessionActive, "session.resume")
}

// transition moves a session from one of `from` to `to`, rejecting the call
// when the session isn't currently in any of `from`.
func (s *Service) transition(id string, from []model.SessionStatus, to model.SessionStatus, action string) (*model.Session, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	session := findSession(sf.Sessions, id)
	if session == nil {
		return nil, cerr.ErrSessionNotFound.New("session %s not found", id)
	}
	ok := false
	for _, f := range from {
		if session.Status == f {
			ok = true
			break
		}
	}
	if !ok {
		return nil, cerr.ErrSessionState.New("session %s is %s, expected one of %v", id, session.Status, from)
	}
	session.Status = to
	session.LastEventAt = s.ctx.Clock.Now()
	if err := s.save(sf); err != nil {
		return nil, err
	}
	_ = s.audit.Event(id, action, s.Actor, nil)
	return session, nil
}

// End closes out a session: computes its handoff, marks it ended, and
// releases any focus claim it held.
func (s *Service) End(id, note string) (*model.Session, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	session := findSession(sf.Sessions, id)
	if session == nil {
		return nil, cerr.ErrSessionNotFound.New("session %s not found", id)
	}
	if session.Status == model.SessionEnded || session.Status == model.SessionClosed {
		return nil, cerr.ErrSessionState.New("session %s is already %s", id, session.Status)
	}

	now := s.ctx.Clock.Now()
	entries, err := s.audit.Read()
	if err != nil {
		return nil, err
	}
	handoff := computeHandoff(session, entries, now)
	handoff.Note = note

	session.Status = model.SessionEnded
	session.EndedAt = &now
	session.LastEventAt = now
	session.Note = note
	session.Handoff = handoff
	session.Focus = nil

	if err := s.save(sf); err != nil {
		return nil, err
	}
	_ = s.audit.Event(id, "session.end", s.Actor, map[string]any{"note": note})
	return session, nil
}

// Close marks an already-ended session closed, the terminal state a garbage
// collector sweep promotes stale ended sessions to.
func (s *Service) Close(id string) (*model.Session, error) {
	return s.transition(id, []model.SessionStatus{model.SessionEnded}, model.SessionClosed, "session.close")
}

// GC closes every ended session whose last event is older than maxAge,
// returning the ids it closed.
func (s *Service) GC(maxAgeSeconds int) ([]string, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	now := s.ctx.Clock.Now()
	var closed []string
	for _, session := range sf.Sessions {
		if session.Status != model.SessionEnded {
			continue
		}
		if now.Sub(session.LastEventAt).Seconds() < float64(maxAgeSeconds) {
			continue
		}
		session.Status = model.SessionClosed
		session.LastEventAt = now
		closed = append(closed, session.ID)
	}
	if len(closed) == 0 {
		return nil, nil
	}
	if err := s.save(sf); err != nil {
		return nil, err
	}
	_ = s.audit.Event("", "session.gc", s.Actor, map[string]any{"closed": closed})
	return closed, nil
}

// Get returns the session with id, or E_SESSION_NOT_FOUND.
func (s *Service) Get(id string) (*model.Session, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	session := findSession(sf.Sessions, id)
	if session == nil {
		return nil, cerr.ErrSessionNotFound.New("session %s not found", id)
	}
	return session, nil
}

// List returns every session, in no particular order beyond file order.
func (s *Service) List() ([]*model.Session, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	return sf.Sessions, nil
}

func focusHolder(sessions []*model.Session, taskID string) string {
	for _, session := range sessions {
		if session.Status != model.SessionActive {
			continue
		}
		if session.Focus != nil && *session.Focus == taskID {
			return session.ID
		}
	}
	return ""
}
