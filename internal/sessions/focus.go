package sessions

import (
	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
)

// SetFocus claims taskID for session id, rejecting the claim if another
// active session already holds it.
func (s *Service) SetFocus(id, taskID string) (*model.Session, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	session := findSession(sf.Sessions, id)
	if session == nil {
		return nil, cerr.ErrSessionNotFound.New("session %s not found", id)
	}
	if session.Status != model.SessionActive {
		return nil, cerr.ErrSessionState.New("session %s is %s, must be active to claim focus", id, session.Status)
	}
	if holder := focusHolder(sf.Sessions, taskID); holder != "" && holder != id {
		return nil, cerr.ErrFocusClaimed.New("task %s is already focused by session %s", taskID, holder)
	}

	f := taskID
	session.Focus = &f
	session.LastEventAt = s.ctx.Clock.Now()
	if err := s.save(sf); err != nil {
		return nil, err
	}
	_ = s.audit.Event(id, "session.focus", s.Actor, map[string]any{"taskId": taskID})
	return session, nil
}

// ClearFocus releases whatever task session id currently has focused.
func (s *Service) ClearFocus(id string) (*model.Session, error) {
	sf, err := s.load()
	if err != nil {
		return nil, err
	}
	session := findSession(sf.Sessions, id)
	if session == nil {
		return nil, cerr.ErrSessionNotFound.New("session %s not found", id)
	}
	session.Focus = nil
	session.LastEventAt = s.ctx.Clock.Now()
	if err := s.save(sf); err != nil {
		return nil, err
	}
	_ = s.audit.Event(id, "session.unfocus", s.Actor, nil)
	return session, nil
}
