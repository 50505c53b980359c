// Package sessions implements the session domain: the start/suspend/
// resume/end/gc lifecycle, focus claims, decision and assumption logging,
// context-drift detection, and handoff computation.
package sessions

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cleo-engine/cleo/internal/audit"
	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/project"
	"github.com/cleo-engine/cleo/internal/store"
)

// Service mutates one project's session domain.
type Service struct {
	ctx   *project.Context
	audit *audit.Recorder
	Actor string
}

// New builds a Service bound to ctx.
func New(ctx *project.Context, actor string) *Service {
	lockTimeout := time.Duration(ctx.Config.LockTimeoutSeconds()) * time.Second
	return &Service{
		ctx:   ctx,
		audit: audit.NewRecorder(ctx.Layout.LogFile, lockTimeout),
		Actor: actor,
	}
}

func (s *Service) lockTimeout() time.Duration {
	return time.Duration(s.ctx.Config.LockTimeoutSeconds()) * time.Second
}

func (s *Service) load() (*model.SessionsFile, error) {
	sf, err := store.Load[model.SessionsFile](s.ctx.Layout.SessionsFile)
	if err != nil {
		if code := cerr.CodeOf(err); code == cerr.ErrFileNotFound {
			return &model.SessionsFile{Meta: model.Meta{SchemaVersion: model.CurrentSchemaVersion}}, nil
		}
		return nil, err
	}
	return &sf, nil
}

func (s *Service) save(sf *model.SessionsFile) error {
	checksum, err := store.Checksum(sf.Sessions)
	if err != nil {
		return err
	}
	sf.Meta.SchemaVersion = model.CurrentSchemaVersion
	sf.Meta.Checksum = checksum
	sf.LastUpdated = s.ctx.Clock.Now()
	return store.Save(s.ctx.Layout.SessionsFile, sf, store.SaveOptions{
		Backup:      true,
		BackupDir:   s.ctx.Layout.BackupsDir,
		KeepBackups: 10,
		LockTimeout: s.lockTimeout(),
	})
}

func findSession(sessions []*model.Session, id string) *model.Session {
	for _, sess := range sessions {
		if sess.ID == id {
			return sess
		}
	}
	return nil
}

// newID mints a session id of the form session_YYYYMMDD_HHMMSS_<hex>.
func newID(now time.Time) (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return fmt.Sprintf("session_%s_%s", now.Format("20060102_150405"), hex.EncodeToString(b[:])), nil
}
