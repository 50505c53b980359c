package store

import (
	"os"
	"path/filepath"
)

// Layout resolves the on-disk locations for one project root's .cleo/
// directory, honouring the override environment variables
// (CLEO_DIR, TODO_FILE, ARCHIVE_FILE, LOG_FILE, CONFIG_FILE).
type Layout struct {
	Root            string
	CleoDir         string
	TodoFile        string
	ArchiveFile     string
	LogFile         string
	ConfigFile      string
	SessionsFile    string
	ManifestFile    string
	DiagnosticsLog  string
	BackupsDir      string
	CacheDir        string
	AgentOutputsDir string
	ADRsDir         string
}

// NewLayout builds a Layout rooted at root, applying environment overrides.
func NewLayout(root string) Layout {
	cleoDir := envOr("CLEO_DIR", filepath.Join(root, ".cleo"))
	return Layout{
		Root:            root,
		CleoDir:         cleoDir,
		TodoFile:        envOr("TODO_FILE", filepath.Join(cleoDir, "todo.json")),
		ArchiveFile:     envOr("ARCHIVE_FILE", filepath.Join(cleoDir, "todo-archive.json")),
		LogFile:         envOr("LOG_FILE", filepath.Join(cleoDir, "todo-log.json")),
		ConfigFile:      envOr("CONFIG_FILE", filepath.Join(cleoDir, "config.json")),
		SessionsFile:    filepath.Join(cleoDir, "sessions.json"),
		ManifestFile:    filepath.Join(cleoDir, "agent-outputs", "manifest.jsonl"),
		DiagnosticsLog:  filepath.Join(cleoDir, "cleo.log"),
		BackupsDir:      filepath.Join(cleoDir, "backups"),
		CacheDir:        filepath.Join(cleoDir, ".cache"),
		AgentOutputsDir: filepath.Join(cleoDir, "agent-outputs"),
		ADRsDir:         filepath.Join(cleoDir, "adrs"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnsureDirs creates every directory the layout needs, idempotently.
func (l Layout) EnsureDirs() error {
	for _, d := range []string{l.CleoDir, l.BackupsDir, l.CacheDir, l.AgentOutputsDir, l.ADRsDir} {
		if err := os.MkdirAll(d, 0o750); err != nil {
			return err
		}
	}
	return nil
}

// FindProjectRoot walks up from start looking for an existing .cleo/
// directory. Returns start unchanged if none is found (the caller is
// expected to `init`).
func FindProjectRoot(start string) string {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, ".cleo")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
