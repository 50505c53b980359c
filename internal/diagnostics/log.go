// Package diagnostics provides the operator-facing diagnostics log
// (.cleo/cleo.log), distinct from the domain audit trail: one line per
// dispatched operation, rotated so long-lived RPC gateway processes don't
// grow an unbounded file.
package diagnostics

import (
	"encoding/json"
	"log"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes structured operational lines to a rotating file.
type Logger struct {
	out *lumberjack.Logger
	std *log.Logger
}

// New opens (creating if needed) the rotating log at path. MaxSizeMB bounds
// a single file before rotation; maxBackups bounds how many rotated files
// are retained.
func New(path string, maxSizeMB, maxBackups int) *Logger {
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     28,
		Compress:   true,
	}
	return &Logger{out: out, std: log.New(out, "", 0)}
}

// Entry is one dispatch-middleware diagnostics line.
type Entry struct {
	Timestamp  time.Time `json:"timestamp"`
	Gateway    string    `json:"gateway"`
	Domain     string    `json:"domain"`
	Operation  string    `json:"operation"`
	DurationMS int64     `json:"duration_ms"`
	Success    bool      `json:"success"`
	ErrorCode  string    `json:"error_code,omitempty"`
}

// Log writes one operational entry as a JSON line.
func (l *Logger) Log(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	buf, err := json.Marshal(e)
	if err != nil {
		return
	}
	l.std.Println(string(buf))
}

// Close flushes and closes the underlying rotated file.
func (l *Logger) Close() error {
	return l.out.Close()
}
