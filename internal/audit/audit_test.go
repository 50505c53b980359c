package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecorderRecordAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo-log.json")
	r := NewRecorder(path, time.Second)

	require.NoError(t, r.TaskMutation("sess-1", "task.complete", "alice", "T001", nil, map[string]any{"status": "done"}))
	require.NoError(t, r.Event("sess-1", "session.start", "alice", map[string]any{"scope": "backend"}))

	entries, err := r.Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "task.complete", entries[0].Action)
	require.Equal(t, "T001", entries[0].TaskID)
	require.Equal(t, "session.start", entries[1].Action)
	require.NotEmpty(t, entries[0].ID)
}
