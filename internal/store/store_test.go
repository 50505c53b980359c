package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.json")

	in := sample{Name: "alpha", Count: 3}
	require.NoError(t, Save(path, in, SaveOptions{}))

	out, err := Load[sample](path)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Load[sample](filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestSaveBackupRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.json")
	backupDir := filepath.Join(dir, "backups")

	for i := 0; i < 5; i++ {
		require.NoError(t, Save(path, sample{Name: "x", Count: i}, SaveOptions{
			Backup: i > 0, BackupDir: backupDir, KeepBackups: 2, LockTimeout: time.Second,
		}))
		time.Sleep(2 * time.Millisecond)
	}

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	require.LessOrEqual(t, len(entries), 2)
}

func TestAppendLineAndReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo-log.json")

	require.NoError(t, AppendLine(path, sample{Name: "a", Count: 1}, time.Second))
	require.NoError(t, AppendLine(path, sample{Name: "b", Count: 2}, time.Second))

	out, err := ReadLines[sample](path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "a", out[0].Name)
	require.Equal(t, "b", out[1].Name)
}
