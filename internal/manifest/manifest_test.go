package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cleo-engine/cleo/internal/model"
)

func TestRecordAndQuery(t *testing.T) {
	idx := New(filepath.Join(t.TempDir(), "manifest.jsonl"))

	_, err := idx.Record(model.ManifestEntry{
		File:          "research/auth.md",
		Title:         "Auth provider survey",
		Status:        "complete",
		Topics:        []string{"auth", "security"},
		KeyFindings:   []string{"OIDC is the best fit"},
		LinkedTasks:   []string{"T010"},
		NeedsFollowup: []string{"confirm token rotation policy"},
	})
	require.NoError(t, err)

	_, err = idx.Record(model.ManifestEntry{
		File:   "research/cache.md",
		Title:  "Cache eviction survey",
		Status: "complete",
		Topics: []string{"performance"},
	})
	require.NoError(t, err)

	byTopic, err := idx.ByTopic("auth")
	require.NoError(t, err)
	require.Len(t, byTopic, 1)
	require.Equal(t, "Auth provider survey", byTopic[0].Title)

	byTask, err := idx.ByTask("T010")
	require.NoError(t, err)
	require.Len(t, byTask, 1)

	followup, err := idx.NeedingFollowup()
	require.NoError(t, err)
	require.Len(t, followup, 1)
}
