package duplicate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cleo-engine/cleo/internal/model"
)

func TestFindWithinWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	existing := &model.Task{ID: "T001", Title: "Fix login bug", Phase: "impl", CreatedAt: now.Add(-30 * time.Second)}

	match := Find([]*model.Task{existing}, "Fix login bug", "impl", now, 60*time.Second)
	require.NotNil(t, match)
	require.Equal(t, "T001", match.ID)
}

func TestFindOutsideWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	existing := &model.Task{ID: "T001", Title: "Fix login bug", Phase: "impl", CreatedAt: now.Add(-2 * time.Minute)}

	match := Find([]*model.Task{existing}, "Fix login bug", "impl", now, 60*time.Second)
	require.Nil(t, match)
}

func TestFindIgnoresDifferentPhase(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	existing := &model.Task{ID: "T001", Title: "Fix login bug", Phase: "design", CreatedAt: now}

	match := Find([]*model.Task{existing}, "Fix login bug", "impl", now, 60*time.Second)
	require.Nil(t, match)
}
