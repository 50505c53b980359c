package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cleo-engine/cleo/internal/model"
)

func strptr(s string) *string { return &s }

func TestCheckInvariantsDetectsCycle(t *testing.T) {
	a := &model.Task{ID: "T001", Type: model.TypeTask, Status: model.StatusPending, Position: 1, Depends: []string{"T002"}}
	b := &model.Task{ID: "T002", Type: model.TypeTask, Status: model.StatusPending, Position: 1, Depends: []string{"T001"}}

	violations := CheckInvariants([]*model.Task{a, b}, nil)
	require.NotEmpty(t, violations)
	found := false
	for _, v := range violations {
		if v.Rule == "depends" && v.Message == "dependency graph contains a cycle" {
			found = true
		}
	}
	require.True(t, found)
}

func TestCheckInvariantsDepthLimit(t *testing.T) {
	epic := &model.Task{ID: "T001", Type: model.TypeEpic, Status: model.StatusPending, Position: 1}
	task := &model.Task{ID: "T002", Type: model.TypeTask, Status: model.StatusPending, Position: 1, ParentID: strptr("T001")}
	sub := &model.Task{ID: "T003", Type: model.TypeSubtask, Status: model.StatusPending, Position: 1, ParentID: strptr("T002")}
	grandchild := &model.Task{ID: "T004", Type: model.TypeSubtask, Status: model.StatusPending, Position: 1, ParentID: strptr("T003")}

	violations := CheckInvariants([]*model.Task{epic, task, sub, grandchild}, nil)
	var depthViolation bool
	for _, v := range violations {
		if v.Rule == "hierarchy" && v.TaskID == "T004" {
			depthViolation = true
		}
	}
	require.True(t, depthViolation)
}

func TestCheckInvariantsSingleActive(t *testing.T) {
	a := &model.Task{ID: "T001", Type: model.TypeTask, Status: model.StatusActive, Position: 1}
	b := &model.Task{ID: "T002", Type: model.TypeTask, Status: model.StatusActive, Position: 2}

	violations := CheckInvariants([]*model.Task{a, b}, nil)
	require.Len(t, violations, 1)
	require.Equal(t, "single-active", violations[0].Rule)
}

func TestCheckInvariantsPositions(t *testing.T) {
	a := &model.Task{ID: "T001", Type: model.TypeTask, Status: model.StatusPending, Position: 1}
	b := &model.Task{ID: "T002", Type: model.TypeTask, Status: model.StatusPending, Position: 3}

	violations := CheckInvariants([]*model.Task{a, b}, nil)
	var gap bool
	for _, v := range violations {
		if v.Rule == "position" {
			gap = true
		}
	}
	require.True(t, gap)
}

func TestFixOrphansUnlink(t *testing.T) {
	orphan := &model.Task{ID: "T002", Type: model.TypeTask, Status: model.StatusPending, Position: 1, ParentID: strptr("T999")}
	touched := FixOrphans([]*model.Task{orphan}, OrphanUnlink)
	require.Equal(t, []string{"T002"}, touched)
	require.Nil(t, orphan.ParentID)
}

func TestRenumberPositions(t *testing.T) {
	a := &model.Task{ID: "T001", Position: 5}
	b := &model.Task{ID: "T002", Position: 7}
	touched := RenumberPositions([]*model.Task{a, b})
	require.ElementsMatch(t, []string{"T001", "T002"}, touched)
	require.Equal(t, 1, a.Position)
	require.Equal(t, 2, b.Position)
}
