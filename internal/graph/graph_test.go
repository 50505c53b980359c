package graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cleo-engine/cleo/internal/model"
)

func strp(s string) *string { return &s }

func TestDepthAndLCA(t *testing.T) {
	epic := &model.Task{ID: "T001"}
	task := &model.Task{ID: "T002", ParentID: strp("T001")}
	sub := &model.Task{ID: "T003", ParentID: strp("T002")}
	sibling := &model.Task{ID: "T004", ParentID: strp("T002")}

	idx := Build([]*model.Task{epic, task, sub, sibling})
	require.Equal(t, 0, idx.Depth("T001"))
	require.Equal(t, 1, idx.Depth("T002"))
	require.Equal(t, 2, idx.Depth("T003"))

	require.Equal(t, "T002", idx.LCA("T003", "T004"))
	require.Equal(t, 2, idx.TreeDistance("T003", "T004"))
}

func TestWavesOrdersByDependency(t *testing.T) {
	a := &model.Task{ID: "T001", Status: model.StatusPending}
	b := &model.Task{ID: "T002", Status: model.StatusPending, Depends: []string{"T001"}}
	c := &model.Task{ID: "T003", Status: model.StatusPending, Depends: []string{"T002"}}

	waves, err := Waves([]*model.Task{c, b, a}, nil)
	require.NoError(t, err)
	require.Len(t, waves, 3)
	require.Equal(t, "T001", waves[0][0].ID)
	require.Equal(t, "T002", waves[1][0].ID)
	require.Equal(t, "T003", waves[2][0].ID)
}

func TestWavesDetectsCycle(t *testing.T) {
	a := &model.Task{ID: "T001", Status: model.StatusPending, Depends: []string{"T002"}}
	b := &model.Task{ID: "T002", Status: model.StatusPending, Depends: []string{"T001"}}

	_, err := Waves([]*model.Task{a, b}, nil)
	require.Error(t, err)
}

func TestRelatedRanksSiblingsHighest(t *testing.T) {
	subject := &model.Task{ID: "T001", ParentID: strp("T000"), Labels: []string{"backend"}}
	sibling := &model.Task{ID: "T002", ParentID: strp("T000"), Labels: []string{"backend"}}
	stranger := &model.Task{ID: "T003", Labels: []string{"frontend"}}

	idx := Build([]*model.Task{subject, sibling, stranger})
	related := idx.Related("T001", 5)
	require.NotEmpty(t, related)
	require.Equal(t, "T002", related[0].Task.ID)
}
