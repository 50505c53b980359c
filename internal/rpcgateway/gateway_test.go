package rpcgateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cleo-engine/cleo/internal/dispatch"
	"github.com/cleo-engine/cleo/internal/project"
	"github.com/cleo-engine/cleo/internal/store"
)

func TestQueryAndMutateRouteThroughDispatcher(t *testing.T) {
	root := t.TempDir()
	layout := store.NewLayout(root)
	require.NoError(t, layout.EnsureDirs())
	cfg, err := project.Load(root)
	require.NoError(t, err)
	ctx := &project.Context{Layout: layout, Config: cfg, Clock: project.NewFixedClock(time.Now().UTC())}

	reg := dispatch.NewRegistry()
	reg.Register(dispatch.OperationDef{
		Gateway:   dispatch.GatewayQuery,
		Domain:    dispatch.DomainTasks,
		Operation: "list",
		Handler:   func(req dispatch.Request) (any, error) { return []string{}, nil },
	})
	reg.Register(dispatch.OperationDef{
		Gateway:        dispatch.GatewayMutate,
		Domain:         dispatch.DomainTasks,
		Operation:      "add",
		RequiredParams: []string{"title"},
		Handler:        func(req dispatch.Request) (any, error) { return req.Params["title"], nil },
	})

	gw := New(dispatch.New(ctx, reg, dispatch.Options{}))

	qEnv := gw.Query(ToolCall{Domain: "tasks", Operation: "list"})
	require.True(t, qEnv.Success)

	mEnv := gw.Mutate(ToolCall{Domain: "tasks", Operation: "add", Params: map[string]any{"title": "x"}})
	require.True(t, mEnv.Success)
}
