package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cleo-engine/cleo/internal/project"
	"github.com/cleo-engine/cleo/internal/store"
)

func newTestDispatcher(t *testing.T) *Dispatcher {
	t.Helper()
	root := t.TempDir()
	layout := store.NewLayout(root)
	require.NoError(t, layout.EnsureDirs())
	cfg, err := project.Load(root)
	require.NoError(t, err)
	ctx := &project.Context{Layout: layout, Config: cfg, Clock: project.NewFixedClock(time.Now().UTC())}

	reg := NewRegistry()
	reg.Register(OperationDef{
		Gateway:        GatewayMutate,
		Domain:         DomainTasks,
		Operation:      "add",
		RequiredParams: []string{"title"},
		Handler: func(req Request) (any, error) {
			return map[string]any{"title": req.Params["title"]}, nil
		},
	})
	return New(ctx, reg, Options{})
}

func TestDispatchRoutesToHandler(t *testing.T) {
	d := newTestDispatcher(t)
	env := d.Dispatch(Request{
		Gateway:   GatewayMutate,
		Domain:    DomainTasks,
		Operation: "add",
		Params:    map[string]any{"title": "Ship it"},
	})
	require.True(t, env.Success)
	require.Equal(t, "tasks", string(env.Meta.Domain))
}

func TestDispatchRejectsMissingParams(t *testing.T) {
	d := newTestDispatcher(t)
	env := d.Dispatch(Request{
		Gateway:   GatewayMutate,
		Domain:    DomainTasks,
		Operation: "add",
		Params:    map[string]any{},
	})
	require.False(t, env.Success)
	require.Equal(t, "E_INPUT_MISSING", env.Error.Code)
}

func TestDispatchRejectsWrongGateway(t *testing.T) {
	d := newTestDispatcher(t)
	env := d.Dispatch(Request{
		Gateway:   GatewayQuery,
		Domain:    DomainTasks,
		Operation: "add",
		Params:    map[string]any{"title": "x"},
	})
	require.False(t, env.Success)
}

func TestDispatchRejectsUnknownOperation(t *testing.T) {
	d := newTestDispatcher(t)
	env := d.Dispatch(Request{
		Gateway:   GatewayMutate,
		Domain:    DomainTasks,
		Operation: "nonexistent",
	})
	require.False(t, env.Success)
	require.Equal(t, "E_INVALID_OPERATION", env.Error.Code)
}

func TestRateLimiterBlocksBurst(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	require.True(t, limiter.Allow(GatewayQuery))
	require.False(t, limiter.Allow(GatewayQuery))
}

func TestSanitizeStripsControlCharsAndCoercesEnums(t *testing.T) {
	out := sanitize(map[string]any{
		"title":    "hello\x00world",
		"priority": "HIGH",
	})
	require.Equal(t, "helloworld", out["title"])
	require.Equal(t, "high", out["priority"])
}
