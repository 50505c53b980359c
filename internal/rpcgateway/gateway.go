// Package rpcgateway exposes CLEO's dispatcher as exactly two RPC tools,
// query and mutate, for agent callers that speak a tool-call protocol
// rather than a shell. Both tools funnel straight into dispatch.Dispatcher;
// no business logic lives here.
package rpcgateway

import "github.com/cleo-engine/cleo/internal/dispatch"

// Gateway adapts a dispatch.Dispatcher to the two-tool surface.
type Gateway struct {
	dispatcher *dispatch.Dispatcher
}

// New builds a Gateway over dispatcher.
func New(dispatcher *dispatch.Dispatcher) *Gateway {
	return &Gateway{dispatcher: dispatcher}
}

// ToolCall is the shape an RPC caller sends to either tool.
type ToolCall struct {
	Domain    string         `json:"domain"`
	Operation string         `json:"operation"`
	Params    map[string]any `json:"params"`
	Actor     string         `json:"actor,omitempty"`
	SessionID string         `json:"sessionId,omitempty"`
}

// Query invokes a read-only operation.
func (g *Gateway) Query(call ToolCall) dispatch.Envelope {
	return g.dispatcher.Dispatch(dispatch.Request{
		Gateway:   dispatch.GatewayQuery,
		Domain:    dispatch.Domain(call.Domain),
		Operation: call.Operation,
		Actor:     call.Actor,
		SessionID: call.SessionID,
		Params:    call.Params,
	})
}

// Mutate invokes a state-changing operation.
func (g *Gateway) Mutate(call ToolCall) dispatch.Envelope {
	return g.dispatcher.Dispatch(dispatch.Request{
		Gateway:   dispatch.GatewayMutate,
		Domain:    dispatch.Domain(call.Domain),
		Operation: call.Operation,
		Actor:     call.Actor,
		SessionID: call.SessionID,
		Params:    call.Params,
	})
}
