package dispatch

import (
	"fmt"
	"sort"
	"sync"
)

// Handler executes one registered operation against validated params.
type Handler func(req Request) (any, error)

// OperationDef is one registry entry: the contract a CLI or RPC caller
// must satisfy to invoke it, plus the handler that implements it.
type OperationDef struct {
	Gateway         Gateway
	Domain          Domain
	Operation       string
	RequiredParams  []string
	Description     string
	Handler         Handler
}

// key uniquely identifies an operation within a domain.
func (o OperationDef) key() string { return string(o.Domain) + "." + o.Operation }

// Registry is the CQRS operation table: every operation the dispatcher can
// route to, keyed by domain and operation name.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]OperationDef
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]OperationDef)}
}

// Register adds def to the registry. Registering the same domain+operation
// twice overwrites the previous definition, which lets tests stub handlers.
func (r *Registry) Register(def OperationDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[def.key()] = def
}

// Lookup finds the definition for domain.operation.
func (r *Registry) Lookup(domain Domain, operation string) (OperationDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.ops[string(domain)+"."+operation]
	return def, ok
}

// MissingParams reports which of def's RequiredParams are absent from params.
func (def OperationDef) MissingParams(params map[string]any) []string {
	var missing []string
	for _, p := range def.RequiredParams {
		if _, ok := params[p]; !ok {
			missing = append(missing, p)
		}
	}
	return missing
}

// List returns every registered operation, sorted by domain then operation,
// the shape a CLI's auto-registered help text or an RPC introspection call
// reads from.
func (r *Registry) List() []OperationDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]OperationDef, 0, len(r.ops))
	for _, def := range r.ops {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Domain != out[j].Domain {
			return out[i].Domain < out[j].Domain
		}
		return out[i].Operation < out[j].Operation
	})
	return out
}

// describe renders a definition's signature for error messages.
func (def OperationDef) describe() string {
	return fmt.Sprintf("%s.%s (%s)", def.Domain, def.Operation, def.Gateway)
}
