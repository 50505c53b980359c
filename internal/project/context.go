package project

import (
	"github.com/cleo-engine/cleo/internal/store"
)

// Context bundles everything a domain service needs to operate on one
// project root: its file layout, its layered config, and its clock. Domain
// packages take a *Context instead of reading globals so tests can swap in a
// FixedClock and a temp-dir Layout without touching package state.
type Context struct {
	Layout store.Layout
	Config *Config
	Clock  Clock
}

// New resolves root into a full Context: finds (or assumes) the project
// root, loads its layout and config, and wires a SystemClock.
func New(start string) (*Context, error) {
	root := store.FindProjectRoot(start)
	layout := store.NewLayout(root)
	cfg, err := Load(root)
	if err != nil {
		return nil, err
	}
	return &Context{Layout: layout, Config: cfg, Clock: SystemClock{}}, nil
}

// WithClock returns a shallow copy of c using clock instead of its own,
// for tests that need deterministic timestamps.
func (c *Context) WithClock(clock Clock) *Context {
	cp := *c
	cp.Clock = clock
	return &cp
}
