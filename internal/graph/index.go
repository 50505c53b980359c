// Package graph computes derived views over a task list: hierarchy depth,
// dependency waves, and label/phase-based relatedness. Nothing here mutates
// tasks; every function takes a snapshot and returns a read-only result,
// so callers can cache results per todo.json generation.
package graph

import "github.com/cleo-engine/cleo/internal/model"

// Index is a set of lookup tables built once per snapshot and reused across
// the derived-view computations in this package.
type Index struct {
	byID     map[string]*model.Task
	children map[string][]*model.Task
	byLabel  map[string][]*model.Task
	byPhase  map[string][]*model.Task
}

// Build indexes tasks by id, parent, label, and phase.
func Build(tasks []*model.Task) *Index {
	idx := &Index{
		byID:     make(map[string]*model.Task, len(tasks)),
		children: make(map[string][]*model.Task),
		byLabel:  make(map[string][]*model.Task),
		byPhase:  make(map[string][]*model.Task),
	}
	for _, t := range tasks {
		idx.byID[t.ID] = t
		if t.ParentID != nil {
			idx.children[*t.ParentID] = append(idx.children[*t.ParentID], t)
		}
		for _, l := range t.Labels {
			idx.byLabel[l] = append(idx.byLabel[l], t)
		}
		if t.Phase != "" {
			idx.byPhase[t.Phase] = append(idx.byPhase[t.Phase], t)
		}
	}
	return idx
}

// Get returns the task with id, or nil if none exists in the snapshot.
func (idx *Index) Get(id string) *model.Task { return idx.byID[id] }

// Children returns the direct children of id, in no particular order.
func (idx *Index) Children(id string) []*model.Task { return idx.children[id] }

// ByLabel returns every task tagged with label.
func (idx *Index) ByLabel(label string) []*model.Task { return idx.byLabel[label] }

// ByPhase returns every task in phase.
func (idx *Index) ByPhase(phase string) []*model.Task { return idx.byPhase[phase] }
