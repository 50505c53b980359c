package graph

import (
	"sort"

	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
)

// Waves groups live, non-terminal tasks into dependency waves: wave 0 holds
// every task whose Depends are all satisfied (done, cancelled, or archived);
// wave N+1 holds tasks whose remaining dependencies all resolve into wave
// ≤N. It returns an error if the dependency graph contains a cycle among
// tasks that never become schedulable.
func Waves(tasks []*model.Task, archivedIDs map[string]bool) ([][]*model.Task, error) {
	idx := make(map[string]*model.Task, len(tasks))
	for _, t := range tasks {
		idx[t.ID] = t
	}

	satisfied := func(depID string) bool {
		if archivedIDs[depID] {
			return true
		}
		dep, ok := idx[depID]
		if !ok {
			return true // dangling reference; treated as satisfied, validate.CheckInvariants flags it separately
		}
		return dep.Status == model.StatusDone || dep.Status == model.StatusCancelled
	}

	remaining := make(map[string]*model.Task, len(tasks))
	for _, t := range tasks {
		if t.Status == model.StatusDone || t.Status == model.StatusCancelled {
			continue
		}
		remaining[t.ID] = t
	}

	var waves [][]*model.Task
	resolved := map[string]bool{}
	for len(remaining) > 0 {
		var wave []*model.Task
		for id, t := range remaining {
			ready := true
			for _, dep := range t.Depends {
				if resolved[dep] || satisfied(dep) {
					continue
				}
				ready = false
				break
			}
			if ready {
				wave = append(wave, t)
				_ = id
			}
		}
		if len(wave) == 0 {
			return nil, cerr.ErrDependencyError.New("dependency cycle prevents further scheduling among %d tasks", len(remaining))
		}
		sort.Slice(wave, func(i, j int) bool { return wave[i].ID < wave[j].ID })
		waves = append(waves, wave)
		for _, t := range wave {
			resolved[t.ID] = true
			delete(remaining, t.ID)
		}
	}
	return waves, nil
}
