package validate

import (
	"sort"
	"time"

	"github.com/cleo-engine/cleo/internal/model"
)

// OrphanPolicy decides what happens to a task whose parentId no longer
// resolves to a live task.
type OrphanPolicy string

const (
	// OrphanUnlink clears the orphan's parentId, promoting it to top level.
	OrphanUnlink OrphanPolicy = "unlink"
	// OrphanCancel marks the orphan cancelled with a synthetic reason.
	OrphanCancel OrphanPolicy = "cancel"
)

// CheckOrphans returns every task whose parentId does not resolve to a live
// task in tasks.
func CheckOrphans(tasks []*model.Task) []*model.Task {
	idx := indexByID(tasks)
	var orphans []*model.Task
	for _, t := range tasks {
		if t.ParentID != nil {
			if _, ok := idx[*t.ParentID]; !ok {
				orphans = append(orphans, t)
			}
		}
	}
	return orphans
}

// FixOrphans applies policy to every orphan found in tasks and returns the
// ids it touched. Mutation happens in place on the slice's pointees; callers
// persist the result through store.Save.
func FixOrphans(tasks []*model.Task, policy OrphanPolicy) []string {
	var touched []string
	for _, t := range CheckOrphans(tasks) {
		switch policy {
		case OrphanCancel:
			now := time.Now().UTC()
			t.Status = model.StatusCancelled
			t.CancelledAt = &now
			t.CancellationReason = "orphaned: parent task no longer exists"
			t.ParentID = nil
		default: // OrphanUnlink
			t.ParentID = nil
		}
		touched = append(touched, t.ID)
	}
	return touched
}

// RenumberPositions rewrites Position within each parent scope to a
// contiguous 1..N sequence, preserving each scope's existing relative order.
// It returns the ids whose position changed.
func RenumberPositions(tasks []*model.Task) []string {
	byParent := map[string][]*model.Task{}
	for _, t := range tasks {
		key := ""
		if t.ParentID != nil {
			key = *t.ParentID
		}
		byParent[key] = append(byParent[key], t)
	}

	var touched []string
	for _, siblings := range byParent {
		sort.SliceStable(siblings, func(i, j int) bool { return siblings[i].Position < siblings[j].Position })
		for i, t := range siblings {
			want := i + 1
			if t.Position != want {
				t.Position = want
				touched = append(touched, t.ID)
			}
		}
	}
	sort.Strings(touched)
	return touched
}

// ChecksumMismatch describes a file whose stored checksum disagrees with the
// checksum of its current contents.
type ChecksumMismatch struct {
	File     string
	Stored   string
	Computed string
}
