package validate

import (
	"fmt"
	"sort"

	"github.com/cleo-engine/cleo/internal/model"
)

// Violation is one invariant breach found by a cross-entity validator.
// Validators are pure functions from a candidate state to a list of
// violations; nothing here mutates the tasks it inspects.
type Violation struct {
	Rule    string
	TaskID  string
	Message string
}

func (v Violation) String() string { return fmt.Sprintf("[%s] %s: %s", v.Rule, v.TaskID, v.Message) }

// byID indexes a candidate task slice by id for O(1) lookups during
// validation; archived is consulted for dependency satisfaction and id
// collision checks.
type byID map[string]*model.Task

func indexByID(tasks []*model.Task) byID {
	m := make(byID, len(tasks))
	for _, t := range tasks {
		m[t.ID] = t
	}
	return m
}

// CheckInvariants runs every structural invariant against a candidate live
// task list, given the set of archived ids (which satisfy dependency edges
// even though they are no longer live). It returns every violation found;
// callers reject the candidate if the result is non-empty.
func CheckInvariants(tasks []*model.Task, archivedIDs map[string]bool) []Violation {
	var violations []Violation
	idx := indexByID(tasks)

	violations = append(violations, checkUniqueIDs(tasks, archivedIDs)...)
	violations = append(violations, checkHierarchy(tasks, idx)...)
	violations = append(violations, checkDependencyDAG(tasks, idx, archivedIDs)...)
	violations = append(violations, checkSingleActive(tasks)...)
	violations = append(violations, checkBlockedDescription(tasks)...)
	violations = append(violations, checkCompletionTimestamps(tasks)...)
	violations = append(violations, checkPositions(tasks)...)
	return violations
}

func checkUniqueIDs(tasks []*model.Task, archivedIDs map[string]bool) []Violation {
	var violations []Violation
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			violations = append(violations, Violation{"unique-id", t.ID, "duplicate task id in live set"})
		}
		seen[t.ID] = true
		if archivedIDs[t.ID] {
			violations = append(violations, Violation{"unique-id", t.ID, "id collides with an archived task"})
		}
	}
	return violations
}

// checkHierarchy enforces: acyclic parent chain, depth ≤ 2, subtasks have no
// children, epics have no parent.
func checkHierarchy(tasks []*model.Task, idx byID) []Violation {
	var violations []Violation
	hasChildren := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.ParentID != nil {
			hasChildren[*t.ParentID] = true
		}
	}

	for _, t := range tasks {
		if t.Type == model.TypeEpic && t.ParentID != nil {
			violations = append(violations, Violation{"hierarchy", t.ID, "epic must not have a parent"})
		}
		if t.Type == model.TypeSubtask && hasChildren[t.ID] {
			violations = append(violations, Violation{"hierarchy", t.ID, "subtask must not have children"})
		}

		depth, cyclic := computeDepth(t.ID, idx)
		if cyclic {
			violations = append(violations, Violation{"hierarchy", t.ID, "parent chain contains a cycle"})
			continue
		}
		if depth > 2 {
			violations = append(violations, Violation{"hierarchy", t.ID, fmt.Sprintf("depth %d exceeds maximum of 2", depth)})
		}
		if depth > t.Depth() && t.Depth() >= 0 {
			violations = append(violations, Violation{"hierarchy", t.ID,
				fmt.Sprintf("structural depth %d exceeds the depth of type %s", depth, t.Type)})
		}
	}
	return violations
}

// computeDepth climbs the parent chain, detecting cycles via a visited set.
func computeDepth(id string, idx byID) (depth int, cyclic bool) {
	visited := map[string]bool{}
	cur := id
	for depth = 0; ; depth++ {
		if visited[cur] {
			return depth, true
		}
		visited[cur] = true
		t, ok := idx[cur]
		if !ok || t.ParentID == nil {
			return depth, false
		}
		cur = *t.ParentID
		if depth > len(idx)+1 {
			return depth, true
		}
	}
}

// checkDependencyDAG enforces depends forms a DAG within the live set, no
// self-deps, and every referenced id exists live or archived.
func checkDependencyDAG(tasks []*model.Task, idx byID, archivedIDs map[string]bool) []Violation {
	var violations []Violation
	for _, t := range tasks {
		for _, dep := range t.Depends {
			if dep == t.ID {
				violations = append(violations, Violation{"depends", t.ID, "task cannot depend on itself"})
				continue
			}
			if _, liveOK := idx[dep]; !liveOK && !archivedIDs[dep] {
				violations = append(violations, Violation{"depends", t.ID, fmt.Sprintf("dependency %s does not exist", dep)})
			}
		}
	}
	if cycle := findDependencyCycle(tasks, idx); cycle != "" {
		violations = append(violations, Violation{"depends", cycle, "dependency graph contains a cycle"})
	}
	return violations
}

// findDependencyCycle runs DFS with three-colour marking (white/grey/black)
// over the live depends graph. Returns the id where a cycle was first
// detected, or "" if none.
func findDependencyCycle(tasks []*model.Task, idx byID) string {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make(map[string]int, len(tasks))
	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = grey
		if t, ok := idx[id]; ok {
			for _, dep := range t.Depends {
				if _, liveOK := idx[dep]; !liveOK {
					continue // archived deps cannot participate in a live cycle
				}
				switch color[dep] {
				case grey:
					return true
				case white:
					if visit(dep) {
						return true
					}
				}
			}
		}
		color[id] = black
		return false
	}

	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids) // deterministic traversal order
	for _, id := range ids {
		if color[id] == white {
			if visit(id) {
				return id
			}
		}
	}
	return ""
}

// checkSingleActive enforces at most one task with status active.
func checkSingleActive(tasks []*model.Task) []Violation {
	var active []string
	for _, t := range tasks {
		if t.Status == model.StatusActive {
			active = append(active, t.ID)
		}
	}
	if len(active) > 1 {
		return []Violation{{"single-active", active[0], fmt.Sprintf("multiple active tasks: %v", active)}}
	}
	return nil
}

func checkBlockedDescription(tasks []*model.Task) []Violation {
	var violations []Violation
	for _, t := range tasks {
		if t.Status == model.StatusBlocked && t.Description == "" {
			violations = append(violations, Violation{"blocked-description", t.ID, "blocked task requires a description"})
		}
	}
	return violations
}

// checkCompletionTimestamps enforces "completedAt set iff status=done" and
// "cancelledAt/cancellationReason set iff status=cancelled".
func checkCompletionTimestamps(tasks []*model.Task) []Violation {
	var violations []Violation
	for _, t := range tasks {
		doneHasTimestamp := t.CompletedAt != nil
		if (t.Status == model.StatusDone) != doneHasTimestamp {
			violations = append(violations, Violation{"completion-timestamp", t.ID, "completedAt must be set iff status=done"})
		}
		cancelledHasTimestamp := t.CancelledAt != nil
		if (t.Status == model.StatusCancelled) != cancelledHasTimestamp {
			violations = append(violations, Violation{"cancellation-timestamp", t.ID, "cancelledAt must be set iff status=cancelled"})
		}
		if t.Status == model.StatusCancelled && t.CancellationReason == "" {
			violations = append(violations, Violation{"cancellation-reason", t.ID, "cancelled task requires a cancellationReason"})
		}
	}
	return violations
}

// checkPositions enforces the contiguous 1..N per-parent-scope invariant.
func checkPositions(tasks []*model.Task) []Violation {
	var violations []Violation
	byParent := map[string][]*model.Task{}
	for _, t := range tasks {
		key := ""
		if t.ParentID != nil {
			key = *t.ParentID
		}
		byParent[key] = append(byParent[key], t)
	}
	for parent, siblings := range byParent {
		seen := map[int]bool{}
		for _, t := range siblings {
			if seen[t.Position] {
				violations = append(violations, Violation{"position", t.ID, fmt.Sprintf("duplicate position %d under parent %q", t.Position, parent)})
			}
			seen[t.Position] = true
		}
		for i := 1; i <= len(siblings); i++ {
			if !seen[i] {
				violations = append(violations, Violation{"position", parent, fmt.Sprintf("gap at position %d under parent %q", i, parent)})
			}
		}
	}
	return violations
}
