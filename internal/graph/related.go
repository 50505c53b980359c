package graph

import (
	"sort"
	"strings"

	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/utils"
)

// RelatedScore pairs a candidate task with its relatedness score to a
// subject task, in [0, 1+].
type RelatedScore struct {
	Task  *model.Task
	Score float64
}

// relatedWeights controls how much each signal contributes to Related's
// score. Hierarchy proximity is weighted highest since siblings and
// parent/child pairs are almost always relevant; label overlap next; phase
// match and title similarity are tie-breakers.
const (
	weightHierarchy = 0.5
	weightLabels    = 0.3
	weightPhase     = 0.1
	weightTitle     = 0.1
)

// Related ranks every other live task by similarity to subject: shared
// labels (Jaccard), same phase, hierarchy proximity (siblings and
// parent/child score higher than distant cousins), and fuzzy title overlap.
// Returns the top limit scores in descending order; ties break by id.
func (idx *Index) Related(subjectID string, limit int) []RelatedScore {
	subject := idx.Get(subjectID)
	if subject == nil {
		return nil
	}
	subjectLabels := toSet(subject.Labels)

	var scored []RelatedScore
	for id, t := range idx.byID {
		if id == subjectID {
			continue
		}
		score := 0.0
		score += weightLabels * jaccard(subjectLabels, toSet(t.Labels))
		if subject.Phase != "" && t.Phase == subject.Phase {
			score += weightPhase
		}
		score += weightHierarchy * hierarchyScore(idx, subjectID, id)
		if utils.FuzzyMatch(strings.ToLower(t.Title), strings.ToLower(subject.Title)) {
			score += weightTitle
		}
		if score > 0 {
			scored = append(scored, RelatedScore{Task: t, Score: score})
		}
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Task.ID < scored[j].Task.ID
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// hierarchyScore scores 1.0 for parent/child, 0.75 for siblings, decaying by
// tree distance otherwise; 0 for different trees.
func hierarchyScore(idx *Index, a, b string) float64 {
	ta, tb := idx.Get(a), idx.Get(b)
	if ta == nil || tb == nil {
		return 0
	}
	if ta.ParentID != nil && *ta.ParentID == b {
		return 1.0
	}
	if tb.ParentID != nil && *tb.ParentID == a {
		return 1.0
	}
	if ta.ParentID != nil && tb.ParentID != nil && *ta.ParentID == *tb.ParentID {
		return 0.75
	}
	dist := idx.TreeDistance(a, b)
	if dist < 0 {
		return 0
	}
	if dist == 0 {
		return 1.0
	}
	return 1.0 / float64(dist+1)
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, i := range items {
		m[i] = true
	}
	return m
}

// jaccard computes |a ∩ b| / |a ∪ b|, returning 0 when both sets are empty.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
