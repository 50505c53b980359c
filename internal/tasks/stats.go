package tasks

import (
	"time"

	"github.com/cleo-engine/cleo/internal/model"
)

// ArchiveStatsOptions filters and groups an ArchiveStats query.
type ArchiveStatsOptions struct {
	Since   time.Time
	Until   time.Time
	GroupBy string // "", "phase", "label", "priority"
}

// GroupStat aggregates one bucket of an ArchiveStats grouping.
type GroupStat struct {
	Count             int     `json:"count"`
	MeanCycleTimeDays float64 `json:"meanCycleTimeDays"`
}

// ArchiveStatsResult summarises the archive, optionally bucketed by
// opts.GroupBy, mirroring the project's live-task stats command but over
// terminal work.
type ArchiveStatsResult struct {
	TotalArchived     int                  `json:"totalArchived"`
	ByStatus          map[string]int       `json:"byStatus"`
	BySource          map[string]int       `json:"bySource"`
	MeanCycleTimeDays float64              `json:"meanCycleTimeDays"`
	Groups            map[string]GroupStat `json:"groups,omitempty"`
}

// ArchiveStats summarises the archive within [opts.Since, opts.Until]
// (zero values meaning unbounded), optionally grouping by phase, label, or
// priority.
func (s *Service) ArchiveStats(opts ArchiveStatsOptions) (*ArchiveStatsResult, error) {
	af, err := s.loadArchive()
	if err != nil {
		return nil, err
	}

	result := &ArchiveStatsResult{ByStatus: map[string]int{}, BySource: map[string]int{}}
	var cycleSum float64
	groupSum := map[string]float64{}
	groupCount := map[string]int{}

	for _, e := range af.ArchivedTasks {
		if !opts.Since.IsZero() && e.Archive.ArchivedAt.Before(opts.Since) {
			continue
		}
		if !opts.Until.IsZero() && e.Archive.ArchivedAt.After(opts.Until) {
			continue
		}
		result.TotalArchived++
		result.ByStatus[string(e.Task.Status)]++
		result.BySource[string(e.Archive.ArchiveSource)]++
		cycleSum += e.Archive.CycleTimeDays

		for _, key := range groupKeys(opts.GroupBy, &e.Task) {
			groupSum[key] += e.Archive.CycleTimeDays
			groupCount[key]++
		}
	}

	if result.TotalArchived > 0 {
		result.MeanCycleTimeDays = cycleSum / float64(result.TotalArchived)
	}
	if opts.GroupBy != "" {
		result.Groups = make(map[string]GroupStat, len(groupCount))
		for key, count := range groupCount {
			result.Groups[key] = GroupStat{Count: count, MeanCycleTimeDays: groupSum[key] / float64(count)}
		}
	}
	return result, nil
}

func groupKeys(groupBy string, t *model.Task) []string {
	switch groupBy {
	case "phase":
		if t.Phase == "" {
			return []string{"(none)"}
		}
		return []string{t.Phase}
	case "label":
		if len(t.Labels) == 0 {
			return []string{"(none)"}
		}
		return t.Labels
	case "priority":
		return []string{string(t.Priority)}
	default:
		return nil
	}
}
