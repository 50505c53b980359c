package sessions

import "github.com/cleo-engine/cleo/internal/model"

// DriftReport summarizes whether a session's recent activity has wandered
// away from its declared focus.
type DriftReport struct {
	Drifted       bool
	FocusTaskID   string
	RecentTaskIDs []string
	OffFocusRatio float64
}

// minDriftSamples is the fewest focus-bearing touches required before drift
// is reported; below this, a single off-focus edit would be a false alarm.
const minDriftSamples = 3

// driftThreshold is the fraction of recent touches that must miss the
// declared focus before a session is flagged as drifted.
const driftThreshold = 0.5

// DetectDrift inspects the last lookback audit entries belonging to session
// and reports whether at least half of that window's touches were on tasks
// other than its declared focus. A session with no focus claimed
// never drifts.
func DetectDrift(session *model.Session, entries []model.LogEntry, lookback int) DriftReport {
	report := DriftReport{}
	if session.Focus == nil || *session.Focus == "" {
		return report
	}
	report.FocusTaskID = *session.Focus

	var touches []string
	for _, e := range entries {
		if e.SessionID != session.ID || e.TaskID == "" {
			continue
		}
		touches = append(touches, e.TaskID)
	}
	if len(touches) > lookback {
		touches = touches[len(touches)-lookback:]
	}
	report.RecentTaskIDs = touches

	if len(touches) < minDriftSamples {
		return report
	}
	offFocus := 0
	for _, id := range touches {
		if id != report.FocusTaskID {
			offFocus++
		}
	}
	report.OffFocusRatio = float64(offFocus) / float64(len(touches))
	report.Drifted = report.OffFocusRatio >= driftThreshold
	return report
}
