// Package duplicate implements the add-time idempotency check: a second
// add for the same title and phase within a short window returns the
// existing task instead of creating a new one.
package duplicate

import (
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/cleo-engine/cleo/internal/model"
)

// DefaultWindow is used when config does not override duplicate.windowSeconds.
const DefaultWindow = 60 * time.Second

// Find returns the most recently created live task whose NFC-normalised
// title and phase match candidate, and whose createdAt is within window of
// now. Returns nil if there is no such task.
func Find(tasks []*model.Task, title, phase string, now time.Time, window time.Duration) *model.Task {
	normTitle := norm.NFC.String(title)
	var match *model.Task
	for _, t := range tasks {
		if t.Status == model.StatusCancelled {
			continue
		}
		if norm.NFC.String(t.Title) != normTitle || t.Phase != phase {
			continue
		}
		if now.Sub(t.CreatedAt) > window {
			continue
		}
		if match == nil || t.CreatedAt.After(match.CreatedAt) {
			match = t
		}
	}
	return match
}
