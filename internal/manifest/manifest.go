// Package manifest indexes research documents in an append-only JSONL
// ledger, letting later sessions discover prior findings before repeating
// work.
package manifest

import (
	"time"

	"github.com/google/uuid"

	"github.com/cleo-engine/cleo/internal/model"
	"github.com/cleo-engine/cleo/internal/store"
)

// Index appends to and queries one project's research manifest.
type Index struct {
	path string
}

// New builds an Index targeting path (typically .cleo/agent-outputs/manifest.jsonl).
func New(path string) *Index {
	return &Index{path: path}
}

// Record appends entry, filling in an id if unset.
func (idx *Index) Record(entry model.ManifestEntry) (model.ManifestEntry, error) {
	if entry.ID == "" {
		entry.ID = "doc-" + uuid.NewString()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}
	if err := store.AppendLine(idx.path, entry, 0); err != nil {
		return model.ManifestEntry{}, err
	}
	return entry, nil
}

// All loads every entry in append order.
func (idx *Index) All() ([]model.ManifestEntry, error) {
	return store.ReadLines[model.ManifestEntry](idx.path)
}

// ByTopic returns every entry whose Topics includes topic.
func (idx *Index) ByTopic(topic string) ([]model.ManifestEntry, error) {
	entries, err := idx.All()
	if err != nil {
		return nil, err
	}
	var out []model.ManifestEntry
	for _, e := range entries {
		for _, t := range e.Topics {
			if t == topic {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

// ByID returns the entry with id, or false if none matches.
func (idx *Index) ByID(id string) (model.ManifestEntry, bool, error) {
	entries, err := idx.All()
	if err != nil {
		return model.ManifestEntry{}, false, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, true, nil
		}
	}
	return model.ManifestEntry{}, false, nil
}

// ByTask returns every entry that links to taskID.
func (idx *Index) ByTask(taskID string) ([]model.ManifestEntry, error) {
	entries, err := idx.All()
	if err != nil {
		return nil, err
	}
	var out []model.ManifestEntry
	for _, e := range entries {
		for _, t := range e.LinkedTasks {
			if t == taskID {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

// NeedingFollowup returns every entry that still lists open follow-up items.
func (idx *Index) NeedingFollowup() ([]model.ManifestEntry, error) {
	entries, err := idx.All()
	if err != nil {
		return nil, err
	}
	var out []model.ManifestEntry
	for _, e := range entries {
		if len(e.NeedsFollowup) > 0 {
			out = append(out, e)
		}
	}
	return out, nil
}
