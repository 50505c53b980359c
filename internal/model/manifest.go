package model

import "time"

// ManifestEntry is one line of the append-only research manifest JSONL,
// indexing a research document by id, title, status, topics, key findings,
// and the tasks it links to or that need follow-up.
type ManifestEntry struct {
	ID             string    `json:"id"`
	File           string    `json:"file"`
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	Status         string    `json:"status"`
	Topics         []string  `json:"topics,omitempty"`
	KeyFindings    []string  `json:"key_findings"`
	NeedsFollowup  []string  `json:"needs_followup,omitempty"`
	LinkedTasks    []string  `json:"linked_tasks,omitempty"`
}
