package model

// ConflictSeverity ranks how badly two sessions' answers to the same
// question disagree.
type ConflictSeverity string

const (
	SeverityCritical ConflictSeverity = "critical"
	SeverityHigh     ConflictSeverity = "high"
	SeverityMedium   ConflictSeverity = "medium"
	SeverityLow      ConflictSeverity = "low"
)

// ConflictType names how two differing answers relate.
type ConflictType string

const (
	ConflictContradiction  ConflictType = "contradiction"
	ConflictPartialOverlap ConflictType = "partial-overlap"
)

// VoteOutcome is the result shape of a weighted vote over one question.
type VoteOutcome string

const (
	VoteUnanimous VoteOutcome = "unanimous"
	VoteMajority  VoteOutcome = "majority"
	VoteSplit     VoteOutcome = "split"
)

// ContributionDecision is one answer a session contributed to a question.
type ContributionDecision struct {
	QuestionID string     `json:"questionId"`
	Answer     string     `json:"answer"`
	Confidence float64    `json:"confidence"`
	Rationale  string     `json:"rationale,omitempty"`
	Evidence   []string   `json:"evidence,omitempty"`
}

// Contribution is a session's full set of answered questions for a
// consensus round.
type Contribution struct {
	SessionID string                  `json:"sessionId"`
	Decisions []ContributionDecision  `json:"decisions"`
}

// Conflict is a detected pairwise disagreement between two sessions'
// answers to the same question.
type Conflict struct {
	QuestionID string           `json:"questionId"`
	SessionA   string           `json:"sessionA"`
	SessionB   string           `json:"sessionB"`
	AnswerA    string           `json:"answerA"`
	AnswerB    string           `json:"answerB"`
	Severity   ConflictSeverity `json:"severity"`
	Type       ConflictType     `json:"type"`
}

// QuestionVote is the weighted-vote outcome for a single question.
type QuestionVote struct {
	QuestionID string             `json:"questionId"`
	Groups     map[string]float64 `json:"groups"` // normalised answer -> summed confidence
	Winner     string             `json:"winner"`
	Outcome    VoteOutcome        `json:"outcome"`
	TotalVotes float64            `json:"totalVotes"`
}

// Synthesis compiles resolved and unresolved decisions from a consensus
// round, flagging whether human-in-the-loop review is required.
type Synthesis struct {
	Resolved     []QuestionVote `json:"resolved"`
	Unresolved   []QuestionVote `json:"unresolved"`
	Conflicts    []Conflict     `json:"conflicts"`
	HITLRequired bool           `json:"hitlRequired"`
}
