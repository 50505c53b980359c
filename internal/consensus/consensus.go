// Package consensus reconciles independent sessions' answers to the same
// set of questions: pairwise conflict detection, confidence-weighted
// voting, and synthesis into a resolved/unresolved/HITL verdict.
package consensus

import (
	"sort"
	"strings"

	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
)

// ValidateContribution enforces the contribution protocol's MUST rules: at
// least one decision, each confidence in [0,1], and a non-empty answer.
// Returns the CONT-001 sentinel (exit 65) on the first violation found.
func ValidateContribution(c model.Contribution) error {
	if len(c.Decisions) == 0 {
		code, _ := cerr.ProtocolError("contribution")
		return code.New("contribution from %s carries no decisions", c.SessionID)
	}
	for _, d := range c.Decisions {
		if strings.TrimSpace(d.Answer) == "" {
			code, _ := cerr.ProtocolError("contribution")
			return code.New("decision for question %s has an empty answer", d.QuestionID)
		}
		if d.Confidence < 0 || d.Confidence > 1 {
			code, _ := cerr.ProtocolError("contribution")
			return code.New("decision for question %s has confidence %.2f outside [0,1]", d.QuestionID, d.Confidence)
		}
	}
	return nil
}

// DetectConflicts compares every pair of contributions, question by
// question, and reports a Conflict wherever two sessions gave materially
// different answers to the same question.
func DetectConflicts(contributions []model.Contribution) []model.Conflict {
	byQuestion := make(map[string][]struct {
		sessionID  string
		answer     string
		confidence float64
	})
	for _, c := range contributions {
		for _, d := range c.Decisions {
			byQuestion[d.QuestionID] = append(byQuestion[d.QuestionID], struct {
				sessionID  string
				answer     string
				confidence float64
			}{c.SessionID, d.Answer, d.Confidence})
		}
	}

	var conflicts []model.Conflict
	for questionID, answers := range byQuestion {
		for i := 0; i < len(answers); i++ {
			for j := i + 1; j < len(answers); j++ {
				a, b := answers[i], answers[j]
				if normalize(a.answer) == normalize(b.answer) {
					continue
				}
				conflicts = append(conflicts, model.Conflict{
					QuestionID: questionID,
					SessionA:   a.sessionID,
					SessionB:   b.sessionID,
					AnswerA:    a.answer,
					AnswerB:    b.answer,
					Type:       conflictType(a.answer, b.answer),
					Severity:   severity(a.confidence, b.confidence),
				})
			}
		}
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].QuestionID != conflicts[j].QuestionID {
			return conflicts[i].QuestionID < conflicts[j].QuestionID
		}
		return conflicts[i].SessionA < conflicts[j].SessionA
	})
	return conflicts
}

// conflictType reports partial-overlap when one answer string contains the
// other (case-insensitive), contradiction otherwise.
func conflictType(a, b string) model.ConflictType {
	na, nb := normalize(a), normalize(b)
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return model.ConflictPartialOverlap
	}
	return model.ConflictContradiction
}

// severity keys off the weaker of the two confidences: both sessions must
// clear a threshold for the disagreement to count at that level.
func severity(confA, confB float64) model.ConflictSeverity {
	min := confA
	if confB < min {
		min = confB
	}
	switch {
	case min >= 0.8:
		return model.SeverityCritical
	case min >= 0.6:
		return model.SeverityHigh
	case min >= 0.5:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}

// Vote tallies every contribution's answer to questionID, weighted by each
// answer's self-reported confidence, and reports the winning normalized
// answer and whether the result was unanimous, a majority, or a split.
func Vote(contributions []model.Contribution, questionID string) model.QuestionVote {
	groups := make(map[string]float64)
	var total float64
	distinctAnswers := 0
	for _, c := range contributions {
		for _, d := range c.Decisions {
			if d.QuestionID != questionID {
				continue
			}
			key := normalize(d.Answer)
			if groups[key] == 0 {
				distinctAnswers++
			}
			weight := d.Confidence
			if weight <= 0 {
				weight = 1
			}
			groups[key] += weight
			total += weight
		}
	}

	winner := ""
	best := -1.0
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if groups[k] > best {
			best = groups[k]
			winner = k
		}
	}

	outcome := model.VoteSplit
	switch {
	case distinctAnswers <= 1:
		outcome = model.VoteUnanimous
	case total > 0 && best/total > 0.5:
		outcome = model.VoteMajority
	}

	return model.QuestionVote{
		QuestionID: questionID,
		Groups:     groups,
		Winner:     winner,
		Outcome:    outcome,
		TotalVotes: total,
	}
}

// Synthesize runs DetectConflicts and Vote over every question present in
// contributions, splitting questions into resolved (majority or unanimous)
// and unresolved (split), and flags HITLRequired whenever any question's
// vote came back split.
func Synthesize(contributions []model.Contribution) model.Synthesis {
	questionIDs := make(map[string]bool)
	for _, c := range contributions {
		for _, d := range c.Decisions {
			questionIDs[d.QuestionID] = true
		}
	}
	ids := make([]string, 0, len(questionIDs))
	for id := range questionIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	syn := model.Synthesis{Conflicts: DetectConflicts(contributions)}
	for _, id := range ids {
		vote := Vote(contributions, id)
		if vote.Outcome == model.VoteSplit {
			syn.Unresolved = append(syn.Unresolved, vote)
			syn.HITLRequired = true
		} else {
			syn.Resolved = append(syn.Resolved, vote)
		}
	}
	return syn
}
