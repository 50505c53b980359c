package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cleo-engine/cleo/internal/model"
)

func TestDetectConflictsFindsDisagreement(t *testing.T) {
	contributions := []model.Contribution{
		{SessionID: "s1", Decisions: []model.ContributionDecision{
			{QuestionID: "q1", Answer: "postgres", Confidence: 0.9},
		}},
		{SessionID: "s2", Decisions: []model.ContributionDecision{
			{QuestionID: "q1", Answer: "mysql", Confidence: 0.8},
		}},
	}
	conflicts := DetectConflicts(contributions)
	require.Len(t, conflicts, 1)
	require.Equal(t, "q1", conflicts[0].QuestionID)
}

func TestDetectConflictsIgnoresAgreement(t *testing.T) {
	contributions := []model.Contribution{
		{SessionID: "s1", Decisions: []model.ContributionDecision{
			{QuestionID: "q1", Answer: "Postgres", Confidence: 0.9},
		}},
		{SessionID: "s2", Decisions: []model.ContributionDecision{
			{QuestionID: "q1", Answer: "postgres", Confidence: 0.7},
		}},
	}
	require.Empty(t, DetectConflicts(contributions))
}

func TestVoteMajority(t *testing.T) {
	contributions := []model.Contribution{
		{SessionID: "s1", Decisions: []model.ContributionDecision{{QuestionID: "q1", Answer: "a", Confidence: 0.9}}},
		{SessionID: "s2", Decisions: []model.ContributionDecision{{QuestionID: "q1", Answer: "a", Confidence: 0.8}}},
		{SessionID: "s3", Decisions: []model.ContributionDecision{{QuestionID: "q1", Answer: "b", Confidence: 0.5}}},
	}
	vote := Vote(contributions, "q1")
	require.Equal(t, "a", vote.Winner)
	require.Equal(t, model.VoteMajority, vote.Outcome)
}

func TestSynthesizeFlagsHITLOnSplitVote(t *testing.T) {
	contributions := []model.Contribution{
		{SessionID: "s1", Decisions: []model.ContributionDecision{{QuestionID: "q1", Answer: "a", Confidence: 0.9}}},
		{SessionID: "s2", Decisions: []model.ContributionDecision{{QuestionID: "q1", Answer: "b", Confidence: 0.9}}},
	}
	syn := Synthesize(contributions)
	require.True(t, syn.HITLRequired)
	require.Len(t, syn.Unresolved, 1)
	require.Len(t, syn.Conflicts, 1)
	require.Equal(t, model.SeverityCritical, syn.Conflicts[0].Severity)
}
