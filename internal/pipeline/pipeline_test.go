package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cleo-engine/cleo/internal/model"
)

func TestNextAdvancesThroughStages(t *testing.T) {
	next, ok := Next(StageResearch)
	require.True(t, ok)
	require.Equal(t, StageConsensus, next)

	_, ok = Next(StageRelease)
	require.False(t, ok)
}

func TestValidateResearchRejectsTooFewFindings(t *testing.T) {
	r := Validate(StageResearch, Input{Entry: model.ManifestEntry{
		ID:          "doc-1",
		KeyFindings: []string{"one finding only"},
	}})
	require.False(t, r.Valid)
	require.NotEmpty(t, r.Violations)
}

func TestValidateResearchAcceptsWellFormedEntry(t *testing.T) {
	r := Validate(StageResearch, Input{Entry: model.ManifestEntry{
		ID:          "doc-1",
		Topics:      []string{"auth"},
		KeyFindings: []string{"finding one", "finding two", "finding three"},
	}})
	require.True(t, r.Valid)
	require.Equal(t, 100, r.Score)
}

func TestValidateDecompositionEnforcesSiblingCap(t *testing.T) {
	r := Validate(StageDecomposition, Input{SiblingCap: 5, ChildCount: 7})
	require.False(t, r.Valid)
}

func TestValidateReleaseRequiresSemverAndChangelog(t *testing.T) {
	r := Validate(StageRelease, Input{Version: "not-a-version"})
	require.False(t, r.Valid)

	r = Validate(StageRelease, Input{Version: "v1.2.3", Changelog: "fixed the thing"})
	require.True(t, r.Valid)
}

func TestValidateImplementationRequiresProvenanceTag(t *testing.T) {
	r := Validate(StageImplementation, Input{Diff: "func doWork() {}"})
	require.False(t, r.Valid)

	r = Validate(StageImplementation, Input{Diff: "// task:T042\nfunc doWork() {}"})
	require.True(t, r.Valid)
}
