package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/cleo-engine/cleo/internal/model"
)

// Input bundles what a protocol validator needs beyond the manifest entry
// itself: the optional diff text and changelog/version strings that only
// some stages check.
type Input struct {
	Entry       model.ManifestEntry
	Diff        string
	Strict      bool
	Version     string
	Changelog   string
	SiblingCap  int
	ChildCount  int
	Descriptions []string
}

// Validate runs the protocol validator for stage against in.
func Validate(stage Stage, in Input) Result {
	switch stage {
	case StageResearch:
		return validateResearch(in)
	case StageConsensus:
		return validateConsensus(in)
	case StageSpecification:
		return validateSpecification(in)
	case StageDecomposition:
		return validateDecomposition(in)
	case StageImplementation, StageTesting:
		return validateImplementation(in)
	case StageValidation:
		return validateImplementation(in)
	default:
		return validateRelease(in)
	}
}

func validateResearch(in Input) Result {
	r := Result{Valid: true}
	n := len(in.Entry.KeyFindings)
	if n < 3 || n > 7 {
		r.addViolation(LevelMust, "RSCH-001", "key_findings must have 3..7 entries, got %d", n)
	}
	if len(in.Entry.Topics) == 0 && in.Strict {
		r.addViolation(LevelShould, "RSCH-002", "no topics recorded for research entry %s", in.Entry.ID)
	}
	if strings.TrimSpace(in.Diff) != "" {
		r.addViolation(LevelMust, "RSCH-003", "research stage must not carry code changes")
	}
	r.Score = score(r.Violations)
	return r
}

func validateConsensus(in Input) Result {
	r := Result{Valid: true}
	votingMatrixSize := 0
	for _, f := range in.Entry.KeyFindings {
		if strings.Contains(strings.ToLower(f), "option") {
			votingMatrixSize++
		}
	}
	if votingMatrixSize < 2 {
		r.addViolation(LevelMust, "CONS-001", "voting matrix must offer at least 2 options")
	}
	r.Score = score(r.Violations)
	return r
}

// rfc2119Keywords are the normative keywords a specification entry must use
// at least one of.
var rfc2119Keywords = []string{"MUST", "MUST NOT", "SHOULD", "SHOULD NOT", "MAY", "REQUIRED", "SHALL"}

func validateSpecification(in Input) Result {
	r := Result{Valid: true}
	hasKeyword := false
	for _, kw := range rfc2119Keywords {
		if strings.Contains(in.Entry.Title, kw) || containsAny(in.Entry.KeyFindings, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		r.addViolation(LevelMust, "SPEC-001", "specification must use an RFC 2119 keyword")
	}
	if in.Version == "" {
		r.addViolation(LevelMust, "SPEC-003", "specification must declare a version")
	}
	r.Score = score(r.Violations)
	return r
}

func containsAny(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}

func validateDecomposition(in Input) Result {
	r := Result{Valid: true}
	if in.SiblingCap > 0 && in.ChildCount > in.SiblingCap {
		r.addViolation(LevelMust, "DCMP-001", "decomposition produced %d children, cap is %d", in.ChildCount, in.SiblingCap)
	}
	for i, d := range in.Descriptions {
		if strings.TrimSpace(d) == "" {
			r.addViolation(LevelShould, "DCMP-002", "child %d has no description", i)
		}
	}
	r.Score = score(r.Violations)
	return r
}

// provenanceTag matches a comment like "// task:T042" marking which task a
// new function was written to satisfy.
var provenanceTag = regexp.MustCompile(`task:[A-Za-z0-9_-]+`)

func validateImplementation(in Input) Result {
	r := Result{Valid: true}
	if in.Diff != "" && strings.Contains(in.Diff, "func ") && !provenanceTag.MatchString(in.Diff) {
		r.addViolation(LevelMust, "IMPL-001", "new functions must carry a task provenance tag")
	}
	r.Score = score(r.Violations)
	return r
}

func validateRelease(in Input) Result {
	r := Result{Valid: true}
	if !semver.IsValid(in.Version) {
		r.addViolation(LevelMust, "RLSE-001", "release version %q is not valid semver", in.Version)
	}
	if strings.TrimSpace(in.Changelog) == "" {
		r.addViolation(LevelMust, "RLSE-002", "release must include a changelog entry")
	}
	r.Score = score(r.Violations)
	return r
}
