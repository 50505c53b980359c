// Package validate implements field and cross-entity validators: pure
// functions from a candidate value to either a normalised value or a list of
// violations. No validator here mutates state; every mutation operates on a
// candidate copy built by the caller and only commits once a validator
// reports no violations.
package validate

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/cleo-engine/cleo/internal/cerr"
	"github.com/cleo-engine/cleo/internal/model"
)

var taskIDPattern = regexp.MustCompile(`^T[0-9]{3,}$`)
var labelPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,31}$`)

// graphemeLen counts user-perceived characters; a plain rune count would
// miscount combining marks and multi-codepoint emoji.
func graphemeLen(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// ValidateTitle normalises title to NFC and checks its 1..120 grapheme
// length bound.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	normalised := norm.NFC.String(trimmed)
	n := graphemeLen(normalised)
	if n < 1 {
		return "", cerr.ErrInputInvalid.New("title must not be empty")
	}
	if n > 120 {
		return "", cerr.ErrInputInvalid.New("title must be at most 120 graphemes, got %d", n)
	}
	return normalised, nil
}

// ValidateDescription checks the 0..4KiB bound; callers enforce the
// "required when blocked" rule separately since it is a cross-field check.
func ValidateDescription(desc string) (string, error) {
	if len(desc) > 4*1024 {
		return "", cerr.ErrInputInvalid.New("description must be at most 4KiB, got %d bytes", len(desc))
	}
	return desc, nil
}

// ValidateCancellationReason checks the 5..300 grapheme, printable bound.
func ValidateCancellationReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	n := graphemeLen(trimmed)
	if n < 5 {
		return "", cerr.ErrInputInvalid.New("cancellation reason must be at least 5 graphemes, got %d", n)
	}
	if n > 300 {
		return "", cerr.ErrInputInvalid.New("cancellation reason must be at most 300 graphemes, got %d", n)
	}
	for _, r := range trimmed {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return "", cerr.ErrInputInvalid.New("cancellation reason must be printable")
		}
	}
	return trimmed, nil
}

// ValidateID checks the `^T[0-9]{3,}$` id format.
func ValidateID(id string) error {
	if !taskIDPattern.MatchString(id) {
		return cerr.ErrInputInvalid.New("invalid task id %q, expected pattern T[0-9]{3,}", id)
	}
	return nil
}

// ValidateLabel checks one label against `^[a-z0-9][a-z0-9-]{0,31}$`.
func ValidateLabel(label string) error {
	if !labelPattern.MatchString(label) {
		return cerr.ErrInputInvalid.New("invalid label %q, expected lowercase kebab-case", label)
	}
	return nil
}

// NormalizeLabels validates and deduplicates a label list, preserving
// first-seen order so that `add` with labels `[a,b,a,c]` and `[b,a,c]`
// produce the same stored set only up to membership, not order. Callers that
// need to compare label sets for equality should use a set comparison, not
// slice equality.
func NormalizeLabels(labels []string) ([]string, error) {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		if err := ValidateLabel(l); err != nil {
			return nil, err
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, nil
}

// ValidatePriority checks enum membership, defaulting to medium on empty
// input.
func ValidatePriority(p string) (model.Priority, error) {
	if p == "" {
		return model.PriorityMedium, nil
	}
	switch model.Priority(p) {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh, model.PriorityCritical:
		return model.Priority(p), nil
	default:
		return "", cerr.ErrInputInvalid.New("invalid priority %q", p)
	}
}

// ValidateStatus checks enum membership against the five task statuses.
func ValidateStatus(s string) (model.Status, error) {
	switch model.Status(s) {
	case model.StatusPending, model.StatusActive, model.StatusBlocked, model.StatusDone, model.StatusCancelled:
		return model.Status(s), nil
	default:
		return "", cerr.ErrInputInvalid.New("invalid status %q", s)
	}
}

// ValidateType checks enum membership against epic/task/subtask.
func ValidateType(t string) (model.Type, error) {
	if t == "" {
		return model.TypeTask, nil
	}
	switch model.Type(t) {
	case model.TypeEpic, model.TypeTask, model.TypeSubtask:
		return model.Type(t), nil
	default:
		return "", cerr.ErrInputInvalid.New("invalid type %q", t)
	}
}

// ValidateSize checks enum membership, allowing the empty "unset" value.
func ValidateSize(s string) (model.Size, error) {
	if s == "" {
		return "", nil
	}
	switch model.Size(s) {
	case model.SizeSmall, model.SizeMedium, model.SizeLarge:
		return model.Size(s), nil
	default:
		return "", cerr.ErrInputInvalid.New("invalid size %q", s)
	}
}

// ValidateRelationType checks enum membership against the five relation
// kinds.
func ValidateRelationType(s string) (model.RelationType, error) {
	switch model.RelationType(s) {
	case model.RelationRelatesTo, model.RelationSpawnedFrom, model.RelationDeferredTo,
		model.RelationSupersedes, model.RelationDuplicates:
		return model.RelationType(s), nil
	default:
		return "", cerr.ErrInputInvalid.New("invalid relation type %q", s)
	}
}
