package dispatch

import "strings"

// maxFieldLength caps how long a single string parameter value may be
// before the sanitiser truncates it.
const maxFieldLength = 10000

// knownEnums lists the string parameters the sanitiser coerces to a closed
// vocabulary, case-insensitively, leaving unrecognized values untouched for
// the domain handler's own validation to reject.
var knownEnums = map[string][]string{
	"priority": {"low", "medium", "high", "critical"},
	"type":     {"epic", "task", "subtask"},
	"size":     {"small", "medium", "large"},
	"status":   {"pending", "active", "blocked", "done", "cancelled"},
}

// sanitize strips control characters from every string parameter, enforces
// the field-length cap, and coerces known enum fields to their canonical
// case.
func sanitize(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		s, ok := v.(string)
		if !ok {
			out[k] = v
			continue
		}
		s = stripControlChars(s)
		if len(s) > maxFieldLength {
			s = s[:maxFieldLength]
		}
		if options, ok := knownEnums[k]; ok {
			s = coerceEnum(s, options)
		}
		out[k] = s
	}
	return out
}

func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || r >= 0x20 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func coerceEnum(value string, options []string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	for _, opt := range options {
		if lower == opt {
			return opt
		}
	}
	return value
}
