package output

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Verbosity controls how much of a record is retained.
type Verbosity int

const (
	Minimal  Verbosity = iota // language, confidence, rationale only
	Standard                  // input truncated, sub-results kept
	Full                      // retain everything
)

// maxInputBytes bounds the input echoed at Standard verbosity.
const maxInputBytes = 2000

// ParseVerbosity maps "minimal", "standard" and "full" (case-insensitive).
// An empty string is Standard.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimal":
		return Minimal, nil
	case "", "standard":
		return Standard, nil
	case "full":
		return Full, nil
	default:
		return Standard, fmt.Errorf("output: unknown verbosity %q", s)
	}
}

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	case Full:
		return "full"
	default:
		return "standard"
	}
}

// Format returns a copy of the record with fields stripped according to
// verbosity. At Minimal the input and sub-results are dropped (omitted
// from JSON via omitempty).
func Format(r Record, v Verbosity) Record {
	switch v {
	case Minimal:
		r.Input = ""
		r.Cosine = nil
		r.Classifier = nil
		r.TopCosine = nil
	case Standard:
		r.Input = truncate(r.Input, maxInputBytes)
	}
	return r
}

// truncate cuts s to at most maxLen bytes on a rune boundary and marks the
// cut with "...".
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
