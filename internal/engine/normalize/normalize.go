// Package normalize prepares raw text for trigram profiling.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// keep reports whether r survives normalization. Letters, combining marks,
// digits and whitespace are kept; punctuation, symbols and control
// characters are dropped.
func keep(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r) || unicode.IsSpace(r)
}

// newChain builds the transformer. cases.Caser is stateful, so each call
// gets its own chain.
func newChain() transform.Transformer {
	return transform.Chain(
		norm.NFC,
		runes.Remove(runes.Predicate(func(r rune) bool { return !keep(r) })),
		cases.Lower(language.Und),
		norm.NFC,
	)
}

// Text strips punctuation and symbols, lowercases with Unicode rules,
// applies NFC and trims surrounding whitespace. It never fails; empty or
// punctuation-only input yields "".
func Text(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(newChain(), s)
	if err != nil {
		// Only reachable on invalid UTF-8; fall back to a rune-by-rune pass.
		out = fallback(s)
	}
	return strings.TrimSpace(out)
}

func fallback(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToValidUTF8(s, "") {
		if keep(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return norm.NFC.String(b.String())
}

// CollapseSpace replaces every run of whitespace with a single space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripSpace removes all whitespace.
func StripSpace(s string) string {
	if !strings.ContainsFunc(s, unicode.IsSpace) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
