// Package trigram turns normalized text into relative-frequency profiles of
// overlapping three-character windows.
package trigram

import (
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/polyglot/internal/engine/normalize"
	"github.com/crimson-sun/polyglot/internal/model"
)

// Size is the window length in code points.
const Size = 3

// Windows returns every overlapping Size-rune window of s, each NFC
// normalized. Whitespace is not removed; callers decide how to treat it.
func Windows(s string) []string {
	r := []rune(s)
	if len(r) < Size {
		return nil
	}
	out := make([]string, 0, len(r)-Size+1)
	for i := 0; i+Size <= len(r); i++ {
		out = append(out, norm.NFC.String(string(r[i:i+Size])))
	}
	return out
}

// Extract removes all whitespace from normalized text and returns its
// trigrams in order of appearance.
func Extract(normalized string) []string {
	return Windows(normalize.StripSpace(normalized))
}

// Profile builds the relative-frequency profile of normalized text. It is
// used for per-query input and never truncates.
func Profile(normalized string) model.Profile {
	return Build(normalized, 0)
}

// Build builds a profile and, when topK > 0, keeps only the topK most
// frequent trigrams. Ties keep first-encountered order. Kept frequencies are
// renormalized so the profile still sums to 1. Input without trigrams
// yields an empty profile.
func Build(normalized string, topK int) model.Profile {
	grams := Extract(normalized)
	if len(grams) == 0 {
		return model.Profile{}
	}

	counts := make(map[string]int, len(grams))
	var order []string
	for _, g := range grams {
		if counts[g] == 0 {
			order = append(order, g)
		}
		counts[g]++
	}

	total := len(grams)
	if topK > 0 && topK < len(order) {
		sort.SliceStable(order, func(i, j int) bool {
			return counts[order[i]] > counts[order[j]]
		})
		order = order[:topK]
		total = 0
		for _, g := range order {
			total += counts[g]
		}
	}

	p := make(model.Profile, len(order))
	for _, g := range order {
		p[g] = float64(counts[g]) / float64(total)
	}
	return p
}
