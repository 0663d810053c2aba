package trigram

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/polyglot/internal/engine/normalize"
)

func TestProfileHelloWorld(t *testing.T) {
	p := Profile("hello world")

	want := []string{"hel", "ell", "llo", "low", "owo", "wor", "orl", "rld"}
	require.Len(t, p, len(want))
	for _, g := range want {
		assert.InDelta(t, 1.0/8, p[g], 1e-12, "trigram %q", g)
	}
}

func TestExtractOrder(t *testing.T) {
	assert.Equal(t, []string{"abc", "bcd"}, Extract("ab cd"))
	assert.Equal(t, []string{"abc", "bca", "cab", "abc"}, Extract("abcabc"))
}

func TestProfileShortInput(t *testing.T) {
	for _, in := range []string{"", "a", "ab", "a b", "   "} {
		p := Profile(in)
		assert.Empty(t, p, "input %q", in)
		assert.NotNil(t, p)
	}
}

func TestProfileCountsRepeats(t *testing.T) {
	p := Profile("aaaa")
	require.Len(t, p, 1)
	assert.InDelta(t, 1.0, p["aaa"], 1e-12)
}

func TestProfileSumsToOne(t *testing.T) {
	inputs := []string{
		"hello world",
		"the quick brown fox jumps over the lazy dog",
		"東京は日本の首都です",
		"привет мир как дела",
		"नमस्ते दुनिया",
		strings.Repeat("abc ", 200),
	}
	for _, in := range inputs {
		p := Profile(normalize.Text(in))
		require.NotEmpty(t, p, "input %q", in)
		assert.InDelta(t, 1.0, p.Sum(), 1e-9, "input %q", in)
		for k, v := range p {
			assert.Greater(t, v, 0.0, "key %q", k)
		}
	}
}

func TestWindowsAreCodePoints(t *testing.T) {
	grams := Windows("\u00e7\u00fc\u00e9")
	require.Len(t, grams, 1)
	assert.Equal(t, "\u00e7\u00fc\u00e9", grams[0])

	// Multi-byte runes never split mid-sequence.
	for _, g := range Extract("日本語のテキスト") {
		assert.Equal(t, 3, len([]rune(g)))
	}
}

func TestWindowsNFC(t *testing.T) {
	// A window holding a base letter and its combining mark composes.
	grams := Windows("xe\u0301")
	require.Len(t, grams, 1)
	assert.Equal(t, "x\u00e9", grams[0])

	composed := Profile("caf\u00e9s")
	assert.Contains(t, composed, "af\u00e9")
}

func TestBuildTopK(t *testing.T) {
	// Windows: abc bca cab abc bca cab abx.
	text := "abcabcabx"
	full := Build(text, 0)
	require.Len(t, full, 4)

	top := Build(text, 2)
	require.Len(t, top, 2)
	// abc (2) first-encountered before bca (2) and cab (2).
	assert.Contains(t, top, "abc")
	assert.Contains(t, top, "bca")
	assert.InDelta(t, 1.0, top.Sum(), 1e-12)
	assert.InDelta(t, 0.5, top["abc"], 1e-12)
}

func TestBuildTopKLargerThanProfile(t *testing.T) {
	full := Build("hello world", 0)
	top := Build("hello world", 100)
	assert.Equal(t, full, top)
}

func TestBuildTopKPrefersFrequent(t *testing.T) {
	top := Build("xyzqqqqqq", 1)
	require.Len(t, top, 1)
	assert.InDelta(t, 1.0, top["qqq"], 1e-12)
	assert.False(t, math.IsNaN(top["qqq"]))
}
