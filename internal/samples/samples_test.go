package samples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/polyglot/internal/model"
)

func TestCorpus(t *testing.T) {
	docs, err := Corpus()
	require.NoError(t, err)

	var codes []model.LanguageCode
	for _, d := range docs {
		codes = append(codes, d.Language)
		assert.GreaterOrEqual(t, len(d.Lines), 10, "corpus %s is too small", d.Language)
	}
	assert.Equal(t, []model.LanguageCode{"de", "en", "es", "fr", "it", "nl"}, codes)
}

func TestCases(t *testing.T) {
	cases, err := Cases()
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	docs, err := Corpus()
	require.NoError(t, err)
	known := make(map[model.LanguageCode]bool)
	for _, d := range docs {
		known[d.Language] = true
	}

	// Every expected language must be covered by the corpus.
	for i, c := range cases {
		assert.NotEmpty(t, c.Text, "case[%d] has empty text", i)
		assert.True(t, known[c.Expected], "case[%d] expects %q which has no corpus", i, c.Expected)
	}
}

func TestParseCasesInvalid(t *testing.T) {
	_, err := ParseCases([]byte("not json"))
	assert.Error(t, err)
}
