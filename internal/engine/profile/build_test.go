package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/polyglot/internal/corpus"
	"github.com/crimson-sun/polyglot/internal/model"
)

func TestBuildAll(t *testing.T) {
	docs := corpus.FromLines(map[model.LanguageCode][]string{
		"en": {"The cat sat on the mat.", "The dog ate the bone."},
		"es": {"El gato está en la casa.", "El perro come."},
		"xx": {"!!", "?"},
	})

	profiles, err := BuildAll(context.Background(), docs, 5, 2)
	require.NoError(t, err)
	assert.Len(t, profiles, 2, "language without trigrams is skipped")

	for code, p := range profiles {
		assert.LessOrEqual(t, len(p), 5, code)
		assert.InDelta(t, 1.0, p.Sum(), 1e-9, code)
	}
	assert.Contains(t, profiles["en"], "the")

	s, err := FromProfiles(profiles)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestBuildAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := corpus.FromLines(map[model.LanguageCode][]string{"en": {"hello world"}})
	_, err := BuildAll(ctx, docs, 0, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
