package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/polyglot/internal/model"
)

func TestNewEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoReferenceProfiles)

	_, err = New(map[model.LanguageCode]map[string]float64{})
	assert.ErrorIs(t, err, ErrNoReferenceProfiles)
}

func TestNewAllMalformed(t *testing.T) {
	_, err := New(map[model.LanguageCode]map[string]float64{
		"en": {"abc": -1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoReferenceProfiles)

	var mpe *MalformedProfileError
	assert.True(t, errors.As(err, &mpe))
}

func TestNewSkipsMalformed(t *testing.T) {
	s, err := New(map[model.LanguageCode]map[string]float64{
		"en": {"the": 0.5, "and": 0.5},
		"fr": {"les": math.NaN()},
		"de": {"der": -0.2, "die": 0.3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []model.LanguageCode{"en"}, s.Codes())
	assert.Len(t, s.Rejected(), 2)
	for _, err := range s.Rejected() {
		var mpe *MalformedProfileError
		require.True(t, errors.As(err, &mpe))
		assert.Contains(t, []model.LanguageCode{"fr", "de"}, mpe.Code)
	}
}

func TestLookup(t *testing.T) {
	s, err := New(map[model.LanguageCode]map[string]float64{
		"en": {"the": 1},
	})
	require.NoError(t, err)

	p, err := s.Lookup("en")
	require.NoError(t, err)
	assert.Equal(t, 1.0, p["the"])

	p, err = s.Lookup("xx")
	assert.Nil(t, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	var ule *UnknownLanguageError
	require.True(t, errors.As(err, &ule))
	assert.Equal(t, model.LanguageCode("xx"), ule.Code)
}

func TestEachOrder(t *testing.T) {
	s, err := New(map[model.LanguageCode]map[string]float64{
		"fr": {"les": 1},
		"de": {"der": 1},
		"en": {"the": 1},
	})
	require.NoError(t, err)

	var seen []model.LanguageCode
	s.Each(func(code model.LanguageCode, _ model.Profile) {
		seen = append(seen, code)
	})
	assert.Equal(t, []model.LanguageCode{"de", "en", "fr"}, seen)
}

func TestSanitize(t *testing.T) {
	t.Run("renormalizes keys", func(t *testing.T) {
		// Decomposed and precomposed forms of the same trigram.
		p, err := Sanitize("fr", map[string]float64{
			"afe\u0301": 0.25,
			"af\u00e9":  0.25,
			"zzz":       0.5,
		})
		require.NoError(t, err)
		assert.Len(t, p, 2)
		assert.InDelta(t, 0.5, p["af\u00e9"], 1e-12)
	})

	t.Run("drops zero", func(t *testing.T) {
		p, err := Sanitize("en", map[string]float64{"the": 1, "and": 0})
		require.NoError(t, err)
		assert.Len(t, p, 1)
	})

	tests := []struct {
		name    string
		entries map[string]float64
		reason  string
	}{
		{"negative", map[string]float64{"abc": -0.1}, "negative frequency"},
		{"nan", map[string]float64{"abc": math.NaN()}, "non-numeric frequency"},
		{"inf", map[string]float64{"abc": math.Inf(1)}, "non-numeric frequency"},
		{"empty key", map[string]float64{"": 0.1}, "empty trigram key"},
		{"all zero", map[string]float64{"abc": 0}, "no trigrams"},
		{"nil", nil, "no trigrams"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sanitize("xx", tt.entries)
			var mpe *MalformedProfileError
			require.True(t, errors.As(err, &mpe), "err = %v", err)
			assert.Equal(t, tt.reason, mpe.Reason)
			assert.Equal(t, model.LanguageCode("xx"), mpe.Code)
		})
	}
}
