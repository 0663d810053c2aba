package profile

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/polyglot/internal/model"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profiles.db")

	require.NoError(t, SaveSQLite(ctx, path, map[model.LanguageCode]model.Profile{
		"en": {"the": 0.7, "and": 0.3},
		"es": {"que": 1},
	}))

	// Saving again replaces a language's rows.
	require.NoError(t, SaveSQLite(ctx, path, map[model.LanguageCode]model.Profile{
		"en": {"ing": 1},
	}))

	s, err := LoadSQLite(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []model.LanguageCode{"en", "es"}, s.Codes())

	en, err := s.Lookup("en")
	require.NoError(t, err)
	assert.Equal(t, model.Profile{"ing": 1}, en)
}

func TestSQLiteMalformedLanguage(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "profiles.db")

	require.NoError(t, SaveSQLite(ctx, path, map[model.LanguageCode]model.Profile{
		"en": {"the": 1},
		"fr": {"les": 1},
	}))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO profiles (lang, trigram, freq) VALUES ('fr', 'des', 'lots')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := LoadSQLite(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []model.LanguageCode{"en"}, s.Codes())
	require.Len(t, s.Rejected(), 1)
	assert.Contains(t, s.Rejected()[0].Error(), "non-numeric")
}

func TestSQLiteEmpty(t *testing.T) {
	_, err := LoadSQLite(context.Background(), filepath.Join(t.TempDir(), "empty.db"))
	assert.ErrorIs(t, err, ErrNoReferenceProfiles)
}
