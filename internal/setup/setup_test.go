package setup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/polyglot/internal/config"
	"github.com/crimson-sun/polyglot/internal/engine/classifier"
	"github.com/crimson-sun/polyglot/internal/engine/profile"
	"github.com/crimson-sun/polyglot/internal/model"
	"github.com/crimson-sun/polyglot/internal/samples"
)

// writeSampleCorpus copies the embedded corpus into dir as <code>.txt files.
func writeSampleCorpus(t *testing.T, dir string) {
	t.Helper()
	docs, err := samples.Corpus()
	require.NoError(t, err)
	for _, d := range docs {
		path := filepath.Join(dir, string(d.Language)+".txt")
		require.NoError(t, os.WriteFile(path, []byte(strings.Join(d.Lines, "\n")), 0o644))
	}
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Profiles.Dir = filepath.Join(dir, "profiles")
	cfg.Corpus.Dir = filepath.Join(dir, "data")
	cfg.Classifier.ModelPath = filepath.Join(dir, "models", "bayes.mp")
	require.NoError(t, os.MkdirAll(cfg.Corpus.Dir, 0o755))
	writeSampleCorpus(t, cfg.Corpus.Dir)
	return cfg
}

func TestSampleStore(t *testing.T) {
	store, err := SampleStore(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, []model.LanguageCode{"de", "en", "es", "fr", "it", "nl"}, store.Codes())

	p, err := store.Lookup("fr")
	require.NoError(t, err)
	assert.Len(t, p, 100)
}

func TestLoadStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	profiles := map[model.LanguageCode]model.Profile{
		"en": {"the": 0.6, "and": 0.4},
		"fr": {"les": 1},
	}
	require.NoError(t, profile.SaveDir(cfg.Profiles.Dir, profiles))

	store, err := LoadStore(ctx, cfg.Profiles)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())

	// The database wins when configured.
	cfg.Profiles.DB = filepath.Join(t.TempDir(), "profiles.db")
	require.NoError(t, profile.SaveSQLite(ctx, cfg.Profiles.DB, map[model.LanguageCode]model.Profile{"de": {"die": 1}}))
	store, err = LoadStore(ctx, cfg.Profiles)
	require.NoError(t, err)
	assert.Equal(t, []model.LanguageCode{"de"}, store.Codes())
}

func TestLoadStoreEmpty(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Profiles.Dir, 0o755))

	_, err := LoadStore(context.Background(), cfg.Profiles)
	assert.ErrorIs(t, err, profile.ErrNoReferenceProfiles)
}

func TestBayesAutoTrain(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	m, err := Bayes(ctx, cfg, false)
	require.NoError(t, err)
	assert.Len(t, m.Classes(), 6)
	_, err = os.Stat(cfg.Classifier.ModelPath)
	require.NoError(t, err, "trained model is saved")

	// Second call loads the saved model even with the corpus gone.
	require.NoError(t, os.RemoveAll(cfg.Corpus.Dir))
	loaded, err := Bayes(ctx, cfg, false)
	require.NoError(t, err)
	assert.Equal(t, m.Classes(), loaded.Classes())
}

func TestBayesMissingModel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Classifier.AutoTrain = false

	_, err := Bayes(context.Background(), cfg, false)
	assert.ErrorIs(t, err, classifier.ErrUnavailable)

	cfg.Classifier.AutoTrain = true
	cfg.Corpus.Dir = filepath.Join(t.TempDir(), "missing")
	_, err = Bayes(context.Background(), cfg, false)
	assert.ErrorIs(t, err, classifier.ErrUnavailable)
}

func TestClassifierKinds(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	store, err := SampleStore(ctx, profile.DefaultTopK)
	require.NoError(t, err)

	cfg.Classifier.Kind = config.KindLingua
	c, closer, err := Classifier(ctx, cfg, store, false)
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	res, err := c.Classify("das wetter ist heute sehr schön")
	require.NoError(t, err)
	assert.Equal(t, model.LanguageCode("de"), res.Predicted)

	cfg.Classifier.Kind = config.KindONNX
	cfg.ONNX.VocabPath = filepath.Join(t.TempDir(), "missing.txt")
	_, _, err = Classifier(ctx, cfg, store, false)
	assert.ErrorIs(t, err, classifier.ErrUnavailable)

	cfg.Classifier.Kind = "svm"
	_, _, err = Classifier(ctx, cfg, store, false)
	assert.ErrorIs(t, err, classifier.ErrUnavailable)
}

func TestEngineFromSamples(t *testing.T) {
	cfg := config.Default()
	eng, closer, err := Engine(context.Background(), cfg, Sources{Samples: true})
	require.NoError(t, err)
	defer closer.Close()

	d, err := eng.Detect("Ik wil graag een kopje koffie met melk en suiker.")
	require.NoError(t, err)
	assert.Equal(t, model.LanguageCode("nl"), d.Language)
	assert.Equal(t, model.Agreement, d.Rationale)
}

type fixedClassifier struct{}

func (fixedClassifier) Classify(string) (model.ClassifierResult, error) {
	return model.ClassifierResult{Predicted: "en", Distribution: map[model.LanguageCode]float64{"en": 1}}, nil
}

func TestEngineOverrides(t *testing.T) {
	store, err := profile.FromProfiles(map[model.LanguageCode]model.Profile{"en": {"the": 1}})
	require.NoError(t, err)

	eng, closer, err := Engine(context.Background(), config.Default(), Sources{Store: store, Classifier: fixedClassifier{}})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Same(t, store, eng.Store())

	d, err := eng.Detect("the")
	require.NoError(t, err)
	assert.Equal(t, model.LanguageCode("en"), d.Language)
	assert.InDelta(t, 1.0, d.Confidence, 1e-12)
}

func TestEngineNoProfiles(t *testing.T) {
	cfg := config.Default()
	cfg.Profiles.Dir = filepath.Join(t.TempDir(), "none")
	_, _, err := Engine(context.Background(), cfg, Sources{})
	assert.Error(t, err)
}
