// Package setup wires configuration into a ready engine: it opens the
// reference profiles, then loads, trains or builds the configured
// classifier.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/crimson-sun/polyglot/internal/config"
	"github.com/crimson-sun/polyglot/internal/corpus"
	"github.com/crimson-sun/polyglot/internal/engine"
	"github.com/crimson-sun/polyglot/internal/engine/classifier"
	"github.com/crimson-sun/polyglot/internal/engine/classifier/bayes"
	"github.com/crimson-sun/polyglot/internal/engine/classifier/lingua"
	"github.com/crimson-sun/polyglot/internal/engine/classifier/onnx"
	"github.com/crimson-sun/polyglot/internal/engine/profile"
	"github.com/crimson-sun/polyglot/internal/samples"
)

// Sources overrides where reference data comes from.
type Sources struct {
	// Samples builds profiles and trains the bayes model from the embedded
	// sample corpus instead of the configured directories.
	Samples bool
	// Store, when set, is used instead of loading profiles.
	Store *profile.Store
	// Classifier, when set, is used instead of the configured kind.
	Classifier classifier.Classifier
}

// Engine builds an engine from cfg. The returned closer releases classifier
// resources and is never nil.
func Engine(ctx context.Context, cfg config.Config, src Sources) (*engine.Engine, io.Closer, error) {
	store := src.Store
	if store == nil {
		var err error
		if src.Samples {
			store, err = SampleStore(ctx, cfg.Profiles.TopK)
		} else {
			store, err = LoadStore(ctx, cfg.Profiles)
		}
		if err != nil {
			return nil, nil, err
		}
	}

	if src.Classifier != nil {
		return engine.New(store, src.Classifier), nopCloser{}, nil
	}
	cls, closer, err := Classifier(ctx, cfg, store, src.Samples)
	if err != nil {
		return nil, nil, err
	}
	return engine.New(store, cls), closer, nil
}

// LoadStore opens the reference profiles, preferring the SQLite database
// when one is configured.
func LoadStore(ctx context.Context, cfg config.ProfilesConfig) (*profile.Store, error) {
	var (
		store *profile.Store
		err   error
	)
	if cfg.DB != "" {
		store, err = profile.LoadSQLite(ctx, cfg.DB)
	} else {
		store, err = profile.LoadDir(cfg.Dir)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("profiles loaded", "languages", store.Len(), "rejected", len(store.Rejected()))
	return store, nil
}

// SampleStore builds reference profiles from the embedded sample corpus.
func SampleStore(ctx context.Context, topK int) (*profile.Store, error) {
	docs, err := samples.Corpus()
	if err != nil {
		return nil, err
	}
	profiles, err := profile.BuildAll(ctx, docs, topK, 0)
	if err != nil {
		return nil, err
	}
	return profile.FromProfiles(profiles)
}

// Classifier builds the configured classifier. lingua is restricted to the
// store's languages. Errors match classifier.ErrUnavailable.
func Classifier(ctx context.Context, cfg config.Config, store *profile.Store, fromSamples bool) (classifier.Classifier, io.Closer, error) {
	switch cfg.Classifier.Kind {
	case config.KindLingua:
		c, err := lingua.New(store.Codes()...)
		if err != nil {
			return nil, nil, err
		}
		return c, nopCloser{}, nil

	case config.KindONNX:
		c, err := onnx.New(onnx.Config{
			ModelPath:   cfg.ONNX.ModelPath,
			VocabPath:   cfg.ONNX.VocabPath,
			LabelsPath:  cfg.ONNX.LabelsPath,
			LibraryPath: cfg.ONNX.LibraryPath,
			OutputName:  cfg.ONNX.OutputName,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil

	case config.KindBayes, "":
		m, err := Bayes(ctx, cfg, fromSamples)
		if err != nil {
			return nil, nil, err
		}
		return m, nopCloser{}, nil

	default:
		return nil, nil, classifier.Unavailable(fmt.Sprintf("unknown classifier kind %q", cfg.Classifier.Kind), nil)
	}
}

// Bayes loads the model at cfg.Classifier.ModelPath. When the file does not
// exist and auto-training is on, a model is trained from the corpus and
// saved there. With fromSamples the model is trained in memory from the
// embedded corpus and nothing is read or written.
func Bayes(ctx context.Context, cfg config.Config, fromSamples bool) (*bayes.Model, error) {
	if fromSamples {
		docs, err := samples.Corpus()
		if err != nil {
			return nil, classifier.Unavailable("read sample corpus", err)
		}
		return trainDocs(docs, cfg)
	}

	path := cfg.Classifier.ModelPath
	if _, err := os.Stat(path); err == nil || !errors.Is(err, os.ErrNotExist) || !cfg.Classifier.AutoTrain {
		return bayes.Load(path)
	}

	slog.Info("bayes model not found, training from corpus", "model", path, "corpus", cfg.Corpus.Dir)
	m, err := Train(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := m.Save(path); err != nil {
		return nil, classifier.Unavailable("save trained model", err)
	}
	return m, nil
}

// Train trains a bayes model from the configured corpus directory.
func Train(ctx context.Context, cfg config.Config) (*bayes.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := corpus.ReadDir(cfg.Corpus.Dir)
	if err != nil {
		return nil, classifier.Unavailable("read training corpus", err)
	}
	return trainDocs(docs, cfg)
}

func trainDocs(docs []corpus.Document, cfg config.Config) (*bayes.Model, error) {
	m, err := bayes.Train(corpus.Samples(docs, cfg.Corpus.MinLineLength), cfg.Classifier.Alpha)
	if err != nil {
		return nil, classifier.Unavailable("train bayes", err)
	}
	return m, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
