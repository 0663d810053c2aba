package profile

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/crimson-sun/polyglot/internal/corpus"
	"github.com/crimson-sun/polyglot/internal/engine/trigram"
	"github.com/crimson-sun/polyglot/internal/model"
)

// DefaultTopK is the number of trigrams kept per reference profile.
const DefaultTopK = 300

// BuildAll builds one reference profile per document in parallel. jobs <= 0
// uses GOMAXPROCS. Documents that yield no trigrams are skipped.
func BuildAll(ctx context.Context, docs []corpus.Document, topK, jobs int) (map[model.LanguageCode]model.Profile, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one index.
	results := make([]model.Profile, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(docs))))
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = trigram.Build(doc.Text(), topK)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("profile: build: %w", err)
	}

	out := make(map[model.LanguageCode]model.Profile, len(docs))
	for i, doc := range docs {
		if len(results[i]) == 0 {
			slog.Warn("skipping language with no trigrams", "language", doc.Language)
			continue
		}
		out[doc.Language] = results[i]
		slog.Info("profile built", "language", doc.Language, "trigrams", len(results[i]))
	}
	return out, nil
}

// FromProfiles builds a store from already-built profiles.
func FromProfiles(profiles map[model.LanguageCode]model.Profile) (*Store, error) {
	raw := make(map[model.LanguageCode]map[string]float64, len(profiles))
	for code, p := range profiles {
		raw[code] = p
	}
	return New(raw)
}
