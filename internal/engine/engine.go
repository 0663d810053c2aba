// Package engine orchestrates language detection: normalize, profile, score
// against the reference store, classify, and arbitrate.
package engine

import (
	"errors"
	"fmt"

	"github.com/crimson-sun/polyglot/internal/engine/classifier"
	"github.com/crimson-sun/polyglot/internal/engine/ensemble"
	"github.com/crimson-sun/polyglot/internal/engine/normalize"
	"github.com/crimson-sun/polyglot/internal/engine/profile"
	"github.com/crimson-sun/polyglot/internal/engine/similarity"
	"github.com/crimson-sun/polyglot/internal/engine/trigram"
	"github.com/crimson-sun/polyglot/internal/model"
)

// Engine is safe for concurrent use when its classifier is.
type Engine struct {
	store      *profile.Store
	classifier classifier.Classifier
}

// New creates an Engine over a loaded profile store and a classifier.
func New(store *profile.Store, cls classifier.Classifier) *Engine {
	return &Engine{store: store, classifier: cls}
}

// Store returns the reference profiles the engine scores against.
func (e *Engine) Store() *profile.Store {
	return e.store
}

// Similarity scores text against the reference profiles only.
func (e *Engine) Similarity(text string) model.SimilarityResult {
	return similarity.Score(trigram.Profile(normalize.Text(text)), e.store)
}

// Detect runs both models on text and arbitrates between them. Empty or
// punctuation-only text is not an error. Classifier failures are returned
// and still match classifier.ErrUnavailable.
func (e *Engine) Detect(text string) (model.Decision, error) {
	if e.classifier == nil {
		return model.Decision{}, fmt.Errorf("engine: %w", classifier.Unavailable("no classifier configured", nil))
	}

	clean := normalize.Text(text)
	sim := similarity.Score(trigram.Profile(clean), e.store)

	cls, err := e.classifier.Classify(clean)
	if err != nil {
		if !errors.Is(err, classifier.ErrUnavailable) {
			err = classifier.Unavailable("classify", err)
		}
		return model.Decision{}, fmt.Errorf("engine: %w", err)
	}
	return ensemble.Arbitrate(sim, cls), nil
}

// DetectBatch detects every text in order and stops at the first error.
func (e *Engine) DetectBatch(texts []string) ([]model.Decision, error) {
	decisions := make([]model.Decision, 0, len(texts))
	for _, text := range texts {
		d, err := e.Detect(text)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}
	return decisions, nil
}
