// Package classifier defines the statistical classifier capability used by
// the engine alongside cosine similarity, and the character trigram features
// shared by its implementations.
package classifier

import (
	"errors"
	"fmt"

	"github.com/crimson-sun/polyglot/internal/corpus"
	"github.com/crimson-sun/polyglot/internal/engine/normalize"
	"github.com/crimson-sun/polyglot/internal/engine/trigram"
	"github.com/crimson-sun/polyglot/internal/model"
)

// ErrUnavailable is wrapped by every error a classifier returns when its
// model cannot be loaded or inference fails.
var ErrUnavailable = errors.New("classifier unavailable")

// Classifier predicts a language and a probability distribution over every
// language it knows. Implementations must be safe for concurrent use.
type Classifier interface {
	Classify(text string) (model.ClassifierResult, error)
}

// Trainer builds a Classifier from labelled samples.
type Trainer interface {
	Train(samples []corpus.Sample) (Classifier, error)
}

// Unavailable wraps err with ErrUnavailable and a short description.
func Unavailable(what string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, what)
	}
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, what, err)
}

// Features returns the overlapping character trigrams of text after runs of
// whitespace are collapsed to a single space. Unlike the reference profiles,
// spaces are kept so word boundaries become features.
func Features(text string) []string {
	return trigram.Windows(normalize.CollapseSpace(text))
}

// Counts tallies Features(text).
func Counts(text string) map[string]int {
	feats := Features(text)
	out := make(map[string]int, len(feats))
	for _, f := range feats {
		out[f]++
	}
	return out
}
