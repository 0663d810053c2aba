// Package lingua adapts the pretrained lingua-go detector to the classifier
// interface.
package lingua

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/crimson-sun/polyglot/internal/engine/classifier"
	"github.com/crimson-sun/polyglot/internal/model"
)

// Classifier wraps a lingua.LanguageDetector restricted to a fixed set of
// languages. lingua detectors are safe for concurrent use.
type Classifier struct {
	detector lingua.LanguageDetector
	codes    []model.LanguageCode
	byLang   map[lingua.Language]model.LanguageCode
}

// New builds a detector for the given ISO 639-1 codes. At least two distinct
// codes are required and every code must be supported by lingua.
func New(codes ...model.LanguageCode) (*Classifier, error) {
	supported := make(map[model.LanguageCode]lingua.Language)
	for _, l := range lingua.AllLanguages() {
		supported[isoCode(l)] = l
	}

	byLang := make(map[lingua.Language]model.LanguageCode, len(codes))
	var langs []lingua.Language
	var missing []string
	for _, c := range codes {
		c = model.LanguageCode(strings.ToLower(string(c)))
		l, ok := supported[c]
		if !ok {
			missing = append(missing, string(c))
			continue
		}
		if _, dup := byLang[l]; dup {
			continue
		}
		byLang[l] = c
		langs = append(langs, l)
	}
	if len(missing) > 0 {
		return nil, classifier.Unavailable(fmt.Sprintf("lingua: unsupported languages %v", missing), nil)
	}
	if len(langs) < 2 {
		return nil, classifier.Unavailable("lingua: need at least 2 languages", nil)
	}

	sorted := make([]model.LanguageCode, 0, len(byLang))
	for _, c := range byLang {
		sorted = append(sorted, c)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		WithPreloadedLanguageModels().
		Build()
	return &Classifier{detector: d, codes: sorted, byLang: byLang}, nil
}

// Codes returns the configured languages in code order.
func (c *Classifier) Codes() []model.LanguageCode {
	out := make([]model.LanguageCode, len(c.codes))
	copy(out, c.codes)
	return out
}

// Classify implements classifier.Classifier. Text lingua cannot score gives
// an all-zero distribution and the first code as prediction.
func (c *Classifier) Classify(text string) (model.ClassifierResult, error) {
	dist := make(map[model.LanguageCode]float64, len(c.codes))
	for _, code := range c.codes {
		dist[code] = 0
	}
	for _, cv := range c.detector.ComputeLanguageConfidenceValues(text) {
		if code, ok := c.byLang[cv.Language()]; ok {
			dist[code] = cv.Value()
		}
	}

	best := c.codes[0]
	for _, code := range c.codes[1:] {
		if dist[code] > dist[best] {
			best = code
		}
	}
	return model.ClassifierResult{Predicted: best, Distribution: dist}, nil
}

func isoCode(l lingua.Language) model.LanguageCode {
	return model.LanguageCode(strings.ToLower(l.IsoCode639_1().String()))
}
