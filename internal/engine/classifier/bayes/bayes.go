// Package bayes implements a multinomial Naive Bayes language classifier
// over character trigram counts.
package bayes

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/crimson-sun/polyglot/internal/corpus"
	"github.com/crimson-sun/polyglot/internal/engine/classifier"
	"github.com/crimson-sun/polyglot/internal/model"
)

// DefaultAlpha is the additive (Laplace) smoothing parameter.
const DefaultAlpha = 1.0

// Model is a trained classifier. It is read-only after training and safe for
// concurrent use.
type Model struct {
	alpha   float64
	classes []model.LanguageCode
	vocab   map[string]int
	// logPrior[c] is log P(c).
	logPrior []float64
	// logProb[c][f] is log P(feature f | class c).
	logProb [][]float64
}

// Trainer trains Models with a fixed smoothing parameter.
type Trainer struct {
	Alpha float64
}

// Train implements classifier.Trainer.
func (t Trainer) Train(samples []corpus.Sample) (classifier.Classifier, error) {
	m, err := Train(samples, t.Alpha)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Train fits a model to the samples. alpha <= 0 uses DefaultAlpha. Classes
// are ordered by language code.
func Train(samples []corpus.Sample, alpha float64) (*Model, error) {
	if alpha <= 0 {
		alpha = DefaultAlpha
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("bayes: no training samples")
	}

	classIdx := make(map[model.LanguageCode]int)
	for _, s := range samples {
		classIdx[s.Language] = 0
	}
	classes := make([]model.LanguageCode, 0, len(classIdx))
	for c := range classIdx {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	for i, c := range classes {
		classIdx[c] = i
	}

	vocab := make(map[string]int)
	classCount := make([]float64, len(classes))
	featCount := make([]map[int]float64, len(classes))
	for i := range featCount {
		featCount[i] = make(map[int]float64)
	}
	for _, s := range samples {
		ci := classIdx[s.Language]
		classCount[ci]++
		for f, n := range classifier.Counts(s.Text) {
			fi, ok := vocab[f]
			if !ok {
				fi = len(vocab)
				vocab[f] = fi
			}
			featCount[ci][fi] += float64(n)
		}
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("bayes: training samples contain no trigrams")
	}

	m := &Model{
		alpha:    alpha,
		classes:  classes,
		vocab:    vocab,
		logPrior: make([]float64, len(classes)),
		logProb:  make([][]float64, len(classes)),
	}
	logTotal := math.Log(float64(len(samples)))
	for ci := range classes {
		m.logPrior[ci] = math.Log(classCount[ci]) - logTotal

		row := make([]float64, len(vocab))
		var total float64
		for fi := range row {
			row[fi] = featCount[ci][fi] + alpha
			total += row[fi]
		}
		logTotalFeat := math.Log(total)
		for fi := range row {
			row[fi] = math.Log(row[fi]) - logTotalFeat
		}
		m.logProb[ci] = row
	}

	slog.Info("naive bayes trained", "samples", len(samples), "classes", len(classes), "vocabulary", len(vocab))
	return m, nil
}

// Classes returns the model's languages in column order.
func (m *Model) Classes() []model.LanguageCode {
	out := make([]model.LanguageCode, len(m.classes))
	copy(out, m.classes)
	return out
}

// VocabularySize returns the number of distinct training trigrams.
func (m *Model) VocabularySize() int {
	return len(m.vocab)
}

// Classify implements classifier.Classifier. Trigrams never seen during
// training are ignored; text without known trigrams yields the class priors.
func (m *Model) Classify(text string) (model.ClassifierResult, error) {
	if m == nil || len(m.classes) == 0 {
		return model.ClassifierResult{}, classifier.Unavailable("bayes: model not trained", nil)
	}

	counts := classifier.Counts(text)
	jll := make([]float64, len(m.classes))
	copy(jll, m.logPrior)
	for f, n := range counts {
		fi, ok := m.vocab[f]
		if !ok {
			continue
		}
		for ci := range jll {
			jll[ci] += float64(n) * m.logProb[ci][fi]
		}
	}

	lse := floats.LogSumExp(jll)
	dist := make(map[model.LanguageCode]float64, len(m.classes))
	for ci, c := range m.classes {
		dist[c] = math.Exp(jll[ci] - lse)
	}
	return model.ClassifierResult{
		Predicted:    m.classes[floats.MaxIdx(jll)],
		Distribution: dist,
	}, nil
}
