// Package onnx classifies text with a language model exported to ONNX. The
// model takes a [1, V] float32 vector of character trigram counts, with
// columns given by a vocabulary file, and emits a [1, C] probability tensor
// whose columns are named by a labels file.
package onnx

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/gonum/floats"

	"github.com/crimson-sun/polyglot/internal/engine/classifier"
	"github.com/crimson-sun/polyglot/internal/model"
)

// DefaultOutputName is the probability output emitted by skl2onnx when
// zipmap is disabled.
const DefaultOutputName = "probabilities"

// Config locates the model artefacts.
type Config struct {
	ModelPath  string
	VocabPath  string
	LabelsPath string
	// LibraryPath is the ONNX Runtime shared library. Empty means
	// libonnxruntime.so next to the model.
	LibraryPath string
	// OutputName is the probability tensor. Empty means DefaultOutputName.
	OutputName string
}

// Classifier runs inference through ONNX Runtime. It is safe for concurrent
// use.
type Classifier struct {
	sess   *session
	vocab  map[string]int
	labels []model.LanguageCode
}

// New loads the vocabulary, labels and model. Every failure wraps
// classifier.ErrUnavailable.
func New(cfg Config) (*Classifier, error) {
	vocab, err := loadVocab(cfg.VocabPath)
	if err != nil {
		return nil, classifier.Unavailable("onnx", err)
	}
	labels, err := loadLabels(cfg.LabelsPath)
	if err != nil {
		return nil, classifier.Unavailable("onnx", err)
	}

	lib := cfg.LibraryPath
	if lib == "" {
		lib = filepath.Join(filepath.Dir(cfg.ModelPath), "libonnxruntime.so")
	}
	out := cfg.OutputName
	if out == "" {
		out = DefaultOutputName
	}
	sess, err := newSession(cfg.ModelPath, lib, out, len(vocab), len(labels))
	if err != nil {
		return nil, classifier.Unavailable("onnx", err)
	}
	return &Classifier{sess: sess, vocab: vocab, labels: labels}, nil
}

// Classify implements classifier.Classifier.
func (c *Classifier) Classify(text string) (model.ClassifierResult, error) {
	row, err := c.sess.infer(featurize(c.vocab, text))
	if err != nil {
		return model.ClassifierResult{}, classifier.Unavailable("onnx", err)
	}
	return distribution(c.labels, row)
}

// Close releases the ONNX session.
func (c *Classifier) Close() error {
	return c.sess.close()
}

// featurize builds the count vector for text. Trigrams outside the
// vocabulary are ignored.
func featurize(vocab map[string]int, text string) []float32 {
	vec := make([]float32, len(vocab))
	for f, n := range classifier.Counts(text) {
		if i, ok := vocab[f]; ok {
			vec[i] = float32(n)
		}
	}
	return vec
}

// distribution maps a probability row onto labels, renormalizing it to sum
// to 1. Ties on the maximum go to the first label.
func distribution(labels []model.LanguageCode, row []float32) (model.ClassifierResult, error) {
	if len(row) != len(labels) {
		return model.ClassifierResult{}, classifier.Unavailable(
			fmt.Sprintf("onnx: model returned %d probabilities for %d labels", len(row), len(labels)), nil)
	}
	probs := make([]float64, len(row))
	for i, v := range row {
		if v < 0 {
			v = 0
		}
		probs[i] = float64(v)
	}
	sum := floats.Sum(probs)
	if sum <= 0 {
		return model.ClassifierResult{}, classifier.Unavailable("onnx: model returned no probability mass", nil)
	}
	floats.Scale(1/sum, probs)

	dist := make(map[model.LanguageCode]float64, len(labels))
	for i, code := range labels {
		dist[code] = probs[i]
	}
	return model.ClassifierResult{
		Predicted:    labels[floats.MaxIdx(probs)],
		Distribution: dist,
	}, nil
}
