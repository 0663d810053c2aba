package bayes

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/crimson-sun/polyglot/internal/engine/classifier"
	"github.com/crimson-sun/polyglot/internal/model"
)

// schemaVersion is bumped whenever the encoded layout changes.
const schemaVersion = 1

type payload struct {
	Version  int                  `msgpack:"version"`
	Alpha    float64              `msgpack:"alpha"`
	Classes  []model.LanguageCode `msgpack:"classes"`
	Vocab    map[string]int       `msgpack:"vocab"`
	LogPrior []float64            `msgpack:"log_prior"`
	LogProb  [][]float64          `msgpack:"log_prob"`
}

// Save writes the model to path atomically.
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("bayes: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return fmt.Errorf("bayes: %w", err)
	}
	defer os.Remove(f.Name())

	p := payload{
		Version:  schemaVersion,
		Alpha:    m.alpha,
		Classes:  m.classes,
		Vocab:    m.vocab,
		LogPrior: m.logPrior,
		LogProb:  m.logProb,
	}
	if err := msgpack.NewEncoder(f).Encode(&p); err != nil {
		f.Close()
		return fmt.Errorf("bayes: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("bayes: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("bayes: %w", err)
	}
	return nil
}

// Load reads a model written by Save. Failures wrap classifier.ErrUnavailable.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classifier.Unavailable("bayes: open model", err)
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, classifier.Unavailable("bayes: decode model", err)
	}
	if p.Version != schemaVersion {
		return nil, classifier.Unavailable(fmt.Sprintf("bayes: model schema version %d, want %d", p.Version, schemaVersion), nil)
	}
	if err := p.validate(); err != nil {
		return nil, classifier.Unavailable("bayes: invalid model", err)
	}
	return &Model{
		alpha:    p.Alpha,
		classes:  p.Classes,
		vocab:    p.Vocab,
		logPrior: p.LogPrior,
		logProb:  p.LogProb,
	}, nil
}

func (p *payload) validate() error {
	if len(p.Classes) == 0 {
		return fmt.Errorf("no classes")
	}
	if len(p.LogPrior) != len(p.Classes) || len(p.LogProb) != len(p.Classes) {
		return fmt.Errorf("%d classes but %d priors and %d probability rows", len(p.Classes), len(p.LogPrior), len(p.LogProb))
	}
	for i, row := range p.LogProb {
		if len(row) != len(p.Vocab) {
			return fmt.Errorf("row %d has %d features, vocabulary has %d", i, len(row), len(p.Vocab))
		}
	}
	for f, i := range p.Vocab {
		if i < 0 || i >= len(p.Vocab) {
			return fmt.Errorf("feature %q has out-of-range index %d", f, i)
		}
	}
	return nil
}
