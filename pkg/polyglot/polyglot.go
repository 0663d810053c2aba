package polyglot

import (
	"context"
	"fmt"
	"io"

	"github.com/crimson-sun/polyglot/internal/engine"
	"github.com/crimson-sun/polyglot/internal/engine/classifier"
	"github.com/crimson-sun/polyglot/internal/engine/normalize"
	"github.com/crimson-sun/polyglot/internal/engine/profile"
	"github.com/crimson-sun/polyglot/internal/engine/trigram"
	"github.com/crimson-sun/polyglot/internal/model"
	"github.com/crimson-sun/polyglot/internal/setup"
)

// Errors returned by New and Detector methods. Use errors.Is to test.
var (
	// ErrNoReferenceProfiles: no reference profile could be loaded.
	ErrNoReferenceProfiles = profile.ErrNoReferenceProfiles
	// ErrUnknownLanguage: the language code has no reference profile.
	ErrUnknownLanguage = profile.ErrUnknownLanguage
	// ErrClassifierUnavailable: the statistical classifier failed to load
	// or to classify.
	ErrClassifierUnavailable = classifier.ErrUnavailable
)

// Detector identifies the language of texts. Safe for concurrent use.
type Detector struct {
	engine *engine.Engine
	closer io.Closer
	names  model.Languages
}

// New creates a Detector, loading reference profiles and the classifier.
// This can take a while (training a missing model, loading ONNX or lingua
// models): create once, reuse across requests.
func New(opts ...Option) (*Detector, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("polyglot: %w", err)
	}

	var src setup.Sources
	src.Samples = o.samples
	if o.profiles != nil {
		raw := make(map[model.LanguageCode]map[string]float64, len(o.profiles))
		for code, p := range o.profiles {
			raw[model.LanguageCode(code)] = p
		}
		store, err := profile.New(raw)
		if err != nil {
			return nil, fmt.Errorf("polyglot: %w", err)
		}
		src.Store = store
	}
	if o.classifier != nil {
		src.Classifier = funcClassifier(o.classifier)
	}

	eng, closer, err := setup.Engine(context.Background(), o.cfg, src)
	if err != nil {
		return nil, fmt.Errorf("polyglot: %w", err)
	}
	return &Detector{engine: eng, closer: closer, names: o.names}, nil
}

// Detect identifies the language of text. Empty or punctuation-only text is
// not an error; it yields a zero cosine score. Classifier failures are
// returned and match ErrClassifierUnavailable.
func (d *Detector) Detect(text string) (Result, error) {
	dec, err := d.engine.Detect(text)
	if err != nil {
		return Result{}, err
	}
	return resultFromDecision(dec, d.names), nil
}

// DetectBatch detects every text in order and stops at the first error.
func (d *Detector) DetectBatch(texts []string) ([]Result, error) {
	decs, err := d.engine.DetectBatch(texts)
	if err != nil {
		return nil, err
	}
	out := make([]Result, len(decs))
	for i, dec := range decs {
		out[i] = resultFromDecision(dec, d.names)
	}
	return out, nil
}

// Similarity scores text against the reference profiles only, highest
// first. It never touches the classifier.
func (d *Detector) Similarity(text string) []Score {
	return scores(d.engine.Similarity(text).Ranked())
}

// Languages returns the codes with reference profiles, sorted.
func (d *Detector) Languages() []string {
	codes := d.engine.Store().Codes()
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}

// Profile returns a copy of the reference profile for code, or an error
// matching ErrUnknownLanguage.
func (d *Detector) Profile(code string) (map[string]float64, error) {
	p, err := d.engine.Store().Lookup(model.LanguageCode(code))
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out, nil
}

// Close releases classifier resources.
func (d *Detector) Close() error {
	return d.closer.Close()
}

// BuildProfile normalizes corpusText and returns its trigram profile. With
// topK > 0 only the topK most frequent trigrams are kept and renormalized.
func BuildProfile(corpusText string, topK int) map[string]float64 {
	return trigram.Build(normalize.Text(corpusText), topK)
}

// Normalize returns text as the detector sees it: punctuation and symbols
// removed, lower-cased, NFC normalized and trimmed.
func Normalize(text string) string {
	return normalize.Text(text)
}

// funcClassifier adapts a ClassifierFunc to the internal interface.
type funcClassifier ClassifierFunc

func (f funcClassifier) Classify(text string) (model.ClassifierResult, error) {
	pred, dist, err := f(text)
	if err != nil {
		return model.ClassifierResult{}, fmt.Errorf("%w: %w", classifier.ErrUnavailable, err)
	}
	out := make(map[model.LanguageCode]float64, len(dist))
	for code, p := range dist {
		out[model.LanguageCode(code)] = p
	}
	return model.ClassifierResult{Predicted: model.LanguageCode(pred), Distribution: out}, nil
}
