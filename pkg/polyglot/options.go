package polyglot

import (
	"github.com/crimson-sun/polyglot/internal/config"
	"github.com/crimson-sun/polyglot/internal/model"
)

type options struct {
	cfg        config.Config
	samples    bool
	profiles   map[string]map[string]float64
	classifier ClassifierFunc
	names      model.Languages
}

// Option configures a Detector.
type Option func(*options)

// ClassifierFunc is a custom statistical classifier: it returns the predicted
// language code and a probability for every language it knows.
type ClassifierFunc func(text string) (predicted string, distribution map[string]float64, err error)

// WithProfileDir loads reference profiles from <dir>/<code>.json files.
// Default: "profiles".
func WithProfileDir(dir string) Option {
	return func(o *options) { o.cfg.Profiles.Dir = dir }
}

// WithProfileDB loads reference profiles from a SQLite database written by
// `polyglot build --db`. Takes precedence over WithProfileDir.
func WithProfileDB(path string) Option {
	return func(o *options) { o.cfg.Profiles.DB = path }
}

// WithProfiles uses in-memory reference profiles (code → trigram →
// frequency). They are validated like loaded ones.
func WithProfiles(profiles map[string]map[string]float64) Option {
	return func(o *options) { o.profiles = profiles }
}

// WithSampleData builds profiles and trains the Naive Bayes classifier from
// the small corpus bundled with the package (de, en, es, fr, it, nl).
// Nothing is read from or written to disk.
func WithSampleData() Option {
	return func(o *options) { o.samples = true }
}

// WithBayesModel sets the Naive Bayes model file. Default:
// "models/bayes.mp".
func WithBayesModel(path string) Option {
	return func(o *options) {
		o.cfg.Classifier.Kind = config.KindBayes
		o.cfg.Classifier.ModelPath = path
	}
}

// WithTrainingData sets the corpus directory (<code>.txt files) used to
// train the Naive Bayes model when its file is missing. Default: "data".
func WithTrainingData(dir string) Option {
	return func(o *options) {
		o.cfg.Corpus.Dir = dir
		o.cfg.Classifier.AutoTrain = true
	}
}

// WithAutoTrain enables or disables training a missing Naive Bayes model.
// Default: enabled.
func WithAutoTrain(enabled bool) Option {
	return func(o *options) { o.cfg.Classifier.AutoTrain = enabled }
}

// WithAlpha sets the Naive Bayes smoothing parameter. Default: 1.0.
func WithAlpha(alpha float64) Option {
	return func(o *options) { o.cfg.Classifier.Alpha = alpha }
}

// WithONNX uses an ONNX model instead of Naive Bayes. vocab lists one
// trigram per line (the input columns), labels one language code per line
// (the output columns).
func WithONNX(modelPath, vocabPath, labelsPath string) Option {
	return func(o *options) {
		o.cfg.Classifier.Kind = config.KindONNX
		o.cfg.ONNX.ModelPath = modelPath
		o.cfg.ONNX.VocabPath = vocabPath
		o.cfg.ONNX.LabelsPath = labelsPath
	}
}

// WithONNXLibrary sets the ONNX Runtime shared library path. Default:
// libonnxruntime.so next to the model.
func WithONNXLibrary(path string) Option {
	return func(o *options) { o.cfg.ONNX.LibraryPath = path }
}

// WithLingua uses the pretrained lingua-go models, restricted to the
// languages that have reference profiles, instead of Naive Bayes.
func WithLingua() Option {
	return func(o *options) { o.cfg.Classifier.Kind = config.KindLingua }
}

// WithClassifier uses a custom classifier.
func WithClassifier(fn ClassifierFunc) Option {
	return func(o *options) { o.classifier = fn }
}

// WithTopK sets how many trigrams are kept per profile built from sample
// data. Default: 300.
func WithTopK(k int) Option {
	return func(o *options) { o.cfg.Profiles.TopK = k }
}

// WithLanguageNames replaces the code → display name table. Codes missing
// from it are named "Unknown".
func WithLanguageNames(names map[string]string) Option {
	return func(o *options) {
		o.names = make(model.Languages, len(names))
		for code, name := range names {
			o.names[model.LanguageCode(code)] = name
		}
	}
}

func defaultOptions() options {
	return options{
		cfg:   config.Default(),
		names: model.DefaultLanguages(),
	}
}
