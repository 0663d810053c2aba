// Package config loads polyglot settings: built-in defaults, then an
// optional TOML file, then POLYGLOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/crimson-sun/polyglot/internal/output"
)

// Classifier kinds.
const (
	KindBayes  = "bayes"
	KindONNX   = "onnx"
	KindLingua = "lingua"
)

// Config holds all polyglot configuration.
type Config struct {
	Profiles   ProfilesConfig   `toml:"profiles"`
	Corpus     CorpusConfig     `toml:"corpus"`
	Classifier ClassifierConfig `toml:"classifier"`
	ONNX       ONNXConfig       `toml:"onnx"`
	Output     OutputConfig     `toml:"output"`
	LogLevel   string           `toml:"log_level"`
}

// ProfilesConfig locates the reference profiles. DB, when set, takes
// precedence over Dir.
type ProfilesConfig struct {
	Dir  string `toml:"dir"`
	DB   string `toml:"db"`
	TopK int    `toml:"top_k"`
	Jobs int    `toml:"jobs"` // 0 = GOMAXPROCS
}

// CorpusConfig locates the per-language training text.
type CorpusConfig struct {
	Dir           string `toml:"dir"`
	MinLineLength int    `toml:"min_line_length"`
}

// ClassifierConfig selects the statistical classifier.
type ClassifierConfig struct {
	Kind      string  `toml:"kind"`
	ModelPath string  `toml:"model_path"`
	Alpha     float64 `toml:"alpha"`
	// AutoTrain trains and saves a bayes model from the corpus when
	// ModelPath does not exist.
	AutoTrain bool `toml:"auto_train"`
}

// ONNXConfig locates the exported ONNX model artefacts.
type ONNXConfig struct {
	ModelPath   string `toml:"model_path"`
	VocabPath   string `toml:"vocab_path"`
	LabelsPath  string `toml:"labels_path"`
	LibraryPath string `toml:"library_path"`
	OutputName  string `toml:"output_name"`
}

// OutputConfig holds batch output settings.
type OutputConfig struct {
	File      string `toml:"file"` // empty = stdout only
	Pretty    bool   `toml:"pretty"`
	Verbosity string `toml:"verbosity"`
	MaxSize   int64  `toml:"max_size"` // bytes, 0 = no rotation
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Profiles: ProfilesConfig{
			Dir:  "profiles",
			TopK: 300,
		},
		Corpus: CorpusConfig{
			Dir:           "data",
			MinLineLength: 5,
		},
		Classifier: ClassifierConfig{
			Kind:      KindBayes,
			ModelPath: "models/bayes.mp",
			Alpha:     1.0,
			AutoTrain: true,
		},
		ONNX: ONNXConfig{
			ModelPath:  "models/onnx/model.onnx",
			VocabPath:  "models/onnx/vocab.txt",
			LabelsPath: "models/onnx/labels.txt",
			OutputName: "probabilities",
		},
		Output: OutputConfig{
			Verbosity: "standard",
		},
		LogLevel: "info",
	}
}

// Load builds the configuration. An empty path or a missing file leaves the
// defaults in place; a malformed file is an error. Environment variables
// are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		switch {
		case errors.Is(err, os.ErrNotExist):
			slog.Debug("config file not found, using defaults", "path", path)
		case err != nil:
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		default:
			for _, key := range meta.Undecoded() {
				slog.Warn("unknown config key", "path", path, "key", key.String())
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Profiles.Dir = getenv("POLYGLOT_PROFILE_DIR", cfg.Profiles.Dir)
	cfg.Profiles.DB = getenv("POLYGLOT_PROFILE_DB", cfg.Profiles.DB)
	cfg.Profiles.TopK = getenvInt("POLYGLOT_TOP_K", cfg.Profiles.TopK)
	cfg.Profiles.Jobs = getenvInt("POLYGLOT_JOBS", cfg.Profiles.Jobs)

	cfg.Corpus.Dir = getenv("POLYGLOT_CORPUS_DIR", cfg.Corpus.Dir)
	cfg.Corpus.MinLineLength = getenvInt("POLYGLOT_MIN_LINE_LENGTH", cfg.Corpus.MinLineLength)

	cfg.Classifier.Kind = getenv("POLYGLOT_CLASSIFIER", cfg.Classifier.Kind)
	cfg.Classifier.ModelPath = getenv("POLYGLOT_MODEL_PATH", cfg.Classifier.ModelPath)
	cfg.Classifier.Alpha = getenvFloat("POLYGLOT_ALPHA", cfg.Classifier.Alpha)
	cfg.Classifier.AutoTrain = getenvBool("POLYGLOT_AUTO_TRAIN", cfg.Classifier.AutoTrain)

	cfg.ONNX.ModelPath = getenv("POLYGLOT_ONNX_MODEL", cfg.ONNX.ModelPath)
	cfg.ONNX.VocabPath = getenv("POLYGLOT_ONNX_VOCAB", cfg.ONNX.VocabPath)
	cfg.ONNX.LabelsPath = getenv("POLYGLOT_ONNX_LABELS", cfg.ONNX.LabelsPath)
	cfg.ONNX.LibraryPath = getenv("POLYGLOT_ONNX_LIBRARY", cfg.ONNX.LibraryPath)
	cfg.ONNX.OutputName = getenv("POLYGLOT_ONNX_OUTPUT", cfg.ONNX.OutputName)

	cfg.Output.File = getenv("POLYGLOT_OUTPUT_FILE", cfg.Output.File)
	cfg.Output.Pretty = getenvBool("POLYGLOT_OUTPUT_PRETTY", cfg.Output.Pretty)
	cfg.Output.Verbosity = getenv("POLYGLOT_VERBOSITY", cfg.Output.Verbosity)
	cfg.Output.MaxSize = int64(getenvInt("POLYGLOT_OUTPUT_MAX_SIZE", int(cfg.Output.MaxSize)))

	cfg.LogLevel = getenv("POLYGLOT_LOG_LEVEL", cfg.LogLevel)
}

// Validate checks the configuration for values no component can use.
func (c Config) Validate() error {
	var errs []error
	switch c.Classifier.Kind {
	case KindBayes, KindONNX, KindLingua:
	default:
		errs = append(errs, fmt.Errorf("classifier.kind must be one of %s, %s, %s; got %q",
			KindBayes, KindONNX, KindLingua, c.Classifier.Kind))
	}
	if c.Profiles.TopK < 0 {
		errs = append(errs, fmt.Errorf("profiles.top_k must be >= 0, got %d", c.Profiles.TopK))
	}
	if c.Profiles.Jobs < 0 {
		errs = append(errs, fmt.Errorf("profiles.jobs must be >= 0, got %d", c.Profiles.Jobs))
	}
	if c.Corpus.MinLineLength < 0 {
		errs = append(errs, fmt.Errorf("corpus.min_line_length must be >= 0, got %d", c.Corpus.MinLineLength))
	}
	if c.Classifier.Alpha <= 0 {
		errs = append(errs, fmt.Errorf("classifier.alpha must be > 0, got %g", c.Classifier.Alpha))
	}
	if c.Output.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("output.max_size must be >= 0, got %d", c.Output.MaxSize))
	}
	if _, err := output.ParseVerbosity(c.Output.Verbosity); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
