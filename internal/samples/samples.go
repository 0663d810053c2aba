// Package samples embeds a small multilingual corpus and a set of labelled
// sentences. Tests use it to build real profiles and models, and the eval
// command falls back to it when no cases file is given.
package samples

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/crimson-sun/polyglot/internal/corpus"
	"github.com/crimson-sun/polyglot/internal/model"
)

//go:embed corpus/*.txt
var corpusFS embed.FS

//go:embed cases.json
var casesJSON []byte

// Case is one labelled sentence.
type Case struct {
	Text     string             `json:"text"`
	Expected model.LanguageCode `json:"expected"`
}

// Corpus returns the embedded per-language documents, sorted by code.
func Corpus() ([]corpus.Document, error) {
	sub, err := fs.Sub(corpusFS, "corpus")
	if err != nil {
		return nil, fmt.Errorf("samples: %w", err)
	}
	return corpus.ReadFS(sub)
}

// Cases parses the embedded cases.json.
func Cases() ([]Case, error) {
	return ParseCases(casesJSON)
}

// ParseCases decodes a JSON array of {"text", "expected"} objects.
func ParseCases(data []byte) ([]Case, error) {
	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("samples: parse cases: %w", err)
	}
	return cases, nil
}
