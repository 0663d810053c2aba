// Package corpus reads per-language plain-text corpora. Each file is named
// <code>.txt and holds one sentence per line.
package corpus

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/crimson-sun/polyglot/internal/engine/normalize"
	"github.com/crimson-sun/polyglot/internal/model"
)

// DefaultMinLineLength is the rune length a normalized line must exceed to
// become a training sample.
const DefaultMinLineLength = 5

// Document is one language's corpus.
type Document struct {
	Language model.LanguageCode
	Lines    []string // raw lines, blank lines removed
}

// Text joins all lines with spaces and normalizes the result. This is the
// input for reference profile building.
func (d Document) Text() string {
	return normalize.Text(strings.Join(d.Lines, " "))
}

// Sample is one labelled training sentence.
type Sample struct {
	Text     string
	Language model.LanguageCode
}

// Samples returns the normalized lines longer than minLen runes.
func (d Document) Samples(minLen int) []Sample {
	var out []Sample
	for _, line := range d.Lines {
		clean := normalize.Text(line)
		if utf8.RuneCountInString(clean) > minLen {
			out = append(out, Sample{Text: clean, Language: d.Language})
		}
	}
	return out
}

// Samples flattens the training samples of every document.
func Samples(docs []Document, minLen int) []Sample {
	var out []Sample
	for _, d := range docs {
		out = append(out, d.Samples(minLen)...)
	}
	return out
}

// ReadDir reads every *.txt file in dir, sorted by language code.
func ReadDir(dir string) ([]Document, error) {
	return ReadFS(os.DirFS(dir))
}

// ReadFS reads every *.txt file at the root of fsys, sorted by language code.
func ReadFS(fsys fs.FS) ([]Document, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}

	var docs []Document
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".txt" {
			continue
		}
		code := model.LanguageCode(strings.TrimSuffix(e.Name(), ".txt"))
		lines, err := readLines(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("corpus: %s: %w", code, err)
		}
		docs = append(docs, Document{Language: code, Lines: lines})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Language < docs[j].Language })
	return docs, nil
}

// FromLines builds documents from in-memory corpora.
func FromLines(m map[model.LanguageCode][]string) []Document {
	docs := make([]Document, 0, len(m))
	for code, lines := range m {
		var kept []string
		for _, l := range lines {
			if strings.TrimSpace(l) != "" {
				kept = append(kept, l)
			}
		}
		docs = append(docs, Document{Language: code, Lines: kept})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Language < docs[j].Language })
	return docs
}

func readLines(fsys fs.FS, name string) ([]string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}
	return lines, nil
}
