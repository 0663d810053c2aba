package onnx

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/crimson-sun/polyglot/internal/model"
)

// loadVocab reads a trigram vocabulary where each line is one feature and
// the line number (0-indexed) is its column in the input vector. Lines are
// not trimmed because trigrams may start or end with a space.
func loadVocab(path string) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: %w", err)
	}
	defer f.Close()

	vocab := make(map[string]int, 4096)
	n := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tok := scanner.Text()
		if _, dup := vocab[tok]; dup {
			return nil, fmt.Errorf("vocab: duplicate feature %q on line %d", tok, n+1)
		}
		vocab[tok] = n
		n++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("vocab: read error: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("vocab: file is empty: %s", path)
	}
	return vocab, nil
}

// loadLabels reads one language code per non-blank line, in the column
// order of the model's probability output.
func loadLabels(path string) ([]model.LanguageCode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	defer f.Close()

	var labels []model.LanguageCode
	seen := make(map[model.LanguageCode]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		code := model.LanguageCode(strings.TrimSpace(scanner.Text()))
		if code == "" {
			continue
		}
		if seen[code] {
			return nil, fmt.Errorf("labels: duplicate label %q", code)
		}
		seen[code] = true
		labels = append(labels, code)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("labels: read error: %w", err)
	}
	if len(labels) < 2 {
		return nil, fmt.Errorf("labels: need at least 2 labels, got %d", len(labels))
	}
	return labels, nil
}
