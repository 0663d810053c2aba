package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crimson-sun/polyglot/internal/model"
)

// LoadDir loads every <code>.json file in dir. Each file is a JSON object
// mapping trigram to relative frequency, in any key order. A file that cannot
// be read, does not parse or holds bad values rejects that language only.
func LoadDir(dir string) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}

	raw := make(map[model.LanguageCode]map[string]float64)
	var rejected []error
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		code := model.LanguageCode(strings.TrimSuffix(e.Name(), ".json"))
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			rejected = append(rejected, &MalformedProfileError{Code: code, Reason: "unreadable file", Err: err})
			continue
		}
		entries, err := decode(code, data)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		raw[code] = entries
	}
	return newStore(raw, rejected)
}

// decode parses one profile document. Values must be JSON numbers.
func decode(code model.LanguageCode, data []byte) (map[string]float64, error) {
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, &MalformedProfileError{Code: code, Reason: "invalid JSON", Err: err}
	}
	out := make(map[string]float64, len(doc))
	for k, v := range doc {
		n, ok := v.(json.Number)
		if !ok {
			return nil, &MalformedProfileError{Code: code, Key: k, Reason: "non-numeric frequency"}
		}
		f, err := n.Float64()
		if err != nil {
			return nil, &MalformedProfileError{Code: code, Key: k, Reason: "frequency out of range", Err: err}
		}
		out[k] = f
	}
	return out, nil
}

// SaveDir writes one <code>.json file per profile into dir, creating it if
// needed. Files are replaced atomically.
func SaveDir(dir string, profiles map[model.LanguageCode]model.Profile) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	for code, p := range profiles {
		if err := writeProfile(filepath.Join(dir, string(code)+".json"), p); err != nil {
			return fmt.Errorf("profile: save %s: %w", code, err)
		}
	}
	return nil
}

func writeProfile(path string, p model.Profile) error {
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
