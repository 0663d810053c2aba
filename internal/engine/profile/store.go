// Package profile holds the per-language reference trigram profiles used
// for similarity scoring, and the sources they are loaded from.
package profile

import (
	"errors"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/crimson-sun/polyglot/internal/model"
)

// Store maps language codes to reference profiles. It is populated once and
// read-only afterwards, so it is safe for concurrent use without locking.
// Profiles returned by Lookup and Each must not be modified.
type Store struct {
	codes    []model.LanguageCode
	profiles map[model.LanguageCode]model.Profile
	rejected []error
}

// New validates raw profiles and builds a store. Malformed profiles are
// dropped and logged; their errors are available from Rejected. Returns
// ErrNoReferenceProfiles when nothing survives.
func New(raw map[model.LanguageCode]map[string]float64) (*Store, error) {
	return newStore(raw, nil)
}

func newStore(raw map[model.LanguageCode]map[string]float64, rejected []error) (*Store, error) {
	s := &Store{
		profiles: make(map[model.LanguageCode]model.Profile, len(raw)),
		rejected: rejected,
	}
	for code, entries := range raw {
		p, err := Sanitize(code, entries)
		if err != nil {
			slog.Warn("rejecting reference profile", "language", code, "error", err)
			s.rejected = append(s.rejected, err)
			continue
		}
		s.profiles[code] = p
		s.codes = append(s.codes, code)
	}
	for _, err := range rejected {
		slog.Warn("rejecting reference profile", "error", err)
	}
	if len(s.profiles) == 0 {
		if len(s.rejected) > 0 {
			return nil, errors.Join(append([]error{ErrNoReferenceProfiles}, s.rejected...)...)
		}
		return nil, ErrNoReferenceProfiles
	}
	sort.Slice(s.codes, func(i, j int) bool { return s.codes[i] < s.codes[j] })
	slog.Debug("reference profiles loaded", "languages", len(s.codes), "rejected", len(s.rejected))
	return s, nil
}

// Sanitize re-applies NFC to every key and validates frequencies. Keys that
// collapse to the same NFC form have their frequencies summed. Zero
// frequencies are dropped; negative, NaN and infinite ones reject the whole
// profile with a *MalformedProfileError. An empty result is also rejected.
func Sanitize(code model.LanguageCode, entries map[string]float64) (model.Profile, error) {
	p := make(model.Profile, len(entries))
	for key, freq := range entries {
		switch {
		case key == "":
			return nil, &MalformedProfileError{Code: code, Reason: "empty trigram key"}
		case math.IsNaN(freq) || math.IsInf(freq, 0):
			return nil, &MalformedProfileError{Code: code, Key: key, Reason: "non-numeric frequency"}
		case freq < 0:
			return nil, &MalformedProfileError{Code: code, Key: key, Reason: "negative frequency"}
		case freq == 0:
			continue
		}
		p[norm.NFC.String(key)] += freq
	}
	if len(p) == 0 {
		return nil, &MalformedProfileError{Code: code, Reason: "no trigrams"}
	}
	return p, nil
}

// Len returns the number of loaded languages.
func (s *Store) Len() int {
	return len(s.codes)
}

// Codes returns the loaded language codes in lexicographic order.
func (s *Store) Codes() []model.LanguageCode {
	out := make([]model.LanguageCode, len(s.codes))
	copy(out, s.codes)
	return out
}

// Lookup returns the profile for code, or an *UnknownLanguageError.
func (s *Store) Lookup(code model.LanguageCode) (model.Profile, error) {
	p, ok := s.profiles[code]
	if !ok {
		return nil, &UnknownLanguageError{Code: code}
	}
	return p, nil
}

// Each calls fn for every profile in lexicographic code order. The order is
// stable for the lifetime of the store.
func (s *Store) Each(fn func(code model.LanguageCode, p model.Profile)) {
	for _, code := range s.codes {
		fn(code, s.profiles[code])
	}
}

// Rejected returns the errors of profiles dropped during loading.
func (s *Store) Rejected() []error {
	return s.rejected
}
