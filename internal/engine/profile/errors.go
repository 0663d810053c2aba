package profile

import (
	"errors"
	"fmt"

	"github.com/crimson-sun/polyglot/internal/model"
)

// ErrNoReferenceProfiles is returned when a store would hold no profiles.
// Detection is impossible without reference data.
var ErrNoReferenceProfiles = errors.New("profile: no reference profiles loaded")

// ErrUnknownLanguage matches any *UnknownLanguageError via errors.Is.
var ErrUnknownLanguage = errors.New("profile: unknown language code")

// UnknownLanguageError reports a lookup of a code the store does not hold.
type UnknownLanguageError struct {
	Code model.LanguageCode
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("profile: unknown language code %q", e.Code)
}

func (e *UnknownLanguageError) Is(target error) bool {
	return target == ErrUnknownLanguage
}

// MalformedProfileError rejects one language's reference data. Loading
// continues with the remaining languages.
type MalformedProfileError struct {
	Code   model.LanguageCode
	Key    string
	Reason string
	Err    error
}

func (e *MalformedProfileError) Error() string {
	msg := fmt.Sprintf("profile: malformed profile %q", e.Code)
	if e.Key != "" {
		msg += fmt.Sprintf(" at key %q", e.Key)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedProfileError) Unwrap() error {
	return e.Err
}
