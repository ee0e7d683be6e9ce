package entity

import (
	"errors"
	"fmt"
)

var (
	// Input validation
	ErrNoAudio       = errors.New("no audio file provided")
	ErrAudioTooLarge = errors.New("file too large, maximum size is 100MB")

	// Required dependencies
	ErrConverterUnavailable = errors.New("audio converter service is unavailable")
	ErrConversionFailed     = errors.New("audio conversion failed")
	ErrTranscriptionFailed  = errors.New("transcription failed")

	// The recognizer succeeded but produced nothing usable.
	ErrEmptyTranscription = errors.New("empty transcription result, the audio may not contain clear speech")
)

// DurationLimitError is a provider rejecting audio over its duration
// ceiling. It carries a machine-readable code and a remediation hint so
// callers do not have to pattern-match the provider's prose.
type DurationLimitError struct {
	Code       string
	Message    string
	Suggestion string
}

func (e *DurationLimitError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Suggestion)
}

func AsDurationLimit(err error) (*DurationLimitError, bool) {
	var dle *DurationLimitError
	if errors.As(err, &dle) {
		return dle, true
	}
	return nil, false
}
