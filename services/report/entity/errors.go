package entity

import "errors"

var (
	ErrTranscriptTooShort = errors.New("transcription is too short to generate a meaningful report")
	ErrGenerationFailed   = errors.New("report generation failed")
	ErrUnparsableReport   = errors.New("failed to parse generated report")
	ErrInvalidReport      = errors.New("invalid report structure generated")
)
