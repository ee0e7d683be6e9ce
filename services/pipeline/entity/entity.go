package entity

import "time"

// AudioAsset is the uploaded payload plus what we know about it. It is
// created once per run and never mutated.
type AudioAsset struct {
	Data             []byte
	SizeBytes        int64
	DeclaredFileName string
	DeclaredMimeType string
	DetectedFormat   string
}

// TranscribeRequest carries one run's input and its caller-supplied
// configuration. The pipeline never looks settings up on its own.
type TranscribeRequest struct {
	Audio  *AudioAsset
	Config RunConfig
}

type RunConfig struct {
	DiarizationEnabled  bool
	ASRProvider         string
	ASRModel            string
	DiarizationProvider string
}

// PipelineRun is the per-request execution context. Created at request
// entry, discarded at request exit, never shared between runs.
type PipelineRun struct {
	Audio          *AudioAsset
	Config         RunConfig
	WasConverted   bool
	CanonicalAudio *ConvertedAudio
	StartedAt      time.Time
}

// ConvertedAudio is the converter's output. Duration and sample rate are
// filled by probing the WAV header and stay zero when the probe fails.
type ConvertedAudio struct {
	Data            []byte
	SizeBytes       int
	DurationSeconds float64
	SampleRate      int
}

type TranscriptionResult struct {
	Text             string
	WordCount        int
	ProcessingTimeMs int64
}

type DiarizationSegment struct {
	SpeakerLabel    string  `json:"speaker"`
	StartSeconds    float64 `json:"start"`
	EndSeconds      float64 `json:"end"`
	DurationSeconds float64 `json:"duration"`
}

// DiarizationResult is an ordered sequence of speaker segments. A nil
// *DiarizationResult means diarization was disabled or unavailable, which
// is distinct from a present result with zero segments.
type DiarizationResult struct {
	Segments             []DiarizationSegment `json:"segments"`
	SpeakerCount         int                  `json:"speaker_count"`
	TotalDurationSeconds float64              `json:"total_duration"`
}

// SpeakerSpan is one attributed unit of the final transcript.
type SpeakerSpan struct {
	Text         string  `json:"text"`
	SpeakerLabel string  `json:"speaker"`
	StartSeconds float64 `json:"start"`
	EndSeconds   float64 `json:"end"`
}

// DiarizationSummary is the diarization block of the outward result.
type DiarizationSummary struct {
	Enabled              bool          `json:"enabled"`
	SpeakerCount         int           `json:"speakerCount"`
	TotalDurationSeconds float64       `json:"totalDuration"`
	Segments             []SpeakerSpan `json:"segments"`
}

// Result is the single envelope a completed run surfaces to the caller.
type Result struct {
	Success          bool               `json:"success"`
	Transcription    string             `json:"transcription"`
	WordCount        int                `json:"wordCount"`
	ProcessingTimeMs int64              `json:"processingTime"`
	FileName         string             `json:"fileName"`
	FileSize         int64              `json:"fileSize"`
	Timestamp        time.Time          `json:"timestamp"`
	FormatConverted  bool               `json:"formatConverted"`
	OriginalFormat   string             `json:"originalFormat,omitempty"`
	AudioDuration    float64            `json:"audioDuration,omitempty"`
	Diarization      DiarizationSummary `json:"diarization"`
}
