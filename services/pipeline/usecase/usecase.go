package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/meetscribe/backend/services/pipeline/consts"
	"github.com/meetscribe/backend/services/pipeline/entity"
)

// Converter transcodes non-native audio into canonical 16kHz mono PCM WAV.
// It is expected to probe the remote service's health before submitting
// the payload and to fail fast with entity.ErrConverterUnavailable.
type Converter interface {
	Convert(ctx context.Context, audioBase64, inputFormat string) (*entity.ConvertedAudio, error)
}

// Recognizer turns canonical audio into text.
type Recognizer interface {
	Transcribe(ctx context.Context, audioBase64 string) (*entity.TranscriptionResult, error)
}

// Diarizer segments audio by speaker. It is best-effort: nil means
// unavailable and must never be treated as a failure.
type Diarizer interface {
	Diarize(ctx context.Context, audioBase64, format string) *entity.DiarizationResult
}

type Usecase interface {
	Run(ctx context.Context, req *entity.TranscribeRequest) (*entity.Result, error)
}

type usecase struct {
	converter  Converter
	recognizer Recognizer
	diarizer   Diarizer
	log        *slog.Logger
}

func New(converter Converter, recognizer Recognizer, diarizer Diarizer, log *slog.Logger) Usecase {
	return &usecase{
		converter:  converter,
		recognizer: recognizer,
		diarizer:   diarizer,
		log:        log,
	}
}

// Run executes one transcription pipeline: detect, normalize if needed,
// transcribe and diarize concurrently, merge, assemble the envelope.
func (u *usecase) Run(ctx context.Context, req *entity.TranscribeRequest) (*entity.Result, error) {
	if req.Audio == nil || len(req.Audio.Data) == 0 {
		return nil, entity.ErrNoAudio
	}
	if req.Audio.SizeBytes > consts.MaxAudioSize {
		u.log.Warn("payload rejected before processing",
			slog.Int64("size_bytes", req.Audio.SizeBytes),
			slog.Int("max_bytes", consts.MaxAudioSize))
		return nil, entity.ErrAudioTooLarge
	}

	run := &entity.PipelineRun{
		Audio:     req.Audio,
		Config:    req.Config,
		StartedAt: time.Now(),
	}

	run.Audio.DetectedFormat = DetectFormat(req.Audio.DeclaredFileName, req.Audio.DeclaredMimeType)
	u.log.Info("audio format detected",
		slog.String("file_name", req.Audio.DeclaredFileName),
		slog.String("mime_type", req.Audio.DeclaredMimeType),
		slog.String("format", run.Audio.DetectedFormat))

	audioBase64 := base64.StdEncoding.EncodeToString(req.Audio.Data)

	if !consts.NativeFormats[run.Audio.DetectedFormat] {
		u.log.Info("format not native, converting to WAV",
			slog.String("format", run.Audio.DetectedFormat))
		converted, err := u.converter.Convert(ctx, audioBase64, run.Audio.DetectedFormat)
		if err != nil {
			u.log.Error("conversion failed", slog.String("error", err.Error()))
			return nil, err
		}
		run.WasConverted = true
		run.CanonicalAudio = converted
		audioBase64 = base64.StdEncoding.EncodeToString(converted.Data)
		u.log.Info("conversion successful",
			slog.String("from", run.Audio.DetectedFormat),
			slog.Int("converted_bytes", converted.SizeBytes),
			slog.Float64("duration_seconds", converted.DurationSeconds))
	}

	// Diarization only needs the audio, not the transcript, so it is
	// dispatched before the (slow) transcription call and joined after.
	var diarizationCh chan *entity.DiarizationResult
	if req.Config.DiarizationEnabled {
		diarizationCh = make(chan *entity.DiarizationResult, 1)
		diarizationFormat := run.Audio.DetectedFormat
		if run.WasConverted {
			diarizationFormat = consts.FormatWAV
		}
		audioForDiarization := audioBase64
		go func() {
			diarizationCh <- u.diarizer.Diarize(ctx, audioForDiarization, diarizationFormat)
		}()
		u.log.Debug("diarization dispatched", slog.String("format", diarizationFormat))
	}

	transcription, err := u.recognizer.Transcribe(ctx, audioBase64)
	if err != nil {
		u.log.Error("transcription failed", slog.String("error", err.Error()))
		return nil, err
	}
	u.log.Info("transcription complete",
		slog.Int("word_count", transcription.WordCount),
		slog.Int64("processing_time_ms", transcription.ProcessingTimeMs))

	var diarization *entity.DiarizationResult
	if diarizationCh != nil {
		select {
		case diarization = <-diarizationCh:
		case <-ctx.Done():
			// abandon the in-flight call, its result is discarded
			return nil, fmt.Errorf("pipeline canceled: %w", ctx.Err())
		}
		if diarization == nil {
			u.log.Warn("diarization unavailable, continuing without speakers")
		} else {
			u.log.Info("diarization complete",
				slog.Int("speaker_count", diarization.SpeakerCount),
				slog.Int("segments", len(diarization.Segments)))
		}
	}

	return u.assemble(run, transcription, diarization), nil
}

func (u *usecase) assemble(run *entity.PipelineRun, transcription *entity.TranscriptionResult, diarization *entity.DiarizationResult) *entity.Result {
	result := &entity.Result{
		Success:          true,
		Transcription:    transcription.Text,
		WordCount:        transcription.WordCount,
		ProcessingTimeMs: transcription.ProcessingTimeMs,
		FileName:         run.Audio.DeclaredFileName,
		FileSize:         run.Audio.SizeBytes,
		Timestamp:        time.Now(),
		FormatConverted:  run.WasConverted,
	}
	if run.WasConverted {
		result.OriginalFormat = run.Audio.DetectedFormat
		result.AudioDuration = run.CanonicalAudio.DurationSeconds
	}

	if diarization != nil && len(diarization.Segments) > 0 {
		result.Diarization = entity.DiarizationSummary{
			Enabled:              true,
			SpeakerCount:         diarization.SpeakerCount,
			TotalDurationSeconds: diarization.TotalDurationSeconds,
			Segments:             MergeSpeakers(transcription.Text, diarization),
		}
	} else {
		result.Diarization = entity.DiarizationSummary{Enabled: false}
	}

	return result
}
