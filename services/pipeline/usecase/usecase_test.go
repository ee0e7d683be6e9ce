package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/meetscribe/backend/pkg/logger"
	"github.com/meetscribe/backend/services/pipeline/consts"
	"github.com/meetscribe/backend/services/pipeline/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	called bool
	out    *entity.ConvertedAudio
	err    error
}

func (f *fakeConverter) Convert(ctx context.Context, audioBase64, inputFormat string) (*entity.ConvertedAudio, error) {
	f.called = true
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeRecognizer struct {
	called     bool
	gotPayload string
	out        *entity.TranscriptionResult
	err        error
}

func (f *fakeRecognizer) Transcribe(ctx context.Context, audioBase64 string) (*entity.TranscriptionResult, error) {
	f.called = true
	f.gotPayload = audioBase64
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeDiarizer struct {
	called bool
	out    *entity.DiarizationResult
}

func (f *fakeDiarizer) Diarize(ctx context.Context, audioBase64, format string) *entity.DiarizationResult {
	f.called = true
	return f.out
}

func newRequest(fileName, mimeType string, diarization bool) *entity.TranscribeRequest {
	data := []byte("fake audio bytes")
	return &entity.TranscribeRequest{
		Audio: &entity.AudioAsset{
			Data:             data,
			SizeBytes:        int64(len(data)),
			DeclaredFileName: fileName,
			DeclaredMimeType: mimeType,
		},
		Config: entity.RunConfig{DiarizationEnabled: diarization},
	}
}

func transcriptionOf(text string) *entity.TranscriptionResult {
	return &entity.TranscriptionResult{
		Text:             text,
		WordCount:        len(strings.Fields(text)),
		ProcessingTimeMs: 42,
	}
}

func TestRun_NativeFormatSkipsConversion(t *testing.T) {
	conv := &fakeConverter{}
	rec := &fakeRecognizer{out: transcriptionOf("Hello world.")}
	u := New(conv, rec, &fakeDiarizer{}, logger.Discard())

	result, err := u.Run(context.Background(), newRequest("clip.wav", "audio/wav", false))

	require.NoError(t, err)
	assert.False(t, conv.called)
	assert.False(t, result.FormatConverted)
	assert.Empty(t, result.OriginalFormat)
	assert.Equal(t, "Hello world.", result.Transcription)
	assert.Equal(t, 2, result.WordCount)
}

func TestRun_NonNativeFormatConvertsAndSendsCanonicalAudio(t *testing.T) {
	conv := &fakeConverter{out: &entity.ConvertedAudio{Data: []byte("canonical"), SizeBytes: 9}}
	rec := &fakeRecognizer{out: transcriptionOf("Converted fine.")}
	u := New(conv, rec, &fakeDiarizer{}, logger.Discard())

	result, err := u.Run(context.Background(), newRequest("clip.mp3", "audio/mpeg", false))

	require.NoError(t, err)
	assert.True(t, conv.called)
	assert.True(t, result.FormatConverted)
	assert.Equal(t, "mp3", result.OriginalFormat)
	// the recognizer must see the canonical bytes, not the originals
	assert.Equal(t, "Y2Fub25pY2Fs", rec.gotPayload)
}

func TestRun_OversizedPayloadRejectedBeforeAnyCall(t *testing.T) {
	conv := &fakeConverter{}
	rec := &fakeRecognizer{}
	diar := &fakeDiarizer{}
	u := New(conv, rec, diar, logger.Discard())

	req := newRequest("huge.mp3", "audio/mpeg", true)
	req.Audio.SizeBytes = consts.MaxAudioSize + 1

	_, err := u.Run(context.Background(), req)

	require.ErrorIs(t, err, entity.ErrAudioTooLarge)
	assert.False(t, conv.called)
	assert.False(t, rec.called)
	assert.False(t, diar.called)
}

func TestRun_MissingPayloadRejected(t *testing.T) {
	u := New(&fakeConverter{}, &fakeRecognizer{}, &fakeDiarizer{}, logger.Discard())

	_, err := u.Run(context.Background(), &entity.TranscribeRequest{})
	require.ErrorIs(t, err, entity.ErrNoAudio)

	_, err = u.Run(context.Background(), &entity.TranscribeRequest{Audio: &entity.AudioAsset{}})
	require.ErrorIs(t, err, entity.ErrNoAudio)
}

func TestRun_ConverterUnavailableIsFatal(t *testing.T) {
	conv := &fakeConverter{err: entity.ErrConverterUnavailable}
	rec := &fakeRecognizer{}
	u := New(conv, rec, &fakeDiarizer{}, logger.Discard())

	_, err := u.Run(context.Background(), newRequest("clip.mp3", "audio/mpeg", false))

	require.ErrorIs(t, err, entity.ErrConverterUnavailable)
	assert.False(t, rec.called, "transcription must never be attempted after a failed conversion")
}

func TestRun_DiarizationUnavailableIsNotFatal(t *testing.T) {
	rec := &fakeRecognizer{out: transcriptionOf("Still works.")}
	diar := &fakeDiarizer{out: nil}
	u := New(&fakeConverter{}, rec, diar, logger.Discard())

	result, err := u.Run(context.Background(), newRequest("clip.wav", "audio/wav", true))

	require.NoError(t, err)
	assert.True(t, diar.called)
	assert.False(t, result.Diarization.Enabled)
	assert.Nil(t, result.Diarization.Segments)
	assert.Equal(t, "Still works.", result.Transcription)
}

func TestRun_DiarizationSkippedWhenNotRequested(t *testing.T) {
	diar := &fakeDiarizer{out: &entity.DiarizationResult{}}
	u := New(&fakeConverter{}, &fakeRecognizer{out: transcriptionOf("No speakers wanted.")}, diar, logger.Discard())

	result, err := u.Run(context.Background(), newRequest("clip.wav", "audio/wav", false))

	require.NoError(t, err)
	assert.False(t, diar.called)
	assert.False(t, result.Diarization.Enabled)
}

func TestRun_DiarizationMergedIntoResult(t *testing.T) {
	diar := &fakeDiarizer{out: &entity.DiarizationResult{
		Segments: []entity.DiarizationSegment{
			{SpeakerLabel: "SPK_0", StartSeconds: 0, EndSeconds: 2},
			{SpeakerLabel: "SPK_1", StartSeconds: 2, EndSeconds: 4},
		},
		SpeakerCount:         2,
		TotalDurationSeconds: 5,
	}}
	rec := &fakeRecognizer{out: transcriptionOf("Hello world. How are you? I am fine.")}
	u := New(&fakeConverter{}, rec, diar, logger.Discard())

	result, err := u.Run(context.Background(), newRequest("clip.wav", "audio/wav", true))

	require.NoError(t, err)
	assert.True(t, result.Diarization.Enabled)
	assert.Equal(t, 2, result.Diarization.SpeakerCount)
	assert.Equal(t, 5.0, result.Diarization.TotalDurationSeconds)
	require.Len(t, result.Diarization.Segments, 3)
	assert.Equal(t, entity.SpeakerSpan{Text: "Hello world.", SpeakerLabel: "SPK_0", StartSeconds: 0, EndSeconds: 2}, result.Diarization.Segments[0])
	assert.Equal(t, entity.SpeakerSpan{Text: "How are you?", SpeakerLabel: "SPK_1", StartSeconds: 2, EndSeconds: 4}, result.Diarization.Segments[1])
	assert.Equal(t, entity.SpeakerSpan{Text: "I am fine.", SpeakerLabel: "UNKNOWN", StartSeconds: 5, EndSeconds: 5}, result.Diarization.Segments[2])
}

func TestRun_EmptyDiarizationCompletesWithPlainTranscript(t *testing.T) {
	diar := &fakeDiarizer{out: &entity.DiarizationResult{}}
	u := New(&fakeConverter{}, &fakeRecognizer{out: transcriptionOf("Nobody segmented.")}, diar, logger.Discard())

	result, err := u.Run(context.Background(), newRequest("clip.wav", "audio/wav", true))

	require.NoError(t, err)
	assert.False(t, result.Diarization.Enabled)
	assert.Equal(t, "Nobody segmented.", result.Transcription)
}

func TestRun_TranscriptionFailurePropagates(t *testing.T) {
	rec := &fakeRecognizer{err: entity.ErrEmptyTranscription}
	u := New(&fakeConverter{}, rec, &fakeDiarizer{}, logger.Discard())

	_, err := u.Run(context.Background(), newRequest("clip.wav", "audio/wav", false))

	require.ErrorIs(t, err, entity.ErrEmptyTranscription)
}

func TestRun_DurationLimitErrorPropagatesTyped(t *testing.T) {
	rec := &fakeRecognizer{err: &entity.DurationLimitError{
		Code:       consts.CodeDurationLimit,
		Message:    "audio exceeds the provider's duration limit",
		Suggestion: "shorten the clip",
	}}
	u := New(&fakeConverter{}, rec, &fakeDiarizer{}, logger.Discard())

	_, err := u.Run(context.Background(), newRequest("clip.wav", "audio/wav", false))

	dle, ok := entity.AsDurationLimit(err)
	require.True(t, ok)
	assert.Equal(t, consts.CodeDurationLimit, dle.Code)
	assert.Contains(t, dle.Suggestion, "shorten")
}
