package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/meetscribe/backend/pkg/logger"
	"github.com/meetscribe/backend/services/report/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const longTranscript = "We discussed the quarterly roadmap, agreed on the release date, and assigned follow-up tasks to the platform team."

type fakeGenerator struct {
	reply     string
	err       error
	called    bool
	gotModel  string
	gotPrompt string
}

func (g *fakeGenerator) Generate(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	g.called = true
	g.gotModel = model
	g.gotPrompt = userPrompt
	return g.reply, g.err
}

func TestGenerate_ParsesPlainJSONReply(t *testing.T) {
	gen := &fakeGenerator{reply: `{
		"summary": "Roadmap agreed for Q3.",
		"keyPoints": ["Release date fixed", "Platform team owns follow-ups"],
		"actionItems": [{"task": "Draft release notes", "assignee": "Alex", "deadline": "Friday"}],
		"participants": ["Alex", "Sam"],
		"date": "Not specified"
	}`}
	u := New(gen, logger.Discard())

	report, err := u.Generate(context.Background(), &entity.GenerateRequest{
		Transcription: longTranscript,
		Model:         "gpt-4o-mini",
	})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", gen.gotModel)
	assert.Equal(t, "Roadmap agreed for Q3.", report.Summary)
	require.Len(t, report.ActionItems, 1)
	assert.Equal(t, "Draft release notes", report.ActionItems[0].Task)
	assert.Equal(t, []string{"Alex", "Sam"}, report.Participants)
}

func TestGenerate_ExtractsJSONFromProseWrappedReply(t *testing.T) {
	gen := &fakeGenerator{reply: "Sure, here is the report you asked for:\n" +
		`{"summary": "Weekly { sync } wrapped up.", "keyPoints": [], "actionItems": [], "participants": [], "date": "2026-09-01"}` +
		"\nLet me know if you need anything else."}
	u := New(gen, logger.Discard())

	report, err := u.Generate(context.Background(), &entity.GenerateRequest{Transcription: longTranscript})

	require.NoError(t, err)
	assert.Equal(t, "Weekly { sync } wrapped up.", report.Summary)
	assert.Empty(t, report.KeyPoints)
	assert.Equal(t, "2026-09-01", report.Date)
}

func TestGenerate_ShortTranscriptRejectedBeforeProviderCall(t *testing.T) {
	gen := &fakeGenerator{}
	u := New(gen, logger.Discard())

	_, err := u.Generate(context.Background(), &entity.GenerateRequest{Transcription: "too short"})

	require.ErrorIs(t, err, entity.ErrTranscriptTooShort)
	assert.False(t, gen.called)
}

func TestGenerate_WhitespacePaddingDoesNotCountTowardLength(t *testing.T) {
	u := New(&fakeGenerator{}, logger.Discard())

	padded := "   short   " + strings.Repeat(" ", 100)
	_, err := u.Generate(context.Background(), &entity.GenerateRequest{Transcription: padded})

	require.ErrorIs(t, err, entity.ErrTranscriptTooShort)
}

func TestGenerate_SpeakerLinesRenderedIntoPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: `{"summary": "ok", "keyPoints": [], "actionItems": [], "participants": [], "date": ""}`}
	u := New(gen, logger.Discard())

	_, err := u.Generate(context.Background(), &entity.GenerateRequest{
		Transcription: longTranscript,
		SpeakerLines: []entity.SpeakerLine{
			{Speaker: "SPEAKER_00", Text: "Release slips a week."},
			{Speaker: "SPEAKER_01", Text: "Agreed, moving it."},
		},
	})

	require.NoError(t, err)
	assert.Contains(t, gen.gotPrompt, "[SPEAKER_00]: Release slips a week.")
	assert.Contains(t, gen.gotPrompt, "[SPEAKER_01]: Agreed, moving it.")
	assert.Contains(t, gen.gotPrompt, "speaker labels")
	assert.NotContains(t, gen.gotPrompt, longTranscript)
}

func TestGenerate_PlainPromptOmitsSpeakerNote(t *testing.T) {
	gen := &fakeGenerator{reply: `{"summary": "ok", "keyPoints": [], "actionItems": [], "participants": [], "date": ""}`}
	u := New(gen, logger.Discard())

	_, err := u.Generate(context.Background(), &entity.GenerateRequest{Transcription: longTranscript})

	require.NoError(t, err)
	assert.Contains(t, gen.gotPrompt, longTranscript)
	assert.NotContains(t, gen.gotPrompt, "NOTE: The transcription includes speaker labels")
}

func TestGenerate_GeneratorErrorPropagates(t *testing.T) {
	boom := errors.New("provider exploded")
	u := New(&fakeGenerator{err: boom}, logger.Discard())

	_, err := u.Generate(context.Background(), &entity.GenerateRequest{Transcription: longTranscript})

	require.ErrorIs(t, err, boom)
}

func TestGenerate_NoJSONInReply(t *testing.T) {
	u := New(&fakeGenerator{reply: "I could not produce a report."}, logger.Discard())

	_, err := u.Generate(context.Background(), &entity.GenerateRequest{Transcription: longTranscript})

	require.ErrorIs(t, err, entity.ErrUnparsableReport)
}

func TestGenerate_SchemaViolationsRejected(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"empty summary", `{"summary": "", "keyPoints": [], "actionItems": [], "participants": [], "date": ""}`},
		{"missing key points", `{"summary": "ok", "actionItems": [], "participants": [], "date": ""}`},
		{"missing action items", `{"summary": "ok", "keyPoints": [], "participants": [], "date": ""}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := New(&fakeGenerator{reply: tc.reply}, logger.Discard())

			_, err := u.Generate(context.Background(), &entity.GenerateRequest{Transcription: longTranscript})

			require.ErrorIs(t, err, entity.ErrInvalidReport)
		})
	}
}

func TestExtractJSONObject_BracesInsideStrings(t *testing.T) {
	content := `prefix {"a": "close } brace and \" escaped quote", "b": {"nested": true}} suffix`

	got := extractJSONObject(content)

	assert.Equal(t, `{"a": "close } brace and \" escaped quote", "b": {"nested": true}}`, got)
}

func TestExtractJSONObject_UnbalancedReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", extractJSONObject(`{"summary": "never closed"`))
	assert.Equal(t, "", extractJSONObject("no braces here"))
}
