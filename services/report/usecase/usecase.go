package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/meetscribe/backend/services/report/entity"
)

const minTranscriptLength = 50

const systemPrompt = "You are a helpful assistant that analyzes meeting transcripts and generates structured meeting reports in JSON format."

// Generator is the narrow contract over the text-generation provider.
// An empty model means the provider's configured default.
type Generator interface {
	Generate(ctx context.Context, model, systemPrompt, userPrompt string) (string, error)
}

type Usecase interface {
	Generate(ctx context.Context, req *entity.GenerateRequest) (*entity.Report, error)
}

type usecase struct {
	generator Generator
	log       *slog.Logger
}

func New(generator Generator, log *slog.Logger) Usecase {
	return &usecase{
		generator: generator,
		log:       log,
	}
}

// Generate turns a transcript into a structured meeting report. Trivially
// short transcripts are rejected before any provider call is made.
func (u *usecase) Generate(ctx context.Context, req *entity.GenerateRequest) (*entity.Report, error) {
	if len(strings.TrimSpace(req.Transcription)) < minTranscriptLength {
		return nil, entity.ErrTranscriptTooShort
	}

	prompt := buildPrompt(req)
	u.log.Debug("report prompt built",
		slog.Int("prompt_length", len(prompt)),
		slog.Bool("speaker_labeled", len(req.SpeakerLines) > 0))

	content, err := u.generator.Generate(ctx, req.Model, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	report, err := parseReport(content)
	if err != nil {
		u.log.Error("failed to parse generated report", slog.String("error", err.Error()))
		return nil, err
	}

	u.log.Info("report generated",
		slog.Int("key_points", len(report.KeyPoints)),
		slog.Int("action_items", len(report.ActionItems)),
		slog.Int("participants", len(report.Participants)))

	return report, nil
}

func buildPrompt(req *entity.GenerateRequest) string {
	transcription := req.Transcription
	speakerLabeled := len(req.SpeakerLines) > 0
	if speakerLabeled {
		lines := make([]string, len(req.SpeakerLines))
		for i, line := range req.SpeakerLines {
			lines[i] = fmt.Sprintf("[%s]: %s", line.Speaker, line.Text)
		}
		transcription = strings.Join(lines, "\n\n")
	}

	var b strings.Builder
	b.WriteString("You are an expert meeting analyst. Analyze the following meeting transcription and generate a comprehensive meeting report.\n\n")
	if speakerLabeled {
		b.WriteString("NOTE: The transcription includes speaker labels (e.g., [SPEAKER_00], [SPEAKER_01]). Use these to track who said what and identify participants.\n\n")
	}
	b.WriteString("MEETING TRANSCRIPTION:\n")
	b.WriteString(transcription)
	b.WriteString("\n\nPlease provide a JSON response with the following structure:\n")
	b.WriteString(`{
  "summary": "A concise 2-3 sentence summary of the meeting's main purpose and outcome",
  "keyPoints": ["Key point 1 from the meeting", "Key point 2 from the meeting"],
  "actionItems": [
    {
      "task": "Specific action item",
      "assignee": "Person responsible (optional, mention 'Not specified' if unclear)",
      "deadline": "Deadline date or timeframe (optional, mention 'Not specified' if unclear)"
    }
  ],
  "participants": ["Participant 1 name or role", "Participant 2 name or role"],
  "date": "Meeting date or 'Not specified'"
}`)
	b.WriteString("\n\nGuidelines:\n")
	b.WriteString("1. Extract 5-7 key points that capture the main discussions\n")
	b.WriteString("2. Identify action items with specific tasks, assignees, and deadlines when mentioned\n")
	b.WriteString("3. List participants mentioned by name or identified through speaker labels\n")
	if speakerLabeled {
		b.WriteString("4. When speaker labels are present, track which speakers contributed to different topics\n")
	}
	b.WriteString("Only include information explicitly mentioned in the transcription. If information is not available, use \"Not specified\".\n")
	b.WriteString("Return ONLY valid JSON, no additional text.")

	return b.String()
}

// parseReport extracts the first balanced JSON object from the reply,
// tolerating prose around it, then validates the fixed schema.
func parseReport(content string) (*entity.Report, error) {
	jsonContent := extractJSONObject(content)
	if jsonContent == "" {
		return nil, fmt.Errorf("%w: no JSON object in response", entity.ErrUnparsableReport)
	}

	var report entity.Report
	if err := json.Unmarshal([]byte(jsonContent), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUnparsableReport, err)
	}

	if report.Summary == "" || report.KeyPoints == nil || report.ActionItems == nil {
		return nil, entity.ErrInvalidReport
	}

	return &report, nil
}

// extractJSONObject returns the first balanced {...} block, skipping
// braces inside JSON strings.
func extractJSONObject(content string) string {
	start := strings.IndexByte(content, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1]
			}
		}
	}

	return ""
}
