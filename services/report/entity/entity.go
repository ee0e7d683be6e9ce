package entity

// SpeakerLine is one attributed line of transcript used to build the
// speaker-labeled prompt rendering.
type SpeakerLine struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

type GenerateRequest struct {
	Transcription string
	SpeakerLines  []SpeakerLine
	// Model overrides the generator's default model when set.
	Model string
}

type ActionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

type Report struct {
	Summary      string       `json:"summary"`
	KeyPoints    []string     `json:"keyPoints"`
	ActionItems  []ActionItem `json:"actionItems"`
	Participants []string     `json:"participants"`
	Date         string       `json:"date"`
}
