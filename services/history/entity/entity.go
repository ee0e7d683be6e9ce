package entity

import "time"

type Transcription struct {
	ID              string    `json:"id"`
	FileName        string    `json:"fileName"`
	FileSize        int64     `json:"fileSize"`
	DurationSeconds float64   `json:"duration,omitempty"`
	WordCount       int       `json:"wordCount"`
	Text            string    `json:"transcription"`
	ASRProvider     string    `json:"asrProvider"`
	ASRModel        string    `json:"asrModel,omitempty"`
	FormatConverted bool      `json:"formatConverted"`
	OriginalFormat  string    `json:"originalFormat,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Report struct {
	ID           string    `json:"id"`
	Summary      string    `json:"summary"`
	KeyPoints    string    `json:"keyPoints"`   // JSON-encoded list
	ActionItems  string    `json:"actionItems"` // JSON-encoded list
	Participants string    `json:"participants"`
	Date         string    `json:"date"`
	LLMProvider  string    `json:"llmProvider"`
	LLMModel     string    `json:"llmModel"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ProviderCount struct {
	Provider string `json:"provider"`
	Count    int    `json:"count"`
}

type Stats struct {
	TotalTranscriptions      int             `json:"totalTranscriptions"`
	TotalReports             int             `json:"totalReports"`
	TotalWords               int64           `json:"totalWords"`
	TotalAudioSize           int64           `json:"totalAudioSize"`
	TranscriptionsByProvider []ProviderCount `json:"transcriptionsByProvider"`
	ReportsByProvider        []ProviderCount `json:"reportsByProvider"`
}

type Dashboard struct {
	Stats                Stats           `json:"stats"`
	RecentTranscriptions []Transcription `json:"recentTranscriptions"`
	RecentReports        []Report        `json:"recentReports"`
}
