package entity

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("settings not found")
	ErrInvalidASRProvider = errors.New("invalid ASR provider")
	ErrInvalidLLMProvider = errors.New("invalid LLM provider")
)

type Settings struct {
	ID                  string    `json:"id"`
	ASRProvider         string    `json:"asrProvider"`
	ASRModel            string    `json:"asrModel,omitempty"`
	LLMProvider         string    `json:"llmProvider"`
	LLMModel            string    `json:"llmModel"`
	LLMAPIKey           string    `json:"-"`
	LLMBaseURL          string    `json:"llmBaseURL,omitempty"`
	DiarizationEnabled  bool      `json:"diarizationEnabled"`
	DiarizationProvider string    `json:"diarizationProvider"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// UpdateRequest is a partial update: nil fields are left untouched.
type UpdateRequest struct {
	ASRProvider         *string `json:"asrProvider"`
	ASRModel            *string `json:"asrModel"`
	LLMProvider         *string `json:"llmProvider"`
	LLMModel            *string `json:"llmModel"`
	LLMAPIKey           *string `json:"llmApiKey"`
	LLMBaseURL          *string `json:"llmBaseURL"`
	DiarizationEnabled  *bool   `json:"diarizationEnabled"`
	DiarizationProvider *string `json:"diarizationProvider"`
}

func Defaults() *Settings {
	return &Settings{
		ASRProvider:         "zai-sdk",
		LLMProvider:         "openai",
		LLMModel:            "gpt-4o-mini",
		DiarizationEnabled:  true,
		DiarizationProvider: "pyannote",
		UpdatedAt:           time.Now(),
	}
}
