package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/meetscribe/backend/services/pipeline/consts"
	"github.com/meetscribe/backend/services/pipeline/entity"
)

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

type transcribeRequest struct {
	AudioData string `json:"audioData"`
	Model     string `json:"model,omitempty"`
}

type transcribeResponse struct {
	Text string `json:"text"`
}

type providerError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func New(baseURL, apiKey, model string, log *slog.Logger) *Client {
	log.Debug("creating asr client",
		slog.String("base_url", baseURL),
		slog.String("model", model),
		slog.Bool("api_key_set", apiKey != ""))
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
		log:        log,
	}
}

// Transcribe submits canonical audio to the recognizer. A duration-limit
// rejection is classified here, in the one place that parses provider
// responses, and surfaced as a typed error. A blank transcript from a
// successful call is a failure of its own kind: the provider worked but
// heard nothing.
func (c *Client) Transcribe(ctx context.Context, audioBase64 string) (*entity.TranscriptionResult, error) {
	c.log.Info("transcribing audio",
		slog.Int("payload_size", len(audioBase64)),
		slog.String("model", c.model))

	body, err := json.Marshal(transcribeRequest{
		AudioData: audioBase64,
		Model:     c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transcribe request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcribe-base64", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create transcribe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrTranscriptionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.classifyError(resp)
	}

	var result transcribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: bad response: %v", entity.ErrTranscriptionFailed, err)
	}

	if strings.TrimSpace(result.Text) == "" {
		c.log.Warn("recognizer returned blank text")
		return nil, entity.ErrEmptyTranscription
	}

	processingTime := time.Since(started)
	transcription := &entity.TranscriptionResult{
		Text:             result.Text,
		WordCount:        len(strings.Fields(result.Text)),
		ProcessingTimeMs: processingTime.Milliseconds(),
	}
	c.log.Info("transcription received",
		slog.Int("word_count", transcription.WordCount),
		slog.Duration("processing_time", processingTime))

	return transcription, nil
}

// classifyError maps a provider rejection to our error taxonomy. The
// substring match on the provider's message lives here and nowhere else.
func (c *Client) classifyError(resp *http.Response) error {
	respBody, _ := io.ReadAll(resp.Body)
	c.log.Error("recognizer returned error",
		slog.Int("status_code", resp.StatusCode),
		slog.String("body", string(respBody)))

	var pe providerError
	if err := json.Unmarshal(respBody, &pe); err == nil {
		message := strings.ToLower(pe.Error.Message)
		if pe.Error.Code == "audio_too_long" ||
			strings.Contains(message, "duration limit") ||
			strings.Contains(message, "maximum duration") {
			return &entity.DurationLimitError{
				Code:       consts.CodeDurationLimit,
				Message:    "audio exceeds the provider's duration limit",
				Suggestion: "shorten the audio clip or switch to an ASR provider with a higher duration ceiling",
			}
		}
		if pe.Error.Message != "" {
			return fmt.Errorf("%w: %s", entity.ErrTranscriptionFailed, pe.Error.Message)
		}
	}

	return fmt.Errorf("%w: status %d", entity.ErrTranscriptionFailed, resp.StatusCode)
}
