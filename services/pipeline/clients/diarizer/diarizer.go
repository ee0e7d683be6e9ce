package diarizer

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/meetscribe/backend/services/pipeline/entity"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

func New(baseURL string, log *slog.Logger) *Client {
	log.Debug("creating diarizer client", slog.String("base_url", baseURL))
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        log,
	}
}

// Diarize asks the speaker-segmentation service to partition the audio.
// It is strictly best-effort: every failure path logs and returns nil,
// because a flaky diarizer must never block transcription.
func (c *Client) Diarize(ctx context.Context, audioBase64, format string) *entity.DiarizationResult {
	c.log.Info("requesting diarization",
		slog.String("format", format),
		slog.Int("payload_size", len(audioBase64)))

	form := url.Values{}
	form.Set("audio_base64", audioBase64)
	form.Set("format", format)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/diarize-base64", strings.NewReader(form.Encode()))
	if err != nil {
		c.log.Warn("failed to create diarization request", slog.String("error", err.Error()))
		return nil
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("diarization service unreachable", slog.String("error", err.Error()))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("diarization service unavailable", slog.Int("status_code", resp.StatusCode))
		return nil
	}

	var result entity.DiarizationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.log.Warn("malformed diarization response", slog.String("error", err.Error()))
		return nil
	}

	c.log.Info("diarization received",
		slog.Int("segments", len(result.Segments)),
		slog.Int("speaker_count", result.SpeakerCount),
		slog.Float64("total_duration", result.TotalDurationSeconds))

	return &result
}
