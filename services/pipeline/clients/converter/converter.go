package converter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-audio/wav"
	"github.com/meetscribe/backend/services/pipeline/consts"
	"github.com/meetscribe/backend/services/pipeline/entity"
)

const healthTimeout = 2 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

type convertRequest struct {
	AudioData    string `json:"audioData"`
	InputFormat  string `json:"inputFormat"`
	OutputFormat string `json:"outputFormat"`
}

type convertResponse struct {
	Success      bool   `json:"success"`
	OutputFormat string `json:"outputFormat"`
	AudioData    string `json:"audioData"`
	Size         int    `json:"size"`
	Message      string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func New(baseURL string, log *slog.Logger) *Client {
	log.Debug("creating converter client", slog.String("base_url", baseURL))
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		log:        log,
	}
}

// Convert transcodes the payload to canonical WAV (pcm_s16le, 16kHz,
// mono). The converter's health is probed first so a dead service is
// detected before the full payload is shipped. Conversion is never
// retried: resubmitting a large payload is expensive and a failed
// conversion rarely succeeds without a root-cause fix.
func (c *Client) Convert(ctx context.Context, audioBase64, inputFormat string) (*entity.ConvertedAudio, error) {
	if err := c.checkHealth(ctx); err != nil {
		c.log.Error("converter health probe failed",
			slog.String("url", c.baseURL),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w at %s, start the converter service: %v",
			entity.ErrConverterUnavailable, c.baseURL, err)
	}

	c.log.Info("converting audio",
		slog.String("input_format", inputFormat),
		slog.Int("payload_size", len(audioBase64)))

	body, err := json.Marshal(convertRequest{
		AudioData:    audioBase64,
		InputFormat:  inputFormat,
		OutputFormat: consts.FormatWAV,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal convert request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/convert-base64", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create convert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrConversionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.log.Error("converter returned error",
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", string(respBody)))
		return nil, fmt.Errorf("%w: status %d", entity.ErrConversionFailed, resp.StatusCode)
	}

	var result convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: bad response: %v", entity.ErrConversionFailed, err)
	}
	if !result.Success {
		return nil, fmt.Errorf("%w: %s", entity.ErrConversionFailed, result.Message)
	}

	data, err := base64.StdEncoding.DecodeString(result.AudioData)
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable payload: %v", entity.ErrConversionFailed, err)
	}

	converted := &entity.ConvertedAudio{
		Data:      data,
		SizeBytes: len(data),
	}
	c.probeWav(converted)

	c.log.Info("conversion successful",
		slog.String("from", inputFormat),
		slog.Int("size_bytes", converted.SizeBytes),
		slog.Float64("duration_seconds", converted.DurationSeconds))

	return converted, nil
}

func (c *Client) checkHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("undecodable health response: %w", err)
	}
	if health.Status != "healthy" {
		return fmt.Errorf("converter reports status %q", health.Status)
	}

	return nil
}

// probeWav reads the converted WAV header for duration and sample rate.
// A malformed header only costs us the metadata, the bytes still go to
// the recognizer as-is.
func (c *Client) probeWav(converted *entity.ConvertedAudio) {
	decoder := wav.NewDecoder(bytes.NewReader(converted.Data))
	decoder.ReadInfo()
	if decoder.Err() != nil || !decoder.IsValidFile() {
		c.log.Warn("converted audio is not a readable WAV, skipping probe")
		return
	}
	converted.SampleRate = int(decoder.SampleRate)

	duration, err := decoder.Duration()
	if err != nil {
		c.log.Warn("failed to read WAV duration", slog.String("error", err.Error()))
		return
	}
	converted.DurationSeconds = duration.Seconds()
}
