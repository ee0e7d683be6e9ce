package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/meetscribe/backend/services/report/entity"
	openai "github.com/sashabaranov/go-openai"
)

type Client struct {
	client       *openai.Client
	defaultModel string
	log          *slog.Logger
}

// New builds a chat-completion client. An empty baseURL talks to the
// default OpenAI endpoint; setting it points the same wire format at any
// compatible provider.
func New(baseURL, apiKey, model string, log *slog.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	log.Debug("creating llm client",
		slog.String("base_url", cfg.BaseURL),
		slog.String("default_model", model),
		slog.Bool("api_key_set", apiKey != ""))

	return &Client{
		client:       openai.NewClientWithConfig(cfg),
		defaultModel: model,
		log:          log,
	}
}

func (c *Client) Generate(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	if model == "" {
		model = c.defaultModel
	}

	c.log.Info("requesting completion",
		slog.String("model", model),
		slog.Int("prompt_length", len(userPrompt)))

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		c.log.Error("completion request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		c.log.Error("provider returned no content")
		return "", fmt.Errorf("%w: provider returned no content", entity.ErrGenerationFailed)
	}

	content := resp.Choices[0].Message.Content
	c.log.Info("completion received", slog.Int("content_length", len(content)))

	return content, nil
}
