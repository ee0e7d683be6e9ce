package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/meetscribe/backend/pkg/logger"
	"github.com/meetscribe/backend/services/settings/entity"
	"github.com/meetscribe/backend/services/settings/storage"
)

var validASRProviders = map[string]bool{
	"zai-sdk":    true,
	"openrouter": true,
	"local":      true,
}

var validLLMProviders = map[string]bool{
	"openai":     true,
	"openrouter": true,
	"local":      true,
	"anthropic":  true,
}

type Usecase interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Update(ctx context.Context, req *entity.UpdateRequest) (*entity.Settings, error)
}

type usecase struct {
	storage storage.Storage
}

func New(storage storage.Storage) Usecase {
	return &usecase{
		storage: storage,
	}
}

// Get returns the current settings, creating defaults on first read.
func (u *usecase) Get(ctx context.Context) (*entity.Settings, error) {
	settings, err := u.storage.Get(ctx)
	if errors.Is(err, entity.ErrNotFound) {
		logger.Info(ctx, "no settings found, creating defaults")
		return u.storage.Save(ctx, entity.Defaults())
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}

func (u *usecase) Update(ctx context.Context, req *entity.UpdateRequest) (*entity.Settings, error) {
	if req.ASRProvider != nil && !validASRProviders[*req.ASRProvider] {
		return nil, entity.ErrInvalidASRProvider
	}
	if req.LLMProvider != nil && !validLLMProviders[*req.LLMProvider] {
		return nil, entity.ErrInvalidLLMProvider
	}

	settings, err := u.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.ASRProvider != nil {
		settings.ASRProvider = *req.ASRProvider
	}
	if req.ASRModel != nil {
		settings.ASRModel = *req.ASRModel
	}
	if req.LLMProvider != nil {
		settings.LLMProvider = *req.LLMProvider
	}
	if req.LLMModel != nil {
		settings.LLMModel = *req.LLMModel
	}
	if req.LLMAPIKey != nil {
		settings.LLMAPIKey = *req.LLMAPIKey
	}
	if req.LLMBaseURL != nil {
		settings.LLMBaseURL = *req.LLMBaseURL
	}
	if req.DiarizationEnabled != nil {
		settings.DiarizationEnabled = *req.DiarizationEnabled
	}
	if req.DiarizationProvider != nil {
		settings.DiarizationProvider = *req.DiarizationProvider
	}
	settings.UpdatedAt = time.Now()

	logger.Info(ctx, "updating settings",
		"asr_provider", settings.ASRProvider,
		"llm_provider", settings.LLMProvider,
		"diarization_enabled", settings.DiarizationEnabled)

	return u.storage.Save(ctx, settings)
}
