package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meetscribe/backend/pkg/logger"
	"github.com/meetscribe/backend/services/history/entity"
	"github.com/meetscribe/backend/services/history/storage"
	reportEntity "github.com/meetscribe/backend/services/report/entity"
)

type Usecase interface {
	SaveTranscription(ctx context.Context, t *entity.Transcription) (*entity.Transcription, error)
	SaveReport(ctx context.Context, report *reportEntity.Report, provider, model string) (*entity.Report, error)
	Dashboard(ctx context.Context) (*entity.Dashboard, error)
}

type usecase struct {
	storage storage.Storage
}

func New(storage storage.Storage) Usecase {
	return &usecase{
		storage: storage,
	}
}

func (u *usecase) SaveTranscription(ctx context.Context, t *entity.Transcription) (*entity.Transcription, error) {
	saved, err := u.storage.SaveTranscription(ctx, t)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "transcription saved",
		"id", saved.ID,
		"file_name", saved.FileName,
		"word_count", saved.WordCount)

	return saved, nil
}

func (u *usecase) SaveReport(ctx context.Context, report *reportEntity.Report, provider, model string) (*entity.Report, error) {
	keyPoints, err := json.Marshal(report.KeyPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to encode key points: %w", err)
	}
	actionItems, err := json.Marshal(report.ActionItems)
	if err != nil {
		return nil, fmt.Errorf("failed to encode action items: %w", err)
	}
	participants, err := json.Marshal(report.Participants)
	if err != nil {
		return nil, fmt.Errorf("failed to encode participants: %w", err)
	}

	saved, err := u.storage.SaveReport(ctx, &entity.Report{
		Summary:      report.Summary,
		KeyPoints:    string(keyPoints),
		ActionItems:  string(actionItems),
		Participants: string(participants),
		Date:         report.Date,
		LLMProvider:  provider,
		LLMModel:     model,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "report saved", "id", saved.ID, "llm_provider", provider)

	return saved, nil
}

func (u *usecase) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	return u.storage.Dashboard(ctx)
}
