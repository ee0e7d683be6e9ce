package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meetscribe/backend/pkg/gen"
	"github.com/meetscribe/backend/services/settings/entity"
)

type postgres struct {
	db   *sql.DB
	uuid gen.UUIDGenerator
}

func NewPostgres(db *sql.DB) (Storage, error) {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			id                   UUID PRIMARY KEY,
			asr_provider         TEXT NOT NULL,
			asr_model            TEXT NOT NULL DEFAULT '',
			llm_provider         TEXT NOT NULL,
			llm_model            TEXT NOT NULL,
			llm_api_key          TEXT NOT NULL DEFAULT '',
			llm_base_url         TEXT NOT NULL DEFAULT '',
			diarization_enabled  BOOLEAN NOT NULL,
			diarization_provider TEXT NOT NULL,
			updated_at           TIMESTAMPTZ NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("failed to create settings table: %w", err)
	}

	return &postgres{
		db:   db,
		uuid: gen.UUID(),
	}, nil
}

func (p *postgres) Get(ctx context.Context) (*entity.Settings, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, asr_provider, asr_model, llm_provider, llm_model,
		       llm_api_key, llm_base_url, diarization_enabled,
		       diarization_provider, updated_at
		FROM settings LIMIT 1`)

	var s entity.Settings
	err := row.Scan(&s.ID, &s.ASRProvider, &s.ASRModel, &s.LLMProvider,
		&s.LLMModel, &s.LLMAPIKey, &s.LLMBaseURL, &s.DiarizationEnabled,
		&s.DiarizationProvider, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &s, nil
}

func (p *postgres) Save(ctx context.Context, settings *entity.Settings) (*entity.Settings, error) {
	if settings.ID == "" {
		settings.ID = p.uuid.NextString()
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO settings (id, asr_provider, asr_model, llm_provider,
			llm_model, llm_api_key, llm_base_url, diarization_enabled,
			diarization_provider, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			asr_provider = EXCLUDED.asr_provider,
			asr_model = EXCLUDED.asr_model,
			llm_provider = EXCLUDED.llm_provider,
			llm_model = EXCLUDED.llm_model,
			llm_api_key = EXCLUDED.llm_api_key,
			llm_base_url = EXCLUDED.llm_base_url,
			diarization_enabled = EXCLUDED.diarization_enabled,
			diarization_provider = EXCLUDED.diarization_provider,
			updated_at = EXCLUDED.updated_at`,
		settings.ID, settings.ASRProvider, settings.ASRModel,
		settings.LLMProvider, settings.LLMModel, settings.LLMAPIKey,
		settings.LLMBaseURL, settings.DiarizationEnabled,
		settings.DiarizationProvider, settings.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings, nil
}
