package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/meetscribe/backend/pkg/gen"
	"github.com/meetscribe/backend/services/history/entity"
)

type postgres struct {
	db   *sql.DB
	uuid gen.UUIDGenerator
}

func NewPostgres(db *sql.DB) (Storage, error) {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS transcriptions (
			id               UUID PRIMARY KEY,
			file_name        TEXT NOT NULL,
			file_size        BIGINT NOT NULL,
			duration_seconds DOUBLE PRECISION NOT NULL DEFAULT 0,
			word_count       INT NOT NULL,
			text             TEXT NOT NULL,
			asr_provider     TEXT NOT NULL,
			asr_model        TEXT NOT NULL DEFAULT '',
			format_converted BOOLEAN NOT NULL,
			original_format  TEXT NOT NULL DEFAULT '',
			created_at       TIMESTAMPTZ NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("failed to create transcriptions table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS reports (
			id           UUID PRIMARY KEY,
			summary      TEXT NOT NULL,
			key_points   TEXT NOT NULL,
			action_items TEXT NOT NULL,
			participants TEXT NOT NULL,
			date         TEXT NOT NULL,
			llm_provider TEXT NOT NULL,
			llm_model    TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL
		)`); err != nil {
		return nil, fmt.Errorf("failed to create reports table: %w", err)
	}

	return &postgres{
		db:   db,
		uuid: gen.UUID(),
	}, nil
}

func (p *postgres) SaveTranscription(ctx context.Context, t *entity.Transcription) (*entity.Transcription, error) {
	t.ID = p.uuid.NextString()
	t.CreatedAt = time.Now()

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO transcriptions (id, file_name, file_size, duration_seconds,
			word_count, text, asr_provider, asr_model, format_converted,
			original_format, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.ID, t.FileName, t.FileSize, t.DurationSeconds, t.WordCount, t.Text,
		t.ASRProvider, t.ASRModel, t.FormatConverted, t.OriginalFormat, t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save transcription: %w", err)
	}

	return t, nil
}

func (p *postgres) SaveReport(ctx context.Context, r *entity.Report) (*entity.Report, error) {
	r.ID = p.uuid.NextString()
	r.CreatedAt = time.Now()

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO reports (id, summary, key_points, action_items,
			participants, date, llm_provider, llm_model, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.Summary, r.KeyPoints, r.ActionItems, r.Participants,
		r.Date, r.LLMProvider, r.LLMModel, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}

	return r, nil
}

func (p *postgres) Dashboard(ctx context.Context) (*entity.Dashboard, error) {
	var stats entity.Stats
	err := p.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(word_count), 0), COALESCE(SUM(file_size), 0)
		FROM transcriptions`).
		Scan(&stats.TotalTranscriptions, &stats.TotalWords, &stats.TotalAudioSize)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transcriptions: %w", err)
	}

	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).
		Scan(&stats.TotalReports); err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	stats.TranscriptionsByProvider, err = p.countsBy(ctx,
		`SELECT asr_provider, COUNT(*) FROM transcriptions GROUP BY asr_provider ORDER BY asr_provider`)
	if err != nil {
		return nil, err
	}
	stats.ReportsByProvider, err = p.countsBy(ctx,
		`SELECT llm_provider, COUNT(*) FROM reports GROUP BY llm_provider ORDER BY llm_provider`)
	if err != nil {
		return nil, err
	}

	recentTranscriptions, err := p.recentTranscriptions(ctx)
	if err != nil {
		return nil, err
	}
	recentReports, err := p.recentReports(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.Dashboard{
		Stats:                stats,
		RecentTranscriptions: recentTranscriptions,
		RecentReports:        recentReports,
	}, nil
}

func (p *postgres) countsBy(ctx context.Context, query string) ([]entity.ProviderCount, error) {
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count by provider: %w", err)
	}
	defer rows.Close()

	var out []entity.ProviderCount
	for rows.Next() {
		var pc entity.ProviderCount
		if err := rows.Scan(&pc.Provider, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan provider count: %w", err)
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

func (p *postgres) recentTranscriptions(ctx context.Context) ([]entity.Transcription, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, file_name, file_size, duration_seconds, word_count, text,
		       asr_provider, asr_model, format_converted, original_format, created_at
		FROM transcriptions ORDER BY created_at DESC LIMIT $1`, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transcriptions: %w", err)
	}
	defer rows.Close()

	var out []entity.Transcription
	for rows.Next() {
		var t entity.Transcription
		if err := rows.Scan(&t.ID, &t.FileName, &t.FileSize, &t.DurationSeconds,
			&t.WordCount, &t.Text, &t.ASRProvider, &t.ASRModel,
			&t.FormatConverted, &t.OriginalFormat, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transcription: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (p *postgres) recentReports(ctx context.Context) ([]entity.Report, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, summary, key_points, action_items, participants, date,
		       llm_provider, llm_model, created_at
		FROM reports ORDER BY created_at DESC LIMIT $1`, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reports: %w", err)
	}
	defer rows.Close()

	var out []entity.Report
	for rows.Next() {
		var r entity.Report
		if err := rows.Scan(&r.ID, &r.Summary, &r.KeyPoints, &r.ActionItems,
			&r.Participants, &r.Date, &r.LLMProvider, &r.LLMModel, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
