package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	config "github.com/meetscribe/backend/config/web"
	"github.com/meetscribe/backend/gateways/web"
	"github.com/meetscribe/backend/gateways/web/handler"
	"github.com/meetscribe/backend/pkg/logger"
	historyStorage "github.com/meetscribe/backend/services/history/storage"
	historyUsecase "github.com/meetscribe/backend/services/history/usecase"
	"github.com/meetscribe/backend/services/pipeline/clients/asr"
	"github.com/meetscribe/backend/services/pipeline/clients/converter"
	"github.com/meetscribe/backend/services/pipeline/clients/diarizer"
	pipelineUsecase "github.com/meetscribe/backend/services/pipeline/usecase"
	"github.com/meetscribe/backend/services/report/clients/llm"
	reportUsecase "github.com/meetscribe/backend/services/report/usecase"
	settingsStorage "github.com/meetscribe/backend/services/settings/storage"
	settingsUsecase "github.com/meetscribe/backend/services/settings/usecase"
	ssoStorage "github.com/meetscribe/backend/services/sso/storage"
	ssoUsecase "github.com/meetscribe/backend/services/sso/usecase"
)

func main() {
	log := logger.New(logger.Config{
		Level:      slog.LevelDebug,
		Output:     os.Stderr,
		AddSource:  true,
		JSONFormat: false,
	})

	cfg := config.MustLoad()
	log.Info("configuration loaded",
		slog.Int("port", cfg.Port),
		slog.String("converter_url", cfg.Converter.URL),
		slog.String("asr_url", cfg.ASR.URL),
		slog.String("diarization_url", cfg.Diarization.URL),
		slog.Bool("postgres_configured", cfg.PostgresDSN != ""))

	ctx := logger.WithContext(context.Background(), log)
	rootCtx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer cancel()

	if err := run(rootCtx, cfg, log); err != nil {
		log.Error("failed to run()", slog.String("error", err.Error()))
		return
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	settingsStg, historyStg, ssoStg, err := buildStorages(cfg, log)
	if err != nil {
		return err
	}

	converterClient := converter.New(cfg.Converter.URL, log)
	asrClient := asr.New(cfg.ASR.URL, cfg.ASR.APIKey, cfg.ASR.Model, log)
	diarizerClient := diarizer.New(cfg.Diarization.URL, log)
	llmClient := llm.New(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, log)

	h := handler.New(
		pipelineUsecase.New(converterClient, asrClient, diarizerClient, log),
		reportUsecase.New(llmClient, log),
		settingsUsecase.New(settingsStg),
		historyUsecase.New(historyStg),
		ssoUsecase.New(cfg.JWTSecret, ssoStg),
		cfg.JWTSecret,
		log,
	)

	srv := web.New(cfg, h, log)
	return srv.Start(ctx)
}

// buildStorages wires Postgres storage when a DSN is configured and
// falls back to in-memory storage otherwise.
func buildStorages(cfg *config.Config, log *slog.Logger) (settingsStorage.Storage, historyStorage.Storage, ssoStorage.Storage, error) {
	if cfg.PostgresDSN == "" {
		log.Warn("no POSTGRES_DSN set, using in-memory storage")
		return settingsStorage.NewMemory(), historyStorage.NewMemory(), ssoStorage.NewMemory(), nil
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	settingsStg, err := settingsStorage.NewPostgres(db)
	if err != nil {
		return nil, nil, nil, err
	}
	historyStg, err := historyStorage.NewPostgres(db)
	if err != nil {
		return nil, nil, nil, err
	}
	ssoStg, err := ssoStorage.NewPostgres(db)
	if err != nil {
		return nil, nil, nil, err
	}

	log.Info("postgres storage initialized")
	return settingsStg, historyStg, ssoStg, nil
}
