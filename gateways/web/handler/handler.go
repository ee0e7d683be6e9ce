package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meetscribe/backend/pkg/json"
	historyUsecase "github.com/meetscribe/backend/services/history/usecase"
	pipelineUsecase "github.com/meetscribe/backend/services/pipeline/usecase"
	reportUsecase "github.com/meetscribe/backend/services/report/usecase"
	settingsUsecase "github.com/meetscribe/backend/services/settings/usecase"
	ssoUsecase "github.com/meetscribe/backend/services/sso/usecase"
)

type Handler struct {
	pipeline  pipelineUsecase.Usecase
	report    reportUsecase.Usecase
	settings  settingsUsecase.Usecase
	history   historyUsecase.Usecase
	sso       ssoUsecase.Usecase
	jwtSecret string
	log       *slog.Logger
}

func New(
	pipeline pipelineUsecase.Usecase,
	report reportUsecase.Usecase,
	settings settingsUsecase.Usecase,
	history historyUsecase.Usecase,
	sso ssoUsecase.Usecase,
	jwtSecret string,
	log *slog.Logger,
) *Handler {
	return &Handler{
		pipeline:  pipeline,
		report:    report,
		settings:  settings,
		history:   history,
		sso:       sso,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1", func(api chi.Router) {
		api.Get("/health", h.HealthCheck)

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Register)
			auth.Post("/login", h.Login)
			auth.With(h.Authenticated).Get("/me", h.Me)
		})

		api.Post("/transcribe", h.Transcribe)
		api.Post("/reports", h.GenerateReport)
		api.Get("/settings", h.GetSettings)
		api.Put("/settings", h.UpdateSettings)
		api.Get("/dashboard", h.Dashboard)
	})

	h.log.Info("all routes registered")
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	json.WriteJSON(w, http.StatusOK, map[string]bool{"status": true})
}
