package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/meetscribe/backend/pkg/json"
	"github.com/meetscribe/backend/services/report/entity"
)

type generateReportRequest struct {
	Transcription string `json:"transcription"`
	Diarization   *struct {
		Enabled  bool                 `json:"enabled"`
		Segments []entity.SpeakerLine `json:"segments"`
	} `json:"diarization"`
}

type generateReportResponse struct {
	Success     bool           `json:"success"`
	Report      *entity.Report `json:"report"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	h.log.Info("generate report request received", slog.String("remote_addr", r.RemoteAddr))

	var req generateReportRequest
	if err := json.ParseJSON(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.Transcription == "" {
		json.WriteError(w, http.StatusBadRequest, errors.New("transcription text is required"))
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.log.Error("failed to load settings", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusInternalServerError, errors.New("failed to load settings"))
		return
	}

	var speakerLines []entity.SpeakerLine
	if req.Diarization != nil && req.Diarization.Enabled {
		speakerLines = req.Diarization.Segments
	}

	report, err := h.report.Generate(r.Context(), &entity.GenerateRequest{
		Transcription: req.Transcription,
		SpeakerLines:  speakerLines,
		Model:         settings.LLMModel,
	})
	if err != nil {
		h.writeReportError(w, err)
		return
	}

	if _, err := h.history.SaveReport(r.Context(), report, settings.LLMProvider, settings.LLMModel); err != nil {
		h.log.Error("failed to save report", slog.String("error", err.Error()))
	}

	json.WriteJSON(w, http.StatusOK, generateReportResponse{
		Success:     true,
		Report:      report,
		GeneratedAt: time.Now(),
	})
	h.log.Info("report response sent", slog.Int("key_points", len(report.KeyPoints)))
}

func (h *Handler) writeReportError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrTranscriptTooShort):
		json.WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, entity.ErrGenerationFailed),
		errors.Is(err, entity.ErrUnparsableReport),
		errors.Is(err, entity.ErrInvalidReport):
		json.WriteError(w, http.StatusBadGateway, err)
	default:
		json.WriteError(w, http.StatusInternalServerError, err)
	}
}
