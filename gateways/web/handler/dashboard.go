package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/meetscribe/backend/pkg/json"
	"github.com/meetscribe/backend/services/history/entity"
)

type dashboardResponse struct {
	Success bool            `json:"success"`
	Stats   entity.Stats    `json:"stats"`
	Recent  dashboardRecent `json:"recent"`
}

type dashboardRecent struct {
	Transcriptions []entity.Transcription `json:"transcriptions"`
	Reports        []entity.Report        `json:"reports"`
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.history.Dashboard(r.Context())
	if err != nil {
		h.log.Error("failed to build dashboard", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusInternalServerError, errors.New("failed to fetch dashboard"))
		return
	}

	json.WriteJSON(w, http.StatusOK, dashboardResponse{
		Success: true,
		Stats:   dashboard.Stats,
		Recent: dashboardRecent{
			Transcriptions: dashboard.RecentTranscriptions,
			Reports:        dashboard.RecentReports,
		},
	})
}
