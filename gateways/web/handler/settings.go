package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/meetscribe/backend/pkg/json"
	"github.com/meetscribe/backend/services/settings/entity"
)

type settingsResponse struct {
	Success  bool             `json:"success"`
	Settings *entity.Settings `json:"settings"`
	Message  string           `json:"message,omitempty"`
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.log.Error("failed to fetch settings", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusInternalServerError, errors.New("failed to fetch settings"))
		return
	}

	json.WriteJSON(w, http.StatusOK, settingsResponse{
		Success:  true,
		Settings: settings,
	})
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdateRequest
	if err := json.ParseJSON(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	settings, err := h.settings.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidASRProvider) || errors.Is(err, entity.ErrInvalidLLMProvider) {
			json.WriteError(w, http.StatusBadRequest, err)
			return
		}
		h.log.Error("failed to update settings", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusInternalServerError, errors.New("failed to update settings"))
		return
	}

	json.WriteJSON(w, http.StatusOK, settingsResponse{
		Success:  true,
		Settings: settings,
		Message:  "Settings updated successfully",
	})
}
