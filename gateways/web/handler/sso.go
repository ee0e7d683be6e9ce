package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/meetscribe/backend/pkg/json"
	"github.com/meetscribe/backend/services/sso/entity"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterRequest
	if err := json.ParseJSON(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	resp, err := h.sso.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, entity.ErrUserExists) {
			json.WriteError(w, http.StatusBadRequest, err)
			return
		}
		h.log.Error("registration failed", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusInternalServerError, errors.New("registration failed"))
		return
	}

	json.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if err := json.ParseJSON(r, &req); err != nil {
		json.WriteError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	resp, err := h.sso.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			json.WriteError(w, http.StatusUnauthorized, err)
			return
		}
		h.log.Error("login failed", slog.String("error", err.Error()))
		json.WriteError(w, http.StatusInternalServerError, errors.New("login failed"))
		return
	}

	json.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	if userID == "" {
		json.WriteError(w, http.StatusForbidden, errors.New("access denied"))
		return
	}

	user, err := h.sso.GetUser(r.Context(), userID)
	if err != nil {
		json.WriteError(w, http.StatusNotFound, errors.New("user not found"))
		return
	}

	json.WriteJSON(w, http.StatusOK, user)
}
