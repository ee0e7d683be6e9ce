package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/meetscribe/backend/pkg/json"
	"github.com/meetscribe/backend/pkg/jwt"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// Authenticated rejects requests without a valid bearer token and puts
// the token's subject on the request context.
func (h *Handler) Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := jwt.ParseTokenFromHeader(r)
		if err != nil {
			json.WriteError(w, http.StatusForbidden, errors.New("access denied"))
			return
		}

		userID, err := jwt.ParseUserID(r.Context(), token, h.jwtSecret)
		if err != nil {
			json.WriteError(w, http.StatusForbidden, errors.New("access denied"))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}
