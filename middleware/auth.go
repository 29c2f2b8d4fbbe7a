package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/thatchakomP/pixel-cat-callior/entity"
	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/util"
)

type contextKey string

const UserContextKey contextKey = "user_id"

// JWT rejects requests without a valid session token and stores the token's
// subject in the request context. Browsers cannot set headers on an
// EventSource, so a token query parameter is accepted as well.
func JWT(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "Authorization header is missing")
				return
			}
			claims, err := util.ValidateJWT(token, secret)
			if err != nil {
				logger.Debug("Rejected token", "path", r.URL.Path, "error", err)
				unauthorized(w, "Invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return r.URL.Query().Get("token")
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(entity.ErrorResponse{Error: msg})
}

// UserID returns the authenticated user id, or "" outside the JWT group.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserContextKey).(string)
	return id
}

// WithUserID is used by tests to call handlers without a token.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserContextKey, userID)
}
