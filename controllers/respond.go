// Package controllers turns HTTP requests into service calls.
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/thatchakomP/pixel-cat-callior/entity"
	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/mapper"
	"github.com/thatchakomP/pixel-cat-callior/middleware"
	"github.com/thatchakomP/pixel-cat-callior/progression"
	"github.com/thatchakomP/pixel-cat-callior/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, entity.ErrorResponse{Error: msg})
}

// writeServiceError maps a service error to a status. Unknown errors are
// logged and hidden behind a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrCatNotUnlocked):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyOnboarded),
		errors.Is(err, services.ErrNotOnboarded):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := middleware.UserID(r.Context())
	if id == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return id, true
}

func nextCat(p progression.Profile, next *progression.Companion) (*entity.Cat, int) {
	if next == nil {
		return nil, 0
	}
	cat := mapper.CompanionToEntity(*next)
	return &cat, progression.CaloriesToGo(p, *next)
}

func profileResponse(msg string, v *services.ProfileView) entity.ProfileResponse {
	next, toGo := nextCat(v.Profile, v.Next)
	return entity.ProfileResponse{
		Message:       msg,
		User:          mapper.UserToEntity(v.User, v.Profile, v.Unlocked),
		NextUnlockCat: next,
		CaloriesToGo:  toGo,
	}
}
