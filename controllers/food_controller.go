package controllers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/thatchakomP/pixel-cat-callior/entity"
	"github.com/thatchakomP/pixel-cat-callior/mapper"
	"github.com/thatchakomP/pixel-cat-callior/models"
	"github.com/thatchakomP/pixel-cat-callior/services"
)

const maxUploadBytes = 10 << 20

type FoodService interface {
	LogFood(ctx context.Context, userID string, img io.Reader) (*services.FoodResult, error)
	History(ctx context.Context, userID string, limit int) ([]models.FoodLogEntry, error)
}

type FoodController struct {
	food FoodService
}

func NewFoodController(food FoodService) *FoodController {
	return &FoodController{food: food}
}

// Upload logs the meal in the foodImage form field.
func (c *FoodController) Upload(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("foodImage")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image file provided.")
		return
	}
	defer file.Close()
	if ct := header.Header.Get("Content-Type"); !acceptedImageType(ct) {
		writeError(w, http.StatusBadRequest, "File must be an image")
		return
	}

	res, err := c.food.LogFood(r.Context(), id, file)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := "Food logged successfully"
	if len(res.Unlocked) > 0 {
		msg = "Food logged and new cats unlocked!"
	}
	next, _ := nextCat(res.View.Profile, res.View.Next)
	writeJSON(w, http.StatusCreated, entity.FoodUploadResponse{
		Message:       msg,
		FoodLog:       mapper.FoodLogModelToEntity(*res.Entry),
		User:          mapper.UserToEntity(res.View.User, res.View.Profile, res.View.Unlocked),
		UnlockedCats:  mapper.CompanionsToEntities(res.Unlocked),
		NextUnlockCat: next,
	})
}

func acceptedImageType(ct string) bool {
	return ct == "" || ct == "application/octet-stream" || strings.HasPrefix(ct, "image/")
}

// Logs returns recent meals, newest first. ?limit= caps the count.
func (c *FoodController) Logs(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	entries, err := c.food.History(r.Context(), id, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]entity.FoodLog, 0, len(entries))
	for _, e := range entries {
		out = append(out, mapper.FoodLogModelToEntity(e))
	}
	writeJSON(w, http.StatusOK, out)
}
