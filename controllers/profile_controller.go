package controllers

import (
	"context"
	"net/http"

	"github.com/thatchakomP/pixel-cat-callior/entity"
	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/mapper"
	"github.com/thatchakomP/pixel-cat-callior/models"
	"github.com/thatchakomP/pixel-cat-callior/progression"
	"github.com/thatchakomP/pixel-cat-callior/services"
)

// ProfileService is what the profile endpoints need from the service layer.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*services.ProfileView, error)
	Onboard(ctx context.Context, userID string, in services.OnboardInput) (*services.ProfileView, error)
	UpdateStats(ctx context.Context, userID string, weightKg float64, goals []string) (*services.ProfileView, []progression.Companion, error)
	SetActiveCat(ctx context.Context, userID, catID string) (*services.ProfileView, error)
	Catalog(ctx context.Context) ([]models.Cat, error)
}

type ProfileController struct {
	profiles ProfileService
}

func NewProfileController(profiles ProfileService) *ProfileController {
	return &ProfileController{profiles: profiles}
}

// Get returns the profile with today's counter reset if the day rolled over.
func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	v, err := c.profiles.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse("", v))
}

func (c *ProfileController) Onboard(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req entity.OnboardRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := c.profiles.Onboard(r.Context(), id, services.OnboardInput{
		Name:     req.Name,
		Age:      req.Age,
		Gender:   req.Gender,
		HeightCm: req.HeightCm,
		WeightKg: req.WeightKg,
		Goals:    req.Goals,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse("Onboarding complete", v))
}

// UpdateStats answers with the refreshed profile and, under unlockedCats,
// anything the new weight or goals unlocked.
func (c *ProfileController) UpdateStats(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req entity.UpdateStatsRequest
	if !decode(w, r, &req) {
		return
	}
	v, unlocked, err := c.profiles.UpdateStats(r.Context(), id, req.WeightKg, req.Goals)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	msg := "Stats updated"
	if len(unlocked) > 0 {
		msg = "Stats updated and new cats unlocked"
		logger.Info("Stats update unlocked cats", "user_id", id, "count", len(unlocked))
	}
	writeJSON(w, http.StatusOK, struct {
		entity.ProfileResponse
		UnlockedCats []entity.Cat `json:"unlockedCats"`
	}{profileResponse(msg, v), mapper.CompanionsToEntities(unlocked)})
}

func (c *ProfileController) SetActiveCat(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	var req entity.SetActiveCatRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := c.profiles.SetActiveCat(r.Context(), id, req.ActiveCatID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse("Active cat updated", v))
}

// Catalog lists every unlockable cat.
func (c *ProfileController) Catalog(w http.ResponseWriter, r *http.Request) {
	cats, err := c.profiles.Catalog(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]entity.Cat, 0, len(cats))
	for _, cat := range cats {
		out = append(out, mapper.CatModelToEntity(cat))
	}
	writeJSON(w, http.StatusOK, out)
}
