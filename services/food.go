package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/thatchakomP/pixel-cat-callior/ai"
	"github.com/thatchakomP/pixel-cat-callior/events"
	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/mapper"
	"github.com/thatchakomP/pixel-cat-callior/models"
	"github.com/thatchakomP/pixel-cat-callior/progression"
	"github.com/thatchakomP/pixel-cat-callior/repository"
	"github.com/thatchakomP/pixel-cat-callior/storage"
)

// FoodDetector recognises the food on a stored photo.
type FoodDetector interface {
	DetectFood(ctx context.Context, imageURL string) (ai.Detection, error)
}

// FoodResult is everything a client needs after logging a meal.
type FoodResult struct {
	Entry    *models.FoodLogEntry
	View     *ProfileView
	Unlocked []progression.Companion
}

type FoodService struct {
	users    UserStore
	cats     CatStore
	logs     FoodLogStore
	images   storage.ImageStore
	detector FoodDetector
	unlocker *progression.Unlocker
	broker   *events.Broker
	now      func() time.Time
}

func NewFoodService(users UserStore, cats CatStore, logs FoodLogStore, images storage.ImageStore, detector FoodDetector, unlocker *progression.Unlocker, broker *events.Broker, now func() time.Time) *FoodService {
	if now == nil {
		now = time.Now
	}
	return &FoodService{
		users:    users,
		cats:     cats,
		logs:     logs,
		images:   images,
		detector: detector,
		unlocker: unlocker,
		broker:   broker,
		now:      now,
	}
}

// LogFood stores the photo, estimates its calories, adds them to the user's
// counters and unlocks any cat the new total reaches. The log entry, the
// counters and the unlocks are written in a single transaction. The user is
// read again once detection has finished, so meals logged at the same time
// each see the other's calories.
func (s *FoodService) LogFood(ctx context.Context, userID string, img io.Reader) (*FoodResult, error) {
	ctx, span := otel.Tracer("services").Start(ctx, "food.log")
	defer span.End()

	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	imageURL, err := s.images.SaveFoodImage(ctx, userID, img, now)
	if err != nil {
		return nil, err
	}
	detection, err := s.detector.DetectFood(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("food.calories", detection.TotalCalories))

	release := counterLocks.lock(userID)
	defer release()
	now = s.now().UTC()

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned, err := s.users.UnlockedCats(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := progression.ResetIfNewDay(mapper.UserModelToProfile(user, owned), now)
	p.CurrentCaloriesToday += detection.TotalCalories
	p.TotalLifetimeCalories += detection.TotalCalories
	p.LastUpdate = now

	unlocked := s.checkUnlocks(ctx, p)

	entry := mapper.FoodLogEntryToModel(progression.FoodLogEntry{
		ProfileID:     userID,
		ImageURL:      imageURL,
		Foods:         detection.Foods,
		TotalCalories: detection.TotalCalories,
		LoggedAt:      now,
	})
	totals, err := s.users.ApplyFoodLog(ctx, repository.FoodLogUpdate{
		Entry:          entry,
		UnlockedCatIDs: mapper.CompanionIDs(unlocked),
		At:             now,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CurrentCaloriesToday = totals.Today
	p.TotalLifetimeCalories = totals.Lifetime
	logger.Info("Food logged", "user_id", userID, "calories", detection.TotalCalories,
		"today", p.CurrentCaloriesToday, "lifetime", p.TotalLifetimeCalories, "unlocked", len(unlocked))

	if s.broker != nil && len(unlocked) > 0 {
		s.broker.Publish(events.Unlock{UserID: userID, Cats: mapper.CompanionsToEntities(unlocked), At: now})
	}

	owned, err = s.users.UnlockedCats(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.UnlockedCompanionIDs = mapper.CompanionIDs(mapper.CatModelsToCompanions(owned))
	view := &ProfileView{User: user, Profile: p, Unlocked: owned}
	if catalog, err := s.cats.Unlockable(ctx); err == nil {
		view.Next = progression.FindNextGoal(p, mapper.CatModelsToCompanions(catalog))
	}
	return &FoodResult{Entry: entry, View: view, Unlocked: unlocked}, nil
}

func (s *FoodService) loadUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// checkUnlocks runs the unlock check. Any failure here is logged and leaves
// the meal logged without unlocks; the criteria are evaluated again on the
// next change.
func (s *FoodService) checkUnlocks(ctx context.Context, p progression.Profile) []progression.Companion {
	cats, err := s.cats.Unlockable(ctx)
	if err != nil {
		logger.Error("Failed to load catalog for unlock check", "user_id", p.ID, "error", err)
		return nil
	}
	unlocked, err := s.unlocker.CheckAndUnlock(ctx, p, mapper.CatModelsToCompanions(cats))
	if err != nil {
		logger.Error("Unlock check failed", "user_id", p.ID, "error", err)
		return nil
	}
	return unlocked
}

// History lists the user's most recent meals.
func (s *FoodService) History(ctx context.Context, userID string, limit int) ([]models.FoodLogEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.logs.ListByUser(ctx, userID, limit)
}
