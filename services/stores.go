package services

import (
	"context"
	"time"

	"github.com/thatchakomP/pixel-cat-callior/models"
	"github.com/thatchakomP/pixel-cat-callior/repository"
)

// UserStore is the user persistence the services need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UnlockedCats(ctx context.Context, userID string) ([]models.Cat, error)
	ResetDailyCalories(ctx context.Context, userID string, at time.Time) error
	SetActiveCat(ctx context.Context, userID, catID string) error
	Onboard(ctx context.Context, o repository.Onboarding) error
	UpdateStats(ctx context.Context, u repository.StatsUpdate) error
	ApplyFoodLog(ctx context.Context, u repository.FoodLogUpdate) (repository.CalorieTotals, error)
}

// CatStore is the catalog persistence the services need.
type CatStore interface {
	Unlockable(ctx context.Context) ([]models.Cat, error)
	SaveCatAssets(ctx context.Context, assets map[string]string) error
}

type FoodLogStore interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]models.FoodLogEntry, error)
}
