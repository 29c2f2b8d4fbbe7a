package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thatchakomP/pixel-cat-callior/models"
	"github.com/thatchakomP/pixel-cat-callior/progression"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// UserRepository persists users and their unlocked cats.
type UserRepository struct {
	DB *gorm.DB
}

// NewUserRepository creates and returns a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetByID loads a user with its active cat.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Preload("ActiveCat").First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetByEmail looks a user up by login email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// UnlockedCats returns the user's collection in unlock order.
func (r *UserRepository) UnlockedCats(ctx context.Context, userID string) ([]models.Cat, error) {
	var rows []models.UserUnlockedCat
	err := r.DB.WithContext(ctx).
		Preload("Cat").
		Where("user_id = ?", userID).
		Order("unlocked_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load unlocked cats: %w", err)
	}
	cats := make([]models.Cat, 0, len(rows))
	for _, row := range rows {
		cats = append(cats, row.Cat)
	}
	return cats, nil
}

// ResetDailyCalories zeroes today's counter and stamps the reset time.
func (r *UserRepository) ResetDailyCalories(ctx context.Context, userID string, at time.Time) error {
	err := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"current_calories_today": 0,
		"calories_updated_at":    at,
	}).Error
	if err != nil {
		return fmt.Errorf("reset daily calories: %w", err)
	}
	return nil
}

// SetActiveCat points the user at one of their unlocked cats.
func (r *UserRepository) SetActiveCat(ctx context.Context, userID, catID string) error {
	res := r.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("active_cat_id", catID)
	if res.Error != nil {
		return fmt.Errorf("set active cat: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Onboarding carries everything written when a user finishes onboarding.
type Onboarding struct {
	UserID             string
	Name               string
	Age                int
	Gender             string
	HeightCm           float64
	WeightKg           float64
	BMI                float64
	Goals              []string
	DailyCalorieTarget int
	StarterCat         *models.Cat
	At                 time.Time
}

// Onboard stores the biometrics, creates the starter cat and makes it active
// and unlocked in one transaction.
func (r *UserRepository) Onboard(ctx context.Context, o Onboarding) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o.StarterCat).Error; err != nil {
			return fmt.Errorf("create starter cat: %w", err)
		}
		err := tx.Model(&models.User{}).Where("id = ?", o.UserID).Updates(map[string]any{
			"name":                 o.Name,
			"age":                  o.Age,
			"gender":               o.Gender,
			"height_cm":            o.HeightCm,
			"weight_kg":            o.WeightKg,
			"bmi":                  o.BMI,
			"goals":                goalsValue(o.Goals),
			"daily_calorie_target": o.DailyCalorieTarget,
			"active_cat_id":        o.StarterCat.ID,
		}).Error
		if err != nil {
			return fmt.Errorf("update onboarded user: %w", err)
		}
		return addUnlocks(tx, o.UserID, []string{o.StarterCat.ID}, o.At)
	})
}

// StatsUpdate is the result of a weight/goal change.
type StatsUpdate struct {
	UserID             string
	WeightKg           float64
	BMI                float64
	Goals              []string
	DailyCalorieTarget int
	UnlockedCatIDs     []string
	At                 time.Time
}

// UpdateStats writes new biometrics and any unlocks they triggered together.
func (r *UserRepository) UpdateStats(ctx context.Context, u StatsUpdate) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", u.UserID).Updates(map[string]any{
			"weight_kg":            u.WeightKg,
			"bmi":                  u.BMI,
			"goals":                goalsValue(u.Goals),
			"daily_calorie_target": u.DailyCalorieTarget,
		})
		if res.Error != nil {
			return fmt.Errorf("update stats: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return addUnlocks(tx, u.UserID, u.UnlockedCatIDs, u.At)
	})
}

// FoodLogUpdate is one meal to add to a user's counters.
type FoodLogUpdate struct {
	Entry          *models.FoodLogEntry
	UnlockedCatIDs []string
	At             time.Time
}

// CalorieTotals are a user's counters after a meal was added.
type CalorieTotals struct {
	Today    int
	Lifetime int
}

// ApplyFoodLog stores the log entry, adds its calories to the counters and
// records the unlocks in one transaction. The counters are read under a row
// lock inside the transaction, so concurrent meals never overwrite each other.
// Today's counter starts from zero when the stored stamp is on an earlier UTC
// day than At.
func (r *UserRepository) ApplyFoodLog(ctx context.Context, u FoodLogUpdate) (CalorieTotals, error) {
	var totals CalorieTotals
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "current_calories_today", "total_lifetime_calories", "calories_updated_at").
			First(&user, "id = ?", u.Entry.UserID).Error
		if err != nil {
			return notFound(err)
		}
		if err := tx.Create(u.Entry).Error; err != nil {
			return fmt.Errorf("create food log: %w", err)
		}

		totals = CalorieTotals{Today: user.CurrentCaloriesToday, Lifetime: user.TotalLifetimeCalories}
		if progression.NewDay(user.CaloriesUpdatedAt, u.At) {
			totals.Today = 0
		}
		totals.Today += u.Entry.TotalCalories
		totals.Lifetime += u.Entry.TotalCalories

		err = tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
			"current_calories_today":  totals.Today,
			"total_lifetime_calories": totals.Lifetime,
			"calories_updated_at":     u.At,
		}).Error
		if err != nil {
			return fmt.Errorf("update calories: %w", err)
		}
		return addUnlocks(tx, user.ID, u.UnlockedCatIDs, u.At)
	})
	if err != nil {
		return CalorieTotals{}, err
	}
	return totals, nil
}

func addUnlocks(tx *gorm.DB, userID string, catIDs []string, at time.Time) error {
	if len(catIDs) == 0 {
		return nil
	}
	rows := make([]models.UserUnlockedCat, 0, len(catIDs))
	for _, id := range catIDs {
		rows = append(rows, models.UserUnlockedCat{UserID: userID, CatID: id, UnlockedAt: at})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("record unlocks: %w", err)
	}
	return nil
}

func goalsValue(goals []string) datatypes.JSONSlice[string] {
	if goals == nil {
		goals = []string{}
	}
	return datatypes.NewJSONSlice(goals)
}
