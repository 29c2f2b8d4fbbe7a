package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/thatchakomP/pixel-cat-callior/progression"
)

// User is an account together with its tracked diet state.
type User struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Name     string `gorm:"size:255" json:"name"`

	Age      int     `json:"age"`
	Gender   string  `gorm:"size:16" json:"gender"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
	BMI      float64 `json:"bmi"`

	Goals              datatypes.JSONSlice[string] `json:"goals"`
	DailyCalorieTarget int                         `json:"daily_calorie_target"`

	CurrentCaloriesToday  int `gorm:"default:0" json:"current_calories_today"`
	TotalLifetimeCalories int `gorm:"default:0" json:"total_lifetime_calories"`
	// CaloriesUpdatedAt moves only when CurrentCaloriesToday is written.
	CaloriesUpdatedAt time.Time `json:"calories_updated_at"`

	ActiveCatID *string `gorm:"type:varchar(36);index" json:"active_cat_id"`
	ActiveCat   *Cat    `gorm:"foreignKey:ActiveCatID" json:"active_cat,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Cat is a collectible companion. Starter cats are created per user at
// onboarding with IsDefault set and OwnerID pointing at that user.
type Cat struct {
	ID                string                                         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name              string                                         `gorm:"size:255;not null" json:"name"`
	IsDefault         bool                                           `gorm:"default:false;index" json:"is_default"`
	OwnerID           *string                                        `gorm:"type:varchar(36);index" json:"owner_id,omitempty"`
	BodyType          string                                         `gorm:"size:16" json:"body_type"`
	UnlockCriteria    datatypes.JSONType[progression.UnlockCriteria] `json:"unlock_criteria"`
	VideoURL          string                                         `gorm:"size:1024" json:"video_url"`
	DescriptionPrompt string                                         `gorm:"type:text" json:"description_prompt"`
	CreatedAt         time.Time                                      `json:"created_at"`
	UpdatedAt         time.Time                                      `json:"updated_at"`
}

func (c *Cat) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// UserUnlockedCat is the membership row. The composite key keeps a cat from
// being unlocked twice for the same user.
type UserUnlockedCat struct {
	UserID     string    `gorm:"type:varchar(36);primaryKey"`
	CatID      string    `gorm:"type:varchar(36);primaryKey"`
	UnlockedAt time.Time `gorm:"not null"`

	Cat Cat `gorm:"foreignKey:CatID"`
}

// FoodLogEntry is written once per uploaded meal photo and never updated.
type FoodLogEntry struct {
	ID            string                                    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        string                                    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ImageURL      string                                    `gorm:"size:1024" json:"image_url"`
	DetectedFoods datatypes.JSONSlice[progression.FoodItem] `json:"detected_foods"`
	TotalCalories int                                       `json:"total_calories"`
	CreatedAt     time.Time                                 `json:"created_at"`
}

func (f *FoodLogEntry) BeforeCreate(*gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{&User{}, &Cat{}, &UserUnlockedCat{}, &FoodLogEntry{}}
}
