// Package entity holds the JSON shapes exchanged over the HTTP API.
package entity

import "time"

type Cat struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	IsDefault      bool           `json:"isDefault"`
	BodyType       string         `json:"bodyType,omitempty"`
	VideoURL       string         `json:"videoUrl"`
	UnlockCriteria UnlockCriteria `json:"unlockCriteria"`
}

type UnlockCriteria struct {
	TotalCalories *int     `json:"totalCalories,omitempty"`
	GoalMatch     []string `json:"goalMatch,omitempty"`
	BMITarget     string   `json:"bmiTarget,omitempty"`
}

// User is the profile as returned to its owner. The password never leaves
// the server.
type User struct {
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	Name                  string    `json:"name"`
	Age                   int       `json:"age"`
	Gender                string    `json:"gender"`
	HeightCm              float64   `json:"heightCm"`
	WeightKg              float64   `json:"weightKg"`
	BMI                   float64   `json:"bmi"`
	BMICategory           string    `json:"bmiCategory,omitempty"`
	Goals                 []string  `json:"goals"`
	DailyCalorieTarget    int       `json:"dailyCalorieTarget"`
	CurrentCaloriesToday  int       `json:"currentCaloriesToday"`
	TotalLifetimeCalories int       `json:"totalLifetimeCalories"`
	ActiveCatID           string    `json:"activeCatId,omitempty"`
	ActiveCat             *Cat      `json:"activeCat,omitempty"`
	UnlockedCats          []Cat     `json:"unlockedCats"`
	CreatedAt             time.Time `json:"createdAt"`
}

type FoodItem struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type FoodLog struct {
	ID            string     `json:"id"`
	ImageURL      string     `json:"imageUrl"`
	DetectedFoods []FoodItem `json:"detectedFoods"`
	TotalCalories int        `json:"totalCalories"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type OnboardRequest struct {
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Gender   string   `json:"gender"`
	HeightCm float64  `json:"heightCm"`
	WeightKg float64  `json:"weightKg"`
	Goals    []string `json:"goals"`
}

type UpdateStatsRequest struct {
	WeightKg float64  `json:"weightKg"`
	Goals    []string `json:"goals"`
}

type SetActiveCatRequest struct {
	ActiveCatID string `json:"activeCatId"`
}

// ProfileResponse is what every profile-changing endpoint returns so a
// client can replace its cached copy wholesale.
type ProfileResponse struct {
	Message       string `json:"message,omitempty"`
	User          User   `json:"user"`
	NextUnlockCat *Cat   `json:"nextUnlockCat"`
	CaloriesToGo  int    `json:"caloriesToGo"`
}

type FoodUploadResponse struct {
	Message       string  `json:"message"`
	FoodLog       FoodLog `json:"foodLog"`
	User          User    `json:"user"`
	UnlockedCats  []Cat   `json:"unlockedCats"`
	NextUnlockCat *Cat    `json:"nextUnlockCat"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
