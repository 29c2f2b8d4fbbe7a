// Package progression holds the rules that turn logged calories into unlocked cats.
package progression

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type BMICategory string

const (
	BMISlim   BMICategory = "slim"
	BMINormal BMICategory = "normal"
	BMIFat    BMICategory = "fat"
	BMIObese  BMICategory = "obese"
)

// Valid reports whether c is one of the four categories.
func (c BMICategory) Valid() bool {
	switch c {
	case BMISlim, BMINormal, BMIFat, BMIObese:
		return true
	}
	return false
}

// Goal is a dietary goal tag picked by the user.
type Goal string

const (
	GoalBeSlimmer       Goal = "be slimmer"
	GoalBeFatter        Goal = "be fatter"
	GoalReduceCarbs     Goal = "reduce carbohydrate"
	GoalIncreaseProtein Goal = "increase protein"
	GoalMaintainWeight  Goal = "maintain weight"
)

// Goals lists the accepted goal vocabulary.
var Goals = []Goal{GoalBeSlimmer, GoalBeFatter, GoalReduceCarbs, GoalIncreaseProtein, GoalMaintainWeight}

// Valid reports whether g belongs to the goal vocabulary.
func (g Goal) Valid() bool {
	for _, known := range Goals {
		if g == known {
			return true
		}
	}
	return false
}

func hasGoal(goals []Goal, g Goal) bool {
	for _, have := range goals {
		if have == g {
			return true
		}
	}
	return false
}

// Profile is the tracked state of one user as seen by the rules engine.
type Profile struct {
	ID                    string
	Age                   int
	Gender                Gender
	HeightCm              float64
	WeightKg              float64
	BMI                   float64
	Goals                 []Goal
	DailyCalorieTarget    int
	CurrentCaloriesToday  int
	TotalLifetimeCalories int
	ActiveCompanionID     string
	UnlockedCompanionIDs  []string
	// LastUpdate is when CurrentCaloriesToday was last written.
	LastUpdate time.Time
}

// BMICategory derives the category from the stored BMI.
func (p Profile) BMICategory() BMICategory {
	return CategorizeBMI(p.BMI)
}

// HasUnlocked reports whether the companion id is in the unlocked set.
func (p Profile) HasUnlocked(id string) bool {
	for _, u := range p.UnlockedCompanionIDs {
		if u == id {
			return true
		}
	}
	return false
}

// Onboarded reports whether the profile has a starter companion.
func (p Profile) Onboarded() bool {
	return p.ActiveCompanionID != ""
}

// UnlockCriteria gates a companion. Every present clause must hold.
type UnlockCriteria struct {
	TotalCalories *int         `json:"totalCalories,omitempty"`
	GoalMatch     []Goal       `json:"goalMatch,omitempty"`
	BMITarget     *BMICategory `json:"bmiTarget,omitempty"`
}

// Companion is a collectible cat.
type Companion struct {
	ID        string
	Name      string
	IsDefault bool
	Criteria  UnlockCriteria
	AssetURL  string
	Prompt    string
}

// FoodItem is one food detected on a meal photo.
type FoodItem struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// FoodLogEntry records a single upload. It is never modified after creation.
type FoodLogEntry struct {
	ID            string
	ProfileID     string
	ImageURL      string
	Foods         []FoodItem
	TotalCalories int
	LoggedAt      time.Time
}

// IntPtr and CategoryPtr build optional criteria clauses.
func IntPtr(v int) *int { return &v }

func CategoryPtr(c BMICategory) *BMICategory { return &c }
