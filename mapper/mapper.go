package mapper

import (
	"gorm.io/datatypes"

	"github.com/thatchakomP/pixel-cat-callior/entity"
	"github.com/thatchakomP/pixel-cat-callior/models"
	"github.com/thatchakomP/pixel-cat-callior/progression"
)

// UserModelToProfile converts a stored user and its unlocked cat ids into the
// rules engine view.
func UserModelToProfile(u *models.User, unlocked []models.Cat) progression.Profile {
	p := progression.Profile{
		ID:                    u.ID,
		Age:                   u.Age,
		Gender:                progression.Gender(u.Gender),
		HeightCm:              u.HeightCm,
		WeightKg:              u.WeightKg,
		BMI:                   u.BMI,
		Goals:                 StringsToGoals(u.Goals),
		DailyCalorieTarget:    u.DailyCalorieTarget,
		CurrentCaloriesToday:  u.CurrentCaloriesToday,
		TotalLifetimeCalories: u.TotalLifetimeCalories,
		LastUpdate:            u.CaloriesUpdatedAt,
	}
	if u.ActiveCatID != nil {
		p.ActiveCompanionID = *u.ActiveCatID
	}
	for _, c := range unlocked {
		p.UnlockedCompanionIDs = append(p.UnlockedCompanionIDs, c.ID)
	}
	return p
}

// CatModelToCompanion converts a catalog row for the rules engine.
func CatModelToCompanion(c models.Cat) progression.Companion {
	return progression.Companion{
		ID:        c.ID,
		Name:      c.Name,
		IsDefault: c.IsDefault,
		Criteria:  c.UnlockCriteria.Data(),
		AssetURL:  c.VideoURL,
		Prompt:    c.DescriptionPrompt,
	}
}

func CatModelsToCompanions(cats []models.Cat) []progression.Companion {
	out := make([]progression.Companion, 0, len(cats))
	for _, c := range cats {
		out = append(out, CatModelToCompanion(c))
	}
	return out
}

func CompanionIDs(cs []progression.Companion) []string {
	ids := make([]string, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	return ids
}

func StringsToGoals(in []string) []progression.Goal {
	out := make([]progression.Goal, 0, len(in))
	for _, s := range in {
		out = append(out, progression.Goal(s))
	}
	return out
}

func GoalsToStrings(in []progression.Goal) []string {
	out := make([]string, 0, len(in))
	for _, g := range in {
		out = append(out, string(g))
	}
	return out
}

func criteriaToEntity(c progression.UnlockCriteria) entity.UnlockCriteria {
	out := entity.UnlockCriteria{
		TotalCalories: c.TotalCalories,
		GoalMatch:     GoalsToStrings(c.GoalMatch),
	}
	if len(out.GoalMatch) == 0 {
		out.GoalMatch = nil
	}
	if c.BMITarget != nil {
		out.BMITarget = string(*c.BMITarget)
	}
	return out
}

// CatModelToEntity maps a catalog row to its API shape.
func CatModelToEntity(c models.Cat) entity.Cat {
	return entity.Cat{
		ID:             c.ID,
		Name:           c.Name,
		IsDefault:      c.IsDefault,
		BodyType:       c.BodyType,
		VideoURL:       c.VideoURL,
		UnlockCriteria: criteriaToEntity(c.UnlockCriteria.Data()),
	}
}

// CompanionToEntity maps an engine companion, e.g. a freshly unlocked one
// carrying its new asset, to its API shape.
func CompanionToEntity(c progression.Companion) entity.Cat {
	return entity.Cat{
		ID:             c.ID,
		Name:           c.Name,
		IsDefault:      c.IsDefault,
		VideoURL:       c.AssetURL,
		UnlockCriteria: criteriaToEntity(c.Criteria),
	}
}

func CompanionsToEntities(cs []progression.Companion) []entity.Cat {
	out := make([]entity.Cat, 0, len(cs))
	for _, c := range cs {
		out = append(out, CompanionToEntity(c))
	}
	return out
}

// UserToEntity builds the owner's view of a profile. p supplies the values the
// engine may have changed since the row was read (daily reset, new counters).
func UserToEntity(u *models.User, p progression.Profile, unlocked []models.Cat) entity.User {
	out := entity.User{
		ID:                    u.ID,
		Email:                 u.Email,
		Name:                  u.Name,
		Age:                   p.Age,
		Gender:                string(p.Gender),
		HeightCm:              p.HeightCm,
		WeightKg:              p.WeightKg,
		BMI:                   p.BMI,
		Goals:                 GoalsToStrings(p.Goals),
		DailyCalorieTarget:    p.DailyCalorieTarget,
		CurrentCaloriesToday:  p.CurrentCaloriesToday,
		TotalLifetimeCalories: p.TotalLifetimeCalories,
		ActiveCatID:           p.ActiveCompanionID,
		UnlockedCats:          make([]entity.Cat, 0, len(unlocked)),
		CreatedAt:             u.CreatedAt,
	}
	if p.BMI > 0 {
		out.BMICategory = string(p.BMICategory())
	}
	for _, c := range unlocked {
		cat := CatModelToEntity(c)
		out.UnlockedCats = append(out.UnlockedCats, cat)
		if c.ID == p.ActiveCompanionID {
			active := cat
			out.ActiveCat = &active
		}
	}
	return out
}

func FoodItemsToEntities(items []progression.FoodItem) []entity.FoodItem {
	out := make([]entity.FoodItem, 0, len(items))
	for _, f := range items {
		out = append(out, entity.FoodItem(f))
	}
	return out
}

// FoodLogModelToEntity maps a stored log entry to its API shape.
func FoodLogModelToEntity(f models.FoodLogEntry) entity.FoodLog {
	return entity.FoodLog{
		ID:            f.ID,
		ImageURL:      f.ImageURL,
		DetectedFoods: FoodItemsToEntities(f.DetectedFoods),
		TotalCalories: f.TotalCalories,
		CreatedAt:     f.CreatedAt,
	}
}

// FoodLogEntryToModel prepares an engine log record for insertion.
func FoodLogEntryToModel(e progression.FoodLogEntry) *models.FoodLogEntry {
	return &models.FoodLogEntry{
		ID:            e.ID,
		UserID:        e.ProfileID,
		ImageURL:      e.ImageURL,
		DetectedFoods: datatypes.NewJSONSlice(e.Foods),
		TotalCalories: e.TotalCalories,
		CreatedAt:     e.LoggedAt,
	}
}
