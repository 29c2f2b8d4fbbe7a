package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/mapper"
	"github.com/thatchakomP/pixel-cat-callior/models"
	"github.com/thatchakomP/pixel-cat-callior/progression"
	"github.com/thatchakomP/pixel-cat-callior/repository"
)

// ProfileView is a user as stored plus the engine's reading of it.
type ProfileView struct {
	User     *models.User
	Profile  progression.Profile
	Unlocked []models.Cat
	Next     *progression.Companion
}

// OnboardInput carries the biometrics collected on the onboarding screen.
type OnboardInput struct {
	Name     string
	Age      int
	Gender   string
	HeightCm float64
	WeightKg float64
	Goals    []string
}

type ProfileService struct {
	users     UserStore
	cats      CatStore
	unlocker  *progression.Unlocker
	generator progression.AssetGenerator
	pick      progression.Picker
	now       func() time.Time
}

// NewProfileService wires the profile operations. generator draws starter
// cats and may be nil, in which case the bundled images are used.
func NewProfileService(users UserStore, cats CatStore, unlocker *progression.Unlocker, generator progression.AssetGenerator, now func() time.Time) *ProfileService {
	if now == nil {
		now = time.Now
	}
	return &ProfileService{
		users:     users,
		cats:      cats,
		unlocker:  unlocker,
		generator: generator,
		pick:      progression.RandomPicker,
		now:       now,
	}
}

func (s *ProfileService) load(ctx context.Context, userID string) (*ProfileView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	unlocked, err := s.users.UnlockedCats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProfileView{
		User:     user,
		Profile:  mapper.UserModelToProfile(user, unlocked),
		Unlocked: unlocked,
	}, nil
}

func (s *ProfileService) catalog(ctx context.Context) ([]progression.Companion, error) {
	cats, err := s.cats.Unlockable(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.CatModelsToCompanions(cats), nil
}

func (s *ProfileService) withNext(ctx context.Context, v *ProfileView) (*ProfileView, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}
	v.Next = progression.FindNextGoal(v.Profile, catalog)
	return v, nil
}

// Get loads the profile, applying and persisting the daily reset when the
// UTC day has rolled over since the last calorie write.
func (s *ProfileService) Get(ctx context.Context, userID string) (*ProfileView, error) {
	v, err := s.loadAndReset(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withNext(ctx, v)
}

func (s *ProfileService) loadAndReset(ctx context.Context, userID string) (*ProfileView, error) {
	defer counterLocks.lock(userID)()

	v, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	reset := progression.ResetIfNewDay(v.Profile, now)
	if reset.CurrentCaloriesToday != v.Profile.CurrentCaloriesToday {
		if err := s.users.ResetDailyCalories(ctx, userID, now); err != nil {
			return nil, err
		}
		reset.LastUpdate = now
		logger.Info("Daily calories reset", "user_id", userID, "previous", v.Profile.CurrentCaloriesToday)
	}
	v.Profile = reset
	return v, nil
}

// Catalog returns every unlockable cat.
func (s *ProfileService) Catalog(ctx context.Context) ([]models.Cat, error) {
	return s.cats.Unlockable(ctx)
}

func parseGoals(in []string) ([]progression.Goal, error) {
	out := make([]progression.Goal, 0, len(in))
	seen := make(map[progression.Goal]bool, len(in))
	for _, raw := range in {
		g := progression.Goal(strings.ToLower(strings.TrimSpace(raw)))
		if !g.Valid() {
			return nil, invalid(fmt.Sprintf("unknown goal %q", raw))
		}
		if seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	return out, nil
}

func validateBiometrics(in OnboardInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return invalid("name is required")
	case in.Age < 1 || in.Age > 130:
		return invalid("age must be between 1 and 130")
	case !progression.Gender(in.Gender).Valid():
		return invalid("gender must be male, female or other")
	case in.HeightCm <= 0 || in.HeightCm > 300:
		return invalid("height must be between 0 and 300 cm")
	case in.WeightKg <= 0 || in.WeightKg > 700:
		return invalid("weight must be between 0 and 700 kg")
	}
	return nil
}

// Onboard records biometrics and goals and hands out the starter cat.
func (s *ProfileService) Onboard(ctx context.Context, userID string, in OnboardInput) (*ProfileView, error) {
	if err := validateBiometrics(in); err != nil {
		return nil, err
	}
	goals, err := parseGoals(in.Goals)
	if err != nil {
		return nil, err
	}

	v, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if v.Profile.Onboarded() {
		return nil, ErrAlreadyOnboarded
	}

	gender := progression.Gender(in.Gender)
	bmi := progression.ComputeBMI(in.WeightKg, in.HeightCm)
	category := progression.CategorizeBMI(bmi)
	target := progression.DailyCalorieTarget(gender, in.Age, in.HeightCm, in.WeightKg, goals)

	starter := s.starterCat(ctx, userID, category, goals)
	err = s.users.Onboard(ctx, repository.Onboarding{
		UserID:             userID,
		Name:               strings.TrimSpace(in.Name),
		Age:                in.Age,
		Gender:             string(gender),
		HeightCm:           in.HeightCm,
		WeightKg:           in.WeightKg,
		BMI:                bmi,
		Goals:              mapper.GoalsToStrings(goals),
		DailyCalorieTarget: int(math.Round(target)),
		StarterCat:         starter,
		At:                 s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	logger.Info("User onboarded", "user_id", userID, "bmi", bmi, "category", category, "starter_cat", starter.ID)

	v, err = s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.withNext(ctx, v)
}

// starterCat draws the user's first cat. A failed generation falls back to
// the bundled image for the body type.
func (s *ProfileService) starterCat(ctx context.Context, userID string, category progression.BMICategory, goals []progression.Goal) *models.Cat {
	prompt := progression.CatPrompt(category, goals, s.pick)
	name := progression.StarterCatName(category)
	asset := progression.FallbackAssetURL(category)

	if s.generator != nil {
		url, err := s.generator.GenerateAsset(ctx, prompt, progression.AnimationPrompt(name, goals))
		if err != nil {
			logger.Warn("Starter cat generation failed, using bundled image", "user_id", userID, "error", err)
		} else {
			asset = url
		}
	}

	owner := userID
	return &models.Cat{
		Name:              name,
		IsDefault:         true,
		OwnerID:           &owner,
		BodyType:          string(category),
		VideoURL:          asset,
		DescriptionPrompt: prompt,
	}
}

// UpdateStats records a new weight and goal set, recomputes BMI and the
// calorie target, and unlocks whatever the change makes reachable.
func (s *ProfileService) UpdateStats(ctx context.Context, userID string, weightKg float64, rawGoals []string) (*ProfileView, []progression.Companion, error) {
	if weightKg <= 0 || weightKg > 700 {
		return nil, nil, invalid("weight must be a positive number of kg")
	}
	goals, err := parseGoals(rawGoals)
	if err != nil {
		return nil, nil, err
	}

	v, err := s.load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !v.Profile.Onboarded() {
		return nil, nil, ErrNotOnboarded
	}

	p := v.Profile
	p.WeightKg = weightKg
	p.Goals = goals
	p.BMI = progression.ComputeBMI(weightKg, p.HeightCm)
	p.DailyCalorieTarget = int(math.Round(progression.DailyCalorieTarget(p.Gender, p.Age, p.HeightCm, weightKg, goals)))

	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	unlocked, err := s.unlocker.CheckAndUnlock(ctx, p, catalog)
	if err != nil {
		logger.Error("Unlock check failed after stats update", "user_id", userID, "error", err)
		unlocked = nil
	}

	err = s.users.UpdateStats(ctx, repository.StatsUpdate{
		UserID:             userID,
		WeightKg:           p.WeightKg,
		BMI:                p.BMI,
		Goals:              mapper.GoalsToStrings(p.Goals),
		DailyCalorieTarget: p.DailyCalorieTarget,
		UnlockedCatIDs:     mapper.CompanionIDs(unlocked),
		At:                 s.now().UTC(),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	v, err = s.load(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	v, err = s.withNext(ctx, v)
	if err != nil {
		return nil, nil, err
	}
	return v, unlocked, nil
}

// SetActiveCat switches the displayed cat to one the user already owns.
func (s *ProfileService) SetActiveCat(ctx context.Context, userID, catID string) (*ProfileView, error) {
	if catID == "" {
		return nil, invalid("activeCatId is required")
	}
	v, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !v.Profile.HasUnlocked(catID) {
		return nil, ErrCatNotUnlocked
	}
	if err := s.users.SetActiveCat(ctx, userID, catID); err != nil {
		return nil, err
	}
	v.User.ActiveCatID = &catID
	v.Profile.ActiveCompanionID = catID
	return s.withNext(ctx, v)
}
