package progression

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/thatchakomP/pixel-cat-callior/logger"
)

// AssetGenerator renders a cat visual. motionPrompt is empty for single-stage
// generators.
type AssetGenerator interface {
	GenerateAsset(ctx context.Context, prompt, motionPrompt string) (string, error)
}

// AssetStore records generated assets on catalog entries, keyed by cat ID.
// Either every asset is stored or none is.
type AssetStore interface {
	SaveCatAssets(ctx context.Context, assets map[string]string) error
}

// Unlocker decides which cats a profile has just earned and materialises
// their visuals.
type Unlocker struct {
	generator AssetGenerator
	store     AssetStore
}

func NewUnlocker(generator AssetGenerator, store AssetStore) *Unlocker {
	return &Unlocker{generator: generator, store: store}
}

// CheckAndUnlock returns the catalog entries the profile satisfies but has not
// unlocked yet. The profile must already carry the new counters, goals and BMI.
// A cat is only drawn the first time anyone unlocks it; later unlocks reuse the
// stored asset. A failed generation keeps the unlock without an asset. The new
// assets are saved together once every generation has finished, and a failed
// save aborts. The caller persists the unlocks together with the profile.
func (u *Unlocker) CheckAndUnlock(ctx context.Context, p Profile, catalog []Companion) ([]Companion, error) {
	ctx, span := otel.Tracer("progression").Start(ctx, "unlock.check")
	defer span.End()

	var unlocked []Companion
	assets := map[string]string{}
	for _, c := range Candidates(p, catalog) {
		if !MeetsCriteria(p, c) {
			logger.Debug("Cat still locked", "profile_id", p.ID, "cat", c.Name)
			continue
		}
		logger.Info("Cat unlocked", "profile_id", p.ID, "cat", c.Name)

		if asset, ok := u.generate(ctx, p, c); ok {
			c.AssetURL = asset
			assets[c.ID] = asset
		}
		unlocked = append(unlocked, c)
	}

	if u.store != nil && len(assets) > 0 {
		if err := u.store.SaveCatAssets(ctx, assets); err != nil {
			return nil, fmt.Errorf("save assets for %d cats: %w", len(assets), err)
		}
	}
	span.SetAttributes(attribute.Int("unlock.count", len(unlocked)))
	return unlocked, nil
}

func (u *Unlocker) generate(ctx context.Context, p Profile, c Companion) (string, bool) {
	if u.generator == nil || c.Prompt == "" || c.AssetURL != "" {
		return "", false
	}
	asset, err := u.generator.GenerateAsset(ctx, c.Prompt, AnimationPrompt(c.Name, p.Goals))
	if err != nil {
		logger.Warn("Cat asset generation failed, keeping unlock", "cat", c.Name, "error", err)
		return "", false
	}
	return asset, true
}
