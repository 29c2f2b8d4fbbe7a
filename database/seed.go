package database

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/models"
	"github.com/thatchakomP/pixel-cat-callior/progression"
)

// CatalogEntry is one unlockable cat in the seed catalog.
type CatalogEntry struct {
	ID       string                     `json:"id"`
	Name     string                     `json:"name"`
	BodyType progression.BMICategory    `json:"bodyType"`
	Prompt   string                     `json:"prompt"`
	Criteria progression.UnlockCriteria `json:"unlockCriteria"`
}

// DefaultCatalog is the progression ladder shipped with the app.
var DefaultCatalog = []CatalogEntry{
	{
		ID:       "6f1c2a1e-0001-4a6b-9a55-5c1a7f3e0001",
		Name:     "Kitten Nibbles",
		BodyType: progression.BMINormal,
		Prompt:   "8-bit pixel art, a tiny fluffy kitten holding a crumb, curious, sitting pose, orange fur, simple background.",
		Criteria: progression.UnlockCriteria{TotalCalories: progression.IntPtr(500)},
	},
	{
		ID:       "6f1c2a1e-0002-4a6b-9a55-5c1a7f3e0002",
		Name:     "Sir Whiskers",
		BodyType: progression.BMINormal,
		Prompt:   "8-bit pixel art, a distinguished cat wearing a monocle, proud, standing pose, grey fur, simple background.",
		Criteria: progression.UnlockCriteria{TotalCalories: progression.IntPtr(2000)},
	},
	{
		ID:       "6f1c2a1e-0003-4a6b-9a55-5c1a7f3e0003",
		Name:     "Sprinter",
		BodyType: progression.BMISlim,
		Prompt:   "8-bit pixel art, a slender, agile cat in a tiny headband, energetic, running pose, white fur, simple background.",
		Criteria: progression.UnlockCriteria{
			TotalCalories: progression.IntPtr(3000),
			GoalMatch:     []progression.Goal{progression.GoalBeSlimmer},
		},
	},
	{
		ID:       "6f1c2a1e-0004-4a6b-9a55-5c1a7f3e0004",
		Name:     "Muscle Mittens",
		BodyType: progression.BMINormal,
		Prompt:   "8-bit pixel art, a strong cat with bulging biceps, building muscle, flexing pose, calico fur, simple background.",
		Criteria: progression.UnlockCriteria{
			GoalMatch: []progression.Goal{progression.GoalIncreaseProtein},
			BMITarget: progression.CategoryPtr(progression.BMIFat),
		},
	},
	{
		ID:       "6f1c2a1e-0005-4a6b-9a55-5c1a7f3e0005",
		Name:     "Zen Tabby",
		BodyType: progression.BMINormal,
		Prompt:   "8-bit pixel art, a serene tabby cat meditating on a cushion, balanced, sitting pose, brown fur, simple background.",
		Criteria: progression.UnlockCriteria{
			TotalCalories: progression.IntPtr(5000),
			GoalMatch:     []progression.Goal{progression.GoalMaintainWeight},
		},
	},
	{
		ID:       "6f1c2a1e-0006-4a6b-9a55-5c1a7f3e0006",
		Name:     "Chonk Royale",
		BodyType: progression.BMIObese,
		Prompt:   "8-bit pixel art, a very round, plump cat wearing a golden crown, sleepy, lounging pose, black fur, simple background.",
		Criteria: progression.UnlockCriteria{TotalCalories: progression.IntPtr(10000)},
	},
	{
		ID:       "6f1c2a1e-0007-4a6b-9a55-5c1a7f3e0007",
		Name:     "Legendary Neko",
		BodyType: progression.BMINormal,
		Prompt:   "8-bit pixel art, a glowing legendary cat with starry fur, majestic, floating pose, blue fur, simple background.",
		Criteria: progression.UnlockCriteria{TotalCalories: progression.IntPtr(50000)},
	},
}

// SeedCatalog inserts the given entries. Existing rows keep their state,
// including any generated asset.
func SeedCatalog(ctx context.Context, db *gorm.DB, entries []CatalogEntry) (int64, error) {
	cats := make([]models.Cat, 0, len(entries))
	for _, e := range entries {
		cats = append(cats, models.Cat{
			ID:                e.ID,
			Name:              e.Name,
			BodyType:          string(e.BodyType),
			UnlockCriteria:    datatypes.NewJSONType(e.Criteria),
			DescriptionPrompt: e.Prompt,
		})
	}
	res := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&cats)
	if res.Error != nil {
		return 0, fmt.Errorf("seed catalog: %w", res.Error)
	}
	logger.Info("Catalog seeded", "inserted", res.RowsAffected, "total", len(entries))
	return res.RowsAffected, nil
}

// LoadCatalog reads a JSON array of catalog entries, gunzipping it first when
// the stream starts with the gzip magic bytes.
func LoadCatalog(r io.Reader) ([]CatalogEntry, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip catalog: %w", err)
		}
		defer gr.Close()
		src = gr
	}

	var entries []CatalogEntry
	if err := json.NewDecoder(src).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (e CatalogEntry) validate() error {
	switch {
	case e.ID == "" || e.Name == "":
		return errors.New("catalog entry needs an id and a name")
	case !e.BodyType.Valid():
		return fmt.Errorf("catalog entry %s: unknown body type %q", e.Name, e.BodyType)
	case e.Criteria.BMITarget != nil && !e.Criteria.BMITarget.Valid():
		return fmt.Errorf("catalog entry %s: unknown bmi target %q", e.Name, *e.Criteria.BMITarget)
	}
	for _, g := range e.Criteria.GoalMatch {
		if !g.Valid() {
			return fmt.Errorf("catalog entry %s: unknown goal %q", e.Name, g)
		}
	}
	return nil
}
