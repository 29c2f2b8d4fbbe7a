package database

import (
	"bytes"
	"compress/gzip"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thatchakomP/pixel-cat-callior/config"
	"github.com/thatchakomP/pixel-cat-callior/models"
)

func TestSeedCatalogIsRepeatable(t *testing.T) {
	t.Parallel()
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "seed.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer Close(db)
	ctx := context.Background()

	n, err := SeedCatalog(ctx, db, DefaultCatalog)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != int64(len(DefaultCatalog)) {
		t.Fatalf("inserted %d, want %d", n, len(DefaultCatalog))
	}

	if err := db.Model(&models.Cat{}).Where("id = ?", DefaultCatalog[0].ID).Update("video_url", "kept").Error; err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := SeedCatalog(ctx, db, DefaultCatalog); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	var count int64
	db.Model(&models.Cat{}).Count(&count)
	if count != int64(len(DefaultCatalog)) {
		t.Fatalf("count = %d after reseed", count)
	}
	var cat models.Cat
	if err := db.First(&cat, "id = ?", DefaultCatalog[0].ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.VideoURL != "kept" {
		t.Fatalf("reseed overwrote asset: %q", cat.VideoURL)
	}
}

func TestDefaultCatalogIsValid(t *testing.T) {
	t.Parallel()
	seen := map[string]bool{}
	for _, e := range DefaultCatalog {
		if seen[e.ID] || seen[e.Name] {
			t.Fatalf("duplicate catalog entry %s", e.Name)
		}
		seen[e.ID], seen[e.Name] = true, true
		if !e.BodyType.Valid() {
			t.Fatalf("%s: body type %q", e.Name, e.BodyType)
		}
		c := e.Criteria
		if c.TotalCalories == nil && len(c.GoalMatch) == 0 && c.BMITarget == nil {
			t.Fatalf("%s has no unlock criteria", e.Name)
		}
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()
	raw := `[{"id":"x1","name":"Tiny","bodyType":"slim","prompt":"p","unlockCriteria":{"totalCalories":0,"goalMatch":["be slimmer"]}}]`

	entries, err := LoadCatalog(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].Criteria.TotalCalories == nil || *entries[0].Criteria.TotalCalories != 0 {
		t.Fatalf("entries = %+v", entries)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	gz.Write([]byte(raw))
	gz.Close()
	entries, err = LoadCatalog(&buf)
	if err != nil || len(entries) != 1 {
		t.Fatalf("gzip load: %v %+v", err, entries)
	}

	bad := `[{"id":"x2","name":"Odd","bodyType":"normal","unlockCriteria":{"goalMatch":["fly"]}}]`
	if _, err := LoadCatalog(strings.NewReader(bad)); err == nil {
		t.Fatal("expected unknown goal to be rejected")
	}
}

func TestDefaultCatalogPassesValidation(t *testing.T) {
	t.Parallel()
	for _, e := range DefaultCatalog {
		if err := e.validate(); err != nil {
			t.Fatalf("%s: %v", e.Name, err)
		}
	}
}
