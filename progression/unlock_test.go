package progression

import (
	"context"
	"errors"
	"testing"
)

type fakeGenerator struct {
	calls   []string
	motions []string
	fail    map[string]bool
}

func (f *fakeGenerator) GenerateAsset(_ context.Context, prompt, motion string) (string, error) {
	f.calls = append(f.calls, prompt)
	f.motions = append(f.motions, motion)
	if f.fail[prompt] {
		return "", errors.New("generation unavailable")
	}
	return "https://assets.example/" + prompt + ".mp4", nil
}

type fakeAssetStore struct {
	saved map[string]string
	calls int
	err   error
}

func (f *fakeAssetStore) SaveCatAssets(_ context.Context, assets map[string]string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if f.saved == nil {
		f.saved = map[string]string{}
	}
	for id, url := range assets {
		f.saved[id] = url
	}
	return nil
}

func scenarioCatalog() []Companion {
	return []Companion{
		{ID: "a", Name: "A", Prompt: "a", Criteria: UnlockCriteria{TotalCalories: IntPtr(500)}},
		{ID: "b", Name: "B", Prompt: "b", IsDefault: true},
	}
}

func TestCheckAndUnlockScenario(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{}
	store := &fakeAssetStore{}
	u := NewUnlocker(gen, store)
	catalog := scenarioCatalog()
	p := Profile{ID: "p1", BMI: 22, UnlockedCompanionIDs: []string{"b"}}

	got, err := u.CheckAndUnlock(context.Background(), p, catalog)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no unlocks, got %+v", got)
	}
	if next := FindNextGoal(p, catalog); next == nil || next.ID != "a" {
		t.Fatalf("expected next goal a, got %+v", next)
	}

	p.TotalLifetimeCalories = 600
	got, err = u.CheckAndUnlock(context.Background(), p, catalog)
	if err != nil {
		t.Fatalf("check after food: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected [a], got %+v", got)
	}
	if got[0].AssetURL != "https://assets.example/a.mp4" {
		t.Fatalf("asset not attached: %q", got[0].AssetURL)
	}
	if store.saved["a"] != got[0].AssetURL {
		t.Fatalf("asset not persisted: %+v", store.saved)
	}
	if catalog[0].AssetURL != "" {
		t.Fatalf("catalog entry mutated")
	}

	p.UnlockedCompanionIDs = append(p.UnlockedCompanionIDs, "a")
	got, err = u.CheckAndUnlock(context.Background(), p, catalog)
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected rerun to unlock nothing, got %+v", got)
	}
	if len(gen.calls) != 1 {
		t.Fatalf("expected one generation call, got %d", len(gen.calls))
	}
}

func TestCheckAndUnlockKeepsUnlockWhenGenerationFails(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{fail: map[string]bool{"a": true}}
	store := &fakeAssetStore{}
	u := NewUnlocker(gen, store)
	catalog := []Companion{
		{ID: "a", Name: "A", Prompt: "a", Criteria: UnlockCriteria{TotalCalories: IntPtr(100)}},
		{ID: "c", Name: "C", Prompt: "c", Criteria: UnlockCriteria{TotalCalories: IntPtr(100)}},
	}

	got, err := u.CheckAndUnlock(context.Background(), Profile{TotalLifetimeCalories: 100}, catalog)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both unlocked, got %+v", got)
	}
	if got[0].AssetURL != "" {
		t.Fatalf("failed generation should leave no asset, got %q", got[0].AssetURL)
	}
	if _, ok := store.saved["a"]; ok {
		t.Fatalf("failed generation must not be persisted")
	}
	if got[1].AssetURL == "" || store.saved["c"] != got[1].AssetURL {
		t.Fatalf("second cat should still get its asset: %+v / %+v", got[1], store.saved)
	}
}

func TestCheckAndUnlockReusesStoredAsset(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{}
	store := &fakeAssetStore{}
	u := NewUnlocker(gen, store)
	catalog := []Companion{
		{ID: "a", Name: "A", Prompt: "a", AssetURL: "https://assets.example/first.mp4", Criteria: UnlockCriteria{TotalCalories: IntPtr(100)}},
	}

	got, err := u.CheckAndUnlock(context.Background(), Profile{TotalLifetimeCalories: 100}, catalog)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(got) != 1 || got[0].AssetURL != "https://assets.example/first.mp4" {
		t.Fatalf("expected stored asset, got %+v", got)
	}
	if len(gen.calls) != 0 || store.calls != 0 {
		t.Fatalf("stored asset was regenerated: %d generations, %d saves", len(gen.calls), store.calls)
	}
}

func TestCheckAndUnlockSavesAssetsOnce(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{}
	store := &fakeAssetStore{}
	u := NewUnlocker(gen, store)
	catalog := []Companion{
		{ID: "a", Name: "A", Prompt: "a", Criteria: UnlockCriteria{TotalCalories: IntPtr(100)}},
		{ID: "c", Name: "C", Prompt: "c", Criteria: UnlockCriteria{TotalCalories: IntPtr(100)}},
	}

	if _, err := u.CheckAndUnlock(context.Background(), Profile{TotalLifetimeCalories: 100}, catalog); err != nil {
		t.Fatalf("check: %v", err)
	}
	if store.calls != 1 || len(store.saved) != 2 {
		t.Fatalf("expected one save with both assets, got %d calls: %+v", store.calls, store.saved)
	}
}

func TestCheckAndUnlockSurfacesPersistenceFailure(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{}
	store := &fakeAssetStore{err: errors.New("db down")}
	u := NewUnlocker(gen, store)
	_, err := u.CheckAndUnlock(context.Background(), Profile{TotalLifetimeCalories: 600}, scenarioCatalog())
	if err == nil {
		t.Fatalf("expected persistence error")
	}
	if len(gen.calls) != 1 || store.calls != 1 {
		t.Fatalf("save should run once after generation: %d generations, %d saves", len(gen.calls), store.calls)
	}
}

func TestCheckAndUnlockPassesGoalMotion(t *testing.T) {
	t.Parallel()
	gen := &fakeGenerator{}
	u := NewUnlocker(gen, nil)
	p := Profile{TotalLifetimeCalories: 600, Goals: []Goal{GoalIncreaseProtein}}
	if _, err := u.CheckAndUnlock(context.Background(), p, scenarioCatalog()); err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(gen.motions) != 1 || gen.motions[0] != AnimationPrompt("A", p.Goals) {
		t.Fatalf("unexpected motion prompts: %v", gen.motions)
	}
}

func TestCheckAndUnlockWithoutGenerator(t *testing.T) {
	t.Parallel()
	got, err := NewUnlocker(nil, nil).CheckAndUnlock(context.Background(), Profile{TotalLifetimeCalories: 600}, scenarioCatalog())
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected [a], got %+v", got)
	}
}
