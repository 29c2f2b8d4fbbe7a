package progression

import (
	"strings"
	"testing"
)

func firstPick(int) int { return 0 }

func TestCatPrompt(t *testing.T) {
	t.Parallel()
	got := CatPrompt(BMIFat, []Goal{GoalMaintainWeight, GoalBeSlimmer}, firstPick)
	want := "8-bit pixel art, a chubby, cuddly cat, trying to lose weight, focused, balanced, serene, happy, sitting pose, brown fur, simple background."
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestCatPromptRandomPickerStaysInRange(t *testing.T) {
	t.Parallel()
	for i := 0; i < 50; i++ {
		p := CatPrompt(BMISlim, nil, nil)
		if !strings.HasPrefix(p, "8-bit pixel art, a slender, agile cat, ") {
			t.Fatalf("unexpected prompt %q", p)
		}
	}
}

func TestAnimationPrompt(t *testing.T) {
	t.Parallel()
	got := AnimationPrompt("Fat Cat", []Goal{"unknown", GoalIncreaseProtein, GoalBeSlimmer})
	if !strings.Contains(got, "lifting a tiny dumbbell") || !strings.HasPrefix(got, "Fat Cat ") {
		t.Fatalf("unexpected prompt %q", got)
	}
	if got := AnimationPrompt("Slim Cat", nil); !strings.Contains(got, defaultMotion) {
		t.Fatalf("expected default motion, got %q", got)
	}
}

func TestStarterCatName(t *testing.T) {
	t.Parallel()
	if got := StarterCatName(BMIObese); got != "Obese Cat" {
		t.Fatalf("got %q", got)
	}
	if got := FallbackAssetURL(BMINormal); got != "/cats/cat-normal.png" {
		t.Fatalf("got %q", got)
	}
}
