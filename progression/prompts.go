package progression

import (
	"fmt"
	"math/rand"
	"strings"
)

// Picker returns an index in [0, n).
type Picker func(n int) int

// RandomPicker is the default Picker.
func RandomPicker(n int) int { return rand.Intn(n) }

var bodyDescriptions = map[BMICategory]string{
	BMISlim:   "a slender, agile",
	BMINormal: "a healthy, balanced",
	BMIFat:    "a chubby, cuddly",
	BMIObese:  "a very round, plump",
}

var goalDescriptions = []struct {
	goal Goal
	desc string
}{
	{GoalBeSlimmer, "trying to lose weight, focused"},
	{GoalBeFatter, "trying to gain weight, hungry"},
	{GoalReduceCarbs, "avoiding carbs, disciplined"},
	{GoalIncreaseProtein, "building muscle, strong"},
	{GoalMaintainWeight, "balanced, serene"},
}

var (
	moods = []string{"happy", "playful", "curious", "sleepy", "energetic"}
	poses = []string{"sitting", "standing", "stretching", "licking paws"}
	furs  = []string{"brown", "orange", "black", "white", "calico", "grey", "blue"}
)

// CatPrompt describes a pixel art cat shaped by the owner's body type and goals.
func CatPrompt(category BMICategory, goals []Goal, pick Picker) string {
	if pick == nil {
		pick = RandomPicker
	}
	parts := []string{"8-bit pixel art", bodyDescriptions[category] + " cat"}
	for _, gd := range goalDescriptions {
		if hasGoal(goals, gd.goal) {
			parts = append(parts, gd.desc)
		}
	}
	parts = append(parts,
		moods[pick(len(moods))],
		poses[pick(len(poses))]+" pose",
		furs[pick(len(furs))]+" fur",
		"simple background.",
	)
	return strings.Join(parts, ", ")
}

var goalMotions = map[Goal]string{
	GoalBeSlimmer:       "jogging in place with quick light steps",
	GoalBeFatter:        "happily munching a fish snack",
	GoalReduceCarbs:     "pushing away a bowl of rice with one paw",
	GoalIncreaseProtein: "lifting a tiny dumbbell",
	GoalMaintainWeight:  "stretching slowly then settling down calmly",
}

const defaultMotion = "idle breathing, blinking, gentle tail swish"

// AnimationPrompt turns a cat's name and its owner's goals into a motion
// description. The first goal with a known motion wins.
func AnimationPrompt(name string, goals []Goal) string {
	motion := defaultMotion
	for _, g := range goals {
		if m, ok := goalMotions[g]; ok {
			motion = m
			break
		}
	}
	return fmt.Sprintf("%s %s, seamless loop, retro 8-bit pixel art animation", name, motion)
}

// StarterCatName names the default cat handed out at onboarding.
func StarterCatName(category BMICategory) string {
	s := string(category)
	if s == "" {
		return "Cat"
	}
	return strings.ToUpper(s[:1]) + s[1:] + " Cat"
}

// FallbackAssetURL points at the bundled static image for a body type.
func FallbackAssetURL(category BMICategory) string {
	return "/cats/cat-" + string(category) + ".png"
}
