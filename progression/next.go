package progression

import (
	"math"
	"sort"
)

// FindNextGoal picks the locked companion with the lowest calorie threshold.
// Companions without a calorie clause sort last; ties go by name.
// It only drives progress display and never gates an unlock.
func FindNextGoal(p Profile, catalog []Companion) *Companion {
	open := Candidates(p, catalog)
	if len(open) == 0 {
		return nil
	}
	sort.SliceStable(open, func(i, j int) bool {
		a, b := calorieThreshold(open[i]), calorieThreshold(open[j])
		if a != b {
			return a < b
		}
		return open[i].Name < open[j].Name
	})
	next := open[0]
	return &next
}

func calorieThreshold(c Companion) float64 {
	if c.Criteria.TotalCalories == nil {
		return math.Inf(1)
	}
	return float64(*c.Criteria.TotalCalories)
}

// CaloriesToGo returns how many lifetime calories are missing before the
// companion's calorie clause is met, or 0 when there is none to meet.
func CaloriesToGo(p Profile, c Companion) int {
	if c.Criteria.TotalCalories == nil {
		return 0
	}
	if left := *c.Criteria.TotalCalories - p.TotalLifetimeCalories; left > 0 {
		return left
	}
	return 0
}
