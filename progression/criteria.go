package progression

// MeetsCriteria reports whether the profile satisfies every clause present on
// the companion's criteria. Default companions are never unlockable.
func MeetsCriteria(p Profile, c Companion) bool {
	if c.IsDefault {
		return false
	}
	crit := c.Criteria

	if crit.TotalCalories != nil && p.TotalLifetimeCalories < *crit.TotalCalories {
		return false
	}
	for _, g := range crit.GoalMatch {
		if !hasGoal(p.Goals, g) {
			return false
		}
	}
	if crit.BMITarget != nil {
		if p.BMI == 0 {
			return false
		}
		if p.BMICategory() != *crit.BMITarget {
			return false
		}
	}
	return true
}

// Candidates returns the catalog entries still open to unlocking, in catalog order.
func Candidates(p Profile, catalog []Companion) []Companion {
	var out []Companion
	for _, c := range catalog {
		if c.IsDefault || p.HasUnlocked(c.ID) {
			continue
		}
		out = append(out, c)
	}
	return out
}
