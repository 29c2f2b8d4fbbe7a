package progression

import "math"

const (
	activityFactor   = 1.2
	minSlimmerTarget = 1200
	calorieSwing     = 500
)

// ComputeBMI returns weight / height(m)^2 rounded to two decimals.
// A zero height yields 0, which callers treat as "not computed yet".
func ComputeBMI(weightKg, heightCm float64) float64 {
	if heightCm == 0 {
		return 0
	}
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*100) / 100
}

// CategorizeBMI maps a BMI onto slim [0,18.5), normal [18.5,25), fat [25,30)
// and obese [30,inf).
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMISlim
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIFat
	default:
		return BMIObese
	}
}

// DailyCalorieTarget estimates daily needs with Mifflin-St Jeor at a sedentary
// activity level, then adjusts for the first matching goal.
func DailyCalorieTarget(gender Gender, age int, heightCm, weightKg float64, goals []Goal) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	tdee := bmr * activityFactor

	switch {
	case hasGoal(goals, GoalBeSlimmer):
		return math.Max(minSlimmerTarget, tdee-calorieSwing)
	case hasGoal(goals, GoalBeFatter):
		return tdee + calorieSwing
	}
	// "increase protein" and "maintain weight" keep the baseline.
	return tdee
}
