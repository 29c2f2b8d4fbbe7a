package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/replicate/replicate-go"

	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/progression"
)

// Detection is the result of recognising the food on one photo.
type Detection struct {
	Foods         []progression.FoodItem
	TotalCalories int
}

func newDetection(foods []progression.FoodItem) Detection {
	d := Detection{Foods: foods}
	for _, f := range foods {
		d.TotalCalories += f.Calories
	}
	return d
}

// KnownFoods is the nutrition table detected labels are matched against.
var KnownFoods = []progression.FoodItem{
	{Name: "Apple", Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3},
	{Name: "Chicken Breast (100g)", Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6},
	{Name: "Broccoli (1 cup)", Calories: 55, Protein: 3.7, Carbs: 11, Fat: 0.6},
	{Name: "White Rice (1 cup cooked)", Calories: 205, Protein: 4.3, Carbs: 45, Fat: 0.4},
	{Name: "Pizza Slice", Calories: 285, Protein: 12, Carbs: 36, Fat: 10},
	{Name: "Burger", Calories: 350, Protein: 20, Carbs: 30, Fat: 15},
	{Name: "Salad with Dressing", Calories: 200, Protein: 5, Carbs: 15, Fat: 12},
}

// MatchFood finds the table entry whose name contains the label.
func MatchFood(label string) (progression.FoodItem, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return progression.FoodItem{}, false
	}
	for _, f := range KnownFoods {
		if strings.Contains(strings.ToLower(f.Name), label) {
			return f, true
		}
	}
	return progression.FoodItem{}, false
}

// DetectFood classifies the photo and prices every recognised label.
func (c *Client) DetectFood(ctx context.Context, imageURL string) (Detection, error) {
	out, err := c.runner.Run(ctx, c.foodModel, replicate.PredictionInput{"image": imageURL}, nil)
	if err != nil {
		return Detection{}, fmt.Errorf("detect food: %w", err)
	}

	var foods []progression.FoodItem
	for _, label := range predictionLabels(out) {
		if f, ok := MatchFood(label); ok {
			foods = append(foods, f)
			continue
		}
		logger.Debug("Unrecognised food label", "label", label)
	}
	return newDetection(foods), nil
}

func predictionLabels(out replicate.PredictionOutput) []string {
	var items []any
	switch v := out.(type) {
	case []any:
		items = v
	case map[string]any:
		if p, ok := v["predictions"].([]any); ok {
			items = p
		}
	case string:
		return []string{v}
	}

	var labels []string
	for _, item := range items {
		switch it := item.(type) {
		case string:
			labels = append(labels, it)
		case map[string]any:
			for _, key := range []string{"label", "class", "name"} {
				if s, ok := it[key].(string); ok {
					labels = append(labels, s)
					break
				}
			}
		}
	}
	return labels
}
