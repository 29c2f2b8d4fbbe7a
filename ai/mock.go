package ai

import (
	"context"

	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/progression"
)

// MockDetector picks one to three random foods from KnownFoods. It stands in
// for the hosted classifier during local development.
type MockDetector struct {
	Pick progression.Picker
}

func (m MockDetector) DetectFood(_ context.Context, imageURL string) (Detection, error) {
	pick := m.Pick
	if pick == nil {
		pick = progression.RandomPicker
	}
	logger.Info("Mock food detection", "image", imageURL)

	n := pick(3) + 1
	foods := make([]progression.FoodItem, 0, n)
	for i := 0; i < n; i++ {
		foods = append(foods, KnownFoods[pick(len(KnownFoods))])
	}
	return newDetection(foods), nil
}
