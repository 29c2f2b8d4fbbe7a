package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/replicate/replicate-go"

	"github.com/thatchakomP/pixel-cat-callior/config"
)

type runCall struct {
	model string
	input replicate.PredictionInput
}

type fakeRunner struct {
	calls   []runCall
	outputs map[string]replicate.PredictionOutput
	errs    map[string]error
}

func (f *fakeRunner) Run(_ context.Context, model string, input replicate.PredictionInput, _ *replicate.Webhook) (replicate.PredictionOutput, error) {
	f.calls = append(f.calls, runCall{model: model, input: input})
	if err := f.errs[model]; err != nil {
		return nil, err
	}
	return f.outputs[model], nil
}

func testConfig() config.AIConfig {
	return config.AIConfig{FoodModel: "food", ImageModel: "image", VideoModel: "video"}
}

func TestGenerateAssetRunsBothStages(t *testing.T) {
	t.Parallel()
	r := &fakeRunner{outputs: map[string]replicate.PredictionOutput{
		"image": []any{"https://cdn.example/cat.png"},
		"video": "https://cdn.example/cat.mp4",
	}}
	c := NewClientWithRunner(r, testConfig())

	url, err := c.GenerateAsset(context.Background(), "a cat", "a cat jogging")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if url != "https://cdn.example/cat.mp4" {
		t.Fatalf("unexpected url %q", url)
	}
	if len(r.calls) != 2 {
		t.Fatalf("expected two model runs, got %d", len(r.calls))
	}
	if got := r.calls[1].input["first_frame_image"]; got != "https://cdn.example/cat.png" {
		t.Fatalf("animation did not receive still image: %v", got)
	}
	if got := r.calls[1].input["prompt"]; got != "a cat jogging" {
		t.Fatalf("animation prompt = %v", got)
	}
}

func TestGenerateAssetSingleStage(t *testing.T) {
	t.Parallel()
	r := &fakeRunner{outputs: map[string]replicate.PredictionOutput{"image": []any{"https://cdn.example/cat.png"}}}
	c := NewClientWithRunner(r, testConfig())

	url, err := c.GenerateAsset(context.Background(), "a cat", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if url != "https://cdn.example/cat.png" || len(r.calls) != 1 {
		t.Fatalf("expected still image only, got %q after %d calls", url, len(r.calls))
	}
}

func TestGenerateAssetFailures(t *testing.T) {
	t.Parallel()
	r := &fakeRunner{errs: map[string]error{"image": errors.New("quota")}}
	c := NewClientWithRunner(r, testConfig())
	if _, err := c.GenerateAsset(context.Background(), "a cat", "motion"); err == nil {
		t.Fatalf("expected image stage error")
	}

	r = &fakeRunner{outputs: map[string]replicate.PredictionOutput{"image": []any{}}}
	c = NewClientWithRunner(r, testConfig())
	if _, err := c.GenerateAsset(context.Background(), "a cat", "motion"); err == nil {
		t.Fatalf("expected empty output error")
	}
}

func TestDetectFood(t *testing.T) {
	t.Parallel()
	r := &fakeRunner{outputs: map[string]replicate.PredictionOutput{
		"food": map[string]any{"predictions": []any{
			map[string]any{"label": "pizza"},
			"apple",
			map[string]any{"class": "sushi"},
		}},
	}}
	c := NewClientWithRunner(r, testConfig())

	d, err := c.DetectFood(context.Background(), "https://img.example/meal.jpg")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(d.Foods) != 2 || d.TotalCalories != 285+95 {
		t.Fatalf("unexpected detection %+v", d)
	}
	if r.calls[0].input["image"] != "https://img.example/meal.jpg" {
		t.Fatalf("image not forwarded: %+v", r.calls[0].input)
	}
}

func TestMockDetector(t *testing.T) {
	t.Parallel()
	d, err := MockDetector{Pick: func(int) int { return 0 }}.DetectFood(context.Background(), "x")
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if len(d.Foods) != 1 || d.Foods[0].Name != "Apple" || d.TotalCalories != 95 {
		t.Fatalf("unexpected detection %+v", d)
	}
}
