// Package ai talks to the hosted models that recognise food and draw cats.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/replicate/replicate-go"

	"github.com/thatchakomP/pixel-cat-callior/config"
	"github.com/thatchakomP/pixel-cat-callior/logger"
)

// Runner runs a model to completion. *replicate.Client satisfies it.
type Runner interface {
	Run(ctx context.Context, identifier string, input replicate.PredictionInput, webhook *replicate.Webhook) (replicate.PredictionOutput, error)
}

type Client struct {
	runner     Runner
	foodModel  string
	imageModel string
	videoModel string
}

// NewClient builds a Replicate-backed client from configuration.
func NewClient(cfg config.AIConfig) (*Client, error) {
	if cfg.ReplicateToken == "" {
		return nil, errors.New("REPLICATE_API_TOKEN not configured")
	}
	r8, err := replicate.NewClient(replicate.WithToken(cfg.ReplicateToken))
	if err != nil {
		return nil, fmt.Errorf("create replicate client: %w", err)
	}
	return NewClientWithRunner(r8, cfg), nil
}

// NewClientWithRunner wires an arbitrary Runner, mostly for tests.
func NewClientWithRunner(r Runner, cfg config.AIConfig) *Client {
	return &Client{
		runner:     r,
		foodModel:  cfg.FoodModel,
		imageModel: cfg.ImageModel,
		videoModel: cfg.VideoModel,
	}
}

const pixelDirectives = "8-bit pixel art, retro game style, low resolution, sharp pixels, isolated on transparent background."

// GenerateStatic renders a still pixel art image and returns its URL.
func (c *Client) GenerateStatic(ctx context.Context, prompt string) (string, error) {
	full := prompt + ", " + pixelDirectives
	logger.Info("Generating static cat", "model", c.imageModel, "prompt", full)

	out, err := c.runner.Run(ctx, c.imageModel, replicate.PredictionInput{
		"prompt": full,
		"width":  256,
		"height": 256,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("generate cat image: %w", err)
	}
	url, ok := firstURL(out)
	if !ok {
		return "", errors.New("generate cat image: model returned no image URL")
	}
	return url, nil
}

// Animate turns a still image into a short looping video.
func (c *Client) Animate(ctx context.Context, imageURL, motionPrompt string) (string, error) {
	logger.Info("Animating cat", "model", c.videoModel, "image", imageURL, "motion", motionPrompt)

	out, err := c.runner.Run(ctx, c.videoModel, replicate.PredictionInput{
		"prompt":            motionPrompt,
		"first_frame_image": imageURL,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("animate cat: %w", err)
	}
	url, ok := firstURL(out)
	if !ok {
		return "", errors.New("animate cat: model returned no video URL")
	}
	return url, nil
}

// GenerateAsset runs the still stage and, when a motion prompt and a video
// model are configured, the animation stage on top of it.
func (c *Client) GenerateAsset(ctx context.Context, prompt, motionPrompt string) (string, error) {
	imageURL, err := c.GenerateStatic(ctx, prompt)
	if err != nil {
		return "", err
	}
	if motionPrompt == "" || c.videoModel == "" {
		return imageURL, nil
	}
	return c.Animate(ctx, imageURL, motionPrompt)
}

// firstURL digs the first string out of a model output, which is either a
// bare string or a list of them.
func firstURL(out replicate.PredictionOutput) (string, bool) {
	switch v := out.(type) {
	case string:
		return v, v != ""
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				return s, true
			}
		}
	case []string:
		if len(v) > 0 && v[0] != "" {
			return v[0], true
		}
	case map[string]any:
		if o, ok := v["output"]; ok {
			return firstURL(o)
		}
	}
	return "", false
}
