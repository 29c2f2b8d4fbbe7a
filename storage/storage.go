// Package storage keeps uploaded meal photos somewhere the AI models can read them.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/thatchakomP/pixel-cat-callior/config"
	"github.com/thatchakomP/pixel-cat-callior/logger"
)

// ImageStore saves a meal photo and returns a URL for it.
type ImageStore interface {
	SaveFoodImage(ctx context.Context, userID string, img io.Reader, now time.Time) (string, error)
}

// New picks Cloudinary when it is configured and the local directory otherwise.
func New(cfg config.StorageConfig) (ImageStore, error) {
	if cfg.CloudinaryURL == "" {
		logger.Warn("CLOUDINARY_URL not set, storing uploads on local disk", "dir", cfg.LocalDir)
		return NewLocalStore(cfg.LocalDir, cfg.PublicURL), nil
	}
	return NewCloudinaryStore(cfg.CloudinaryURL, cfg.Folder)
}

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(url, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("configure cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryStore) SaveFoodImage(ctx context.Context, userID string, img io.Reader, now time.Time) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, img, uploader.UploadParams{
		Folder:       s.folder + "/" + userID,
		PublicID:     publicID(now),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("upload to cloudinary: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload to cloudinary: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

func publicID(now time.Time) string {
	return fmt.Sprintf("food-%d", now.UnixMilli())
}
