package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// LocalStore writes uploads under Dir and serves them from BaseURL.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{Dir: dir, BaseURL: baseURL}
}

func (s *LocalStore) SaveFoodImage(_ context.Context, userID string, img io.Reader, now time.Time) (string, error) {
	owner := filepath.Base(userID)
	name := publicID(now) + ".jpg"
	public, err := url.JoinPath(s.BaseURL, owner, name)
	if err != nil {
		return "", fmt.Errorf("build upload url: %w", err)
	}

	userDir := filepath.Join(s.Dir, owner)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	f, err := os.Create(filepath.Join(userDir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, img); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return public, nil
}
