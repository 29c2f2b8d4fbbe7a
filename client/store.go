package client

import (
	"context"
	"io"
	"sync"

	"github.com/thatchakomP/pixel-cat-callior/entity"
)

// Store caches the signed-in user's profile and next unlock goal. Reads are
// served from the cache; every mutation drops it and refetches from the
// server, so the cache never holds state the server did not confirm.
type Store struct {
	api *Client

	mu      sync.Mutex
	profile *entity.ProfileResponse
}

func NewStore(api *Client) *Store {
	return &Store{api: api}
}

// Profile returns the cached profile, fetching it on first use or after an
// invalidation.
func (s *Store) Profile(ctx context.Context) (*entity.ProfileResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile != nil {
		return s.profile, nil
	}
	return s.fetchLocked(ctx)
}

// NextUnlock returns the cached next goal, or nil when the collection is complete.
func (s *Store) NextUnlock(ctx context.Context) (*entity.Cat, int, error) {
	p, err := s.Profile(ctx)
	if err != nil {
		return nil, 0, err
	}
	return p.NextUnlockCat, p.CaloriesToGo, nil
}

// Invalidate forgets the cached profile.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.profile = nil
	s.mu.Unlock()
}

// Refresh drops the cache and refetches.
func (s *Store) Refresh(ctx context.Context) (*entity.ProfileResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
	return s.fetchLocked(ctx)
}

func (s *Store) fetchLocked(ctx context.Context) (*entity.ProfileResponse, error) {
	p, err := s.api.Profile(ctx)
	if err != nil {
		return nil, err
	}
	s.profile = p
	return p, nil
}

func (s *Store) Onboard(ctx context.Context, req entity.OnboardRequest) (*entity.ProfileResponse, error) {
	if _, err := s.api.Onboard(ctx, req); err != nil {
		return nil, err
	}
	return s.Refresh(ctx)
}

// UpdateStats returns the refreshed profile and the cats the change unlocked.
func (s *Store) UpdateStats(ctx context.Context, weightKg float64, goals []string) (*entity.ProfileResponse, []entity.Cat, error) {
	resp, err := s.api.UpdateStats(ctx, weightKg, goals)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.Refresh(ctx)
	if err != nil {
		return nil, nil, err
	}
	return p, resp.UnlockedCats, nil
}

func (s *Store) SetActiveCat(ctx context.Context, catID string) (*entity.ProfileResponse, error) {
	if _, err := s.api.SetActiveCat(ctx, catID); err != nil {
		return nil, err
	}
	return s.Refresh(ctx)
}

// UploadFood logs a meal and refreshes the cached profile. The upload
// response is returned as is so callers can show the food breakdown.
func (s *Store) UploadFood(ctx context.Context, filename string, img io.Reader) (*entity.FoodUploadResponse, error) {
	resp, err := s.api.UploadFood(ctx, filename, img)
	if err != nil {
		s.Invalidate()
		return nil, err
	}
	if _, err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return resp, nil
}
