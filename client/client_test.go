package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/thatchakomP/pixel-cat-callior/entity"
)

type fakeAPI struct {
	profileGets atomic.Int32
	calories    atomic.Int32
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req entity.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "whiskers42" {
			writeJSON(w, http.StatusUnauthorized, entity.ErrorResponse{Error: "invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, entity.LoginResponse{Token: "tok", User: entity.User{ID: "u1", Email: req.Email}})
	})
	mux.HandleFunc("GET /api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			writeJSON(w, http.StatusUnauthorized, entity.ErrorResponse{Error: "Invalid or expired token"})
			return
		}
		f.profileGets.Add(1)
		total := int(f.calories.Load())
		writeJSON(w, http.StatusOK, entity.ProfileResponse{
			User:          entity.User{ID: "u1", TotalLifetimeCalories: total},
			NextUnlockCat: &entity.Cat{ID: "a", Name: "A"},
			CaloriesToGo:  500 - total,
		})
	})
	mux.HandleFunc("POST /api/food/upload", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("foodImage")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, entity.ErrorResponse{Error: "No image file provided."})
			return
		}
		defer file.Close()
		if ct := header.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("content type = %q", ct)
		}
		b, _ := io.ReadAll(file)
		f.calories.Add(int32(len(b)))
		writeJSON(w, http.StatusCreated, entity.FoodUploadResponse{Message: "Food logged successfully", FoodLog: entity.FoodLog{TotalCalories: len(b)}})
	})
	mux.HandleFunc("PUT /api/user/profile", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, entity.ErrorResponse{Error: "cat is not in the user's collection"})
	})
	return mux
}

func newTestStore(t *testing.T) (*Store, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{}
	ts := httptest.NewServer(api.handler(t))
	t.Cleanup(ts.Close)
	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	if _, err := c.Login(context.Background(), "a@example.com", "whiskers42"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return NewStore(c), api
}

func TestLoginFailureIsAPIError(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	ts := httptest.NewServer(api.handler(t))
	defer ts.Close()
	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}

	_, err := c.Login(context.Background(), "a@example.com", "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized || apiErr.Message != "invalid email or password" {
		t.Fatalf("err = %v", err)
	}
	if c.Token != "" {
		t.Fatal("token set on failed login")
	}
}

func TestStoreServesReadsFromCache(t *testing.T) {
	t.Parallel()
	s, api := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.Profile(ctx); err != nil {
			t.Fatalf("profile: %v", err)
		}
	}
	next, toGo, err := s.NextUnlock(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next == nil || next.ID != "a" || toGo != 500 {
		t.Fatalf("next = %+v, %d", next, toGo)
	}
	if got := api.profileGets.Load(); got != 1 {
		t.Fatalf("profile fetched %d times, want 1", got)
	}
}

func TestStoreRefetchesAfterUpload(t *testing.T) {
	t.Parallel()
	s, api := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Profile(ctx); err != nil {
		t.Fatalf("profile: %v", err)
	}
	resp, err := s.UploadFood(ctx, "lunch.png", strings.NewReader(strings.Repeat("x", 120)))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.FoodLog.TotalCalories != 120 {
		t.Fatalf("upload resp = %+v", resp)
	}
	p, err := s.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.User.TotalLifetimeCalories != 120 || p.CaloriesToGo != 380 {
		t.Fatalf("cached profile is stale: %+v", p)
	}
	if got := api.profileGets.Load(); got != 2 {
		t.Fatalf("profile fetched %d times, want 2", got)
	}
}

func TestStoreKeepsCacheOnFailedMutation(t *testing.T) {
	t.Parallel()
	s, api := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Profile(ctx); err != nil {
		t.Fatalf("profile: %v", err)
	}
	_, err := s.SetActiveCat(ctx, "locked")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.Profile(ctx); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if got := api.profileGets.Load(); got != 1 {
		t.Fatalf("profile fetched %d times, want 1", got)
	}
}
