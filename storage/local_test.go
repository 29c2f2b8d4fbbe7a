package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLocalStoreSaveFoodImage(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s := NewLocalStore(dir, "/uploads")
	now := time.UnixMilli(1700000000123)

	url, err := s.SaveFoodImage(context.Background(), "user-1", strings.NewReader("jpegbytes"), now)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "/uploads/user-1/food-1700000000123.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	data, err := os.ReadFile(filepath.Join(dir, "user-1", "food-1700000000123.jpg"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "jpegbytes" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestLocalStoreURLs(t *testing.T) {
	t.Parallel()
	now := time.UnixMilli(1700000000123)
	cases := []struct {
		base string
		want string
	}{
		{"/uploads", "/uploads/user-1/food-1700000000123.jpg"},
		{"/uploads/", "/uploads/user-1/food-1700000000123.jpg"},
		{"http://localhost:8080/uploads", "http://localhost:8080/uploads/user-1/food-1700000000123.jpg"},
		{"https://cdn.example.com/pixelcat/", "https://cdn.example.com/pixelcat/user-1/food-1700000000123.jpg"},
	}
	for _, tc := range cases {
		s := NewLocalStore(t.TempDir(), tc.base)
		got, err := s.SaveFoodImage(context.Background(), "user-1", strings.NewReader("x"), now)
		if err != nil {
			t.Fatalf("%s: save: %v", tc.base, err)
		}
		if got != tc.want {
			t.Fatalf("%s: url = %q, want %q", tc.base, got, tc.want)
		}
	}
}

func TestLocalStoreRejectsBadBaseURL(t *testing.T) {
	t.Parallel()
	s := NewLocalStore(t.TempDir(), "http://bad host/uploads")
	if _, err := s.SaveFoodImage(context.Background(), "user-1", strings.NewReader("x"), time.UnixMilli(1)); err == nil {
		t.Fatal("expected an error for an unparsable base url")
	}
}

func TestLocalStoreKeepsUserInsideDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s := NewLocalStore(dir, "/uploads")
	url, err := s.SaveFoodImage(context.Background(), "../../etc", strings.NewReader("x"), time.UnixMilli(1))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/etc/") {
		t.Fatalf("unexpected url %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "etc")); err != nil {
		t.Fatalf("expected file under upload dir: %v", err)
	}
}
