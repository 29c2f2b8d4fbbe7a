package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thatchakomP/pixel-cat-callior/entity"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if !strings.Contains(out, "upload") {
		t.Fatalf("help does not list upload: %s", out)
	}
}

func TestLoginThenProfile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			_ = json.NewEncoder(w).Encode(entity.LoginResponse{Token: "tok", User: entity.User{Email: "a@example.com"}})
		case "/api/user/profile":
			if r.Header.Get("Authorization") != "Bearer tok" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(entity.ErrorResponse{Error: "Invalid or expired token"})
				return
			}
			_ = json.NewEncoder(w).Encode(entity.ProfileResponse{
				User:          entity.User{Name: "Mo", Email: "a@example.com", TotalLifetimeCalories: 350},
				NextUnlockCat: &entity.Cat{Name: "Kitten Nibbles"},
				CaloriesToGo:  150,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()
	session := filepath.Join(t.TempDir(), "session.json")

	if _, err := run(t, "--server", ts.URL, "--session", session, "profile"); err == nil {
		t.Fatal("expected an error before login")
	}
	if _, err := run(t, "--server", ts.URL, "--session", session, "login", "a@example.com", "whiskers42"); err != nil {
		t.Fatalf("login: %v", err)
	}
	out, err := run(t, "--server", ts.URL, "--session", session, "profile")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !strings.Contains(out, "Kitten Nibbles (150 kcal to go)") {
		t.Fatalf("unexpected profile output: %s", out)
	}
}

func TestDescribeCriteria(t *testing.T) {
	kcal := 3000
	got := describeCriteria(entity.UnlockCriteria{TotalCalories: &kcal, GoalMatch: []string{"be slimmer"}})
	if got != "3000 kcal, goal: be slimmer" {
		t.Fatalf("got %q", got)
	}
	if describeCriteria(entity.UnlockCriteria{}) != "-" {
		t.Fatal("empty criteria should render as -")
	}
}
