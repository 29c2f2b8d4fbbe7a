package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thatchakomP/pixel-cat-callior/client"
	"github.com/thatchakomP/pixel-cat-callior/entity"
)

type session struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

func resolveSessionPath() (string, error) {
	if sessionPath != "" {
		return sessionPath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "pixelcat", "session.json"), nil
}

func saveSession(s session) error {
	path, err := resolveSessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

func loadSession() (session, error) {
	var s session
	path, err := resolveSessionPath()
	if err != nil {
		return s, err
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, errors.New("not logged in, run `pixelcat login` first")
	}
	if err != nil {
		return s, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func newClient() *client.Client {
	return &client.Client{BaseURL: serverURL}
}

// newStore returns a cached store for the saved session.
func newStore() (*client.Store, error) {
	s, err := loadSession()
	if err != nil {
		return nil, err
	}
	c := newClient()
	c.Token = s.Token
	return client.NewStore(c), nil
}

func printProfile(w io.Writer, p *entity.ProfileResponse) {
	u := p.User
	if p.Message != "" {
		fmt.Fprintln(w, p.Message)
	}
	fmt.Fprintf(w, "%s <%s>\n", nonEmpty(u.Name, "(not onboarded)"), u.Email)
	if u.BMI > 0 {
		fmt.Fprintf(w, "BMI: %.2f (%s) | Weight: %.1f kg | Goals: %s\n", u.BMI, u.BMICategory, u.WeightKg, nonEmpty(strings.Join(u.Goals, ", "), "none"))
	}
	fmt.Fprintf(w, "Today: %d / %d kcal | Lifetime: %d kcal\n", u.CurrentCaloriesToday, u.DailyCalorieTarget, u.TotalLifetimeCalories)
	if u.ActiveCat != nil {
		fmt.Fprintf(w, "Active cat: %s\n", u.ActiveCat.Name)
	}
	fmt.Fprintf(w, "Collection: %d cats\n", len(u.UnlockedCats))
	if p.NextUnlockCat != nil {
		fmt.Fprintf(w, "Next: %s (%d kcal to go)\n", p.NextUnlockCat.Name, p.CaloriesToGo)
	} else {
		fmt.Fprintln(w, "Next: collection complete")
	}
}

func printUnlocked(w io.Writer, cats []entity.Cat) {
	for _, c := range cats {
		fmt.Fprintf(w, "Unlocked %s! %s\n", c.Name, c.VideoURL)
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
