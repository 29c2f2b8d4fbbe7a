package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLayersFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlDoc := `
port: "9000"
database:
  driver: sqlite
  path: /tmp/cats.db
auth:
  jwt_secret: from-file
  token_ttl: 2h
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9000" {
		t.Fatalf("expected port from file, got %q", cfg.Port)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "/tmp/cats.db" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Database.Host != "localhost" {
		t.Fatalf("expected default host to survive, got %q", cfg.Database.Host)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("expected env to override secret, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Fatalf("expected ttl 2h, got %v", cfg.Auth.TokenTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.AI.FoodDetector != "mock" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing secret error")
	}
	cfg.Auth.JWTSecret = "s"
	cfg.Database.Driver = "mysql"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected driver error")
	}
	cfg.Database.Driver = "postgres"
	cfg.AI.FoodDetector = "replicate"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected replicate token error")
	}
	cfg.AI.ReplicateToken = "r8_x"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
