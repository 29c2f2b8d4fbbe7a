// Command seed loads the cat catalog into the configured database.
//
//	go run ./cmd/seed                    # built-in catalog
//	go run ./cmd/seed -file cats.json.gz # catalog from a JSON (optionally gzipped) file
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/thatchakomP/pixel-cat-callior/config"
	"github.com/thatchakomP/pixel-cat-callior/database"
	"github.com/thatchakomP/pixel-cat-callior/logger"
)

func main() {
	file := flag.String("file", "", "catalog JSON file (.json or .json.gz)")
	configPath := flag.String("config", "config/development.yaml", "config file")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init()
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer database.Close(db)

	entries := database.DefaultCatalog
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			logger.Fatal("Failed to open catalog file", "file", *file, "error", err)
		}
		entries, err = database.LoadCatalog(f)
		f.Close()
		if err != nil {
			logger.Fatal("Failed to read catalog file", "file", *file, "error", err)
		}
	}

	if _, err := database.SeedCatalog(context.Background(), db, entries); err != nil {
		logger.Fatal("Seeding failed", "error", err)
	}
}
