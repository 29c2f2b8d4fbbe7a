package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/thatchakomP/pixel-cat-callior/ai"
	"github.com/thatchakomP/pixel-cat-callior/config"
	"github.com/thatchakomP/pixel-cat-callior/controllers"
	"github.com/thatchakomP/pixel-cat-callior/database"
	"github.com/thatchakomP/pixel-cat-callior/events"
	"github.com/thatchakomP/pixel-cat-callior/logger"
	"github.com/thatchakomP/pixel-cat-callior/progression"
	"github.com/thatchakomP/pixel-cat-callior/repository"
	"github.com/thatchakomP/pixel-cat-callior/routes"
	"github.com/thatchakomP/pixel-cat-callior/services"
	"github.com/thatchakomP/pixel-cat-callior/storage"
	"github.com/thatchakomP/pixel-cat-callior/telemetry"
)

func main() {
	// Load .env before the logger reads ENV
	envErr := godotenv.Load()

	logger.Init()
	defer logger.Sync()
	if envErr != nil {
		logger.Warn("No .env file found, using system env vars")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/development.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "pixel-cat-calories", cfg.Env, cfg.OTelEndpoint)
	if err != nil {
		logger.Fatal("Failed to set up tracing", "error", err)
	}
	defer shutdownTracing(context.Background())

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer database.Close(db)
	if _, err := database.SeedCatalog(ctx, db, database.DefaultCatalog); err != nil {
		logger.Fatal("Failed to seed catalog", "error", err)
	}

	users := repository.NewUserRepository(db)
	cats := repository.NewCatRepository(db)
	logs := repository.NewFoodLogRepository(db)

	images, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to set up image storage", "error", err)
	}

	var (
		generator progression.AssetGenerator
		detector  services.FoodDetector = ai.MockDetector{}
	)
	if cfg.AI.ReplicateToken != "" {
		client, err := ai.NewClient(cfg.AI)
		if err != nil {
			logger.Fatal("Failed to create AI client", "error", err)
		}
		generator = client
		if cfg.AI.FoodDetector == "replicate" {
			detector = client
		}
	} else {
		logger.Warn("REPLICATE_API_TOKEN not set, cats keep their bundled images")
	}

	broker := events.NewBroker()
	unlocker := progression.NewUnlocker(generator, cats)
	now := func() time.Time { return time.Now().UTC() }

	router := routes.SetupRouter(routes.Deps{
		Auth:           controllers.NewAuthController(services.NewAuthService(users, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL, now)),
		Profile:        controllers.NewProfileController(services.NewProfileService(users, cats, unlocker, generator, now)),
		Food:           controllers.NewFoodController(services.NewFoodService(users, cats, logs, images, detector, unlocker, broker, now)),
		Broker:         broker,
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		AllowedOrigins: cfg.AllowedOrigins,
		UploadDir:      localUploadDir(cfg.Storage),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

func localUploadDir(cfg config.StorageConfig) string {
	if cfg.CloudinaryURL != "" {
		return ""
	}
	return cfg.LocalDir
}
