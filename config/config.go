package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

// Config is the server configuration. Values come from built-in defaults,
// then the optional YAML file, then environment variables.
type Config struct {
	Port     string         `yaml:"port" env:"PORT"`
	Env      string         `yaml:"env" env:"ENV"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	AI       AIConfig       `yaml:"ai"`
	Storage  StorageConfig  `yaml:"storage"`

	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
	OTelEndpoint   string   `yaml:"otel_endpoint" env:"OTEL_ENDPOINT"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER"`
	Host     string `yaml:"host" env:"DB_HOST"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"dbname" env:"DB_NAME"`
	Port     string `yaml:"port" env:"DB_PORT"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
	// Path is the sqlite file used when Driver is "sqlite".
	Path string `yaml:"path" env:"DB_PATH"`
}

// DSN renders the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_TTL"`
}

type AIConfig struct {
	ReplicateToken string `yaml:"replicate_token" env:"REPLICATE_API_TOKEN"`
	// FoodDetector is "replicate" or "mock".
	FoodDetector string `yaml:"food_detector" env:"FOOD_DETECTOR"`
	FoodModel    string `yaml:"food_model" env:"REPLICATE_FOOD_MODEL"`
	ImageModel   string `yaml:"image_model" env:"REPLICATE_IMAGE_MODEL"`
	VideoModel   string `yaml:"video_model" env:"REPLICATE_VIDEO_MODEL"`
}

type StorageConfig struct {
	CloudinaryURL string `yaml:"cloudinary_url" env:"CLOUDINARY_URL"`
	Folder        string `yaml:"folder" env:"UPLOAD_FOLDER"`
	// LocalDir and PublicURL back the on-disk store used without Cloudinary.
	LocalDir  string `yaml:"local_dir" env:"UPLOAD_DIR"`
	PublicURL string `yaml:"public_url" env:"UPLOAD_PUBLIC_URL"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Port: "8080",
		Env:  "development",
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			User:     "postgres",
			Password: "password",
			Name:     "pixelcat",
			Port:     "5432",
			SSLMode:  "disable",
			Path:     "pixelcat.db",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		AI: AIConfig{
			FoodDetector: "mock",
			FoodModel:    "cjwbw/food-classifier:9059bd9dce0f2bc56d4c3aac34d9e97f1fd7cd03f8f93c5b0bbdfe9eceea22bd",
			ImageModel:   "lucataco/pixart-xl-2:816c99673841b9448bc2539834c16d40e0315bbf92fef0317b57a226727409bb",
			VideoModel:   "stability-ai/stable-video-diffusion:3f0457e4619daac51203dedb472816fd4af51f3149fa7a9e0b5ffcf1b8172438",
		},
		Storage: StorageConfig{
			Folder:    "pixel-cat-calories/food-logs",
			LocalDir:  "uploads",
			PublicURL: "/uploads",
		},
		AllowedOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
	}
}

// Load builds the configuration. A missing file at path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: jwt secret is required (JWT_SECRET)")
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	switch c.AI.FoodDetector {
	case "replicate", "mock":
	default:
		return fmt.Errorf("config: unknown food detector %q", c.AI.FoodDetector)
	}
	if c.AI.FoodDetector == "replicate" && c.AI.ReplicateToken == "" {
		return errors.New("config: replicate food detector needs REPLICATE_API_TOKEN")
	}
	return nil
}
