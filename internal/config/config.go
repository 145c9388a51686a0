package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageDB     = "db"
	StorageMemory = "memory"
)

const (
	defaultAddr        = ":8080"
	defaultDatabaseURL = "filmorate.db"
	defaultStorage     = StorageDB
	defaultLogLevel    = "info"
)

type Config struct {
	Addr        string
	DatabaseURL string
	// Storage selects the backend: "db" (relational) or "memory".
	Storage  string
	AppEnv   string
	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment, with .env support for
// local development. Missing variables fall back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	appEnv := strings.ToLower(strings.TrimSpace(getEnv("APP_ENV", "dev")))

	cfg := &Config{
		Addr:        getEnv("ADDR", defaultAddr),
		DatabaseURL: getEnv("DATABASE_URL", defaultDatabaseURL),
		Storage:     strings.ToLower(getEnv("STORAGE", defaultStorage)),
		AppEnv:      appEnv,
		LogLevel:    getEnv("LOG_LEVEL", defaultLogLevel),
		LogJSON:     parseBoolEnv("LOG_JSON", appEnv == "prod"),
	}
	if cfg.Storage != StorageMemory {
		cfg.Storage = StorageDB
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
