package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the registrar tool. Values come from
// the environment, optionally pre-loaded from a .env file.
type Config struct {
	Environment string
	DatabasePath string
	ExportDir    string
	LogLevel     slog.Level

	// Seed credentials used once, when the user-account table is empty.
	SeedAdminUsername string
	SeedAdminPassword string
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	cfg := &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		DatabasePath:      getEnv("DATABASE_PATH", "db/registrar.db"),
		ExportDir:         getEnv("EXPORT_DIR", "exports"),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH must not be empty")
	}
	if c.SeedAdminUsername == "" || c.SeedAdminPassword == "" {
		return fmt.Errorf("seed admin credentials must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
