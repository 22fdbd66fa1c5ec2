package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Storage backends for the save slot.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	Environment  string     `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName string     `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel     slog.Level `env:"-"`
	LogFile      string     `env:"LOG_FILE" envDefault:"urea-quest.log"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	RedisURL       string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"data/saves.db"`
	SaveSlot       string `env:"SAVE_SLOT"` // uuid; empty picks the latest or a new slot

	AutosaveInterval time.Duration `env:"AUTOSAVE_INTERVAL" envDefault:"30s"`
	QuestFile        string        `env:"QUEST_FILE"` // empty uses the embedded quest
	FeedbackDuration time.Duration `env:"FEEDBACK_DURATION" envDefault:"2500ms"`
	InteractRadius   float64       `env:"INTERACT_RADIUS" envDefault:"3.0"`
}

// Load reads optional dotenv files (default .env) and then the process
// environment.
func Load(dotenv ...string) (*Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.StorageBackend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be memory, redis or sqlite, got %q", c.StorageBackend))
	}
	if c.SaveSlot != "" {
		if _, err := uuid.Parse(c.SaveSlot); err != nil {
			errs = append(errs, fmt.Errorf("SAVE_SLOT: %w", err))
		}
	}
	if c.AutosaveInterval <= 0 {
		errs = append(errs, errors.New("AUTOSAVE_INTERVAL must be positive"))
	}
	if c.InteractRadius <= 0 {
		errs = append(errs, errors.New("INTERACT_RADIUS must be positive"))
	}
	return errors.Join(errs...)
}

// Slot returns the configured save slot, or uuid.Nil when none is set.
func (c *Config) Slot() uuid.UUID {
	id, err := uuid.Parse(c.SaveSlot)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
