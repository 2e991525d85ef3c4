// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// config.go - Application configuration read from the environment.

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageBadger = "badger"
)

// Config holds all application configuration.
type Config struct {
	BotName           string
	UserName          string
	Corpus            string
	Storage           string
	DBPath            string
	ReadOnly          bool
	ResponseSelection string
	MaxSimilarity     float64
	MinConfidence     float64
	LogLevel          string
	OpenAI            OpenAIConfig
}

// OpenAIConfig controls the optional model-backed agent.
type OpenAIConfig struct {
	Enabled bool
	APIKey  string
	BaseURL string
	Model   string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		BotName:           getEnv("CHATBOT_NAME", "MLWhizChatterbot"),
		UserName:          getEnv("CHATBOT_USER_NAME", "friend"),
		Corpus:            getEnv("CHATBOT_CORPUS", "chatterbot.corpus.english"),
		Storage:           strings.ToLower(getEnv("CHATBOT_STORAGE", StorageMemory)),
		DBPath:            getEnv("CHATBOT_DB_PATH", "./data/chatbot.db"),
		ReadOnly:          misc.Truthy(os.Getenv("CHATBOT_READ_ONLY")),
		ResponseSelection: getEnv("CHATBOT_RESPONSE_SELECTION", "first"),
		MaxSimilarity:     getEnvFloat("CHATBOT_MAX_SIMILARITY", 0.95),
		MinConfidence:     getEnvFloat("CHATBOT_MIN_CONFIDENCE", 0.35),
		LogLevel:          getEnv("CHATBOT_LOG_LEVEL", "warn"),
		OpenAI: OpenAIConfig{
			Enabled: misc.Truthy(os.Getenv("CHATBOT_OPENAI_ENABLED")),
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:   getEnv("CHATBOT_OPENAI_MODEL", "gpt-4o-mini"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.BotName == "" {
		return fmt.Errorf("CHATBOT_NAME cannot be empty")
	}
	if c.Corpus == "" {
		return fmt.Errorf("CHATBOT_CORPUS cannot be empty")
	}
	switch c.Storage {
	case StorageMemory:
	case StorageSQLite, StorageBadger:
		if c.DBPath == "" {
			return fmt.Errorf("CHATBOT_DB_PATH cannot be empty for %s storage", c.Storage)
		}
	default:
		return fmt.Errorf("CHATBOT_STORAGE must be one of memory, sqlite, badger; got %q", c.Storage)
	}
	if c.MaxSimilarity <= 0 || c.MaxSimilarity > 1 {
		return fmt.Errorf("CHATBOT_MAX_SIMILARITY must be in (0, 1]")
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("CHATBOT_MIN_CONFIDENCE must be in [0, 1]")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.OpenAI.Enabled && c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when CHATBOT_OPENAI_ENABLED is set")
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("CHATBOT_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}
