// Package config provides application configuration for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Aditi-N-28/ArthaMind/internal/llm"
	"github.com/Aditi-N-28/ArthaMind/internal/progress"
	"github.com/Aditi-N-28/ArthaMind/internal/rewards"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string
	DBPath      string

	QuizThreshold int
	Rewards       rewards.Config
	LLM           llm.Config
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	llmCfg := llm.ConfigFromEnv()
	if os.Getenv("ARTHAMIND_LLM_PROVIDER") == "" {
		// No explicit provider: probe the standard key env vars, else
		// run fully on the deterministic templates.
		if discovered, ok := llm.DiscoverConfig(); ok {
			llmCfg = discovered
		} else {
			llmCfg.Provider = "mock"
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		FrontendURL:   getEnv("FRONTEND_URL", ""),
		DBPath:        getEnv("ARTHAMIND_DB", ""),
		QuizThreshold: getEnvInt("ARTHAMIND_QUIZ_THRESHOLD", progress.DefaultQuizThreshold),
		Rewards: rewards.Config{
			EngagementXP:     int64(getEnvInt("ARTHAMIND_ENGAGEMENT_XP", 5)),
			QuizCorrectXP:    int64(getEnvInt("ARTHAMIND_QUIZ_CORRECT_XP", 20)),
			QuizCorrectCoins: int64(getEnvInt("ARTHAMIND_QUIZ_CORRECT_COINS", 10)),
			QuizIncorrectXP:  int64(getEnvInt("ARTHAMIND_QUIZ_INCORRECT_XP", 5)),
		},
		LLM: llmCfg,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.QuizThreshold <= 0 {
		return fmt.Errorf("ARTHAMIND_QUIZ_THRESHOLD must be > 0")
	}
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
