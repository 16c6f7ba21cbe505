package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Content configuration
	Content ContentConfig

	// Search configuration
	Search SearchConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// ContentConfig holds content-directory settings
type ContentConfig struct {
	Root          string
	Locales       []string
	DefaultLocale string
}

// SearchConfig holds search-engine settings
type SearchConfig struct {
	MinQueryLength int
	ScoreThreshold float64
	MaxResults     int
	PageSize       int
	DebounceWindow time.Duration
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables. A local .env
// file is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Content: ContentConfig{
			Root:          getEnv("CONTENT_ROOT", "./content"),
			Locales:       getListEnv("CONTENT_LOCALES", []string{"en", "fa"}),
			DefaultLocale: getEnv("CONTENT_DEFAULT_LOCALE", "en"),
		},
		Search: SearchConfig{
			MinQueryLength: getIntEnv("SEARCH_MIN_QUERY_LENGTH", 2),
			ScoreThreshold: getFloatEnv("SEARCH_SCORE_THRESHOLD", 0.4),
			MaxResults:     getIntEnv("SEARCH_MAX_RESULTS", 40),
			PageSize:       getIntEnv("SEARCH_PAGE_SIZE", 8),
			DebounceWindow: getDurationEnv("SEARCH_DEBOUNCE_WINDOW", 200*time.Millisecond),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Content.Root == "" {
		return fmt.Errorf("CONTENT_ROOT is required")
	}
	if len(c.Content.Locales) == 0 {
		return fmt.Errorf("CONTENT_LOCALES is required")
	}
	if !c.HasLocale(c.Content.DefaultLocale) {
		return fmt.Errorf("CONTENT_DEFAULT_LOCALE %q is not in CONTENT_LOCALES", c.Content.DefaultLocale)
	}
	if c.Search.PageSize <= 0 {
		return fmt.Errorf("SEARCH_PAGE_SIZE must be positive")
	}
	return nil
}

// HasLocale reports whether the locale is one of the configured locales.
func (c *Config) HasLocale(locale string) bool {
	for _, l := range c.Content.Locales {
		if l == locale {
			return true
		}
	}
	return false
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var out []string
		for _, tok := range strings.Split(value, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
