package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the review API service
type Config struct {
	Server    ServerConfig
	Content   ContentConfig
	Search    SearchConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ContentConfig holds review content configuration
type ContentConfig struct {
	Dir string
}

// SearchConfig holds search tuning knobs
type SearchConfig struct {
	DefaultLimit  int
	SnippetLength int
	MaxSnippets   int
	MarkerClass   string
}

// AnalyticsConfig holds query-analytics configuration
type AnalyticsConfig struct {
	Enabled bool
	Backend string // "memory" or "sqlite"
	DBPath  string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         GetStringEnv("SERVER_ADDR", ":8080"),
			ReadTimeout:  GetDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: GetDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Content: ContentConfig{
			Dir: GetStringEnv("CONTENT_DIR", "./content/reviews"),
		},
		Search: SearchConfig{
			DefaultLimit:  GetIntEnv("SEARCH_DEFAULT_LIMIT", 20),
			SnippetLength: GetIntEnv("SEARCH_SNIPPET_LENGTH", 150),
			MaxSnippets:   GetIntEnv("SEARCH_MAX_SNIPPETS", 2),
			MarkerClass:   GetStringEnv("SEARCH_MARKER_CLASS", "search-highlight"),
		},
		Analytics: AnalyticsConfig{
			Enabled: GetBoolEnv("ANALYTICS_ENABLED", true),
			Backend: GetStringEnv("ANALYTICS_BACKEND", "memory"),
			DBPath:  GetStringEnv("ANALYTICS_DB_PATH", "./data/analytics.db"),
		},
	}
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
