package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/oasnav/oasnav/navigation"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input and output limits.
	MaxInputSize int64
	ListLimit    int
	MaxLimit     int

	// Navigation defaults, overridable per call.
	HideModels       bool
	Examples         bool
	OperationsSorter string
	TagsSorter       string

	LogLevel slog.Level
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASNAV_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASNAV_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASNAV_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASNAV_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("OASNAV_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASNAV_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInputSize:       int64(envInt("OASNAV_MAX_INPUT_SIZE", 10<<20)),
		ListLimit:          envInt("OASNAV_LIST_LIMIT", 100),
		MaxLimit:           envInt("OASNAV_MAX_LIMIT", 1000),
		HideModels:         envBool("OASNAV_HIDE_MODELS", false),
		Examples:           envBool("OASNAV_EXAMPLES", true),
		OperationsSorter:   envSorter("OASNAV_OPERATIONS_SORTER", operationsSorterValid),
		TagsSorter:         envSorter("OASNAV_TAGS_SORTER", tagsSorterValid),
		LogLevel:           envLevel("OASNAV_LOG_LEVEL", slog.LevelWarn),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

func operationsSorterValid(name string) bool {
	_, err := navigation.ParseOperationsSorter(name)
	return err == nil
}

func tagsSorterValid(name string) bool {
	_, err := navigation.ParseTagsSorter(name)
	return err == nil
}

// envSorter returns a validated sorter name, or "" for the default.
func envSorter(key string, valid func(string) bool) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return ""
	}
	if !valid(v) {
		slog.Warn("invalid sorter env var, ignoring", "key", key, "value", v) //nolint:gosec // G706: values are structured log fields, not format strings
		return ""
	}
	return v
}

func envLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return level
}
