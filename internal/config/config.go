package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"atletica/internal/core"
)

type Config struct {
	// HTTP Server
	Port string

	// Navigation window, inclusive, as YYYY-MM
	CalendarMin string
	CalendarMax string

	// Event catalog
	EventsSource string
	EventsFile   string
	SQLiteDBPath string

	// Grid cache
	GridCacheSize        int
	GridCacheTTL         time.Duration
	CacheCleanupSchedule string

	// Sessions
	SessionTTL time.Duration

	// POST requests allowed per client IP per minute
	RateLimitPerMinute int

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		CalendarMin: getEnv("CALENDAR_MIN", "2026-01"),
		CalendarMax: getEnv("CALENDAR_MAX", "2026-12"),

		EventsSource: getEnv("EVENTS_SOURCE", "builtin"),
		EventsFile:   getEnv("EVENTS_FILE", ""),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/atletica.db"),

		GridCacheSize:        getEnvInt("GRID_CACHE_SIZE", 64),
		GridCacheTTL:         getEnvDuration("GRID_CACHE_TTL", 10*time.Minute),
		CacheCleanupSchedule: getEnv("CACHE_CLEANUP_SCHEDULE", "@every 5m"),

		SessionTTL: getEnvDuration("SESSION_TTL", 30*time.Minute),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg
}

// Window parses the configured navigation bounds.
func (c *Config) Window() (lo, hi core.YearMonth, err error) {
	lo, err = core.ParseYearMonth(c.CalendarMin)
	if err != nil {
		return core.YearMonth{}, core.YearMonth{}, fmt.Errorf("CALENDAR_MIN: %w", err)
	}
	hi, err = core.ParseYearMonth(c.CalendarMax)
	if err != nil {
		return core.YearMonth{}, core.YearMonth{}, fmt.Errorf("CALENDAR_MAX: %w", err)
	}
	return lo, hi, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate navigation window
	lo, errMin := core.ParseYearMonth(c.CalendarMin)
	if errMin != nil {
		errors = append(errors, fmt.Sprintf("invalid calendar min '%s': must be YYYY-MM", c.CalendarMin))
	}
	hi, errMax := core.ParseYearMonth(c.CalendarMax)
	if errMax != nil {
		errors = append(errors, fmt.Sprintf("invalid calendar max '%s': must be YYYY-MM", c.CalendarMax))
	}
	if errMin == nil && errMax == nil && lo.Compare(hi) > 0 {
		errors = append(errors, fmt.Sprintf("invalid calendar window: min %s is after max %s", lo, hi))
	}

	// Validate events source
	validSources := []string{"builtin", "yaml", "sqlite"}
	isValidSource := false
	for _, source := range validSources {
		if c.EventsSource == source {
			isValidSource = true
			break
		}
	}
	if !isValidSource {
		errors = append(errors, fmt.Sprintf("invalid events source '%s': must be one of %v", c.EventsSource, validSources))
	}

	switch c.EventsSource {
	case "yaml":
		if c.EventsFile == "" {
			errors = append(errors, "EVENTS_FILE is required when using yaml events source")
		} else if _, err := os.Stat(c.EventsFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("events file does not exist: %s", c.EventsFile))
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite events source")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate grid cache
	if c.GridCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid grid cache size %d: must be at least 1", c.GridCacheSize))
	} else if c.GridCacheSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid grid cache size %d: must be at most 10000", c.GridCacheSize))
	}
	if c.GridCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid grid cache ttl %v: must be at least 1 second", c.GridCacheTTL))
	}
	if _, err := cron.ParseStandard(c.CacheCleanupSchedule); err != nil {
		errors = append(errors, fmt.Sprintf("invalid cache cleanup schedule '%s': %v", c.CacheCleanupSchedule, err))
	}

	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session ttl %v: must be at least 1 minute", c.SessionTTL))
	} else if c.SessionTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid session ttl %v: must be at most 24 hours", c.SessionTTL))
	}

	if c.RateLimitPerMinute < 1 || c.RateLimitPerMinute > 10000 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be between 1 and 10000", c.RateLimitPerMinute))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of [text json]", c.LogFormat))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
