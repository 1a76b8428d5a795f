// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds the application configuration.
type Config struct {
	SnapshotPath         string
	DatabasePath         string
	LogPath              string
	LogLevel             string
	RefreshSchedule      string
	WatchDebounce        time.Duration
	NotificationsEnabled bool
}

// Default values
const (
	defaultRefreshSchedule = "@every 30m"
	defaultWatchDebounce   = 250 * time.Millisecond
	defaultLogLevel        = "info"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		SnapshotPath:         getEnvString("SNAPSHOT_PATH", getDefaultPath("snapshot.json")),
		DatabasePath:         getEnvString("DATABASE_PATH", getDefaultPath("insights.db")),
		LogPath:              getEnvString("LOG_FILE", getDefaultPath("focusflow.log")),
		LogLevel:             getEnvString("LOG_LEVEL", defaultLogLevel),
		RefreshSchedule:      getEnvString("REFRESH_SCHEDULE", defaultRefreshSchedule),
		WatchDebounce:        getEnvDuration("WATCH_DEBOUNCE", defaultWatchDebounce),
		NotificationsEnabled: getEnvBool("NOTIFICATIONS_ENABLED", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, path := range []string{cfg.SnapshotPath, cfg.DatabasePath, cfg.LogPath} {
		if err := ensureDir(filepath.Dir(path)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SnapshotPath) == "" {
		return fmt.Errorf("SNAPSHOT_PATH must not be empty")
	}
	if c.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
			return fmt.Errorf("invalid REFRESH_SCHEDULE %q: %w", c.RefreshSchedule, err)
		}
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("WATCH_DEBOUNCE must not be negative")
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "focusflow", ".env"),
			filepath.Join(home, ".focusflow", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultPath returns name inside the focusflow config directory.
func getDefaultPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".config", "focusflow", name)
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as milliseconds if no unit specified
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
