package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidLogLevels lists the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks that every numeric setting is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"max_papers", c.MaxPapers},
		{"max_attempts", c.MaxAttempts},
		{"author_threshold", c.AuthorThreshold},
		{"exclude_author_count", c.ExcludeAuthorCount},
	} {
		if f.value < 1 {
			return fmt.Errorf("%s must be positive, got %d", f.name, f.value)
		}
	}
	if c.WellCited < 0 {
		return fmt.Errorf("well_cited must not be negative, got %d", c.WellCited)
	}
	if c.RateLimitBackoff < 0 || c.RequestTimeout < 0 || c.CacheTTL < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return ValidateLogLevel(c.LogLevel)
}

// ValidateLogLevel checks that level is one of ValidLogLevels, ignoring case.
func ValidateLogLevel(level string) error {
	l := strings.ToLower(strings.TrimSpace(level))
	for _, valid := range ValidLogLevels {
		if l == valid {
			return nil
		}
	}
	return fmt.Errorf("invalid log_level: %s (valid: %v)", level, ValidLogLevels)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
