// Package config handles the global insp configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/insp/config.yml.
type Config struct {
	BaseURL            string        `yaml:"base_url"`
	MaxPapers          int           `yaml:"max_papers"`
	MaxAttempts        int           `yaml:"max_attempts"`
	RateLimitBackoff   time.Duration `yaml:"rate_limit_backoff"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	CacheTTL           time.Duration `yaml:"cache_ttl"`
	AuthorThreshold    int           `yaml:"author_threshold"`
	ExcludeAuthorCount int           `yaml:"exclude_author_count"`
	WellCited          int           `yaml:"well_cited"`
	OutputDir          string        `yaml:"output_dir"`
	LogLevel           string        `yaml:"log_level"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "insp"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// Environment variables that override the file.
const (
	EnvBaseURL   = "INSP_BASE_URL"
	EnvLogLevel  = "INSP_LOG_LEVEL"
	EnvMaxPapers = "INSP_MAX_PAPERS"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		BaseURL:            "https://inspirehep.net/api",
		MaxPapers:          1000,
		MaxAttempts:        10,
		RateLimitBackoff:   5 * time.Second,
		RequestTimeout:     60 * time.Second,
		CacheTTL:           10 * time.Minute,
		AuthorThreshold:    5,
		ExcludeAuthorCount: 10,
		WellCited:          10,
		OutputDir:          ".",
		LogLevel:           "warn",
	}
}

// configCache caches the loaded config.
var configCache *Config

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/insp/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Load reads the global config file over the defaults and applies environment
// overrides. A missing file is not an error.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := Default()
	if path := GlobalConfigPath(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.OutputDir = ExpandPath(cfg.OutputDir)

	configCache = &cfg
	return &cfg, nil
}

// ResetCache clears the cached config.
// Useful for testing.
func ResetCache() {
	configCache = nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvMaxPapers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", EnvMaxPapers, v)
		}
		c.MaxPapers = n
	}
	return nil
}
