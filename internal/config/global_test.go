package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points the config at an empty directory and clears the overrides.
func isolate(t *testing.T) string {
	t.Helper()
	ResetCache()
	t.Cleanup(ResetCache)

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvBaseURL, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvMaxPapers, "")
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalConfigPath(), "/custom/config/insp/config.yml"; got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := GlobalConfigPath(), filepath.Join(home, ".config", "insp", "config.yml"); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoad_NotFound(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != Default() {
		t.Errorf("Load() = %+v, want defaults %+v", *cfg, Default())
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
max_papers: 250
rate_limit_backoff: 2s
cache_ttl: 0s
log_level: debug
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxPapers != 250 {
		t.Errorf("MaxPapers = %d, want 250", cfg.MaxPapers)
	}
	if cfg.RateLimitBackoff != 2*time.Second {
		t.Errorf("RateLimitBackoff = %v, want 2s", cfg.RateLimitBackoff)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0", cfg.CacheTTL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.MaxAttempts != 10 || cfg.BaseURL != "https://inspirehep.net/api" {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "max_papers: 250\nbase_url: http://file.example\n")
	t.Setenv(EnvMaxPapers, "50")
	t.Setenv(EnvBaseURL, "http://env.example")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.MaxPapers != 50 || cfg.BaseURL != "http://env.example" || cfg.LogLevel != "error" {
		t.Errorf("environment should win, got %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		envMax string
	}{
		{"invalid yaml", "max_papers: [1, 2", ""},
		{"bad duration", "cache_ttl: soon", ""},
		{"non-positive", "max_attempts: 0", ""},
		{"bad log level", "log_level: loud", ""},
		{"bad env integer", "", "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.file != "" {
				writeConfig(t, dir, tt.file)
			}
			if tt.envMax != "" {
				t.Setenv(EnvMaxPapers, tt.envMax)
			}
			if _, err := Load(); err == nil {
				t.Errorf("Load() should fail")
			}
		})
	}
}

func TestLoad_Cache(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "max_papers: 7\n")

	first, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	writeConfig(t, dir, "max_papers: 8\n")
	second, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first != second || second.MaxPapers != 7 {
		t.Errorf("second Load() should return the cached config, got MaxPapers %d", second.MaxPapers)
	}

	ResetCache()
	third, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if third.MaxPapers != 8 {
		t.Errorf("MaxPapers after ResetCache = %d, want 8", third.MaxPapers)
	}
}
