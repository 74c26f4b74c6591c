package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateLogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"INFO", false},
		{" warn ", false},
		{"warning", false},
		{"error", false},
		{"", true},
		{"trace", true},
	}

	for _, tt := range tests {
		err := ValidateLogLevel(tt.level)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateLogLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty base url", func(c *Config) { c.BaseURL = "" }, true},
		{"zero max papers", func(c *Config) { c.MaxPapers = 0 }, true},
		{"zero exclude count", func(c *Config) { c.ExcludeAuthorCount = 0 }, true},
		{"negative well cited", func(c *Config) { c.WellCited = -1 }, true},
		{"zero well cited", func(c *Config) { c.WellCited = 0 }, false},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{".", "."},
		{"/abs/path", "/abs/path"},
		{"~/papers", filepath.Join(home, "papers")},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
