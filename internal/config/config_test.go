package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "organizer.yaml")

	configContent := `date_sources: [filename, mtime]
excludes:
  - "*.xmp"
  - "**/@eaDir/"
granularity: month
gap: 48h
min_files: 5
overflow: misc
window: 4096
commands:
  move: cp
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if want := []string{"filename", "mtime"}; !reflect.DeepEqual(cfg.DateSources, want) {
		t.Errorf("DateSources = %v, want %v", cfg.DateSources, want)
	}
	if want := []string{"*.xmp", "**/@eaDir/"}; !reflect.DeepEqual(cfg.Excludes, want) {
		t.Errorf("Excludes = %v, want %v", cfg.Excludes, want)
	}
	if cfg.Granularity != "month" {
		t.Errorf("Granularity = %q, want %q", cfg.Granularity, "month")
	}
	if cfg.Gap != 48*time.Hour {
		t.Errorf("Gap = %s, want 48h", cfg.Gap)
	}
	if cfg.MinFiles != 5 || cfg.Overflow != "misc" || cfg.Window != 4096 {
		t.Errorf("unexpected values: min_files=%d overflow=%q window=%d", cfg.MinFiles, cfg.Overflow, cfg.Window)
	}
	if cfg.Commands.Move != "cp" {
		t.Errorf("Commands.Move = %q, want %q", cfg.Commands.Move, "cp")
	}

	// Keys absent from the file keep their defaults.
	if cfg.Commands.Delete != "rm -rf" {
		t.Errorf("Commands.Delete = %q, want default %q", cfg.Commands.Delete, "rm -rf")
	}
	if cfg.DateFormat != "2006-01-02" {
		t.Errorf("DateFormat = %q, want default", cfg.DateFormat)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/organizer.yaml")
	if err != nil {
		t.Fatalf("LoadConfig should return default config for nonexistent file, got error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := "excludes: [\"*.tmp\"\n  min_files: {"
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig should return error for invalid YAML")
	}
}

func TestLoadConfig_EmptyConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "empty.yaml")

	if err := os.WriteFile(configPath, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed for empty config: %v", err)
	}
	if cfg.Excludes == nil {
		t.Error("Excludes should not be nil")
	}
	if cfg.MinFiles != 3 {
		t.Errorf("MinFiles = %d, want default 3", cfg.MinFiles)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if want := []string{"filename", "exif", "birth", "mtime"}; !reflect.DeepEqual(cfg.DateSources, want) {
		t.Errorf("DateSources = %v, want %v", cfg.DateSources, want)
	}
	if cfg.Commands.Move != "mv" || cfg.Commands.Delete != "rm -rf" || cfg.Commands.Mkdir != "mkdir -p" {
		t.Errorf("unexpected default commands: %+v", cfg.Commands)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown date source",
			mutate:  func(c *Config) { c.DateSources = []string{"filename", "gps"} },
			wantErr: `unknown date source "gps"`,
		},
		{
			name:    "empty date sources",
			mutate:  func(c *Config) { c.DateSources = nil },
			wantErr: "date_sources must not be empty",
		},
		{
			name:    "bad granularity",
			mutate:  func(c *Config) { c.Granularity = "week" },
			wantErr: `unknown granularity "week"`,
		},
		{
			name:    "negative min files",
			mutate:  func(c *Config) { c.MinFiles = -1 },
			wantErr: "min_files must not be negative",
		},
		{
			name:    "zero window",
			mutate:  func(c *Config) { c.Window = 0 },
			wantErr: "window must be positive",
		},
		{
			name:    "bad keep policy",
			mutate:  func(c *Config) { c.Keep = "newest" },
			wantErr: `unknown keep policy "newest"`,
		},
		{
			name:    "two quantiles",
			mutate:  func(c *Config) { c.Quantiles = []float64{0.1, 0.9} },
			wantErr: "3 quantiles required",
		},
		{
			name:    "quantile out of range",
			mutate:  func(c *Config) { c.Quantiles = []float64{0.1, 0.5, 1.5} },
			wantErr: "quantile must be between 0 and 1",
		},
		{
			name:    "empty command",
			mutate:  func(c *Config) { c.Commands.Delete = "" },
			wantErr: "commands must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
