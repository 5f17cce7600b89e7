// Package config holds the settings shared by the command line tools: built-in
// defaults, the optional YAML config file, and validation. Command line flags
// are applied on top by each tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Commands are the shell verbs rendered for each action kind
type Commands struct {
	Move   string `yaml:"move"`
	Rename string `yaml:"rename"`
	Mkdir  string `yaml:"mkdir"`
	Delete string `yaml:"delete"`
}

type Config struct {
	// Date extraction.
	DateSources []string `yaml:"date_sources"` // Default: filename, exif, birth, mtime.
	DateFormat  string   `yaml:"date_format"`  // Go layout. Default: "2006-01-02".

	// Input expansion.
	Excludes  []string `yaml:"excludes"`
	Recursive bool     `yaml:"recursive"` // Default: true.

	// rename-by-date.
	Separators []string `yaml:"separators"` // Default: " ", "_", "-".

	// organize-by-date.
	Granularity string        `yaml:"granularity"` // day, month or year. Default: day.
	Gap         time.Duration `yaml:"gap"`         // Session clustering; 0 disables.
	MinFiles    int           `yaml:"min_files"`   // Default: 3.
	Overflow    string        `yaml:"overflow"`    // Relative to the target dir; "" is the target dir.

	// detect-duplicates.
	Window int64  `yaml:"window"` // Sampled window size in bytes. Default: 1024.
	Keep   string `yaml:"keep"`   // shortest, left or right. Default: shortest.
	Verify string `yaml:"verify"` // bytes or digest. Default: bytes.

	// rename-dirs-by-date.
	Quantiles []float64 `yaml:"quantiles"` // Default: 0.05, 0.5, 0.95.

	Commands Commands `yaml:"commands"`
}

var (
	knownSources     = map[string]bool{"filename": true, "exif": true, "birth": true, "mtime": true}
	knownGranularity = map[string]bool{"day": true, "month": true, "year": true}
	knownKeep        = map[string]bool{"shortest": true, "left": true, "right": true}
	knownVerify      = map[string]bool{"bytes": true, "digest": true}
)

func DefaultConfig() *Config {
	return &Config{
		DateSources: []string{"filename", "exif", "birth", "mtime"},
		DateFormat:  "2006-01-02",
		Excludes: []string{
			".DS_Store",
			"Thumbs.db",
			"desktop.ini",
			"**/.stfolder/",
			"**/.Trashes/",
			"**/.Spotlight-V100/",
		},
		Recursive:   true,
		Separators:  []string{" ", "_", "-"},
		Granularity: "day",
		MinFiles:    3,
		Window:      1024,
		Keep:        "shortest",
		Verify:      "bytes",
		Quantiles:   []float64{0.05, 0.5, 0.95},
		Commands: Commands{
			Move:   "mv",
			Rename: "mv",
			Mkdir:  "mkdir -p",
			Delete: "rm -rf",
		},
	}
}

// LoadConfig reads the YAML file at path on top of the defaults. An empty
// path or a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if cfg.Excludes == nil {
		cfg.Excludes = []string{}
	}

	return cfg, nil
}

// Validate checks the settings and returns every problem found
func (c *Config) Validate() error {
	var errs []error

	if len(c.DateSources) == 0 {
		errs = append(errs, errors.New("date_sources must not be empty"))
	}
	for _, s := range c.DateSources {
		if !knownSources[s] {
			errs = append(errs, fmt.Errorf("unknown date source %q", s))
		}
	}
	if c.DateFormat == "" {
		errs = append(errs, errors.New("date_format must not be empty"))
	}
	if !knownGranularity[c.Granularity] {
		errs = append(errs, fmt.Errorf("unknown granularity %q (want day, month or year)", c.Granularity))
	}
	if c.Gap < 0 {
		errs = append(errs, fmt.Errorf("gap must not be negative, got %s", c.Gap))
	}
	if c.MinFiles < 0 {
		errs = append(errs, fmt.Errorf("min_files must not be negative, got %d", c.MinFiles))
	}
	if c.Window <= 0 {
		errs = append(errs, fmt.Errorf("window must be positive, got %d", c.Window))
	}
	if !knownKeep[c.Keep] {
		errs = append(errs, fmt.Errorf("unknown keep policy %q (want shortest, left or right)", c.Keep))
	}
	if !knownVerify[c.Verify] {
		errs = append(errs, fmt.Errorf("unknown verify mode %q (want bytes or digest)", c.Verify))
	}
	if len(c.Quantiles) != 3 {
		errs = append(errs, fmt.Errorf("3 quantiles required (low, median, high), got %d", len(c.Quantiles)))
	}
	for _, q := range c.Quantiles {
		if q < 0 || q > 1 {
			errs = append(errs, fmt.Errorf("quantile must be between 0 and 1, got %g", q))
		}
	}
	if c.Commands.Move == "" || c.Commands.Rename == "" || c.Commands.Mkdir == "" || c.Commands.Delete == "" {
		errs = append(errs, errors.New("commands must not be empty"))
	}

	return errors.Join(errs...)
}
