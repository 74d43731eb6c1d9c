/*
PURPOSE:
  Defines the configuration structure and loading logic for dedup-bench.
  Size profiles, size ranges, matrix axes and runner defaults live here.

REQUIREMENTS:
  User-specified:
  - Allow configuration of size distributions, matrix axes, timeouts,
    results directory.
  - Defaults must match the stock benchmark (3 profiles x 3 dup ratios,
    500M per cell, 1 run per tool).

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Profiles must be walked in a fixed category order so weighted
    selection is deterministic (YAML/Go maps do not preserve order).

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/generator, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing config file falls back to defaults.

IMPLEMENTATION RULES:
  - Loaded once at startup, passed explicitly into generator/runner calls.
  - Never read implicitly from package state after Load.

USAGE:
  cfg, err := config.Load("dedup_bench.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update Load() defaults.

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Categories is the fixed walk order for weighted size selection.
// Profile maps are always evaluated in this order.
var Categories = []string{"small", "medium", "large"}

// SizeRange bounds one size category in bytes, inclusive.
type SizeRange struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// Config represents the full configuration for dedup-bench.
type Config struct {
	ResultsDir  string        `yaml:"results_dir"`
	DatasetSize string        `yaml:"dataset_size"`
	Runs        int           `yaml:"runs"`
	ToolTimeout time.Duration `yaml:"tool_timeout"`

	// SizeProfiles maps profile name -> category -> probability weight.
	// Weights need not sum to exactly 1.0; selection fails explicitly if
	// the cumulative walk never covers the draw.
	SizeProfiles map[string]map[string]float64 `yaml:"size_profiles"`

	// SizeRanges maps category -> byte range, shared by all profiles.
	SizeRanges map[string]SizeRange `yaml:"size_ranges"`

	// Matrix axes: profiles outer, ratios inner.
	MatrixProfiles  []string  `yaml:"matrix_profiles"`
	MatrixDupRatios []float64 `yaml:"matrix_dup_ratios"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ResultsDir:  "results",
		DatasetSize: "500M",
		Runs:        1,
		ToolTimeout: 10 * time.Minute,
		SizeProfiles: map[string]map[string]float64{
			"small-heavy": {"small": 0.70, "medium": 0.25, "large": 0.05},
			"mixed":       {"small": 0.40, "medium": 0.40, "large": 0.20},
			"large-heavy": {"small": 0.10, "medium": 0.30, "large": 0.60},
		},
		SizeRanges: map[string]SizeRange{
			"small":  {Min: 1, Max: 1024},
			"medium": {Min: 1024, Max: 100 * 1024},
			"large":  {Min: 100 * 1024, Max: 10 * 1024 * 1024},
		},
		MatrixProfiles:  []string{"small-heavy", "mixed", "large-heavy"},
		MatrixDupRatios: []float64{0.10, 0.30, 0.60},
	}
}

// MaxFileSize returns the largest byte length any category can produce.
// The generator's total-size overshoot is bounded by this value.
func (c *Config) MaxFileSize() int64 {
	var max int64
	for _, r := range c.SizeRanges {
		if r.Max > max {
			max = r.Max
		}
	}
	return max
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"dedup_bench.yaml", "dedup_bench.conf"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// ParseSize parses a size string like "500M" or "2G" into bytes.
// Suffixes are 1024-based; a bare number is taken as bytes.
func ParseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	multipliers := map[byte]int64{
		'B': 1,
		'K': 1024,
		'M': 1024 * 1024,
		'G': 1024 * 1024 * 1024,
	}

	if mult, ok := multipliers[s[len(s)-1]]; ok {
		value, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid size %q: %w", s, err)
		}
		return int64(value * float64(mult)), nil
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return value, nil
}
