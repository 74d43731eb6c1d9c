package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSize verifies suffix handling and error cases.
func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"512", 512},
		{"1K", 1024},
		{"500M", 500 * 1024 * 1024},
		{"2G", 2 * 1024 * 1024 * 1024},
		{"1.5M", 1536 * 1024},
		{"  10k ", 10 * 1024},
		{"64B", 64},
	}
	for _, tc := range cases {
		got, err := ParseSize(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "abc", "M", "12Q"} {
		_, err := ParseSize(bad)
		assert.Error(t, err, bad)
	}
}

// TestDefaultConfig verifies the stock matrix axes and profile weights.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Len(t, cfg.MatrixProfiles, 3)
	assert.Len(t, cfg.MatrixDupRatios, 3)
	assert.Equal(t, 1, cfg.Runs)

	for _, profile := range cfg.MatrixProfiles {
		weights, ok := cfg.SizeProfiles[profile]
		require.True(t, ok, "matrix profile %s must be defined", profile)
		var sum float64
		for _, cat := range Categories {
			sum += weights[cat]
		}
		assert.InDelta(t, 1.0, sum, 0.001, profile)
	}

	for _, cat := range Categories {
		r, ok := cfg.SizeRanges[cat]
		require.True(t, ok, cat)
		assert.Less(t, r.Min, r.Max, cat)
	}
}

// TestMaxFileSize verifies the overshoot bound comes from the largest range.
func TestMaxFileSize(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, int64(10*1024*1024), cfg.MaxFileSize())
}

// TestLoadMissingFile verifies defaults are returned when nothing is found.
func TestLoadMissingFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().DatasetSize, cfg.DatasetSize)
}

// TestLoadOverrides verifies YAML values override defaults.
func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	yaml := `
results_dir: out
runs: 5
matrix_dup_ratios: [0.5]
size_profiles:
  tiny:
    small: 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.ResultsDir)
	assert.Equal(t, 5, cfg.Runs)
	assert.Equal(t, []float64{0.5}, cfg.MatrixDupRatios)
	assert.Equal(t, map[string]float64{"small": 1.0}, cfg.SizeProfiles["tiny"])
	// Untouched fields keep defaults.
	assert.Equal(t, "500M", cfg.DatasetSize)
}

// TestLoadInvalidYAML verifies parse failures surface as errors.
func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runs: [not an int"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
