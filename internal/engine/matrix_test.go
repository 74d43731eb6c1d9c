package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daryltucker/dedup-bench/internal/config"
	"github.com/daryltucker/dedup-bench/internal/tools"
)

// matrixConfig returns a config with tiny corpora and a distinctive profile
// name so leftover temp dirs are attributable to this test.
func matrixConfig(profiles []string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.SizeProfiles["cleanup-check"] = map[string]float64{"small": 1.0}
	cfg.SizeRanges = map[string]config.SizeRange{
		"small": {Min: 16, Max: 64},
	}
	cfg.MatrixProfiles = profiles
	cfg.MatrixDupRatios = []float64{0.3, 0.6}
	return cfg
}

func leftoverCellDirs(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "dedup_bench_cleanup-check_*"))
	require.NoError(t, err)
	return matches
}

// TestMatrixRunAndCleanup verifies every cell produces a result and no cell
// working directory survives the run.
func TestMatrixRunAndCleanup(t *testing.T) {
	cfg := matrixConfig([]string{"cleanup-check"})
	m := &Matrix{
		Cfg:      cfg,
		Runner:   &Runner{Exec: &fakeExec{}, Timeout: time.Second},
		Registry: []tools.Tool{&fakeTool{name: "fake", available: true, count: 1, parseOK: true}},
	}

	results := m.Run(2_000, 1)

	require.Len(t, results, 2)
	for i, cell := range results {
		assert.Equal(t, "cleanup-check", cell.Profile)
		assert.Equal(t, cfg.MatrixDupRatios[i], cell.DupRatio)
		assert.Greater(t, cell.Metadata.TotalFiles, 0)
		require.Len(t, cell.Results, 1)
		expected := cell.Results[0].ExpectedDuplicates
		require.NotNil(t, expected)
		assert.Equal(t, cell.Metadata.FilesInDuplicateGroups, *expected)
	}

	assert.Empty(t, leftoverCellDirs(t), "cell temp dirs must be removed")
}

// TestMatrixSkipsFailedCells verifies a cell whose corpus cannot be
// generated is skipped without aborting the rest, and still leaves no
// directory behind.
func TestMatrixSkipsFailedCells(t *testing.T) {
	cfg := matrixConfig([]string{"no-such-profile", "cleanup-check"})
	m := &Matrix{
		Cfg:      cfg,
		Runner:   &Runner{Exec: &fakeExec{}, Timeout: time.Second},
		Registry: []tools.Tool{&fakeTool{name: "fake", available: true, count: 1, parseOK: true}},
	}

	results := m.Run(2_000, 1)

	require.Len(t, results, 2, "only the valid profile's cells")
	for _, cell := range results {
		assert.Equal(t, "cleanup-check", cell.Profile)
	}
	assert.Empty(t, leftoverCellDirs(t))
}

// TestMatrixDeterministicOrder verifies profiles-outer, ratios-inner
// iteration order.
func TestMatrixDeterministicOrder(t *testing.T) {
	cfg := matrixConfig([]string{"cleanup-check"})
	cfg.SizeProfiles["second"] = map[string]float64{"small": 1.0}
	cfg.MatrixProfiles = []string{"cleanup-check", "second"}

	m := &Matrix{
		Cfg:      cfg,
		Runner:   &Runner{Exec: &fakeExec{}, Timeout: time.Second},
		Registry: nil, // no tools: cells still generate and report
	}

	results := m.Run(1_000, 1)

	require.Len(t, results, 4)
	assert.Equal(t, "cleanup-check", results[0].Profile)
	assert.Equal(t, 0.3, results[0].DupRatio)
	assert.Equal(t, "cleanup-check", results[1].Profile)
	assert.Equal(t, 0.6, results[1].DupRatio)
	assert.Equal(t, "second", results[2].Profile)
	assert.Equal(t, "second", results[3].Profile)
}
