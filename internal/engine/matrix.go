/*
PURPOSE:
  Orchestrates the benchmark matrix: every configured size profile
  crossed with every duplicate ratio, one isolated corpus per cell.

REQUIREMENTS:
  User-specified:
  - Deterministic nested order: profiles outer, ratios inner.
  - Fresh corpus per cell in its own temporary directory, removed
    unconditionally when the cell finishes, success or failure.
  - A failing cell must not abort the remaining cells.

  Implementation-discovered:
  - Corpus generation failure (e.g. disk full) is contained to its cell:
    the cell is logged and skipped, the matrix continues. The
    all-or-nothing alternative punishes eight good cells for one bad
    disk.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (run.go)
  - Uses: internal/generator, Runner, internal/tools, internal/model

ERROR HANDLING:
  - Per-cell containment; Run itself never fails.

IMPLEMENTATION RULES:
  - Cleanup is deferred inside runCell so it holds across every exit
    path, including panics in tool plumbing.
  - Cells are sequential; their directories never coexist with another
    cell's working set.

USAGE:
  m := engine.NewMatrix(cfg)
  results := m.Run(totalSize, runs)

SELF-HEALING INSTRUCTIONS:
  - Leftover dedup_bench_* temp dirs mean a previous process was killed
    hard; they are safe to delete.

RELATED FILES:
  - internal/engine/runner.go
  - internal/generator/dataset.go

MAINTENANCE:
  - Update if matrix axes beyond (profile, ratio) are added.
*/

package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/daryltucker/dedup-bench/internal/config"
	"github.com/daryltucker/dedup-bench/internal/generator"
	"github.com/daryltucker/dedup-bench/internal/model"
	"github.com/daryltucker/dedup-bench/internal/output"
	"github.com/daryltucker/dedup-bench/internal/tools"
)

// Matrix runs the full benchmark grid.
type Matrix struct {
	Cfg      *config.Config
	Runner   *Runner
	Registry []tools.Tool
}

// NewMatrix builds a Matrix over the full tool registry.
func NewMatrix(cfg *config.Config) *Matrix {
	return &Matrix{
		Cfg:      cfg,
		Runner:   NewRunner(cfg),
		Registry: tools.All(),
	}
}

// Run benchmarks every (profile, dup_ratio) combination from the config,
// regenerating a fresh corpus of totalSize bytes per cell and running every
// available tool `runs` times against it. Failed cells are skipped.
func (m *Matrix) Run(totalSize int64, runs int) []model.MatrixResult {
	profiles := m.Cfg.MatrixProfiles
	ratios := m.Cfg.MatrixDupRatios

	total := len(profiles) * len(ratios)
	current := 0

	var all []model.MatrixResult
	for _, profile := range profiles {
		for _, ratio := range ratios {
			current++
			output.Logger.Info("Benchmarking matrix cell",
				"cell", fmt.Sprintf("%d/%d", current, total),
				"profile", profile,
				"dup_ratio", fmt.Sprintf("%.0f%%", ratio*100),
			)

			cell, err := m.runCell(profile, ratio, totalSize, runs)
			if err != nil {
				output.Logger.Error("Skipping failed cell",
					"profile", profile, "dup_ratio", ratio, "error", err)
				continue
			}
			all = append(all, cell)
		}
	}
	return all
}

// runCell generates one cell's corpus in an isolated temp dir, benchmarks
// every tool against it, and removes the directory on every exit path.
func (m *Matrix) runCell(profile string, ratio float64, totalSize int64, runs int) (model.MatrixResult, error) {
	tempDir, err := os.MkdirTemp("", fmt.Sprintf("dedup_bench_%s_%d_", profile, int(ratio*100)))
	if err != nil {
		return model.MatrixResult{}, fmt.Errorf("failed to create cell directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	corpusDir := filepath.Join(tempDir, "demo_files")
	meta, err := generator.Generate(corpusDir, totalSize, ratio, profile, m.Cfg)
	if err != nil {
		return model.MatrixResult{}, fmt.Errorf("corpus generation failed: %w", err)
	}

	expected := meta.FilesInDuplicateGroups
	results := m.Runner.RunAll(m.Registry, corpusDir, runs, &expected)

	return model.MatrixResult{
		Profile:  profile,
		DupRatio: ratio,
		Metadata: *meta,
		Results:  results,
	}, nil
}
