/*
PURPOSE:
  Defines the 'run' subcommand.
  Executes the full benchmark matrix and writes the aggregated results.

REQUIREMENTS:
  User-specified:
  - Run every configured (profile, dup_ratio) combination.
  - Specific flags for size per cell, runs per tool and results dir.
  - Exit nonzero only on unhandled errors; tool failures are recorded
    in the results, not propagated.

  Implementation-discovered:
  - Need to load config first, then apply flag overrides.
  - Results: summary tables to stdout, matrix_benchmark.json and
    matrix_benchmark.csv to the results directory.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Matrix.Run
  - Uses: internal/config, internal/output

ERROR HANDLING:
  - Returns error if config load, size parse or result writing fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Override -> Matrix.Run -> Summarize/Save.

USAGE:
  dedup-bench run --size 500M --runs 3 --results ./results

SELF-HEALING INSTRUCTIONS:
  - Check flag names match Config struct fields generally.

RELATED FILES:
  - internal/cli/root.go
  - internal/engine/matrix.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daryltucker/dedup-bench/internal/config"
	"github.com/daryltucker/dedup-bench/internal/engine"
	"github.com/daryltucker/dedup-bench/internal/output"
)

var (
	runSize       string
	runCount      int
	runResultsDir string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full benchmark matrix",
	Long: `Executes the benchmark matrix: every configured size profile crossed
with every duplicate ratio. For each cell a fresh corpus is generated into
an isolated temporary directory, every available deduplication tool is
benchmarked against it, and the directory is removed afterwards.

Each tool gets one discarded warmup invocation, then the configured number
of timed runs with a best-effort filesystem cache drop before each. Peak
resident memory is captured via external instrumentation where available.
Reported duplicate counts are reconciled against the generator's ground
truth; disagreements are printed, never fatal.`,
	Example: `  # Defaults: 500M per cell, 1 run per tool
  dedup-bench run

  # Bigger cells, 3 timed runs per tool
  dedup-bench run --size 1G --runs 3

  # Custom results directory
  dedup-bench run -s 500M --results ./bench-out`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Config
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		// 2. Overrides
		if runSize != "" {
			cfg.DatasetSize = runSize
		}
		if runCount > 0 {
			cfg.Runs = runCount
		}
		if runResultsDir != "" {
			cfg.ResultsDir = runResultsDir
		}

		totalSize, err := config.ParseSize(cfg.DatasetSize)
		if err != nil {
			return err
		}

		output.Logger.Info("Running matrix benchmark",
			"profiles", len(cfg.MatrixProfiles),
			"dup_ratios", len(cfg.MatrixDupRatios),
			"size_per_cell", cfg.DatasetSize,
			"runs_per_tool", cfg.Runs,
		)

		// 3. Execution
		matrix := engine.NewMatrix(cfg)
		results := matrix.Run(totalSize, cfg.Runs)

		output.PrintMatrixSummary(os.Stdout, results)

		// 4. Persist artifacts
		jsonPath := filepath.Join(cfg.ResultsDir, "matrix_benchmark.json")
		if err := output.SaveMatrixResults(results, jsonPath); err != nil {
			return err
		}

		csvWriter, err := output.NewCSVWriter(filepath.Join(cfg.ResultsDir, "matrix_benchmark.csv"))
		if err != nil {
			return err
		}
		defer csvWriter.Close()
		for _, cell := range results {
			if err := csvWriter.WriteCell(cell); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runSize, "size", "s", "", "Dataset size per matrix cell (e.g. 500M, 1G)")
	runCmd.Flags().IntVarP(&runCount, "runs", "r", 0, "Timed runs per tool")
	runCmd.Flags().StringVar(&runResultsDir, "results", "", "Results directory")
}
