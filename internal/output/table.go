/*
PURPOSE:
  Renders the operator-facing matrix summary tables: average time and
  peak memory per (cell, tool).

REQUIREMENTS:
  User-specified:
  - Compact fixed-width tables printed after the full matrix completes.
  - N/A for errored tools and for absent memory samples.

  Implementation-discovered:
  - Tool column order must be first-seen order across cells, so runs
    with unavailable tools still line up.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (run.go)
  - Consumes: internal/model

ERROR HANDLING:
  - None. Best-effort writes to the provided io.Writer.

IMPLEMENTATION RULES:
  - Takes an io.Writer so tests can capture the rendering.

USAGE:
  output.PrintMatrixSummary(os.Stdout, results)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/output/json.go

MAINTENANCE:
  - Keep column widths in sync if tool names grow.
*/

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/daryltucker/dedup-bench/internal/model"
)

// PrintMatrixSummary writes the time and peak-memory summary tables for the
// full matrix to w.
func PrintMatrixSummary(w io.Writer, results []model.MatrixResult) {
	tools := collectTools(results)

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 80))
	fmt.Fprintln(w, "MATRIX BENCHMARK SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	printHeader(w, tools)
	for _, mr := range results {
		fmt.Fprintf(w, "%-20s", cellLabel(mr))
		for _, tool := range tools {
			r := findResult(mr, tool)
			if r != nil && r.Error == "" {
				fmt.Fprintf(w, "%10.2fs ", r.AvgTime())
			} else {
				fmt.Fprintf(w, "%12s", "N/A")
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("-", 80))
	fmt.Fprintln(w, "PEAK MEMORY (MB)")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	printHeader(w, tools)
	for _, mr := range results {
		fmt.Fprintf(w, "%-20s", cellLabel(mr))
		for _, tool := range tools {
			r := findResult(mr, tool)
			if r != nil && r.Error == "" && len(r.MemoryKB) > 0 {
				fmt.Fprintf(w, "%10.1fMB", r.MaxMemoryMB())
			} else {
				fmt.Fprintf(w, "%12s", "N/A")
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("=", 80))
}

func printHeader(w io.Writer, tools []string) {
	fmt.Fprintf(w, "%-20s", "Config")
	for _, tool := range tools {
		fmt.Fprintf(w, "%12s", tool)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 80))
}

func cellLabel(mr model.MatrixResult) string {
	profile := mr.Profile
	if len(profile) > 10 {
		profile = profile[:10]
	}
	return fmt.Sprintf("%s %.0f%%", profile, mr.DupRatio*100)
}

func findResult(mr model.MatrixResult, tool string) *model.BenchmarkResult {
	for i := range mr.Results {
		if mr.Results[i].Tool == tool {
			return &mr.Results[i]
		}
	}
	return nil
}

// collectTools returns tool names in first-seen order across all cells.
func collectTools(results []model.MatrixResult) []string {
	var tools []string
	for _, mr := range results {
		for _, r := range mr.Results {
			tools = append(tools, r.Tool)
		}
	}
	return lo.Uniq(tools)
}
