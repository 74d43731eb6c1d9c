/*
PURPOSE:
  Benchmarks one tool against one generated corpus: warmup, repeated
  instrumented invocations, first-run output parsing.

REQUIREMENTS:
  User-specified:
  - N timed runs per tool with a cache drop before each.
  - One discarded warmup invocation first.
  - The tool's self-reported duplicate count is sampled once, from the
    first timed run only, along with bounded stdout/stderr samples.

  Implementation-discovered:
  - Timeout or launch failure stops remaining repetitions for that tool
    but keeps the data already collected.
  - Tools reporting 0 or no count get their samples dumped for
    diagnosis; silent wrong numbers are worse than noisy logs.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (matrix.go), internal/cli
  - Uses: Executor, DropCaches, internal/tools, internal/model

ERROR HANDLING:
  - Everything per-tool is contained in the result's Error field; a
    failing tool never aborts the surrounding cell.

IMPLEMENTATION RULES:
  - Sequential by design: no tool runs while another is measured, so
    cache-drop state and memory numbers are not skewed.

USAGE:
  r := engine.NewRunner(cfg)
  res := r.RunBenchmark(tool, dir, 3, &expected)

SELF-HEALING INSTRUCTIONS:
  - If every tool times out, raise tool_timeout in the config.

RELATED FILES:
  - internal/engine/instrument.go
  - internal/engine/reconcile.go

MAINTENANCE:
  - Keep sample limits in sync with what the reconciler prints.
*/

package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/daryltucker/dedup-bench/internal/config"
	"github.com/daryltucker/dedup-bench/internal/model"
	"github.com/daryltucker/dedup-bench/internal/output"
	"github.com/daryltucker/dedup-bench/internal/tools"
)

const (
	stdoutSampleLimit = 2000
	stderrSampleLimit = 1000
)

// Runner executes tool benchmarks with a pluggable instrumentation backend.
type Runner struct {
	Exec    Executor
	Timeout time.Duration
}

// NewRunner builds a Runner with the host's best instrumentation backend.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		Exec:    NewExecutor(),
		Timeout: cfg.ToolTimeout,
	}
}

// RunBenchmark runs tool against datasetPath `runs` times and collects
// timing, memory and the self-reported duplicate count.
func (r *Runner) RunBenchmark(tool tools.Tool, datasetPath string, runs int, expected *int) model.BenchmarkResult {
	result := model.BenchmarkResult{
		Tool:               tool.Name(),
		ExpectedDuplicates: expected,
	}

	if !tool.IsAvailable() {
		result.Error = "Tool not available"
		return result
	}

	argv := tool.Command(datasetPath)
	output.Logger.Info("Running tool", "tool", tool.Name(), "cmd", strings.Join(argv, " "))

	DropCaches()
	output.Logger.Info("Warmup run (discarded)", "tool", tool.Name())
	if _, err := r.Exec.Run(argv, r.Timeout); err != nil {
		// Warmup failures are swallowed; the timed runs will surface
		// anything persistent.
		output.Logger.Warn("Warmup failed", "tool", tool.Name(), "error", err)
	}

	for i := 0; i < runs; i++ {
		DropCaches()

		m, err := r.Exec.Run(argv, r.Timeout)
		if err != nil {
			result.Error = err.Error()
			break
		}
		if m.TimedOut {
			result.Error = "Timeout"
			break
		}

		result.Times = append(result.Times, m.Elapsed.Seconds())
		if m.HasPeakRSS {
			result.MemoryKB = append(result.MemoryKB, m.PeakRSSKB)
		}

		if i == 0 {
			if count, ok := tool.ParseOutput(m.Stdout, m.Stderr); ok {
				result.DuplicatesFound = &count
			}
			result.StdoutSample = truncate(m.Stdout, stdoutSampleLimit)
			result.StderrSample = truncate(m.Stderr, stderrSampleLimit)
		}

		attrs := []any{"tool", tool.Name(), "run", fmt.Sprintf("%d/%d", i+1, runs),
			"elapsed", fmt.Sprintf("%.2fs", m.Elapsed.Seconds())}
		if m.HasPeakRSS {
			attrs = append(attrs, "peak_mb", fmt.Sprintf("%.1f", float64(m.PeakRSSKB)/1024))
		}
		output.Logger.Info("Run complete", attrs...)
	}

	if result.DuplicatesFound == nil || *result.DuplicatesFound == 0 {
		output.Logger.Warn("Suspicious duplicate count", "tool", tool.Name(),
			"found", lo.FromPtrOr(result.DuplicatesFound, -1),
			"stdout_sample", truncate(result.StdoutSample, 500),
			"stderr_sample", truncate(result.StderrSample, 300),
		)
	}

	return result
}

// RunAll benchmarks every available tool in registry order, then prints a
// reconciliation diagnostic if the reported counts disagree.
func (r *Runner) RunAll(registry []tools.Tool, datasetPath string, runs int, expected *int) []model.BenchmarkResult {
	available, unavailable := lo.FilterReject(registry, func(t tools.Tool, _ int) bool {
		return t.IsAvailable()
	})

	if len(unavailable) > 0 {
		output.Logger.Info("Skipping unavailable tools",
			"tools", strings.Join(toolNames(unavailable), ", "))
	}
	output.Logger.Info("Benchmarking tools",
		"tools", strings.Join(toolNames(available), ", "))

	results := make([]model.BenchmarkResult, 0, len(available))
	for _, tool := range available {
		results = append(results, r.RunBenchmark(tool, datasetPath, runs, expected))
	}

	if diag := Reconcile(results); diag != "" {
		fmt.Print(diag)
	}
	return results
}

func toolNames(ts []tools.Tool) []string {
	return lo.Map(ts, func(t tools.Tool, _ int) string { return t.Name() })
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
