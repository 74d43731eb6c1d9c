/*
PURPOSE:
  Cross-checks the duplicate counts reported by the benchmarked tools
  against each other and against the generator's ground truth.

REQUIREMENTS:
  User-specified:
  - Silent when every completed tool agrees with ground truth.
  - Otherwise a diagnostic listing expected count, each tool's count and
    its signed deviation.
  - Advisory only: never alters or rejects results.

  Implementation-discovered:
  - Tools with an error or an unknown count are excluded from the
    comparison; "unknown" must not read as a mismatch against 0.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (runner.go RunAll)
  - Uses: internal/model, samber/lo

ERROR HANDLING:
  - None. Pure function over results.

IMPLEMENTATION RULES:
  - Returns the diagnostic as a string ("" = silent pass); the caller
    decides where it goes.

USAGE:
  if diag := engine.Reconcile(results); diag != "" { fmt.Print(diag) }

SELF-HEALING INSTRUCTIONS:
  - Persistent off-by-N deviations usually mean a parser counts group
    members where ground truth counts files in groups (or vice versa).

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - None.
*/

package engine

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/daryltucker/dedup-bench/internal/model"
)

// Reconcile compares completed tools' reported duplicate counts with each
// other and with the expected ground truth. Returns "" when everything
// agrees, otherwise a printable diagnostic comparison.
func Reconcile(results []model.BenchmarkResult) string {
	type reported struct {
		tool  string
		count int
	}

	var counts []reported
	var expected *int
	for _, r := range results {
		if r.Error == "" && r.DuplicatesFound != nil {
			counts = append(counts, reported{tool: r.Tool, count: *r.DuplicatesFound})
		}
		if r.ExpectedDuplicates != nil {
			expected = r.ExpectedDuplicates
		}
	}

	if len(counts) == 0 {
		return ""
	}

	distinct := lo.Uniq(lo.Map(counts, func(c reported, _ int) int { return c.count }))
	allMatchExpected := expected != nil && lo.EveryBy(counts, func(c reported) bool {
		return c.count == *expected
	})

	if len(distinct) == 1 && allMatchExpected {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  Duplicate count comparison:\n")
	if expected != nil {
		fmt.Fprintf(&b, "    Expected (generated): %d\n", *expected)
	}
	for _, c := range counts {
		suffix := ""
		if expected != nil {
			if c.count == *expected {
				suffix = " OK"
			} else {
				suffix = fmt.Sprintf(" (off by %+d)", c.count-*expected)
			}
		}
		fmt.Fprintf(&b, "    %s: %d%s\n", c.tool, c.count, suffix)
	}
	b.WriteString("\n")
	return b.String()
}
