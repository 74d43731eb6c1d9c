/*
PURPOSE:
  Deterministic file-size selection from a named distribution profile.
  Picks a category by cumulative weight, then a length within its range.

REQUIREMENTS:
  User-specified:
  - Same (profile, seed) must always yield the same size.
  - Results must not depend on call order: every call derives its own
    private random stream from the seed, never a shared generator.
  - Weights not covering the draw is an explicit failure, not a silent
    fallback to the last category.

  Implementation-discovered:
  - math/rand/v2 PCG takes an explicit seed pair, which makes per-call
    streams trivial.
  - Category walk order must be fixed (config.Categories) because Go map
    iteration order is randomized.

ARCHITECTURE INTEGRATION:
  - Called by: internal/generator (dataset.go)
  - Uses: internal/config (Categories, SizeRange)

ERROR HANDLING:
  - Unknown profile category or uncovered draw returns an error.

IMPLEMENTATION RULES:
  - Draw order within the stream is: category uniform, then length
    uniform. Changing it breaks corpus reproducibility.

USAGE:
  size, err := generator.PickSize(profile, cfg.SizeRanges, seed)

SELF-HEALING INSTRUCTIONS:
  - If selection fails for a custom profile, check its weights sum to ~1.

RELATED FILES:
  - internal/config/config.go
  - internal/generator/dataset.go

MAINTENANCE:
  - Update if size categories beyond small/medium/large are introduced.
*/

package generator

import (
	"fmt"
	"math/rand/v2"

	"github.com/daryltucker/dedup-bench/internal/config"
)

// PickSize deterministically selects a file size in bytes for the given
// profile, keyed by seed. The profile's categories are walked in
// config.Categories order, accumulating weights until one covers a uniform
// draw in [0,1); a second draw picks the length within that category's range.
func PickSize(profile map[string]float64, ranges map[string]config.SizeRange, seed uint64) (int64, error) {
	rng := rand.New(rand.NewPCG(seed, 0))

	r := rng.Float64()
	cumulative := 0.0
	category := ""
	for _, cat := range config.Categories {
		weight, ok := profile[cat]
		if !ok {
			continue
		}
		cumulative += weight
		if r < cumulative {
			category = cat
			break
		}
	}
	if category == "" {
		return 0, fmt.Errorf("profile weights (sum %.3f) do not cover draw %.3f", cumulative, r)
	}

	sizeRange, ok := ranges[category]
	if !ok {
		return 0, fmt.Errorf("no size range defined for category %q", category)
	}
	return sizeRange.Min + rng.Int64N(sizeRange.Max-sizeRange.Min+1), nil
}
