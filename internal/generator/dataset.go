/*
PURPOSE:
  Builds a synthetic corpus with a known duplicate structure and persists
  the ground truth (metadata.json) alongside it.

REQUIREMENTS:
  User-specified:
  - Reach a target total size at a target duplicate ratio.
  - Record exactly which files are duplicates of one another; this ground
    truth is what every tool's output is later checked against.
  - Generation destructively recreates the output directory, so refusing
    the filesystem root and the home directory is mandatory.

  Implementation-discovered:
  - One master PCG stream seeded with a fixed constant makes the whole
    corpus reproducible; the draw order on that stream (coin flip, then
    pick-or-fresh-seed) must not change.
  - A two-level 256x256 shard layout keyed by file index bounds
    directory fan-out for large corpora.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (matrix.go), internal/cli (generate.go)
  - Uses: Synthesize, PickSize, internal/config, internal/model

ERROR HANDLING:
  - Unsafe output path: error before any write occurs.
  - Filesystem write failures propagate, not retried.

IMPLEMENTATION RULES:
  - Duplicates are tracked as (seed, length) pairs. Content is a function
    of both; reusing a seed at another length is not a duplicate.
  - The loop may overshoot totalSize by at most one file.

USAGE:
  meta, err := generator.Generate(dir, 500<<20, 0.3, "mixed", cfg)

SELF-HEALING INSTRUCTIONS:
  - If two runs differ, check that masterSeed and the draw order were
    not touched.

RELATED FILES:
  - internal/generator/content.go
  - internal/generator/sizes.go

MAINTENANCE:
  - Update MetadataFile consumers if the schema changes.
*/

package generator

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/daryltucker/dedup-bench/internal/config"
	"github.com/daryltucker/dedup-bench/internal/model"
	"github.com/daryltucker/dedup-bench/internal/output"
)

// MetadataFile is the ground-truth file written into each corpus root.
const MetadataFile = "metadata.json"

// masterSeed keys the generation stream; fixed so corpora are reproducible.
const masterSeed = 42

// pair identifies one unique file's content: seed and length together.
type pair struct {
	seed   uint64
	length int64
}

// Generate builds a corpus under outputDir totalling at least totalSize
// bytes, where each new file duplicates an existing unique file with
// probability dupRatio. The directory is deleted and recreated. Returns the
// ground-truth metadata, which is also persisted as metadata.json inside
// the corpus.
func Generate(outputDir string, totalSize int64, dupRatio float64, profileName string, cfg *config.Config) (*model.DatasetMetadata, error) {
	profile, ok := cfg.SizeProfiles[profileName]
	if !ok {
		return nil, fmt.Errorf("unknown size profile %q", profileName)
	}

	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	if err := checkSafePath(absDir); err != nil {
		return nil, err
	}

	if err := os.RemoveAll(absDir); err != nil {
		return nil, fmt.Errorf("failed to clear output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	rng := rand.New(rand.NewPCG(masterSeed, 0))

	var (
		uniquePairs  []pair
		usage        = make(map[pair]int)
		filesCreated int
		bytesWritten int64
		duplicates   int
	)

	for bytesWritten < totalSize {
		// The coin flip always consumes one draw, even before any unique
		// file exists; the draw order is part of the corpus identity.
		coin := rng.Float64()
		isDuplicate := coin < dupRatio && len(uniquePairs) > 0

		var p pair
		if isDuplicate {
			p = uniquePairs[rng.IntN(len(uniquePairs))]
			duplicates++
		} else {
			p.seed = uint64(rng.Uint32())
			p.length, err = PickSize(profile, cfg.SizeRanges, p.seed)
			if err != nil {
				return nil, fmt.Errorf("size selection failed for profile %q: %w", profileName, err)
			}
			uniquePairs = append(uniquePairs, p)
		}
		usage[p]++

		fileDir := filepath.Join(absDir,
			fmt.Sprintf("%02x", filesCreated%256),
			fmt.Sprintf("%02x", (filesCreated/256)%256),
		)
		if err := os.MkdirAll(fileDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create shard directory: %w", err)
		}

		filePath := filepath.Join(fileDir, fmt.Sprintf("file_%06d.bin", filesCreated))
		if err := os.WriteFile(filePath, Synthesize(p.seed, int(p.length)), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", filePath, err)
		}

		bytesWritten += p.length
		filesCreated++
	}

	filesInDupGroups := 0
	dupGroups := 0
	for _, count := range usage {
		if count >= 2 {
			filesInDupGroups += count
			dupGroups++
		}
	}

	meta := &model.DatasetMetadata{
		TotalFiles:             filesCreated,
		TotalBytes:             bytesWritten,
		UniqueFiles:            len(uniquePairs),
		DuplicateFiles:         duplicates,
		DuplicateRatio:         dupRatio,
		Profile:                profileName,
		FilesInDuplicateGroups: filesInDupGroups,
		DuplicateGroups:        dupGroups,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(absDir, MetadataFile), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write metadata: %w", err)
	}

	output.Logger.Info("Generated corpus",
		"files", filesCreated,
		"mb", fmt.Sprintf("%.1f", float64(bytesWritten)/(1024*1024)),
		"unique", len(uniquePairs),
		"duplicates", duplicates,
		"in_dup_groups", filesInDupGroups,
	)

	return meta, nil
}

// checkSafePath rejects directories too dangerous to delete-and-recreate.
func checkSafePath(absDir string) error {
	cleaned := filepath.Clean(absDir)
	if cleaned == string(filepath.Separator) {
		return fmt.Errorf("output directory %q is too dangerous to delete", absDir)
	}
	if home, err := os.UserHomeDir(); err == nil && cleaned == filepath.Clean(home) {
		return fmt.Errorf("output directory %q is too dangerous to delete", absDir)
	}
	return nil
}
