/*
PURPOSE:
  Defines the core data structures used throughout dedup-bench.
  These models represent corpus ground truth and benchmark results.

REQUIREMENTS:
  User-specified:
  - Record per-run wall-clock times and peak-memory samples.
  - Carry the generator's ground truth (metadata.json schema) so tool
    output can be checked against it.

  Implementation-discovered:
  - Need JSON tags matching the persisted metadata.json and
    matrix_benchmark.json schemas.
  - Duplicate counts must distinguish "unknown" from zero, hence *int.

ARCHITECTURE INTEGRATION:
  - Used by: internal/generator, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs and derived accessors).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Derived values (averages, accuracy) are methods, never stored fields.

USAGE:
  res := model.BenchmarkResult{Tool: "fdupes"}

SELF-HEALING INSTRUCTIONS:
  - If new metrics are needed, add field and update JSON/CSV writers.

RELATED FILES:
  - internal/output/json.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when adding new metrics to capture.
*/

package model

// DatasetMetadata is the ground truth for one generated corpus. It is
// persisted as metadata.json in the corpus root and is immutable after write.
type DatasetMetadata struct {
	TotalFiles             int     `json:"total_files"`
	TotalBytes             int64   `json:"total_bytes"`
	UniqueFiles            int     `json:"unique_files"`
	DuplicateFiles         int     `json:"duplicate_files"`
	DuplicateRatio         float64 `json:"duplicate_ratio"`
	Profile                string  `json:"profile"`
	FilesInDuplicateGroups int     `json:"files_in_duplicate_groups"`
	DuplicateGroups        int     `json:"duplicate_groups"`
}

// BenchmarkResult is the outcome of benchmarking one tool against one corpus.
type BenchmarkResult struct {
	Tool               string    `json:"tool"`
	Times              []float64 `json:"times"`     // seconds, one per successful run
	MemoryKB           []int64   `json:"memory_kb"` // peak RSS samples
	DuplicatesFound    *int      `json:"duplicates_found"`
	ExpectedDuplicates *int      `json:"expected_duplicates"`
	Error              string    `json:"error,omitempty"`
	StdoutSample       string    `json:"stdout_sample,omitempty"`
	StderrSample       string    `json:"stderr_sample,omitempty"`
}

// AvgTime returns the mean wall-clock time in seconds, 0 if no runs completed.
func (r *BenchmarkResult) AvgTime() float64 {
	if len(r.Times) == 0 {
		return 0
	}
	var sum float64
	for _, t := range r.Times {
		sum += t
	}
	return sum / float64(len(r.Times))
}

// MinTime returns the fastest run in seconds, 0 if no runs completed.
func (r *BenchmarkResult) MinTime() float64 {
	if len(r.Times) == 0 {
		return 0
	}
	min := r.Times[0]
	for _, t := range r.Times[1:] {
		if t < min {
			min = t
		}
	}
	return min
}

// AvgMemoryMB returns the mean peak-RSS sample in MB, 0 if none captured.
func (r *BenchmarkResult) AvgMemoryMB() float64 {
	if len(r.MemoryKB) == 0 {
		return 0
	}
	var sum int64
	for _, kb := range r.MemoryKB {
		sum += kb
	}
	return float64(sum) / float64(len(r.MemoryKB)) / 1024
}

// MaxMemoryMB returns the largest peak-RSS sample in MB, 0 if none captured.
func (r *BenchmarkResult) MaxMemoryMB() float64 {
	if len(r.MemoryKB) == 0 {
		return 0
	}
	max := r.MemoryKB[0]
	for _, kb := range r.MemoryKB[1:] {
		if kb > max {
			max = kb
		}
	}
	return float64(max) / 1024
}

// Accuracy returns found/expected as a percentage, or nil when either side
// is unknown. An expectation of zero is not a division: a tool that also
// reports zero scores 100, anything else scores 0.
func (r *BenchmarkResult) Accuracy() *float64 {
	if r.DuplicatesFound == nil || r.ExpectedDuplicates == nil {
		return nil
	}
	var acc float64
	if *r.ExpectedDuplicates == 0 {
		if *r.DuplicatesFound == 0 {
			acc = 100.0
		} else {
			acc = 0.0
		}
	} else {
		acc = float64(*r.DuplicatesFound) / float64(*r.ExpectedDuplicates) * 100
	}
	return &acc
}

// MatrixResult is one (profile, dup_ratio) cell of the benchmark matrix.
type MatrixResult struct {
	Profile  string            `json:"profile"`
	DupRatio float64           `json:"dup_ratio"`
	Metadata DatasetMetadata   `json:"metadata"`
	Results  []BenchmarkResult `json:"results"`
}
