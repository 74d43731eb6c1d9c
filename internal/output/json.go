/*
PURPOSE:
  Writes the aggregated matrix results to matrix_benchmark.json.
  This is the machine-readable artifact downstream plotting consumes.

REQUIREMENTS:
  User-specified:
  - One cell record per (profile, dup_ratio) with its metadata and a
    per-tool result list.
  - Derived values (averages, accuracy) are flattened into the records
    so consumers don't recompute them.

  Implementation-discovered:
  - accuracy and duplicate counts must serialize as null when unknown,
    never 0.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (run.go)
  - Consumes: internal/model

ERROR HANDLING:
  - Returns error on directory creation, encode or write failure.

IMPLEMENTATION RULES:
  - Use encoding/json with indentation; the file is also read by humans.

USAGE:
  err := output.SaveMatrixResults(results, filepath.Join(dir, "matrix_benchmark.json"))

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go
  - internal/output/csv.go

MAINTENANCE:
  - Update toolRecord when Result metrics change.
*/

package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daryltucker/dedup-bench/internal/model"
)

type toolRecord struct {
	Tool               string    `json:"tool"`
	AvgTime            float64   `json:"avg_time"`
	MinTime            float64   `json:"min_time"`
	Times              []float64 `json:"times"`
	MemoryKB           []int64   `json:"memory_kb"`
	AvgMemoryMB        float64   `json:"avg_memory_mb"`
	MaxMemoryMB        float64   `json:"max_memory_mb"`
	DuplicatesFound    *int      `json:"duplicates_found"`
	ExpectedDuplicates *int      `json:"expected_duplicates"`
	Accuracy           *float64  `json:"accuracy"`
	Error              string    `json:"error,omitempty"`
}

type cellRecord struct {
	Profile  string                `json:"profile"`
	DupRatio float64               `json:"dup_ratio"`
	Metadata model.DatasetMetadata `json:"metadata"`
	Results  []toolRecord          `json:"results"`
}

type matrixDocument struct {
	Matrix []cellRecord `json:"matrix"`
}

// SaveMatrixResults persists the full matrix result set as indented JSON,
// creating parent directories as needed.
func SaveMatrixResults(results []model.MatrixResult, path string) error {
	doc := matrixDocument{Matrix: make([]cellRecord, 0, len(results))}

	for _, mr := range results {
		cell := cellRecord{
			Profile:  mr.Profile,
			DupRatio: mr.DupRatio,
			Metadata: mr.Metadata,
			Results:  make([]toolRecord, 0, len(mr.Results)),
		}
		for i := range mr.Results {
			r := &mr.Results[i]
			cell.Results = append(cell.Results, toolRecord{
				Tool:               r.Tool,
				AvgTime:            r.AvgTime(),
				MinTime:            r.MinTime(),
				Times:              r.Times,
				MemoryKB:           r.MemoryKB,
				AvgMemoryMB:        r.AvgMemoryMB(),
				MaxMemoryMB:        r.MaxMemoryMB(),
				DuplicatesFound:    r.DuplicatesFound,
				ExpectedDuplicates: r.ExpectedDuplicates,
				Accuracy:           r.Accuracy(),
				Error:              r.Error,
			})
		}
		doc.Matrix = append(doc.Matrix, cell)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode matrix results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	Logger.Info("Saved matrix results", "path", path)
	return nil
}
