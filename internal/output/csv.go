/*
PURPOSE:
  Writes the matrix summary to a CSV file, one row per (cell, tool).
  Ensures data integrity by flushing writes immediately.

REQUIREMENTS:
  User-specified:
  - Spreadsheet-friendly export alongside the JSON artifact.

  Implementation-discovered:
  - Unknown counts/accuracy serialize as empty cells, not 0.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (run.go)
  - Consumes: internal/model

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write (critical for crash resilience).
  - Use Mutex if concurrent writes are expected.

USAGE:
  w, err := output.NewCSVWriter("matrix_benchmark.csv")
  w.WriteCell(cell)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If CSV format changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update WriteCell mapping when BenchmarkResult changes.
*/

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"github.com/daryltucker/dedup-bench/internal/model"
)

// CSVWriter handles writing matrix results to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVWriter creates a new CSVWriter.
// It overwrites the file if it exists.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{
		"profile", "dup_ratio", "tool", "runs",
		"avg_time_s", "min_time_s", "avg_memory_mb", "max_memory_mb",
		"duplicates_found", "expected_duplicates", "accuracy_pct", "error",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVWriter{
		file:   f,
		writer: w,
	}, nil
}

// WriteCell writes one row per tool result in the cell.
// It is thread-safe.
func (cw *CSVWriter) WriteCell(mr model.MatrixResult) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	for i := range mr.Results {
		r := &mr.Results[i]

		found := ""
		if r.DuplicatesFound != nil {
			found = fmt.Sprintf("%d", *r.DuplicatesFound)
		}
		expected := ""
		if r.ExpectedDuplicates != nil {
			expected = fmt.Sprintf("%d", *r.ExpectedDuplicates)
		}
		accuracy := ""
		if acc := r.Accuracy(); acc != nil {
			accuracy = fmt.Sprintf("%.1f", *acc)
		}

		record := []string{
			mr.Profile,
			fmt.Sprintf("%.2f", mr.DupRatio),
			r.Tool,
			fmt.Sprintf("%d", len(r.Times)),
			fmt.Sprintf("%.4f", r.AvgTime()),
			fmt.Sprintf("%.4f", r.MinTime()),
			fmt.Sprintf("%.2f", r.AvgMemoryMB()),
			fmt.Sprintf("%.2f", r.MaxMemoryMB()),
			found,
			expected,
			accuracy,
			r.Error,
		}
		if err := cw.writer.Write(record); err != nil {
			return err
		}
	}

	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}
