package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

// TestDerivedTimes verifies average/min over recorded run times.
func TestDerivedTimes(t *testing.T) {
	r := BenchmarkResult{Times: []float64{2.0, 1.0, 3.0}}
	assert.InDelta(t, 2.0, r.AvgTime(), 1e-9)
	assert.InDelta(t, 1.0, r.MinTime(), 1e-9)

	empty := BenchmarkResult{}
	assert.Zero(t, empty.AvgTime())
	assert.Zero(t, empty.MinTime())
}

// TestDerivedMemory verifies average/max peak-RSS conversion to MB.
func TestDerivedMemory(t *testing.T) {
	r := BenchmarkResult{MemoryKB: []int64{1024, 3072}}
	assert.InDelta(t, 2.0, r.AvgMemoryMB(), 1e-9)
	assert.InDelta(t, 3.0, r.MaxMemoryMB(), 1e-9)

	empty := BenchmarkResult{}
	assert.Zero(t, empty.AvgMemoryMB())
	assert.Zero(t, empty.MaxMemoryMB())
}

// TestAccuracy verifies the found/expected percentage.
func TestAccuracy(t *testing.T) {
	r := BenchmarkResult{DuplicatesFound: intPtr(5), ExpectedDuplicates: intPtr(10)}
	acc := r.Accuracy()
	require.NotNil(t, acc)
	assert.InDelta(t, 50.0, *acc, 1e-9)
}

// TestAccuracyZeroExpected verifies the 0-expected edge case: agreement on
// zero scores 100, any reported duplicates score 0, never a division.
func TestAccuracyZeroExpected(t *testing.T) {
	agree := BenchmarkResult{DuplicatesFound: intPtr(0), ExpectedDuplicates: intPtr(0)}
	acc := agree.Accuracy()
	require.NotNil(t, acc)
	assert.Equal(t, 100.0, *acc)

	disagree := BenchmarkResult{DuplicatesFound: intPtr(3), ExpectedDuplicates: intPtr(0)}
	acc = disagree.Accuracy()
	require.NotNil(t, acc)
	assert.Equal(t, 0.0, *acc)
}

// TestAccuracyUnknown verifies absence of either side yields nil, not 0.
func TestAccuracyUnknown(t *testing.T) {
	assert.Nil(t, (&BenchmarkResult{ExpectedDuplicates: intPtr(10)}).Accuracy())
	assert.Nil(t, (&BenchmarkResult{DuplicatesFound: intPtr(10)}).Accuracy())
	assert.Nil(t, (&BenchmarkResult{}).Accuracy())
}
