package engine

import (
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gnuTimeStderr = `tool: scanning /corpus
tool: 12 duplicates
	Command being timed: "dedup /corpus"
	User time (seconds): 0.42
	Maximum resident set size (kbytes): 15360
	Exit status: 0`

// TestParseMaxRSS verifies extraction of the peak RSS from GNU time -v output.
func TestParseMaxRSS(t *testing.T) {
	kb, ok := parseMaxRSS(gnuTimeStderr)
	require.True(t, ok)
	assert.Equal(t, int64(15360), kb)

	_, ok = parseMaxRSS("no instrumentation here")
	assert.False(t, ok)
}

// TestStripInstrumentation verifies the GNU time report is removed while the
// tool's own stderr survives.
func TestStripInstrumentation(t *testing.T) {
	stripped := stripInstrumentation(gnuTimeStderr)
	assert.Contains(t, stripped, "12 duplicates")
	assert.NotContains(t, stripped, "Maximum resident set size")
	assert.NotContains(t, stripped, "Command being timed")

	plain := "just tool output"
	assert.Equal(t, plain, stripInstrumentation(plain))
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell required")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
}

// TestRunProcessCapturesOutput verifies stdout/stderr capture and exit codes.
func TestRunProcessCapturesOutput(t *testing.T) {
	requireShell(t)

	m, err := RusageExecutor{}.Run([]string{"sh", "-c", "echo out; echo err >&2; exit 3"}, 10*time.Second)
	require.NoError(t, err)

	assert.Equal(t, 3, m.ExitCode)
	assert.Equal(t, "out\n", m.Stdout)
	assert.Equal(t, "err\n", m.Stderr)
	assert.False(t, m.TimedOut)
	assert.Greater(t, m.Elapsed, time.Duration(0))
}

// TestRunProcessTimeout verifies the deadline marks the measurement as timed
// out instead of erroring.
func TestRunProcessTimeout(t *testing.T) {
	requireShell(t)

	start := time.Now()
	m, err := RusageExecutor{}.Run([]string{"sh", "-c", "sleep 5"}, 200*time.Millisecond)
	require.NoError(t, err)

	assert.True(t, m.TimedOut)
	assert.Less(t, time.Since(start), 3*time.Second, "group kill must not wait out the sleep")
}

// TestRunProcessLaunchFailure verifies a missing binary is a real error.
func TestRunProcessLaunchFailure(t *testing.T) {
	_, err := RusageExecutor{}.Run([]string{"/nonexistent/definitely-not-a-binary"}, time.Second)
	assert.Error(t, err)
}

// TestRunProcessRusageMemory verifies the rusage backend reports a plausible
// peak RSS for a real process.
func TestRunProcessRusageMemory(t *testing.T) {
	requireShell(t)

	m, err := RusageExecutor{}.Run([]string{"sh", "-c", "true"}, 10*time.Second)
	require.NoError(t, err)

	if m.HasPeakRSS {
		assert.Greater(t, m.PeakRSSKB, int64(0))
	}
}
