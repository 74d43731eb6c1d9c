/*
PURPOSE:
  Instrumented execution of external tool processes: wall-clock timing,
  peak-RSS capture, output capture and timeout enforcement.

REQUIREMENTS:
  User-specified:
  - Blocking, sequential execution bounded by a timeout.
  - Peak resident memory per invocation; absence is tolerated.
  - On timeout the whole process group must be terminated so pipeline
    children (bash | awk | sort) do not linger.

  Implementation-discovered:
  - GNU time -v reports "Maximum resident set size (kbytes)" on stderr;
    its lines must be stripped before the tool's own stderr is parsed.
  - Hosts without GNU time still get peak RSS from the child's rusage
    (wait4), which the Go runtime exposes via ProcessState.SysUsage.

ARCHITECTURE INTEGRATION:
  - Consumed by: internal/engine (runner.go)
  - Dependencies: os/exec, golang.org/x/sys/unix (group kill)

ERROR HANDLING:
  - Launch failures return an error.
  - Timeout and non-zero exits are data (TimedOut flag, ExitCode), not
    errors; partial output is preserved.

IMPLEMENTATION RULES:
  - Swap implementations via the Executor interface; the runner's logic
    must not depend on which instrumentation backend is active.
  - darwin rusage reports bytes, linux reports KB.

USAGE:
  m, err := engine.NewExecutor().Run(argv, 10*time.Minute)

SELF-HEALING INSTRUCTIONS:
  - If memory samples are always absent, check /usr/bin/time is GNU time
    (busybox/BSD time lack -v).

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - Update maxRSSPattern if GNU time changes its verbose format.
*/

package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Measurement is the result of one instrumented invocation.
type Measurement struct {
	ExitCode   int
	Stdout     string
	Stderr     string // the tool's own stderr, instrumentation noise stripped
	Elapsed    time.Duration
	PeakRSSKB  int64
	HasPeakRSS bool
	TimedOut   bool
}

// Executor runs one external command under time/memory instrumentation.
// Implementations differ only in how peak RSS is obtained.
type Executor interface {
	Run(argv []string, timeout time.Duration) (Measurement, error)
}

const gnuTimePath = "/usr/bin/time"

// NewExecutor picks the best instrumentation backend for this host:
// GNU time when present, otherwise the child's rusage.
func NewExecutor() Executor {
	if _, err := os.Stat(gnuTimePath); err == nil {
		return GNUTimeExecutor{}
	}
	return RusageExecutor{}
}

var maxRSSPattern = regexp.MustCompile(`Maximum resident set size \(kbytes\): (\d+)`)

// GNUTimeExecutor wraps the command in `/usr/bin/time -v` and parses peak
// RSS from the instrumentation's stderr report.
type GNUTimeExecutor struct{}

func (GNUTimeExecutor) Run(argv []string, timeout time.Duration) (Measurement, error) {
	wrapped := append([]string{gnuTimePath, "-v"}, argv...)
	m, err := runProcess(wrapped, timeout)
	if err != nil {
		return m, err
	}

	if kb, ok := parseMaxRSS(m.Stderr); ok {
		m.PeakRSSKB = kb
		m.HasPeakRSS = true
	}
	m.Stderr = stripInstrumentation(m.Stderr)
	return m, nil
}

// parseMaxRSS extracts the peak RSS in KB from GNU time -v output.
func parseMaxRSS(stderr string) (int64, bool) {
	match := maxRSSPattern.FindStringSubmatch(stderr)
	if match == nil {
		return 0, false
	}
	kb, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return kb, true
}

// stripInstrumentation removes the GNU time report from captured stderr so
// tool output parsers never see it. The report starts at "Command being
// timed:" and runs to the end.
func stripInstrumentation(stderr string) string {
	lines := strings.Split(stderr, "\n")
	for i, line := range lines {
		if strings.Contains(line, "Command being timed:") {
			return strings.Join(lines[:i], "\n")
		}
	}
	return stderr
}

// RusageExecutor reads peak RSS from the child's rusage as reported by
// wait4. No wrapper process, so stderr needs no stripping.
type RusageExecutor struct{}

func (RusageExecutor) Run(argv []string, timeout time.Duration) (Measurement, error) {
	return runProcess(argv, timeout)
}

// runProcess executes argv in its own process group, captures output,
// enforces the timeout and records rusage-based peak RSS when available.
func runProcess(argv []string, timeout time.Duration) (Measurement, error) {
	var m Measurement
	if len(argv) == 0 {
		return m, errors.New("empty command")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) // #nosec G204 -- structured argv, no shell expansion
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		// Negative pid addresses the whole group; pipelines die with
		// their leader.
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}
	cmd.WaitDelay = 5 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	m.Elapsed = time.Since(start)
	m.Stdout = stdout.String()
	m.Stderr = stderr.String()

	if ctx.Err() == context.DeadlineExceeded {
		m.TimedOut = true
		m.ExitCode = -1
		return m, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return m, fmt.Errorf("failed to launch %s: %w", argv[0], err)
		}
		m.ExitCode = exitErr.ExitCode()
	}

	if state := cmd.ProcessState; state != nil {
		if ru, ok := state.SysUsage().(*syscall.Rusage); ok && ru != nil {
			kb := int64(ru.Maxrss)
			if runtime.GOOS == "darwin" {
				kb /= 1024
			}
			if kb > 0 {
				m.PeakRSSKB = kb
				m.HasPeakRSS = true
			}
		}
	}

	return m, nil
}
