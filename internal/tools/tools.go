/*
PURPOSE:
  Uniform adapter interface over the external deduplication tools being
  benchmarked, plus the static registry of all known adapters.

REQUIREMENTS:
  User-specified:
  - Per tool: availability check, command line for a target directory,
    and a parser extracting the self-reported duplicate count.
  - Parsers must signal "could not determine" distinctly from zero.

  Implementation-discovered:
  - Availability is exec.LookPath; cheap and side-effect-free.
  - Each tool reports duplicates in its own format (JSON, grouped paths,
    free text); no shared parsing algorithm exists.

ARCHITECTURE INTEGRATION:
  - Consumed by: internal/engine (runner.go)
  - Dependencies: os/exec (LookPath only; no process is spawned here)

ERROR HANDLING:
  - Parse failures return (0, false), never an error.

IMPLEMENTATION RULES:
  - Command() must return plain argv vectors; the engine owns execution,
    instrumentation and timeouts.
  - Adding a tool: implement Tool, append to All().

USAGE:
  for _, t := range tools.All() { if t.IsAvailable() { ... } }

SELF-HEALING INSTRUCTIONS:
  - If a tool's count is always absent, its output format changed;
    update that adapter's ParseOutput.

RELATED FILES:
  - internal/engine/runner.go

MAINTENANCE:
  - Keep parsers in sync with the tool versions being benchmarked.
*/

package tools

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Tool is the capability surface the benchmark runner needs from one
// external deduplication tool.
type Tool interface {
	// Name is the stable identifier used in results and reports.
	Name() string
	// IsAvailable reports whether the tool can be invoked on this host.
	// It must be fast and side-effect-free.
	IsAvailable() bool
	// Command returns the argv vector that scans path for duplicates.
	Command(path string) []string
	// ParseOutput extracts the tool's self-reported duplicate count from
	// its captured output. ok is false when the count cannot be
	// determined; that is "unknown", not zero.
	ParseOutput(stdout, stderr string) (count int, ok bool)
}

// All returns the static registry of known adapters, in report order.
func All() []Tool {
	return []Tool{Dedup{}, Fclones{}, Fdupes{}, Rdfind{}, BashMD5{}}
}

// Dedup adapts the Rust dedup binary (JSON output mode).
type Dedup struct{}

func (Dedup) Name() string { return "dedup" }

func (Dedup) findBinary() string {
	if path, err := exec.LookPath("dedup"); err == nil {
		return path
	}
	// Development fallback: a cargo build in the working tree.
	local := filepath.Join("target", "release", "dedup")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return ""
}

func (d Dedup) IsAvailable() bool { return d.findBinary() != "" }

func (d Dedup) Command(path string) []string {
	return []string{d.findBinary(), path, "--no-progress", "-f", "json"}
}

func (Dedup) ParseOutput(stdout, stderr string) (int, bool) {
	var report struct {
		Stats struct {
			DuplicateFiles *int `json:"duplicate_files"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		return 0, false
	}
	if report.Stats.DuplicateFiles == nil {
		return 0, false
	}
	return *report.Stats.DuplicateFiles, true
}

// Fclones adapts fclones; its group output lists one member path per line.
type Fclones struct{}

func (Fclones) Name() string { return "fclones" }

func (Fclones) IsAvailable() bool {
	_, err := exec.LookPath("fclones")
	return err == nil
}

func (Fclones) Command(path string) []string {
	return []string{"fclones", "group", path}
}

func (Fclones) ParseOutput(stdout, stderr string) (int, bool) {
	count := 0
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && (strings.HasPrefix(line, "/") || strings.HasPrefix(line, ".")) {
			count++
		}
	}
	return count, true
}

// Fdupes adapts fdupes; quiet recursive mode prints duplicate paths only.
type Fdupes struct{}

func (Fdupes) Name() string { return "fdupes" }

func (Fdupes) IsAvailable() bool {
	_, err := exec.LookPath("fdupes")
	return err == nil
}

func (Fdupes) Command(path string) []string {
	return []string{"fdupes", "-rq", path}
}

func (Fdupes) ParseOutput(stdout, stderr string) (int, bool) {
	count := 0
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count, true
}

// Rdfind adapts rdfind in dryrun mode; the count is buried in free text.
type Rdfind struct{}

var rdfindStdoutPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s+duplicate`),
	regexp.MustCompile(`(?i)Totally\s+(\d+)\s+files`),
	regexp.MustCompile(`(?i)It seems like you have\s+(\d+)`),
}

var rdfindStderrPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s+duplicate`),
}

func (Rdfind) Name() string { return "rdfind" }

func (Rdfind) IsAvailable() bool {
	_, err := exec.LookPath("rdfind")
	return err == nil
}

func (Rdfind) Command(path string) []string {
	return []string{"rdfind", "-dryrun", "true", "-outputname", "/dev/null", path}
}

func (Rdfind) ParseOutput(stdout, stderr string) (int, bool) {
	for _, re := range rdfindStdoutPatterns {
		if m := re.FindStringSubmatch(stdout); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}
	for _, re := range rdfindStderrPatterns {
		if m := re.FindStringSubmatch(stderr); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// BashMD5 is the shell baseline: hash everything, count repeated sums.
type BashMD5 struct{}

func (BashMD5) Name() string { return "bash+md5" }

func (BashMD5) IsAvailable() bool {
	_, err := exec.LookPath("bash")
	return err == nil
}

func (BashMD5) Command(path string) []string {
	script := fmt.Sprintf(
		`find '%s' -type f -exec md5sum {} + | awk '{print $1}' | sort | uniq -c | awk '$1 > 1 {sum += $1} END {print sum+0}'`,
		path,
	)
	return []string{"bash", "-c", script}
}

func (BashMD5) ParseOutput(stdout, stderr string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(stdout))
	if err != nil {
		return 0, false
	}
	return n, true
}
