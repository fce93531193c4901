// Package report serializes run results into the four-line textual report
// the grading harness consumes, and relays results to optional collectors.
package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tsarn/pygon-run/internal/supervise"
)

// Format renders the harness report: verdict name, exit code, CPU time in
// milliseconds and peak memory in megabytes, one per line.
func Format(res supervise.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "verdict: %s\n", res.Verdict)
	fmt.Fprintf(&b, "exitcode: %d\n", res.ExitCode)
	fmt.Fprintf(&b, "time: %d\n", res.CpuMs)
	fmt.Fprintf(&b, "memory: %d\n", res.MemoryMB)
	return b.String()
}

// WriteFile writes the report to the harness destination.
func WriteFile(path string, res supervise.Result) error {
	if err := os.WriteFile(path, []byte(Format(res)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Parse reads a report back into a Result.
func Parse(text string) (supervise.Result, error) {
	var res supervise.Result
	fields := map[string]string{}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		key, value, found := strings.Cut(line, ": ")
		if !found {
			return res, fmt.Errorf("malformed report line %q", line)
		}
		fields[key] = value
	}

	verdict, ok := fields["verdict"]
	if !ok {
		return res, fmt.Errorf("report is missing the verdict line")
	}
	parsed, err := supervise.ParseVerdict(verdict)
	if err != nil {
		return res, err
	}
	res.Verdict = parsed

	for key, dst := range map[string]*int64{
		"time":   &res.CpuMs,
		"memory": &res.MemoryMB,
	} {
		value, ok := fields[key]
		if !ok {
			return res, fmt.Errorf("report is missing the %s line", key)
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return res, fmt.Errorf("malformed %s line: %w", key, err)
		}
		*dst = n
	}

	code, ok := fields["exitcode"]
	if !ok {
		return res, fmt.Errorf("report is missing the exitcode line")
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return res, fmt.Errorf("malformed exitcode line: %w", err)
	}
	res.ExitCode = n

	return res, nil
}
