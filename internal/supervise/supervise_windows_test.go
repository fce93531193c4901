//go:build windows

package supervise_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tsarn/pygon-run/internal/supervise"
)

var generous = supervise.Limits{CpuMs: 2000, MemMB: 256, WallMs: 10000}

func TestRunCleanExit(t *testing.T) {
	res := supervise.Run([]string{"cmd", "/C", "exit 0"}, generous)

	assert.Equal(t, supervise.VerdictOk, res.Verdict)
	assert.Equal(t, 0, res.ExitCode)
	assert.Less(t, res.CpuMs, generous.CpuMs)
	assert.Less(t, res.MemoryMB, generous.MemMB)
}

func TestRunNonzeroExitCode(t *testing.T) {
	res := supervise.Run([]string{"cmd", "/C", "exit 7"}, generous)

	assert.Equal(t, supervise.VerdictOk, res.Verdict)
	assert.Equal(t, 7, res.ExitCode)
}

func TestRunLaunchFailure(t *testing.T) {
	res := supervise.Run([]string{"nonexistent-executable-for-test.exe"}, generous)

	assert.Equal(t, supervise.VerdictError, res.Verdict)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, int64(0), res.CpuMs)
	assert.Equal(t, int64(0), res.MemoryMB)
}

func TestRunEmptyArgv(t *testing.T) {
	for _, argv := range [][]string{nil, {}} {
		res := supervise.Run(argv, generous)

		assert.Equal(t, supervise.VerdictError, res.Verdict)
		assert.Equal(t, 0, res.ExitCode)
	}
}

func TestRunWallLimit(t *testing.T) {
	lim := supervise.Limits{CpuMs: 2000, MemMB: 256, WallMs: 300}

	start := time.Now()
	res := supervise.Run([]string{"cmd", "/C", "ping -n 11 127.0.0.1 > NUL"}, lim)
	elapsed := time.Since(start)

	assert.Equal(t, supervise.VerdictWallLimit, res.Verdict)
	// The child must actually be gone: a surviving ping would keep us
	// blocked for its full ten seconds.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestRunReportsMeasuredUsage(t *testing.T) {
	res := supervise.Run([]string{"cmd", "/C", "exit 0"}, generous)

	// A shell working set is at least a megabyte, so the measured peak
	// must come through instead of staying at the zero sentinel.
	assert.GreaterOrEqual(t, res.MemoryMB, int64(1))
}
