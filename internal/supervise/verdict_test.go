package supervise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	lim := Limits{CpuMs: 1000, MemMB: 256, WallMs: 5000}

	tests := []struct {
		name     string
		sofar    Verdict
		cause    Cause
		usage    Usage
		verdict  Verdict
		exitCode int
	}{
		{
			name:     "clean exit within budgets",
			cause:    Cause{Exited: true, ExitCode: 0},
			usage:    Usage{CpuMs: 12, MemoryMB: 3},
			verdict:  VerdictOk,
			exitCode: 0,
		},
		{
			name:     "nonzero exit is still ok",
			cause:    Cause{Exited: true, ExitCode: 7},
			usage:    Usage{CpuMs: 12, MemoryMB: 3},
			verdict:  VerdictOk,
			exitCode: 7,
		},
		{
			name:     "wall limit dominates everything",
			sofar:    VerdictWallLimit,
			cause:    Cause{Signal: 9},
			usage:    Usage{CpuMs: 4000, MemoryMB: 400},
			verdict:  VerdictWallLimit,
			exitCode: -9,
		},
		{
			name:     "cpu enforcement signal",
			cause:    Cause{Signal: 24, CpuEnforced: true},
			usage:    Usage{CpuMs: 990, MemoryMB: 3},
			verdict:  VerdictTimeLimit,
			exitCode: -24,
		},
		{
			name:     "other fatal signal within budgets",
			cause:    Cause{Signal: 11},
			usage:    Usage{CpuMs: 12, MemoryMB: 3},
			verdict:  VerdictError,
			exitCode: -11,
		},
		{
			name:     "fatal signal overridden by measured cpu",
			cause:    Cause{Signal: 11},
			usage:    Usage{CpuMs: 1500, MemoryMB: 3},
			verdict:  VerdictTimeLimit,
			exitCode: -11,
		},
		{
			name:     "fatal signal overridden by measured memory",
			cause:    Cause{Signal: 6},
			usage:    Usage{CpuMs: 12, MemoryMB: 300},
			verdict:  VerdictMemoryLimit,
			exitCode: -6,
		},
		{
			name:     "measured cpu at exactly the budget",
			cause:    Cause{Exited: true, ExitCode: 0},
			usage:    Usage{CpuMs: 1000, MemoryMB: 3},
			verdict:  VerdictTimeLimit,
			exitCode: 0,
		},
		{
			name:     "measured memory over the budget",
			cause:    Cause{Exited: true, ExitCode: 0},
			usage:    Usage{CpuMs: 12, MemoryMB: 256},
			verdict:  VerdictMemoryLimit,
			exitCode: 0,
		},
		{
			name:     "cpu judged before memory",
			cause:    Cause{Exited: true, ExitCode: 0},
			usage:    Usage{CpuMs: 2000, MemoryMB: 400},
			verdict:  VerdictTimeLimit,
			exitCode: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := resolve(tc.sofar, tc.cause, tc.usage, lim)
			assert.Equal(t, tc.verdict, res.Verdict)
			assert.Equal(t, tc.exitCode, res.ExitCode)
			assert.Equal(t, tc.usage.CpuMs, res.CpuMs)
			assert.Equal(t, tc.usage.MemoryMB, res.MemoryMB)
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	lim := Limits{CpuMs: 500, MemMB: 64, WallMs: 2000}
	cause := Cause{Exited: true, ExitCode: 3}
	usage := Usage{CpuMs: 120, MemoryMB: 10}

	first := resolve(VerdictNone, cause, usage, lim)
	second := resolve(VerdictNone, cause, usage, lim)
	assert.Equal(t, first, second)
	assert.Equal(t, VerdictOk, first.Verdict)
}
