// Package supervise runs a single untrusted child program under CPU,
// memory and wall-clock budgets and classifies the outcome into one of
// five verdicts.
//
// Enforcement is two-layered. The platform backend installs generous
// preventive ceilings so the kernel bounds catastrophic resource damage,
// while the exact caller-specified budgets are judged after the fact from
// measured usage. A wall-clock watchdog races the child and forcibly kills
// it when the real-time budget runs out.
package supervise

import "log/slog"

// Cause is the normalized termination cause a backend reports, the only
// termination facts the verdict resolver consumes.
type Cause struct {
	// Exited is true for a normal exit; ExitCode is then valid.
	Exited   bool
	ExitCode int
	// Signal is the fatal signal number when the child did not exit
	// normally. CpuEnforced marks it as the kernel's CPU-time
	// enforcement signal.
	Signal      int
	CpuEnforced bool
}

// Usage is the child's post-mortem resource accounting.
type Usage struct {
	CpuMs    int64
	MemoryMB int64
}

// child is the platform capability contract. Each platform backend
// provides launch() returning one of these; the supervision flow and the
// verdict resolver are shared.
type child interface {
	// kill terminates the child forcibly and unconditionally. Killing an
	// already-dead child is a no-op.
	kill()
	// awaitTermination blocks until the child terminates and reports the
	// normalized cause.
	awaitTermination() Cause
	// collectUsage returns the post-mortem accounting. Valid only after
	// awaitTermination.
	collectUsage() Usage
}

// Run supervises one child process to completion and returns the
// finalized result. Failure to create the process at all yields an Error
// verdict with zeroed usage; everything else collapses into one of the
// five verdicts through the resolver.
func Run(argv []string, lim Limits) Result {
	if len(argv) == 0 {
		slog.Warn("refusing to run an empty command")
		return Result{Verdict: VerdictError}
	}

	c, err := launch(argv, lim)
	if err != nil {
		slog.Warn("failed to launch child", "argv", argv, "error", err)
		return Result{Verdict: VerdictError}
	}

	cell := &verdictCell{}
	wd := armWatchdog(lim.WallBudget(), cell, c.kill)
	cause := c.awaitTermination()
	wd.disarm()

	usage := c.collectUsage()
	res := resolve(cell.load(), cause, usage, lim)
	slog.Debug("run finished",
		"verdict", res.Verdict,
		"exit_code", res.ExitCode,
		"cpu_ms", res.CpuMs,
		"memory_mb", res.MemoryMB)
	return res
}
