package supervise

// resolve reconciles the verdict-so-far, the termination cause and the
// measured usage into exactly one finalized Result. First match wins:
//
//  1. a WallLimit locked in by the watchdog dominates everything;
//  2. termination by the CPU-enforcement signal is TimeLimit; any other
//     abnormal termination is Error unless measured usage overrides it;
//  3. measured usage is judged against the exact budgets, CPU before
//     memory;
//  4. otherwise the run is Ok.
//
// The measured-usage fallback exists because the preventive ceilings are
// deliberately generous: most genuine violations end as a slow or fat
// process that exited on its own, not as a kernel kill.
func resolve(sofar Verdict, cause Cause, usage Usage, lim Limits) Result {
	res := Result{
		Verdict:  sofar,
		CpuMs:    usage.CpuMs,
		MemoryMB: usage.MemoryMB,
	}
	if cause.Exited {
		res.ExitCode = cause.ExitCode
	} else {
		res.ExitCode = -cause.Signal
	}

	if res.Verdict == VerdictWallLimit {
		return res
	}

	if !cause.Exited {
		if cause.CpuEnforced {
			res.Verdict = VerdictTimeLimit
			return res
		}
		res.Verdict = VerdictError
	}

	if usage.CpuMs >= lim.CpuMs {
		res.Verdict = VerdictTimeLimit
	} else if usage.MemoryMB >= lim.MemMB {
		res.Verdict = VerdictMemoryLimit
	}

	if res.Verdict == VerdictNone {
		res.Verdict = VerdictOk
	}
	return res
}
