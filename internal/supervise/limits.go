package supervise

import "time"

// Limits are the caller-supplied budgets for a single run. They are
// independent of each other and never mutated after construction.
type Limits struct {
	CpuMs  int64 `json:"cpu_ms"`
	MemMB  int64 `json:"mem_mb"`
	WallMs int64 `json:"wall_ms"`
}

// CpuCeilSeconds is the preventive CPU ceiling in whole seconds, rounded
// up. The kernel accounts RLIMIT_CPU at second granularity, so the ceiling
// is necessarily coarser than the judged millisecond limit.
func (l Limits) CpuCeilSeconds() uint64 {
	return uint64((l.CpuMs + 999) / 1000)
}

// MemCeilBytes is the preventive address-space ceiling: twice the judged
// limit. A process is allowed to be measured overshooting the judged limit;
// the ceiling only catches catastrophic runaway allocation.
func (l Limits) MemCeilBytes() uint64 {
	return uint64(l.MemMB) * 1024 * 1024 * 2
}

// WallBudget is the wall-clock budget the watchdog is armed with.
func (l Limits) WallBudget() time.Duration {
	return time.Duration(l.WallMs) * time.Millisecond
}
