// Package termgath prints run progress for a human at a terminal.
package termgath

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tsarn/pygon-run/internal/supervise"
)

type TerminalGatherer struct {
	StartedAt time.Time
}

func New() *TerminalGatherer { return &TerminalGatherer{StartedAt: time.Now()} }

func (t *TerminalGatherer) StartRun(runID string, argv []string, lim supervise.Limits) {
	fmt.Printf("== run %s ==\n", runID)
	fmt.Printf("cmd: %s\n", strings.Join(argv, " "))
	fmt.Printf("limits: cpu=%dms mem=%dMB wall=%dms\n", lim.CpuMs, lim.MemMB, lim.WallMs)
}

func (t *TerminalGatherer) FinishRun(runID string, res supervise.Result) {
	dur := time.Since(t.StartedAt).Round(time.Millisecond)
	fmt.Printf("%s exit=%d cpu=%dms mem=%dMB (%s elapsed)\n",
		colorize(res.Verdict), res.ExitCode, res.CpuMs, res.MemoryMB, dur)
}

func colorize(v supervise.Verdict) string {
	switch v {
	case supervise.VerdictOk:
		return color.GreenString(v.String())
	case supervise.VerdictError:
		return color.RedString(v.String())
	default:
		return color.YellowString(v.String())
	}
}
