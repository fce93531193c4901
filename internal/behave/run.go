package behave

import (
	"fmt"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/tsarn/pygon-run/internal/supervise"
	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one executed scenario.
type Outcome struct {
	Case   Case
	Result supervise.Result
	Pass   bool
	Reason string
}

// RunSuite executes the cases, at most jobs at a time, and returns the
// outcomes in suite order.
func RunSuite(cases []Case, jobs int) []Outcome {
	if jobs < 1 {
		jobs = 1
	}

	results := xsync.NewMapOf[int, Outcome]()
	g := new(errgroup.Group)
	g.SetLimit(jobs)
	for i, c := range cases {
		g.Go(func() error {
			res := supervise.Run(c.Argv, c.Limits)
			results.Store(i, judge(c, res))
			return nil
		})
	}
	_ = g.Wait()

	ordered := make([]Outcome, len(cases))
	for i := range cases {
		if out, ok := results.Load(i); ok {
			ordered[i] = out
		}
	}
	return ordered
}

func judge(c Case, res supervise.Result) Outcome {
	out := Outcome{Case: c, Result: res, Pass: true}

	if got := res.Verdict.String(); got != c.Expect.Verdict {
		out.Pass = false
		out.Reason = fmt.Sprintf("expected verdict %s, got %s", c.Expect.Verdict, got)
		return out
	}
	if c.Expect.ExitCode != nil && res.ExitCode != *c.Expect.ExitCode {
		out.Pass = false
		out.Reason = fmt.Sprintf("expected exit code %d, got %d",
			*c.Expect.ExitCode, res.ExitCode)
	}
	return out
}
