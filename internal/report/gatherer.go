package report

import "github.com/tsarn/pygon-run/internal/supervise"

// Gatherer receives run lifecycle events. Implementations relay them to a
// terminal, a message queue, or wherever the pipeline wants them.
type Gatherer interface {
	StartRun(runID string, argv []string, lim supervise.Limits)
	FinishRun(runID string, res supervise.Result)
}
