package supervise

import (
	"sync/atomic"
	"time"
)

// verdictCell is the single piece of state shared between the watchdog and
// the supervision flow. The watchdog's write must be visible before the
// finalization path runs; disarm guarantees that by joining the goroutine.
type verdictCell struct {
	v atomic.Int32
}

// lockTo sets the verdict once. Later attempts never overwrite it.
func (c *verdictCell) lockTo(v Verdict) {
	c.v.CompareAndSwap(int32(VerdictNone), int32(v))
}

func (c *verdictCell) load() Verdict {
	return Verdict(c.v.Load())
}

// watchdog is a one-shot wall-clock alarm racing the child's natural
// termination. When it fires first it locks the verdict to WallLimit and
// kills the child; the kill of an already-dead child is a no-op, so the
// fire-versus-exit race is benign.
type watchdog struct {
	stop chan struct{}
	done chan struct{}
}

func armWatchdog(budget time.Duration, cell *verdictCell, kill func()) *watchdog {
	w := &watchdog{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	timer := time.NewTimer(budget)
	go func() {
		defer close(w.done)
		defer timer.Stop()
		select {
		case <-timer.C:
			cell.lockTo(VerdictWallLimit)
			kill()
		case <-w.stop:
		}
	}()
	return w
}

// disarm stops the watchdog and waits for it to finish, so any WallLimit
// write it made is visible to the caller.
func (w *watchdog) disarm() {
	close(w.stop)
	<-w.done
}
