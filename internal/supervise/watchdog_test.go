package supervise

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWatchdogFires(t *testing.T) {
	cell := &verdictCell{}
	var killed atomic.Bool

	wd := armWatchdog(10*time.Millisecond, cell, func() { killed.Store(true) })
	time.Sleep(100 * time.Millisecond)
	wd.disarm()

	assert.Equal(t, VerdictWallLimit, cell.load())
	assert.True(t, killed.Load())
}

func TestWatchdogDisarmedBeforeFiring(t *testing.T) {
	cell := &verdictCell{}
	var killed atomic.Bool

	wd := armWatchdog(time.Hour, cell, func() { killed.Store(true) })
	wd.disarm()

	assert.Equal(t, VerdictNone, cell.load())
	assert.False(t, killed.Load())
}

func TestVerdictCellLocksOnce(t *testing.T) {
	cell := &verdictCell{}
	cell.lockTo(VerdictWallLimit)
	cell.lockTo(VerdictOk)
	assert.Equal(t, VerdictWallLimit, cell.load())
}
