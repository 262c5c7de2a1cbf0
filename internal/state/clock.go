package state

import (
	"sync/atomic"
	"time"
)

// Clock stamps captured points in milliseconds.
type Clock interface {
	NowMs() int64
}

// WallClock reads the system clock but never goes backwards, so points of a
// stroke stay time ordered even if the system time is adjusted.
type WallClock struct {
	last atomic.Int64
}

// NowMs returns the current wall-clock time in milliseconds.
func (c *WallClock) NowMs() int64 {
	now := time.Now().UnixMilli()
	for {
		last := c.last.Load()
		if now <= last {
			return last
		}
		if c.last.CompareAndSwap(last, now) {
			return now
		}
	}
}
