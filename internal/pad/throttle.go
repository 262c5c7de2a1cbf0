package pad

import (
	"time"

	"DrawPad/internal/input"
)

// throttle rate-limits stroke updates. A sample arriving before the interval
// has passed is held back and later samples replace it. The held sample is
// processed at the scheduled tick or before the stroke ends; a sample that
// is let through first discards it.
type throttle struct {
	interval time.Duration
	nowMs    func() int64
	fn       func(input.Event)

	// schedule runs f after d and returns a stop function. Nil makes the
	// throttle purely cooperative.
	schedule func(d time.Duration, f func()) (stop func())

	last    int64
	hasLast bool
	pending *input.Event
	stop    func()
	// gen invalidates ticks that were already queued when the timer stopped
	gen int
}

func (t *throttle) call(ev input.Event) {
	if t.interval <= 0 {
		t.fn(ev)
		return
	}

	now := t.nowMs()
	elapsed := time.Duration(now-t.last) * time.Millisecond
	if !t.hasLast || elapsed >= t.interval {
		t.cancelTimer()
		t.pending = nil
		t.last, t.hasLast = now, true
		t.fn(ev)
		return
	}

	t.pending = &ev
	if t.schedule != nil && t.stop == nil {
		gen := t.gen
		t.stop = t.schedule(t.interval-elapsed, func() {
			if gen == t.gen {
				t.flush()
			}
		})
	}
}

// flush processes the held-back sample, if any.
func (t *throttle) flush() {
	t.cancelTimer()
	if t.pending == nil {
		return
	}
	ev := *t.pending
	t.pending = nil
	t.last, t.hasLast = t.nowMs(), true
	t.fn(ev)
}

// cancel drops the held-back sample.
func (t *throttle) cancel() {
	t.cancelTimer()
	t.pending = nil
}

func (t *throttle) cancelTimer() {
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
	t.gen++
}

func afterFuncScheduler(dispatch func(func())) func(time.Duration, func()) func() {
	return func(d time.Duration, f func()) func() {
		timer := time.AfterFunc(d, func() { dispatch(f) })
		return func() { timer.Stop() }
	}
}
