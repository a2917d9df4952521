package app

import (
	"fmt"
	"math"
	"time"

	"github.com/dkeye/portal/internal/core"
)

// startTimer registers the handle and schedules one suspension. The elapse
// is reported through the inbox; the run loop then re-checks registration,
// so a cancel that lands first suppresses the event entirely.
func (r *Reactor) startTimer(a core.StartTimer) {
	if err := r.reg.bindTimer(a.Handle); err != nil {
		r.fault(fmt.Errorf("start timer %d: %w", a.Handle, err))
		return
	}
	d := clampSeconds(a.Seconds)
	r.exec.Go(func() {
		time.Sleep(d)
		r.inbox.in <- timerFiredMsg{h: a.Handle}
	})
}

// clampSeconds converts fractional seconds to a wait. NaN and negative
// inputs clamp to zero (fire on the next dispatcher pass); values beyond
// the representable range clamp to the maximum duration.
func clampSeconds(seconds float64) time.Duration {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	if seconds >= float64(math.MaxInt64)/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds * float64(time.Second))
}
