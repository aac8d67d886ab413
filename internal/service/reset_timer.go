package service

import (
	"log/slog"
	"sync"
	"time"
)

type ResetTimer interface {
	Schedule(fn func()) bool
	Cancel() bool
	Stop()
}

// resetTimer runs at most one deferred callback. A callback that was canceled or
// replaced never runs, even if its timer already expired.
type resetTimer struct {
	logger *slog.Logger
	delay  time.Duration

	mu      sync.Mutex
	pending *time.Timer
	stopped bool
}

// NewResetTimer returns a timer firing after delay. A non-positive delay disables it.
func NewResetTimer(logger *slog.Logger, delay time.Duration) ResetTimer {
	return &resetTimer{
		logger: logger.With("component", "reset_timer"),
		delay:  delay,
	}
}

// Schedule arms the timer, replacing a pending callback. It reports whether fn will run.
func (that *resetTimer) Schedule(fn func()) bool {
	log := that.logger.With("method", "Schedule")

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.stopped || that.delay <= 0 {
		return false
	}

	if that.pending != nil {
		that.pending.Stop()
		log.Debug("replaced pending reset")
	}

	var timer *time.Timer
	timer = time.AfterFunc(that.delay, func() {
		that.mu.Lock()
		if that.pending != timer {
			that.mu.Unlock()
			return
		}
		that.pending = nil
		that.mu.Unlock()

		fn()
	})
	that.pending = timer

	log.Debug("reset scheduled", "delay", that.delay)

	return true
}

// Cancel disarms the pending callback and reports whether there was one.
func (that *resetTimer) Cancel() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.cancelLocked()
}

// Stop cancels the pending callback and refuses any further Schedule.
func (that *resetTimer) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.stopped = true
	if that.cancelLocked() {
		that.logger.Debug("pending reset dropped on stop")
	}
}

func (that *resetTimer) cancelLocked() bool {
	if that.pending == nil {
		return false
	}

	that.pending.Stop()
	that.pending = nil

	return true
}
