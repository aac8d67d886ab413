package service

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	shortDelay = 10 * time.Millisecond
	waitFor    = time.Second
	tick       = 5 * time.Millisecond
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestResetTimer_Schedule(t *testing.T) {
	t.Run("Callback runs after the delay", func(t *testing.T) {
		// Given: a timer with a short delay
		timer := NewResetTimer(newTestLogger(), shortDelay)
		var calls atomic.Int32

		// When: a callback is scheduled
		armed := timer.Schedule(func() { calls.Add(1) })

		// Then: it runs exactly once
		require.True(t, armed)
		require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, tick)
		time.Sleep(3 * shortDelay)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("Rescheduling replaces the pending callback", func(t *testing.T) {
		// Given: a pending callback
		timer := NewResetTimer(newTestLogger(), shortDelay)
		var first, second atomic.Int32
		require.True(t, timer.Schedule(func() { first.Add(1) }))

		// When: another callback is scheduled before the first fires
		require.True(t, timer.Schedule(func() { second.Add(1) }))

		// Then: only the second runs
		require.Eventually(t, func() bool { return second.Load() == 1 }, waitFor, tick)
		time.Sleep(3 * shortDelay)
		assert.Equal(t, int32(0), first.Load())
	})

	t.Run("Non-positive delay disables the timer", func(t *testing.T) {
		timer := NewResetTimer(newTestLogger(), 0)

		armed := timer.Schedule(func() { t.Error("callback must not run") })

		assert.False(t, armed)
		assert.False(t, timer.Cancel())
	})
}

func TestResetTimer_Cancel(t *testing.T) {
	t.Run("Canceled callback never runs", func(t *testing.T) {
		// Given: a pending callback
		timer := NewResetTimer(newTestLogger(), shortDelay)
		var calls atomic.Int32
		require.True(t, timer.Schedule(func() { calls.Add(1) }))

		// When: it is canceled
		canceled := timer.Cancel()

		// Then: it was pending and does not run
		assert.True(t, canceled)
		time.Sleep(3 * shortDelay)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("Cancel without a pending callback", func(t *testing.T) {
		timer := NewResetTimer(newTestLogger(), shortDelay)

		assert.False(t, timer.Cancel())
	})

	t.Run("Cancel after the callback ran", func(t *testing.T) {
		timer := NewResetTimer(newTestLogger(), shortDelay)
		var calls atomic.Int32
		require.True(t, timer.Schedule(func() { calls.Add(1) }))
		require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, tick)

		assert.False(t, timer.Cancel())
	})
}

func TestResetTimer_Stop(t *testing.T) {
	// Given: a pending callback
	timer := NewResetTimer(newTestLogger(), shortDelay)
	var calls atomic.Int32
	require.True(t, timer.Schedule(func() { calls.Add(1) }))

	// When: the timer is stopped
	timer.Stop()

	// Then: the pending callback is dropped and nothing can be scheduled anymore
	assert.False(t, timer.Schedule(func() { calls.Add(1) }))
	time.Sleep(3 * shortDelay)
	assert.Equal(t, int32(0), calls.Load())
}
