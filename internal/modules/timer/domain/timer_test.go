package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstthought/internal/modules/timer/domain"
)

var t0 = time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

func at(ms int64) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func TestStartThenCompleteMeasuresWallClock(t *testing.T) {
	t.Parallel()
	s := domain.NewState()
	s.Start(at(0))
	assert.Equal(t, domain.StatusRunning, s.Status)
	assert.Equal(t, int64(2500), s.Elapsed(at(2500)))

	s.Complete(at(5000))
	assert.Equal(t, domain.StatusCompleted, s.Status)
	assert.Equal(t, int64(5000), s.DurationMs)
	require.NotNil(t, s.StartedAt)
	assert.Equal(t, at(0), *s.StartedAt)
	assert.Equal(t, int64(5000), s.Elapsed(at(99_000)))
}

func TestPausePinsEndTime(t *testing.T) {
	t.Parallel()
	s := domain.NewState()
	s.Start(at(0))
	s.Pause(at(3000))
	assert.Equal(t, domain.StatusRunning, s.Status)
	s.Complete(at(60_000))
	assert.Equal(t, int64(3000), s.DurationMs)
}

func TestCompleteWithoutStartYieldsZero(t *testing.T) {
	t.Parallel()
	s := domain.NewState()
	s.Complete(at(1000))
	assert.Equal(t, domain.StatusCompleted, s.Status)
	assert.Zero(t, s.DurationMs)
	_, _, ok := s.Interval()
	assert.False(t, ok)
}

func TestCompleteClampsNegativeDurations(t *testing.T) {
	t.Parallel()
	s := domain.NewState()
	s.Start(at(5000))
	s.Complete(at(1000))
	assert.Zero(t, s.DurationMs)
}

func TestStartWhileRunningRestartsClock(t *testing.T) {
	t.Parallel()
	s := domain.NewState()
	s.Start(at(0))
	s.Pause(at(100))
	s.Start(at(1000))
	assert.Nil(t, s.PausedAt)
	s.Complete(at(4000))
	assert.Equal(t, int64(3000), s.DurationMs)
}

func TestResetClearsEverything(t *testing.T) {
	t.Parallel()
	s := domain.NewState()
	s.Start(at(0))
	s.ObserveVisibility(false, at(10))
	s.Reset()
	assert.Equal(t, domain.NewState(), s)
	assert.Zero(t, s.Elapsed(at(100)))
}

func TestVisibilityCompletesOncePerHiddenVisiblePair(t *testing.T) {
	t.Parallel()
	s := domain.NewState()
	s.Start(at(0))

	assert.False(t, s.ObserveVisibility(true, at(100)), "visible without hiding first must not complete")
	assert.False(t, s.ObserveVisibility(false, at(200)))
	assert.False(t, s.ObserveVisibility(false, at(300)), "repeated hide is idempotent")
	assert.True(t, s.ObserveVisibility(true, at(90_000)))
	assert.Equal(t, domain.StatusCompleted, s.Status)
	assert.Equal(t, int64(90_000), s.DurationMs)

	assert.False(t, s.ObserveVisibility(false, at(91_000)))
	assert.False(t, s.ObserveVisibility(true, at(92_000)))
	assert.Equal(t, int64(90_000), s.DurationMs, "later toggles must not touch a completed run")
}

func TestVisibilityIgnoredWhenIdle(t *testing.T) {
	t.Parallel()
	s := domain.NewState()
	assert.False(t, s.ObserveVisibility(false, at(0)))
	assert.False(t, s.ObserveVisibility(true, at(10)))
	assert.Equal(t, domain.StatusIdle, s.Status)
	assert.False(t, s.Hidden)
}

func TestIntervalOfCompletedRun(t *testing.T) {
	t.Parallel()
	s := domain.NewState()
	s.Start(at(1000))
	s.Complete(at(61_000))
	start, end, ok := s.Interval()
	require.True(t, ok)
	assert.Equal(t, at(1000), start)
	assert.Equal(t, at(61_000), end)
}
