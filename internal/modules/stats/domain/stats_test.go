package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstthought/internal/modules/stats/domain"
	"firstthought/internal/platform/period"
)

var now = time.Date(2026, 2, 25, 18, 0, 0, 0, time.UTC)

func s(id string, durationMs int64, createdAt time.Time) domain.Session {
	return domain.Session{ID: id, DurationMs: durationMs, CreatedAt: createdAt, StartedAt: createdAt.Add(-time.Duration(durationMs) * time.Millisecond)}
}

func TestSingleSessionScenario(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{s("a", 65_000, now)}
	assert.Equal(t, int64(65_000), domain.MedianDuration(sessions))
	best, ok := domain.BestSession(sessions)
	require.True(t, ok)
	assert.Equal(t, int64(65_000), best.DurationMs)
}

func TestTwoSessionScenario(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{s("a", 60_000, now.Add(-time.Hour)), s("b", 120_000, now)}
	assert.Equal(t, int64(90_000), domain.AverageDuration(sessions))
	assert.Equal(t, int64(90_000), domain.MedianDuration(sessions))
}

func TestEmptyInputs(t *testing.T) {
	t.Parallel()
	assert.Zero(t, domain.AverageDuration(nil))
	assert.Zero(t, domain.MedianDuration(nil))
	_, ok := domain.BestSession(nil)
	assert.False(t, ok)
	stats := domain.Daily(nil, now)
	assert.Zero(t, stats.Count)
	assert.Nil(t, stats.Best)
}

func TestAverageAndMedianFloor(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{s("a", 1, now), s("b", 2, now), s("c", 10, now), s("d", 3, now)}
	assert.Equal(t, int64(4), domain.AverageDuration(sessions))
	assert.Equal(t, int64(2), domain.MedianDuration(sessions), "floor of (2+3)/2")
}

func TestBestSessionFirstWinsTies(t *testing.T) {
	t.Parallel()
	best, ok := domain.BestSession([]domain.Session{s("a", 5, now), s("b", 9, now), s("c", 9, now)})
	require.True(t, ok)
	assert.Equal(t, "b", best.ID)
}

func TestForPeriodFiltersByCreatedAt(t *testing.T) {
	t.Parallel()
	sessions := []domain.Session{
		s("today", 60_000, now.Add(-time.Hour)),
		s("monday", 300_000, time.Date(2026, 2, 23, 9, 0, 0, 0, time.UTC)),
		s("last-month", 900_000, time.Date(2026, 1, 30, 9, 0, 0, 0, time.UTC)),
	}

	day := domain.ForPeriod(sessions, period.Day, now)
	assert.Equal(t, 1, day.Count)
	assert.Equal(t, int64(60_000), day.TotalMs)

	week := domain.ForPeriod(sessions, period.Week, now)
	assert.Equal(t, 2, week.Count)
	assert.Equal(t, int64(360_000), week.TotalMs)
	assert.Equal(t, int64(180_000), week.AverageMs)
	require.NotNil(t, week.Best)
	assert.Equal(t, "monday", week.Best.ID)

	all := domain.ForPeriod(sessions, period.AllTime, now)
	assert.Equal(t, 3, all.Count)
	assert.Equal(t, int64(300_000), all.MedianMs)
}
