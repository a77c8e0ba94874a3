package domain

import (
	"slices"
	"time"

	"firstthought/internal/platform/period"
)

// Session is the read-only view of a stored session used for aggregates.
type Session struct {
	ID         string
	Tag        string
	DurationMs int64
	StartedAt  time.Time
	CreatedAt  time.Time
}

func createdAt(s Session) time.Time { return s.CreatedAt }

// AverageDuration is the floor of the mean, 0 for no sessions.
func AverageDuration(sessions []Session) int64 {
	if len(sessions) == 0 {
		return 0
	}
	var total int64
	for _, s := range sessions {
		total += s.DurationMs
	}
	return total / int64(len(sessions))
}

// MedianDuration takes the floor of the mean of the middle pair for even
// counts, 0 for no sessions.
func MedianDuration(sessions []Session) int64 {
	if len(sessions) == 0 {
		return 0
	}
	durations := make([]int64, 0, len(sessions))
	for _, s := range sessions {
		durations = append(durations, s.DurationMs)
	}
	slices.Sort(durations)
	mid := len(durations) / 2
	if len(durations)%2 == 1 {
		return durations[mid]
	}
	return (durations[mid-1] + durations[mid]) / 2
}

// BestSession returns the longest session; the first one wins ties.
func BestSession(sessions []Session) (Session, bool) {
	if len(sessions) == 0 {
		return Session{}, false
	}
	best := sessions[0]
	for _, s := range sessions[1:] {
		if s.DurationMs > best.DurationMs {
			best = s
		}
	}
	return best, true
}

type PeriodStats struct {
	Period    period.Period
	Count     int
	TotalMs   int64
	AverageMs int64
	MedianMs  int64
	Best      *Session
}

func ForPeriod(sessions []Session, p period.Period, now time.Time) PeriodStats {
	inPeriod := period.Filter(sessions, p, now, createdAt)
	stats := PeriodStats{
		Period:    p,
		Count:     len(inPeriod),
		AverageMs: AverageDuration(inPeriod),
		MedianMs:  MedianDuration(inPeriod),
	}
	for _, s := range inPeriod {
		stats.TotalMs += s.DurationMs
	}
	if best, ok := BestSession(inPeriod); ok {
		stats.Best = &best
	}
	return stats
}

func Daily(sessions []Session, now time.Time) PeriodStats {
	return ForPeriod(sessions, period.Day, now)
}
