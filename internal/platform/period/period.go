// Package period defines the calendar windows used to bound aggregates.
package period

import (
	"fmt"
	"strings"
	"time"

	apperrors "firstthought/internal/platform/errors"
)

// Period is a calendar window anchored in local time.
type Period string

const (
	Day     Period = "day"
	Week    Period = "week"
	Month   Period = "month"
	AllTime Period = "allTime"
)

// All lists every period, narrowest first.
var All = []Period{Day, Week, Month, AllTime}

// Parse accepts the canonical names plus a few CLI-friendly aliases.
func Parse(raw string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "day", "today":
		return Day, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	case "alltime", "all", "all-time":
		return AllTime, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownPeriod, raw)
	}
}

func (p Period) Valid() bool {
	switch p {
	case Day, Week, Month, AllTime:
		return true
	default:
		return false
	}
}

// Label is the user-facing name used on achievement and record screens.
func (p Period) Label() string {
	switch p {
	case Day:
		return "Today"
	case Week:
		return "This week"
	case Month:
		return "This month"
	case AllTime:
		return "All time"
	default:
		return string(p)
	}
}

// Start returns the inclusive lower bound of the period containing now.
// Weeks start on Monday; AllTime is unbounded and returns the Unix epoch.
func (p Period) Start(now time.Time) time.Time {
	year, month, day := now.Date()
	loc := now.Location()
	today := time.Date(year, month, day, 0, 0, 0, 0, loc)

	switch p {
	case Day:
		return today
	case Week:
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return today.AddDate(0, 0, -(weekday - 1))
	case Month:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	default:
		return time.UnixMilli(0)
	}
}

// Filter keeps the items whose timestamp falls at or after the start of p.
func Filter[T any](items []T, p Period, now time.Time, at func(T) time.Time) []T {
	start := p.Start(now)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !at(item).Before(start) {
			out = append(out, item)
		}
	}
	return out
}
