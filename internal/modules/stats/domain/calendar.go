package domain

import (
	"slices"
	"time"
)

const dayLayout = "2006-01-02"

type Streak struct {
	Current int
	Longest int
}

type DayTotal struct {
	Day     time.Time
	TotalMs int64
	Count   int
}

func localDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

// Streaks counts consecutive local days with at least one session. The
// current streak is zero unless the latest such day is today or yesterday.
func Streaks(sessions []Session, now time.Time) Streak {
	loc := now.Location()
	seen := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		seen[localDay(s.CreatedAt, loc)] = true
	}
	if len(seen) == 0 {
		return Streak{}
	}
	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	slices.Sort(days)

	result := Streak{Longest: 1}
	run := 1
	for i := 1; i < len(days); i++ {
		prev, _ := time.ParseInLocation(dayLayout, days[i-1], loc)
		if days[i] == prev.AddDate(0, 0, 1).Format(dayLayout) {
			run++
			result.Longest = max(result.Longest, run)
		} else {
			run = 1
		}
	}

	last := days[len(days)-1]
	if last != now.Format(dayLayout) && last != now.AddDate(0, 0, -1).Format(dayLayout) {
		return result
	}
	check, _ := time.ParseInLocation(dayLayout, last, loc)
	for seen[check.Format(dayLayout)] {
		result.Current++
		check = check.AddDate(0, 0, -1)
	}
	return result
}

// DailyTotals returns the last days local days ending today, oldest first,
// with empty days included.
func DailyTotals(sessions []Session, now time.Time, days int) []DayTotal {
	if days <= 0 {
		return nil
	}
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	first := today.AddDate(0, 0, -(days - 1))

	out := make([]DayTotal, 0, days)
	index := make(map[string]int, days)
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		index[day.Format(dayLayout)] = len(out)
		out = append(out, DayTotal{Day: day})
	}
	for _, s := range sessions {
		if i, ok := index[localDay(s.CreatedAt, loc)]; ok {
			out[i].TotalMs += s.DurationMs
			out[i].Count++
		}
	}
	return out
}
