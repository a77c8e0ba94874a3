package dto

import "time"

type SessionOutput struct {
	ID         string
	Tag        string
	DurationMs int64
	StartedAt  time.Time
	CreatedAt  time.Time
}

type PeriodInput struct {
	Period string
}

type PeriodOutput struct {
	Period    string
	Label     string
	Count     int
	TotalMs   int64
	AverageMs int64
	MedianMs  int64
	Best      *SessionOutput
}

type StreakOutput struct {
	Current int
	Longest int
}

type SummaryOutput struct {
	Periods []PeriodOutput
	Streak  StreakOutput
}

type CalendarInput struct {
	Days int
}

type DayTotalOutput struct {
	Day     time.Time
	TotalMs int64
	Count   int
}

type CloudWordOutput struct {
	Tag    string
	Count  int
	Weight int
}
