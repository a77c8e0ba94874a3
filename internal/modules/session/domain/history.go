package domain

// DailyTotal aggregates the sessions created on one local calendar day.
type DailyTotal struct {
	Day     string `json:"day"`
	TotalMs int64  `json:"total_ms"`
	Count   int    `json:"count"`
}

// DayLayout keys DailyTotal.Day.
const DayLayout = "2006-01-02"
