package domain

import "time"

const SchemaVersion = 1

// Milestone is a cumulative-duration threshold within a period.
type Milestone struct {
	ID          string
	Label       string
	ThresholdMs int64
}

func (m Milestone) Threshold() time.Duration {
	return time.Duration(m.ThresholdMs) * time.Millisecond
}

const (
	minuteMs = int64(60 * 1000)
	hourMs   = 60 * minuteMs
)

// Milestones is ordered by strictly increasing threshold.
var Milestones = []Milestone{
	{ID: "1m", Label: "1 minute", ThresholdMs: 1 * minuteMs},
	{ID: "5m", Label: "5 minutes", ThresholdMs: 5 * minuteMs},
	{ID: "15m", Label: "15 minutes", ThresholdMs: 15 * minuteMs},
	{ID: "30m", Label: "30 minutes", ThresholdMs: 30 * minuteMs},
	{ID: "1h", Label: "1 hour", ThresholdMs: 1 * hourMs},
	{ID: "3h", Label: "3 hours", ThresholdMs: 3 * hourMs},
	{ID: "6h", Label: "6 hours", ThresholdMs: 6 * hourMs},
	{ID: "12h", Label: "12 hours", ThresholdMs: 12 * hourMs},
	{ID: "1d", Label: "1 day", ThresholdMs: 24 * hourMs},
}

func FindMilestone(id string) (Milestone, bool) {
	for _, m := range Milestones {
		if m.ID == id {
			return m, true
		}
	}
	return Milestone{}, false
}
