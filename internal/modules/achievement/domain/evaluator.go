package domain

import (
	"time"

	"firstthought/internal/platform/period"
)

// Session is the slice of a stored session the evaluator needs.
type Session struct {
	ID         string
	DurationMs int64
	CreatedAt  time.Time
}

func createdAt(s Session) time.Time { return s.CreatedAt }

func SessionsInPeriod(sessions []Session, p period.Period, now time.Time) []Session {
	return period.Filter(sessions, p, now, createdAt)
}

func TotalDurationInPeriod(sessions []Session, p period.Period, now time.Time) int64 {
	var total int64
	for _, s := range SessionsInPeriod(sessions, p, now) {
		total += s.DurationMs
	}
	return total
}

// UnlockedMilestones lists, in catalog order, every milestone reached by the
// period total that alreadyUnlocked does not report. Marking them unlocked is
// left to the caller.
func UnlockedMilestones(sessions []Session, p period.Period, now time.Time, alreadyUnlocked func(milestoneID string, p period.Period) bool) []Milestone {
	total := TotalDurationInPeriod(sessions, p, now)
	var out []Milestone
	for _, m := range Milestones {
		if total >= m.ThresholdMs && !alreadyUnlocked(m.ID, p) {
			out = append(out, m)
		}
	}
	return out
}

// NextMilestone is the first milestone above the period total. It reports
// false once the largest threshold has been reached.
func NextMilestone(sessions []Session, p period.Period, now time.Time) (Milestone, bool) {
	total := TotalDurationInPeriod(sessions, p, now)
	for _, m := range Milestones {
		if total < m.ThresholdMs {
			return m, true
		}
	}
	return Milestone{}, false
}

// CheckForNewRecord reports whether durationMs strictly beats every prior
// session in the period. prior must not contain the new session.
func CheckForNewRecord(durationMs int64, prior []Session, p period.Period, now time.Time) bool {
	var best int64
	for _, s := range SessionsInPeriod(prior, p, now) {
		if s.DurationMs > best {
			best = s.DurationMs
		}
	}
	return durationMs > best
}
