package domain

import (
	"time"

	"firstthought/internal/platform/period"
)

type UnlockedMilestone struct {
	MilestoneID string        `json:"milestone_id"`
	Period      period.Period `json:"period"`
	UnlockedAt  time.Time     `json:"unlocked_at"`
}

type PersonalRecord struct {
	Period     period.Period `json:"period"`
	DurationMs int64         `json:"duration_ms"`
	SessionID  string        `json:"session_id"`
	AchievedAt time.Time     `json:"achieved_at"`
}

// Ledger holds what has been earned. Milestones are never revoked.
type Ledger struct {
	UnlockedMilestones []UnlockedMilestone `json:"unlocked_milestones"`
	PersonalRecords    []PersonalRecord    `json:"personal_records"`
}

func (l *Ledger) IsUnlocked(milestoneID string, p period.Period) bool {
	for _, u := range l.UnlockedMilestones {
		if u.MilestoneID == milestoneID && u.Period == p {
			return true
		}
	}
	return false
}

// Unlock records the pair once and reports whether it was new.
func (l *Ledger) Unlock(milestoneID string, p period.Period, now time.Time) bool {
	if l.IsUnlocked(milestoneID, p) {
		return false
	}
	l.UnlockedMilestones = append(l.UnlockedMilestones, UnlockedMilestone{MilestoneID: milestoneID, Period: p, UnlockedAt: now})
	return true
}

// SetPersonalRecord replaces the record for p unconditionally.
func (l *Ledger) SetPersonalRecord(p period.Period, durationMs int64, sessionID string, now time.Time) {
	record := PersonalRecord{Period: p, DurationMs: durationMs, SessionID: sessionID, AchievedAt: now}
	for i := range l.PersonalRecords {
		if l.PersonalRecords[i].Period == p {
			l.PersonalRecords[i] = record
			return
		}
	}
	l.PersonalRecords = append(l.PersonalRecords, record)
}

func (l *Ledger) PersonalRecord(p period.Period) (PersonalRecord, bool) {
	for _, r := range l.PersonalRecords {
		if r.Period == p {
			return r, true
		}
	}
	return PersonalRecord{}, false
}

// UnlockedIn returns the catalog milestones unlocked for p, in catalog order.
func (l *Ledger) UnlockedIn(p period.Period) []Milestone {
	var out []Milestone
	for _, m := range Milestones {
		if l.IsUnlocked(m.ID, p) {
			out = append(out, m)
		}
	}
	return out
}
