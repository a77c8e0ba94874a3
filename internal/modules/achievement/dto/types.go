package dto

import "time"

type SessionInput struct {
	ID         string
	DurationMs int64
	CreatedAt  time.Time
}

type EvaluateInput struct {
	Session SessionInput
	// Prior is the session list before Session was added.
	Prior []SessionInput
}

type MilestoneOutput struct {
	ID          string
	Label       string
	ThresholdMs int64
}

type UnlockedOutput struct {
	Period    string
	Milestone MilestoneOutput
	TotalMs   int64
	Next      *MilestoneOutput
}

type RecordOutput struct {
	Period     string
	DurationMs int64
	SessionID  string
	AchievedAt time.Time
}

type EvaluateOutput struct {
	Unlocked   []UnlockedOutput
	NewRecords []RecordOutput
}

type ProgressInput struct {
	Period   string
	Sessions []SessionInput
}

type ProgressOutput struct {
	Period   string
	Label    string
	TotalMs  int64
	Next     *MilestoneOutput
	Record   *RecordOutput
	Unlocked []MilestoneOutput
}
