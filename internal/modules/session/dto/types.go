package dto

import (
	"time"

	achievementdto "firstthought/internal/modules/achievement/dto"
)

type SessionOutput struct {
	ID         string
	StartedAt  time.Time
	EndedAt    time.Time
	DurationMs int64
	Tag        string
	CreatedAt  time.Time
	TaggedAt   time.Time
}

type TagFrequencyOutput struct {
	Tag        string
	Count      int
	LastUsedAt time.Time
}

// RecordInput turns the completed timer into a session.
type RecordInput struct {
	Tag string
}

type RecordOutput struct {
	Session      SessionOutput
	Achievements achievementdto.EvaluateOutput
	// DiscardedExample is set when example data was dropped to make room.
	DiscardedExample bool
}

type AddInput struct {
	StartedAt  time.Time
	EndedAt    time.Time
	DurationMs int64
	Tag        string
}

type AddOutput struct {
	Session          SessionOutput
	DiscardedExample bool
}

type UpdateInput struct {
	ID  string
	Tag string
}

type UpdateOutput struct {
	Found bool
}

type DeleteInput struct {
	ID string
}

type DeleteOutput struct {
	Found bool
}

type ListOutput struct {
	Sessions       []SessionOutput
	TagFrequencies []TagFrequencyOutput
	IsExampleData  bool
}

type SuggestInput struct {
	Prefix string
}

type HistoryInput struct {
	Days int
}

type DailyTotalOutput struct {
	Day     time.Time
	TotalMs int64
	Count   int
}

type HistoryOutput struct {
	Days []DailyTotalOutput
}

type ExportInput struct {
	Dir string
}

type ExportOutput struct {
	Paths []string
}

type ReindexOutput struct {
	Sessions int
}
