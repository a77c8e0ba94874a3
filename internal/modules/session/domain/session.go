package domain

import (
	"time"
)

const SchemaVersion = 1

// Session is one completed meditation. Only Tag may change after creation.
type Session struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	DurationMs int64     `json:"duration_ms"`
	Tag        string    `json:"tag"`
	CreatedAt  time.Time `json:"created_at"`
	// TaggedAt is when the current tag was assigned.
	TaggedAt time.Time `json:"tagged_at"`
}

// TagFrequency counts the stored sessions bearing Tag. LastUsedAt is the
// latest TaggedAt among them.
type TagFrequency struct {
	Tag        string    `json:"tag"`
	Count      int       `json:"count"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// MaxSuggestions caps Suggestions.
const MaxSuggestions = 5
