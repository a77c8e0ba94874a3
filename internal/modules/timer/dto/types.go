package dto

import "time"

type StateOutput struct {
	Status     string
	StartedAt  *time.Time
	PausedAt   *time.Time
	DurationMs int64
	ElapsedMs  int64
	Hidden     bool
}

type VisibilityInput struct {
	Foreground bool
}

type VisibilityOutput struct {
	Completed bool
	State     StateOutput
}
