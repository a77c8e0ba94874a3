package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrTimerNotCompleted = errors.New("timer has not completed")
	ErrTimerRunning      = errors.New("timer is running")
	ErrUnknownPeriod     = errors.New("unknown period")
)
