package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports wall-clock time in the local zone. Period boundaries
// (local midnight, Monday, first of month) are computed from it.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
