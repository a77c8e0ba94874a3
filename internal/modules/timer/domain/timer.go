package domain

import "time"

const SchemaVersion = 1

type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

// State is the single in-flight meditation timer. Operations never fail;
// calls made in an unexpected status degrade instead (for example Complete
// without a start yields a zero duration).
type State struct {
	Status     Status     `json:"status"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	PausedAt   *time.Time `json:"paused_at,omitempty"`
	DurationMs int64      `json:"duration_ms"`
	// Hidden is set while the view is in the background during a run.
	Hidden bool `json:"hidden,omitempty"`
}

func NewState() State {
	return State{Status: StatusIdle}
}

// Start begins timing. Calling it while already running restarts the clock.
func (s *State) Start(now time.Time) {
	s.Status = StatusRunning
	s.StartedAt = &now
	s.PausedAt = nil
	s.DurationMs = 0
	s.Hidden = false
}

// Pause pins the end time without changing the status.
func (s *State) Pause(now time.Time) {
	s.PausedAt = &now
}

// Complete freezes the duration at PausedAt, or now when no pause was recorded.
// StartedAt and PausedAt are kept for inspection.
func (s *State) Complete(now time.Time) {
	end := now
	if s.PausedAt != nil {
		end = *s.PausedAt
	}
	var duration int64
	if s.StartedAt != nil {
		duration = end.Sub(*s.StartedAt).Milliseconds()
	}
	if duration < 0 {
		duration = 0
	}
	s.Status = StatusCompleted
	s.DurationMs = duration
	s.Hidden = false
}

func (s *State) Reset() {
	*s = NewState()
}

// ObserveVisibility feeds a foreground/background signal into the timer.
// Going to the background while running arms the trigger; coming back to the
// foreground while armed completes the run. It reports whether this call
// completed the timer, which happens at most once per hidden/visible pair.
func (s *State) ObserveVisibility(foreground bool, now time.Time) bool {
	if s.Status != StatusRunning {
		return false
	}
	if !foreground {
		s.Hidden = true
		return false
	}
	if !s.Hidden {
		return false
	}
	s.Pause(now)
	s.Complete(now)
	return true
}

// Elapsed is the live reading for display.
func (s State) Elapsed(now time.Time) int64 {
	switch s.Status {
	case StatusRunning:
		if s.StartedAt == nil {
			return 0
		}
		if elapsed := now.Sub(*s.StartedAt).Milliseconds(); elapsed > 0 {
			return elapsed
		}
		return 0
	case StatusCompleted:
		return s.DurationMs
	default:
		return 0
	}
}

// Interval returns the start and end of a completed run.
func (s State) Interval() (time.Time, time.Time, bool) {
	if s.Status != StatusCompleted || s.StartedAt == nil {
		return time.Time{}, time.Time{}, false
	}
	start := *s.StartedAt
	return start, start.Add(time.Duration(s.DurationMs) * time.Millisecond), true
}
