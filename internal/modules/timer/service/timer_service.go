package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"firstthought/internal/modules/timer/domain"
	timerout "firstthought/internal/modules/timer/port/out"
	"firstthought/internal/platform/clock"
)

type TimerService struct {
	mu     sync.Mutex
	clock  clock.Clock
	store  timerout.StateStore
	logger *slog.Logger
}

func NewTimerService(clock clock.Clock, store timerout.StateStore, logger *slog.Logger) *TimerService {
	return &TimerService{clock: clock, store: store, logger: logger}
}

func (s *TimerService) Now() time.Time {
	return s.clock.Now()
}

// Current returns the persisted state. An unreadable file is treated as an
// idle timer so the app stays usable.
func (s *TimerService) Current(ctx context.Context) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current(ctx)
}

func (s *TimerService) current(ctx context.Context) domain.State {
	state, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("timer state unreadable, starting idle", "error", err)
		return domain.NewState()
	}
	return state
}

// Apply loads the timer, runs fn against it and persists the result. Calls
// are serialized so concurrent focus events see each other's writes.
func (s *TimerService) Apply(ctx context.Context, fn func(state *domain.State, now time.Time)) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.current(ctx)
	fn(&state, s.clock.Now())
	if err := s.store.Save(ctx, state); err != nil {
		return domain.State{}, err
	}
	return state, nil
}
