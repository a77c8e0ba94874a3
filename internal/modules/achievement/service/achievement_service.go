package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"firstthought/internal/modules/achievement/domain"
	achievementout "firstthought/internal/modules/achievement/port/out"
	"firstthought/internal/platform/clock"
)

type AchievementService struct {
	mu     sync.Mutex
	clock  clock.Clock
	store  achievementout.LedgerStore
	logger *slog.Logger
}

func NewAchievementService(clock clock.Clock, store achievementout.LedgerStore, logger *slog.Logger) *AchievementService {
	return &AchievementService{clock: clock, store: store, logger: logger}
}

// Lock serializes ledger updates.
func (s *AchievementService) Lock() (unlock func()) {
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *AchievementService) Now() time.Time {
	return s.clock.Now()
}

// Ledger loads the stored ledger. A corrupt file yields an empty ledger;
// the next save overwrites it.
func (s *AchievementService) Ledger(ctx context.Context) domain.Ledger {
	ledger, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("achievements unreadable, starting empty", "error", err)
		return domain.Ledger{}
	}
	return ledger
}

func (s *AchievementService) Save(ctx context.Context, ledger domain.Ledger) error {
	return s.store.Save(ctx, ledger)
}
