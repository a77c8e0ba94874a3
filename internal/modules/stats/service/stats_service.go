package service

import (
	"context"
	"time"

	"firstthought/internal/modules/stats/domain"
	statsout "firstthought/internal/modules/stats/port/out"
	"firstthought/internal/platform/clock"
)

type StatsService struct {
	clock  clock.Clock
	source statsout.SessionSource
}

func NewStatsService(clock clock.Clock, source statsout.SessionSource) *StatsService {
	return &StatsService{clock: clock, source: source}
}

// Snapshot returns the sessions together with the instant they are judged at.
func (s *StatsService) Snapshot(ctx context.Context) ([]domain.Session, time.Time, error) {
	sessions, err := s.source.Sessions(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	return sessions, s.clock.Now(), nil
}

func (s *StatsService) TagCounts(ctx context.Context) ([]domain.TagCount, error) {
	return s.source.TagCounts(ctx)
}
