package service

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"firstthought/internal/modules/session/domain"
	sessionout "firstthought/internal/modules/session/port/out"
	"firstthought/internal/platform/clock"
	"firstthought/internal/platform/id"
)

type SessionService struct {
	mu        sync.Mutex
	clock     clock.Clock
	idGen     id.Generator
	store     sessionout.SnapshotStore
	projector sessionout.HistoryProjector
	exporter  sessionout.Exporter
	logger    *slog.Logger
	rng       *rand.Rand
}

// NewSessionService wires the session store. projector and exporter may be
// nil; rng seeds example data and defaults to a clock-seeded source.
func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SnapshotStore, projector sessionout.HistoryProjector, exporter sessionout.Exporter, logger *slog.Logger, rng *rand.Rand) *SessionService {
	if rng == nil {
		seed := uint64(clock.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &SessionService{clock: clock, idGen: idGen, store: store, projector: projector, exporter: exporter, logger: logger, rng: rng}
}

// Lock serializes a load-modify-save cycle on the snapshot. Callers defer
// the returned function.
func (s *SessionService) Lock() (unlock func()) {
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *SessionService) Now() time.Time {
	return s.clock.Now()
}

// Load returns the stored collection, or an empty one when the snapshot
// cannot be read.
func (s *SessionService) Load(ctx context.Context) domain.Collection {
	collection, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("session store unreadable, starting empty", "error", err)
		return domain.Collection{}
	}
	return collection
}

func (s *SessionService) Save(ctx context.Context, collection domain.Collection) error {
	return s.store.Save(ctx, collection)
}

// NewSession stamps a fresh id and creation time.
func (s *SessionService) NewSession(startedAt, endedAt time.Time, durationMs int64, tag string) domain.Session {
	now := s.clock.Now()
	return domain.Session{
		ID:         s.idGen.New(),
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		DurationMs: durationMs,
		Tag:        tag,
		CreatedAt:  now,
		TaggedAt:   now,
	}
}

func (s *SessionService) Example() domain.Collection {
	return domain.GenerateExample(s.clock.Now(), s.rng, s.idGen.New)
}

// Project mirrors a single upsert into the history index. Failures are
// logged only: the snapshot is the source of truth and reindex repairs it.
func (s *SessionService) Project(ctx context.Context, session domain.Session) {
	if s.projector == nil {
		return
	}
	if err := s.projector.UpsertSession(ctx, session); err != nil {
		s.logger.Warn("history projection failed", "session_id", session.ID, "error", err)
	}
}

func (s *SessionService) Unproject(ctx context.Context, id string) {
	if s.projector == nil {
		return
	}
	if err := s.projector.DeleteSession(ctx, id); err != nil {
		s.logger.Warn("history projection failed", "session_id", id, "error", err)
	}
}

// Reproject rebuilds the history index from the given sessions.
func (s *SessionService) Reproject(ctx context.Context, sessions []domain.Session) error {
	if s.projector == nil {
		return nil
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, session := range sessions {
		if err := s.projector.UpsertSession(ctx, session); err != nil {
			return err
		}
	}
	return nil
}

func (s *SessionService) DailyTotals(ctx context.Context, since time.Time) ([]domain.DailyTotal, error) {
	if s.projector == nil {
		return nil, nil
	}
	return s.projector.DailyTotals(ctx, since)
}

func (s *SessionService) Export(ctx context.Context, dir string, sessions []domain.Session) ([]string, error) {
	if s.exporter == nil {
		return nil, nil
	}
	return s.exporter.Export(ctx, dir, sessions)
}
