package out

import (
	"context"
	"time"

	"firstthought/internal/modules/session/domain"
)

// SnapshotStore persists the whole collection at once.
type SnapshotStore interface {
	Load(ctx context.Context) (domain.Collection, error)
	Save(ctx context.Context, collection domain.Collection) error
}

// HistoryProjector maintains a queryable copy of the sessions for the
// history views. It is derived data and can be rebuilt from the snapshot.
type HistoryProjector interface {
	Reset(ctx context.Context) error
	UpsertSession(ctx context.Context, session domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DailyTotals(ctx context.Context, since time.Time) ([]domain.DailyTotal, error)
	Close() error
}

type Exporter interface {
	Export(ctx context.Context, dir string, sessions []domain.Session) ([]string, error)
}
