package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"firstthought/internal/modules/session/domain"
	sessionout "firstthought/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type SQLiteHistoryProjector struct {
	db  *sql.DB
	loc *time.Location
}

// NewSQLiteHistoryProjector opens the history index. Sessions are bucketed
// by their creation day in loc, which must match the clock used for stats.
func NewSQLiteHistoryProjector(dbPath string, loc *time.Location) (sessionout.HistoryProjector, error) {
	if loc == nil {
		loc = time.Local
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	projector := &SQLiteHistoryProjector{db: db, loc: loc}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteHistoryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  tag TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  duration_ms INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  local_day TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_local_day ON sessions(local_day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) UpsertSession(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (id, tag, started_at, ended_at, duration_ms, created_at, local_day)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  tag=excluded.tag,
  started_at=excluded.started_at,
  ended_at=excluded.ended_at,
  duration_ms=excluded.duration_ms,
  created_at=excluded.created_at,
  local_day=excluded.local_day;
`
	_, err := s.db.ExecContext(ctx, stmt,
		session.ID,
		session.Tag,
		session.StartedAt.Format(timestampLayout),
		session.EndedAt.Format(timestampLayout),
		session.DurationMs,
		session.CreatedAt.Format(timestampLayout),
		session.CreatedAt.In(s.loc).Format(domain.DayLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DailyTotals groups by the local day of creation, oldest first. Days
// without sessions are absent.
func (s *SQLiteHistoryProjector) DailyTotals(ctx context.Context, since time.Time) ([]domain.DailyTotal, error) {
	const query = `
SELECT local_day, SUM(duration_ms), COUNT(*)
FROM sessions
WHERE local_day >= ?
GROUP BY local_day
ORDER BY local_day ASC;
`
	rows, err := s.db.QueryContext(ctx, query, since.In(s.loc).Format(domain.DayLayout))
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	defer rows.Close()

	var out []domain.DailyTotal
	for rows.Next() {
		total := domain.DailyTotal{}
		if err := rows.Scan(&total.Day, &total.TotalMs, &total.Count); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		out = append(out, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily totals: %w", err)
	}
	return out, nil
}

func (s *SQLiteHistoryProjector) Close() error {
	return s.db.Close()
}
