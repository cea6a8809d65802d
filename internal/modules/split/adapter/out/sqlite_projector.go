package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"liftlog/internal/modules/split/domain"
	splitout "liftlog/internal/modules/split/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteSplitProjector struct {
	db *sql.DB
}

func NewSQLiteSplitProjector(dbPath string) (splitout.SplitIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteSplitProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteSplitProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS splits (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  color TEXT,
  days TEXT,
  exercise_count INTEGER NOT NULL,
  status TEXT,
  last_workout_id TEXT,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create splits table: %w", err)
	}
	return nil
}

func (s *SQLiteSplitProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM splits`); err != nil {
		return fmt.Errorf("reset splits: %w", err)
	}
	return nil
}

func (s *SQLiteSplitProjector) UpsertSplit(ctx context.Context, split domain.Split) error {
	const stmt = `
INSERT INTO splits (id, name, slug, color, days, exercise_count, status, last_workout_id, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name=excluded.name,
  slug=excluded.slug,
  color=excluded.color,
  days=excluded.days,
  exercise_count=excluded.exercise_count,
  status=excluded.status,
  last_workout_id=excluded.last_workout_id,
  updated_at=excluded.updated_at;
`
	_, err := s.db.ExecContext(ctx, stmt,
		split.ID,
		split.Name,
		split.Slug,
		split.Color,
		strings.Join(domain.WeekdayNames(split.Weekdays), ","),
		len(split.Exercises),
		split.Status,
		split.LastWorkoutID,
		split.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("upsert split: %w", err)
	}
	return nil
}
