package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"liftlog/internal/modules/session/domain"
	sessionout "liftlog/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteWorkoutProjector struct {
	db *sql.DB
}

func NewSQLiteWorkoutProjector(dbPath string) (sessionout.WorkoutIndexProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteWorkoutProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteWorkoutProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS workouts (
  id TEXT PRIMARY KEY,
  split_id TEXT NOT NULL,
  split_name TEXT,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  duration_min INTEGER NOT NULL,
  set_count INTEGER NOT NULL,
  total_volume_kg REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_workouts_split ON workouts (split_id, started_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create workouts table: %w", err)
	}
	return nil
}

func (s *SQLiteWorkoutProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM workouts`); err != nil {
		return fmt.Errorf("reset workouts: %w", err)
	}
	return nil
}

func (s *SQLiteWorkoutProjector) UpsertWorkout(ctx context.Context, workout domain.Workout) error {
	const stmt = `
INSERT INTO workouts (id, split_id, split_name, started_at, ended_at, duration_min, set_count, total_volume_kg)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  split_id=excluded.split_id,
  split_name=excluded.split_name,
  started_at=excluded.started_at,
  ended_at=excluded.ended_at,
  duration_min=excluded.duration_min,
  set_count=excluded.set_count,
  total_volume_kg=excluded.total_volume_kg;
`
	_, err := s.db.ExecContext(ctx, stmt,
		workout.ID,
		workout.SplitID,
		workout.SplitName,
		workout.StartedAt.Format(time.RFC3339),
		workout.EndedAt.Format(time.RFC3339),
		workout.DurationMin,
		len(workout.Sets),
		workout.TotalVolumeKg,
	)
	if err != nil {
		return fmt.Errorf("upsert workout: %w", err)
	}
	return nil
}
