package out

import (
	"context"

	"liftlog/internal/modules/session/domain"
)

// WorkoutStore persists completed workouts as vault notes.
type WorkoutStore interface {
	Save(ctx context.Context, workout domain.Workout) (string, error)
	List(ctx context.Context) ([]domain.Workout, error)
	ListBySplit(ctx context.Context, splitID string) ([]domain.Workout, error)
}

// WorkoutIndexProjector mirrors workouts into the rebuildable query index.
type WorkoutIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertWorkout(ctx context.Context, workout domain.Workout) error
}

// ActiveWorkoutStore holds the single in-progress session between
// invocations. Get returns ErrNoActiveWorkout when none is running.
type ActiveWorkoutStore interface {
	Get(ctx context.Context) (domain.ActiveWorkout, error)
	Put(ctx context.Context, active domain.ActiveWorkout) error
	Clear(ctx context.Context) error
}

// SplitRef is the slice of a split the session module needs.
type SplitRef struct {
	ID   string
	Name string
}

// SplitDirectory resolves splits and records completed workouts on them.
type SplitDirectory interface {
	Resolve(ctx context.Context, splitID string) (SplitRef, error)
	StampWorkout(ctx context.Context, splitID, workoutID string) error
}
