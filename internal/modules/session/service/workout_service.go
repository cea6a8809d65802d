package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"liftlog/internal/modules/session/domain"
	sessionout "liftlog/internal/modules/session/port/out"
	"liftlog/internal/platform/clock"
	apperrors "liftlog/internal/platform/errors"
	"liftlog/internal/platform/id"
	"liftlog/internal/platform/units"
)

type WorkoutService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     sessionout.WorkoutStore
	projector sessionout.WorkoutIndexProjector
	active    sessionout.ActiveWorkoutStore
	splits    sessionout.SplitDirectory
}

func NewWorkoutService(
	clock clock.Clock,
	idGen id.Generator,
	store sessionout.WorkoutStore,
	projector sessionout.WorkoutIndexProjector,
	active sessionout.ActiveWorkoutStore,
	splits sessionout.SplitDirectory,
) *WorkoutService {
	return &WorkoutService{
		clock:     clock,
		idGen:     idGen,
		store:     store,
		projector: projector,
		active:    active,
		splits:    splits,
	}
}

// Start opens a new session against the given split. Only one session may be
// active at a time.
func (s *WorkoutService) Start(ctx context.Context, splitID string) (domain.ActiveWorkout, error) {
	if _, err := s.active.Get(ctx); err == nil {
		return domain.ActiveWorkout{}, apperrors.ErrActiveWorkoutExists
	} else if !errors.Is(err, apperrors.ErrNoActiveWorkout) {
		return domain.ActiveWorkout{}, err
	}

	ref, err := s.splits.Resolve(ctx, splitID)
	if err != nil {
		return domain.ActiveWorkout{}, fmt.Errorf("resolve split %s: %w", splitID, err)
	}

	active := domain.ActiveWorkout{
		WorkoutID: s.idGen.New(),
		SplitID:   ref.ID,
		SplitName: ref.Name,
		StartedAt: s.clock.Now(),
	}
	if err := s.active.Put(ctx, active); err != nil {
		return domain.ActiveWorkout{}, err
	}
	return active, nil
}

// LogSet appends one set to the active session. Weight arrives in the given
// unit and is normalized to kilograms before storage.
func (s *WorkoutService) LogSet(ctx context.Context, exercise string, weight float64, unit string, reps int) (domain.ActiveWorkout, error) {
	active, err := s.active.Get(ctx)
	if err != nil {
		return domain.ActiveWorkout{}, err
	}

	parsed := units.Kilograms
	if strings.TrimSpace(unit) != "" {
		parsed, err = units.Parse(unit)
		if err != nil {
			return domain.ActiveWorkout{}, err
		}
	}
	entry := domain.SetEntry{
		Exercise: strings.TrimSpace(exercise),
		WeightKg: parsed.ToKg(weight),
		Reps:     reps,
		LoggedAt: s.clock.Now(),
	}
	if err := entry.Validate(); err != nil {
		return domain.ActiveWorkout{}, err
	}

	active.Sets = append(active.Sets, entry)
	if err := s.active.Put(ctx, active); err != nil {
		return domain.ActiveWorkout{}, err
	}
	return active, nil
}

// End closes the active session: the workout note is written, the index
// updated, the split stamped, and only then is the active state cleared.
func (s *WorkoutService) End(ctx context.Context) (domain.Workout, string, error) {
	active, err := s.active.Get(ctx)
	if err != nil {
		return domain.Workout{}, "", err
	}

	workout := active.Finish(s.clock.Now())
	if err := workout.Validate(); err != nil {
		return domain.Workout{}, "", err
	}

	path, err := s.store.Save(ctx, workout)
	if err != nil {
		return domain.Workout{}, "", err
	}
	if err := s.projector.UpsertWorkout(ctx, workout); err != nil {
		return domain.Workout{}, "", err
	}
	if err := s.splits.StampWorkout(ctx, workout.SplitID, workout.ID); err != nil {
		return domain.Workout{}, "", err
	}
	if err := s.active.Clear(ctx); err != nil {
		return domain.Workout{}, "", err
	}
	return workout, path, nil
}

func (s *WorkoutService) GetActive(ctx context.Context) (domain.ActiveWorkout, error) {
	return s.active.Get(ctx)
}

func (s *WorkoutService) ListHistory(ctx context.Context, splitID string) ([]domain.Workout, error) {
	if strings.TrimSpace(splitID) == "" {
		return s.store.List(ctx)
	}
	return s.store.ListBySplit(ctx, splitID)
}

func (s *WorkoutService) Reindex(ctx context.Context) error {
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	workouts, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, workout := range workouts {
		if err := s.projector.UpsertWorkout(ctx, workout); err != nil {
			return err
		}
	}
	return nil
}
