package usecase

import (
	"context"
	"time"

	"liftlog/internal/modules/session/domain"
	"liftlog/internal/modules/session/dto"
	sessionin "liftlog/internal/modules/session/port/in"
	"liftlog/internal/modules/session/service"
)

type Interactor struct {
	svc *service.WorkoutService
}

func NewInteractor(svc *service.WorkoutService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.ActiveOutput, error) {
	active, err := i.svc.Start(ctx, input.SplitID)
	if err != nil {
		return dto.ActiveOutput{}, err
	}
	return toActiveOutput(active), nil
}

func (i *Interactor) LogSet(ctx context.Context, input dto.LogSetInput) (dto.ActiveOutput, error) {
	active, err := i.svc.LogSet(ctx, input.Exercise, input.Weight, input.Unit, input.Reps)
	if err != nil {
		return dto.ActiveOutput{}, err
	}
	return toActiveOutput(active), nil
}

func (i *Interactor) End(ctx context.Context, _ dto.EndInput) (dto.WorkoutOutput, error) {
	workout, path, err := i.svc.End(ctx)
	if err != nil {
		return dto.WorkoutOutput{}, err
	}
	out := toWorkoutOutput(workout)
	out.NotePath = path
	return out, nil
}

func (i *Interactor) GetActive(ctx context.Context) (dto.ActiveOutput, error) {
	active, err := i.svc.GetActive(ctx)
	if err != nil {
		return dto.ActiveOutput{}, err
	}
	return toActiveOutput(active), nil
}

func (i *Interactor) ListHistory(ctx context.Context, splitID string) ([]dto.WorkoutOutput, error) {
	workouts, err := i.svc.ListHistory(ctx, splitID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WorkoutOutput, 0, len(workouts))
	for _, workout := range workouts {
		out = append(out, toWorkoutOutput(workout))
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) error {
	return i.svc.Reindex(ctx)
}

func toActiveOutput(active domain.ActiveWorkout) dto.ActiveOutput {
	sets := make([]dto.SetOutput, 0, len(active.Sets))
	for _, set := range active.Sets {
		sets = append(sets, dto.SetOutput{
			Exercise: set.Exercise,
			WeightKg: set.WeightKg,
			Reps:     set.Reps,
			LoggedAt: set.LoggedAt.Format(time.RFC3339),
		})
	}
	return dto.ActiveOutput{
		WorkoutID: active.WorkoutID,
		SplitID:   active.SplitID,
		SplitName: active.SplitName,
		StartedAt: active.StartedAt.Format(time.RFC3339),
		Sets:      sets,
	}
}

func toWorkoutOutput(workout domain.Workout) dto.WorkoutOutput {
	return dto.WorkoutOutput{
		ID:            workout.ID,
		SplitID:       workout.SplitID,
		SplitName:     workout.SplitName,
		StartedAt:     workout.StartedAt.Format(time.RFC3339),
		EndedAt:       workout.EndedAt.Format(time.RFC3339),
		DurationMin:   workout.DurationMin,
		SetCount:      len(workout.Sets),
		TotalVolumeKg: workout.TotalVolumeKg,
	}
}
