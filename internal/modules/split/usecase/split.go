package usecase

import (
	"context"
	"time"

	"liftlog/internal/modules/split/domain"
	"liftlog/internal/modules/split/dto"
	splitin "liftlog/internal/modules/split/port/in"
	"liftlog/internal/modules/split/service"
)

type Interactor struct {
	svc *service.SplitService
}

func NewInteractor(svc *service.SplitService) splitin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.SplitOutput, error) {
	split, path, err := i.svc.Create(ctx, input.Name, input.Color, input.Days, input.Exercises)
	if err != nil {
		return dto.SplitOutput{}, err
	}
	out := toOutput(split)
	out.NotePath = path
	return out, nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.SplitOutput, error) {
	splits, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SplitOutput, 0, len(splits))
	for _, split := range splits {
		out = append(out, toOutput(split))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.SplitDetailOutput, error) {
	split, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.SplitDetailOutput{}, err
	}
	return toDetail(split), nil
}

func (i *Interactor) AddExercise(ctx context.Context, input dto.AddExerciseInput) (dto.SplitDetailOutput, error) {
	split, err := i.svc.AddExercise(ctx, input.SplitID, domain.Exercise{
		Name:       input.Name,
		TargetSets: input.TargetSets,
		TargetReps: input.TargetReps,
	})
	if err != nil {
		return dto.SplitDetailOutput{}, err
	}
	return toDetail(split), nil
}

func (i *Interactor) SetDays(ctx context.Context, input dto.SetDaysInput) (dto.SplitDetailOutput, error) {
	split, err := i.svc.SetDays(ctx, input.SplitID, input.Days)
	if err != nil {
		return dto.SplitDetailOutput{}, err
	}
	return toDetail(split), nil
}

func (i *Interactor) StampWorkout(ctx context.Context, input dto.StampWorkoutInput) error {
	return i.svc.StampWorkout(ctx, input.SplitID, input.WorkoutID)
}

func (i *Interactor) Reindex(ctx context.Context, _ dto.ReindexInput) error {
	return i.svc.Reindex(ctx)
}

func toOutput(split domain.Split) dto.SplitOutput {
	return dto.SplitOutput{
		ID:        split.ID,
		Name:      split.Name,
		Color:     split.Color,
		Days:      domain.WeekdayNames(split.Weekdays),
		Exercises: len(split.Exercises),
	}
}

func toDetail(split domain.Split) dto.SplitDetailOutput {
	exercises := make([]dto.ExerciseOutput, 0, len(split.Exercises))
	for _, exercise := range split.Exercises {
		exercises = append(exercises, dto.ExerciseOutput{
			Name:       exercise.Name,
			TargetSets: exercise.TargetSets,
			TargetReps: exercise.TargetReps,
		})
	}
	return dto.SplitDetailOutput{
		ID:            split.ID,
		Name:          split.Name,
		Color:         split.Color,
		Status:        split.Status,
		Days:          domain.WeekdayNames(split.Weekdays),
		Exercises:     exercises,
		LastWorkoutID: split.LastWorkoutID,
		UpdatedAt:     split.UpdatedAt.Format(time.RFC3339),
	}
}
