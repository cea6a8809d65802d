package in

import (
	"context"

	"liftlog/internal/modules/split/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.SplitOutput, error)
	List(ctx context.Context) ([]dto.SplitOutput, error)
	Get(ctx context.Context, id string) (dto.SplitDetailOutput, error)
	AddExercise(ctx context.Context, input dto.AddExerciseInput) (dto.SplitDetailOutput, error)
	SetDays(ctx context.Context, input dto.SetDaysInput) (dto.SplitDetailOutput, error)
	StampWorkout(ctx context.Context, input dto.StampWorkoutInput) error
	Reindex(ctx context.Context, input dto.ReindexInput) error
}
