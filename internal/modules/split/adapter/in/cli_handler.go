package in

import (
	"context"

	"liftlog/internal/modules/split/dto"
	splitin "liftlog/internal/modules/split/port/in"
)

type CLIHandler struct {
	usecase splitin.Usecase
}

func NewCLIHandler(usecase splitin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, name, color string, days, exercises []string) (dto.SplitOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{Name: name, Color: color, Days: days, Exercises: exercises})
}

func (h CLIHandler) List(ctx context.Context) ([]dto.SplitOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, id string) (dto.SplitDetailOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) AddExercise(ctx context.Context, splitID, name string, sets, reps int) (dto.SplitDetailOutput, error) {
	return h.usecase.AddExercise(ctx, dto.AddExerciseInput{SplitID: splitID, Name: name, TargetSets: sets, TargetReps: reps})
}

func (h CLIHandler) SetDays(ctx context.Context, splitID string, days []string) (dto.SplitDetailOutput, error) {
	return h.usecase.SetDays(ctx, dto.SetDaysInput{SplitID: splitID, Days: days})
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}
