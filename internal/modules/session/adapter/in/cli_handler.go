package in

import (
	"context"

	"liftlog/internal/modules/session/dto"
	sessionin "liftlog/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, splitID string) (dto.ActiveOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{SplitID: splitID})
}

func (h CLIHandler) LogSet(ctx context.Context, exercise string, weight float64, unit string, reps int) (dto.ActiveOutput, error) {
	return h.usecase.LogSet(ctx, dto.LogSetInput{Exercise: exercise, Weight: weight, Unit: unit, Reps: reps})
}

func (h CLIHandler) End(ctx context.Context) (dto.WorkoutOutput, error) {
	return h.usecase.End(ctx, dto.EndInput{})
}

func (h CLIHandler) Status(ctx context.Context) (dto.ActiveOutput, error) {
	return h.usecase.GetActive(ctx)
}

func (h CLIHandler) History(ctx context.Context, splitID string) ([]dto.WorkoutOutput, error) {
	return h.usecase.ListHistory(ctx, splitID)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx, dto.ReindexInput{})
}
