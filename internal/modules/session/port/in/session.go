package in

import (
	"context"

	"liftlog/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.ActiveOutput, error)
	LogSet(ctx context.Context, input dto.LogSetInput) (dto.ActiveOutput, error)
	End(ctx context.Context, input dto.EndInput) (dto.WorkoutOutput, error)
	GetActive(ctx context.Context) (dto.ActiveOutput, error)
	ListHistory(ctx context.Context, splitID string) ([]dto.WorkoutOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) error
}
