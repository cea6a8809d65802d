package in

import (
	"context"

	"liftlog/internal/modules/progress/dto"
)

type Usecase interface {
	BuildChart(ctx context.Context, input dto.BuildInput) (dto.ChartOutput, error)
}
