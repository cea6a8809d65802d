package in

import (
	"context"

	"liftlog/internal/modules/progress/dto"
	progressin "liftlog/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Chart(ctx context.Context, splitID, unit string, maxPoints int) (dto.ChartOutput, error) {
	return h.usecase.BuildChart(ctx, dto.BuildInput{SplitID: splitID, Unit: unit, MaxPoints: maxPoints})
}
