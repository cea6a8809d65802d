package usecase

import (
	"context"

	"liftlog/internal/modules/progress/dto"
	progressin "liftlog/internal/modules/progress/port/in"
	"liftlog/internal/modules/progress/service"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) BuildChart(ctx context.Context, input dto.BuildInput) (dto.ChartOutput, error) {
	series, err := i.svc.BuildChart(ctx, input.SplitID, input.Unit, input.MaxPoints)
	if err != nil {
		return dto.ChartOutput{}, err
	}
	points := make([]dto.PointOutput, 0, len(series.Points))
	for _, point := range series.Points {
		points = append(points, dto.PointOutput{
			Value:    point.Value,
			Label:    point.Label,
			ISO:      point.ISO,
			VolumeKg: point.VolumeKg,
		})
	}
	return dto.ChartOutput{
		Points:   points,
		MaxValue: series.MaxValue,
		Unit:     string(series.Unit),
	}, nil
}
