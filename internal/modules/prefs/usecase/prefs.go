package usecase

import (
	"context"

	prefsin "liftlog/internal/modules/prefs/port/in"
	"liftlog/internal/modules/prefs/service"
	"liftlog/internal/platform/units"
)

type Interactor struct {
	svc *service.PrefsService
}

func NewInteractor(svc *service.PrefsService) prefsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) GetUnit(ctx context.Context) (units.Unit, error) {
	return i.svc.GetUnit(ctx)
}

func (i *Interactor) SetUnit(ctx context.Context, raw string) (units.Unit, error) {
	return i.svc.SetUnit(ctx, raw)
}
