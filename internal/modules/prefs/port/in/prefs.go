package in

import (
	"context"

	"liftlog/internal/platform/units"
)

type Usecase interface {
	GetUnit(ctx context.Context) (units.Unit, error)
	SetUnit(ctx context.Context, raw string) (units.Unit, error)
}
