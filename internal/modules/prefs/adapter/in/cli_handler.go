package in

import (
	"context"

	prefsin "liftlog/internal/modules/prefs/port/in"
)

type CLIHandler struct {
	usecase prefsin.Usecase
}

func NewCLIHandler(usecase prefsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) GetUnit(ctx context.Context) (string, error) {
	unit, err := h.usecase.GetUnit(ctx)
	return string(unit), err
}

func (h CLIHandler) SetUnit(ctx context.Context, raw string) (string, error) {
	unit, err := h.usecase.SetUnit(ctx, raw)
	return string(unit), err
}
