package out

import (
	"context"

	prefsin "liftlog/internal/modules/prefs/port/in"
	progressout "liftlog/internal/modules/progress/port/out"
	"liftlog/internal/platform/units"
)

// PrefsUnitBridge reads the display unit from the prefs module.
type PrefsUnitBridge struct {
	prefs prefsin.Usecase
}

func NewPrefsUnitBridge(prefs prefsin.Usecase) progressout.UnitSource {
	return &PrefsUnitBridge{prefs: prefs}
}

func (b *PrefsUnitBridge) DisplayUnit(ctx context.Context) (units.Unit, error) {
	return b.prefs.GetUnit(ctx)
}
