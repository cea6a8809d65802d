package service

import (
	"context"

	prefsout "liftlog/internal/modules/prefs/port/out"
	"liftlog/internal/platform/units"
)

const unitKey = "display_unit"

// PrefsService resolves user preferences, falling back to the configured
// default when nothing has been stored yet.
type PrefsService struct {
	store       prefsout.PreferenceStore
	defaultUnit units.Unit
}

func NewPrefsService(store prefsout.PreferenceStore, defaultUnit units.Unit) *PrefsService {
	return &PrefsService{store: store, defaultUnit: defaultUnit}
}

func (s *PrefsService) GetUnit(ctx context.Context) (units.Unit, error) {
	value, ok, err := s.store.Get(ctx, unitKey)
	if err != nil {
		return "", err
	}
	if !ok {
		return s.defaultUnit, nil
	}
	unit, err := units.Parse(value)
	if err != nil {
		// A stale or hand-edited value falls back rather than failing.
		return s.defaultUnit, nil
	}
	return unit, nil
}

func (s *PrefsService) SetUnit(ctx context.Context, raw string) (units.Unit, error) {
	unit, err := units.Parse(raw)
	if err != nil {
		return "", err
	}
	if err := s.store.Put(ctx, unitKey, string(unit)); err != nil {
		return "", err
	}
	return unit, nil
}
