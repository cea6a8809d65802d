package usecase

import (
	"context"
	"testing"

	"liftlog/internal/modules/prefs/service"
	"liftlog/internal/platform/units"
)

type memoryPrefsStore struct {
	values map[string]string
}

func (s *memoryPrefsStore) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *memoryPrefsStore) Put(_ context.Context, key, value string) error {
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value
	return nil
}

func TestGetUnitFallsBackToDefault(t *testing.T) {
	t.Parallel()

	interactor := NewInteractor(service.NewPrefsService(&memoryPrefsStore{}, units.Pounds))
	unit, err := interactor.GetUnit(context.Background())
	if err != nil {
		t.Fatalf("get unit: %v", err)
	}
	if unit != units.Pounds {
		t.Fatalf("unit = %v, want default lb", unit)
	}
}

func TestSetUnitRoundTrips(t *testing.T) {
	t.Parallel()

	interactor := NewInteractor(service.NewPrefsService(&memoryPrefsStore{}, units.Kilograms))
	if _, err := interactor.SetUnit(context.Background(), "lbs"); err != nil {
		t.Fatalf("set unit: %v", err)
	}
	unit, err := interactor.GetUnit(context.Background())
	if err != nil {
		t.Fatalf("get unit: %v", err)
	}
	if unit != units.Pounds {
		t.Fatalf("unit = %v, want lb", unit)
	}
}

func TestSetUnitRejectsUnknown(t *testing.T) {
	t.Parallel()

	interactor := NewInteractor(service.NewPrefsService(&memoryPrefsStore{}, units.Kilograms))
	if _, err := interactor.SetUnit(context.Background(), "stone"); err == nil {
		t.Fatal("expected error for unknown unit")
	}
}

func TestGetUnitIgnoresCorruptValue(t *testing.T) {
	t.Parallel()

	store := &memoryPrefsStore{values: map[string]string{"display_unit": "???"}}
	interactor := NewInteractor(service.NewPrefsService(store, units.Kilograms))
	unit, err := interactor.GetUnit(context.Background())
	if err != nil {
		t.Fatalf("get unit: %v", err)
	}
	if unit != units.Kilograms {
		t.Fatalf("unit = %v, want fallback kg", unit)
	}
}
