package usecase

import (
	"context"
	"math"
	"testing"

	"liftlog/internal/modules/progress/domain"
	"liftlog/internal/modules/progress/dto"
	"liftlog/internal/modules/progress/service"
	"liftlog/internal/platform/units"
)

type fakeHistory struct {
	samples []domain.SessionSample
	splitID string
}

func (f *fakeHistory) ListSamples(_ context.Context, splitID string) ([]domain.SessionSample, error) {
	f.splitID = splitID
	return f.samples, nil
}

type fakeUnitSource struct {
	unit units.Unit
}

func (f *fakeUnitSource) DisplayUnit(context.Context) (units.Unit, error) {
	return f.unit, nil
}

func sample(iso string, volume float64) domain.SessionSample {
	return domain.SessionSample{StartedAt: iso, TotalVolumeKg: &volume}
}

func TestBuildChart(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{samples: []domain.SessionSample{
		sample("2024-01-08", 1200),
		sample("2024-01-01", 1000),
		{StartedAt: "", TotalVolumeKg: nil},
	}}
	interactor := NewInteractor(service.NewProgressService(history, &fakeUnitSource{unit: units.Kilograms})).(*Interactor)

	out, err := interactor.BuildChart(context.Background(), dto.BuildInput{SplitID: "split-a"})
	if err != nil {
		t.Fatalf("build chart: %v", err)
	}
	if history.splitID != "split-a" {
		t.Fatalf("history queried with %q", history.splitID)
	}
	if len(out.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(out.Points))
	}
	if out.Points[0].ISO != "2024-01-01" {
		t.Fatalf("not ascending: first point %q", out.Points[0].ISO)
	}
	if math.Abs(out.MaxValue-1380) > 1e-9 {
		t.Fatalf("max value = %v, want 1380", out.MaxValue)
	}
	if out.Unit != "kg" {
		t.Fatalf("unit = %q", out.Unit)
	}
	if out.Points[0].Label == "" {
		t.Fatal("first point should carry a date label")
	}
}

func TestBuildChartUsesPreferenceWhenUnitOmitted(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{samples: []domain.SessionSample{sample("2024-01-01", 100)}}
	interactor := NewInteractor(service.NewProgressService(history, &fakeUnitSource{unit: units.Pounds})).(*Interactor)

	out, err := interactor.BuildChart(context.Background(), dto.BuildInput{})
	if err != nil {
		t.Fatalf("build chart: %v", err)
	}
	if out.Unit != "lb" {
		t.Fatalf("unit = %q, want preference lb", out.Unit)
	}
	if math.Abs(out.Points[0].Value-220.46226218) > 1e-6 {
		t.Fatalf("display value = %v", out.Points[0].Value)
	}
	if out.Points[0].VolumeKg != 100 {
		t.Fatalf("stored volume = %v", out.Points[0].VolumeKg)
	}
}

func TestBuildChartExplicitUnitOverridesPreference(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{samples: []domain.SessionSample{sample("2024-01-01", 100)}}
	interactor := NewInteractor(service.NewProgressService(history, &fakeUnitSource{unit: units.Pounds})).(*Interactor)

	out, err := interactor.BuildChart(context.Background(), dto.BuildInput{Unit: "kg"})
	if err != nil {
		t.Fatalf("build chart: %v", err)
	}
	if out.Unit != "kg" {
		t.Fatalf("unit = %q, want kg", out.Unit)
	}
}

func TestBuildChartEmptyHistory(t *testing.T) {
	t.Parallel()

	interactor := NewInteractor(service.NewProgressService(&fakeHistory{}, &fakeUnitSource{unit: units.Kilograms})).(*Interactor)
	out, err := interactor.BuildChart(context.Background(), dto.BuildInput{})
	if err != nil {
		t.Fatalf("build chart: %v", err)
	}
	if len(out.Points) != 0 {
		t.Fatalf("points = %d", len(out.Points))
	}
	if out.MaxValue != domain.MaxValueFallback {
		t.Fatalf("max value = %v, want fallback", out.MaxValue)
	}
}

func TestBuildChartDefaultWindow(t *testing.T) {
	t.Parallel()

	history := &fakeHistory{}
	for day := 1; day <= 20; day++ {
		iso := "2024-01-" + string([]byte{byte('0' + day/10), byte('0' + day%10)})
		history.samples = append(history.samples, sample(iso, float64(day)))
	}
	interactor := NewInteractor(service.NewProgressService(history, &fakeUnitSource{unit: units.Kilograms})).(*Interactor)

	out, err := interactor.BuildChart(context.Background(), dto.BuildInput{})
	if err != nil {
		t.Fatalf("build chart: %v", err)
	}
	if len(out.Points) != domain.DefaultRecentSessions {
		t.Fatalf("points = %d, want default window %d", len(out.Points), domain.DefaultRecentSessions)
	}
	if out.Points[len(out.Points)-1].ISO != "2024-01-20" {
		t.Fatalf("window should end at the most recent session, got %q", out.Points[len(out.Points)-1].ISO)
	}
}
