package domain

import (
	"math"
	"testing"

	"liftlog/internal/platform/units"
)

func vol(v float64) *float64 { return &v }

func TestBuildSeriesFiltersAndSorts(t *testing.T) {
	t.Parallel()

	samples := []SessionSample{
		{StartedAt: "2024-01-08", TotalVolumeKg: vol(1200)},
		{StartedAt: "", TotalVolumeKg: vol(900)},
		{StartedAt: "2024-01-01", TotalVolumeKg: vol(1000)},
		{StartedAt: "2024-01-05", TotalVolumeKg: nil},
		{StartedAt: "not a date", TotalVolumeKg: vol(500)},
		{StartedAt: "2024-01-03", TotalVolumeKg: vol(math.NaN())},
		{StartedAt: "2024-01-04", TotalVolumeKg: vol(math.Inf(1))},
	}

	series := BuildSeries(samples, units.Kilograms, 0)
	if len(series.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(series.Points))
	}
	if series.Points[0].ISO != "2024-01-01" || series.Points[1].ISO != "2024-01-08" {
		t.Fatalf("not ascending: %q, %q", series.Points[0].ISO, series.Points[1].ISO)
	}
	if got, want := series.MaxValue, 1380.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("max value = %v, want %v", got, want)
	}
}

func TestBuildSeriesEmptyInput(t *testing.T) {
	t.Parallel()

	series := BuildSeries(nil, units.Kilograms, 0)
	if len(series.Points) != 0 {
		t.Fatalf("points = %d, want 0", len(series.Points))
	}
	if series.MaxValue != MaxValueFallback {
		t.Fatalf("max value = %v, want fallback %v", series.MaxValue, float64(MaxValueFallback))
	}
}

func TestBuildSeriesAllZeroUsesFallback(t *testing.T) {
	t.Parallel()

	samples := []SessionSample{
		{StartedAt: "2024-01-01", TotalVolumeKg: vol(0)},
		{StartedAt: "2024-01-02", TotalVolumeKg: vol(0)},
	}
	series := BuildSeries(samples, units.Kilograms, 0)
	if len(series.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(series.Points))
	}
	if series.MaxValue != MaxValueFallback {
		t.Fatalf("max value = %v, want fallback", series.MaxValue)
	}
}

func TestBuildSeriesCapsToMostRecent(t *testing.T) {
	t.Parallel()

	samples := make([]SessionSample, 0, 12)
	for day := 1; day <= 12; day++ {
		samples = append(samples, SessionSample{
			StartedAt:     "2024-01-" + twoDigits(day),
			TotalVolumeKg: vol(float64(100 * day)),
		})
	}
	series := BuildSeries(samples, units.Kilograms, DefaultRecentSessions)
	if len(series.Points) != DefaultRecentSessions {
		t.Fatalf("points = %d, want %d", len(series.Points), DefaultRecentSessions)
	}
	if series.Points[0].ISO != "2024-01-04" {
		t.Fatalf("window starts at %q, want the 9 most recent oldest-first", series.Points[0].ISO)
	}
	if series.Points[len(series.Points)-1].ISO != "2024-01-12" {
		t.Fatalf("window ends at %q", series.Points[len(series.Points)-1].ISO)
	}
}

func TestBuildSeriesStableOnTies(t *testing.T) {
	t.Parallel()

	samples := []SessionSample{
		{StartedAt: "2024-01-01T10:00:00Z", TotalVolumeKg: vol(100)},
		{StartedAt: "2024-01-01T10:00:00Z", TotalVolumeKg: vol(200)},
		{StartedAt: "2024-01-01T10:00:00Z", TotalVolumeKg: vol(300)},
	}
	series := BuildSeries(samples, units.Kilograms, 0)
	for i, want := range []float64{100, 200, 300} {
		if series.Points[i].VolumeKg != want {
			t.Fatalf("tie order broken at %d: %v", i, series.Points[i].VolumeKg)
		}
	}
}

func TestBuildSeriesPoundsDisplay(t *testing.T) {
	t.Parallel()

	samples := []SessionSample{{StartedAt: "2024-01-01", TotalVolumeKg: vol(100)}}
	series := BuildSeries(samples, units.Pounds, 0)
	if got := series.Points[0].Value; math.Abs(got-220.46226218) > 1e-6 {
		t.Fatalf("display value = %v, want ~220.46", got)
	}
	if series.Points[0].VolumeKg != 100 {
		t.Fatalf("stored volume changed: %v", series.Points[0].VolumeKg)
	}
}

func TestBuildSeriesNeverGrows(t *testing.T) {
	t.Parallel()

	samples := []SessionSample{
		{StartedAt: "2024-02-01", TotalVolumeKg: vol(1)},
		{StartedAt: "bad", TotalVolumeKg: vol(2)},
		{StartedAt: "2024-02-02"},
	}
	series := BuildSeries(samples, units.Kilograms, 0)
	if len(series.Points) > len(samples) {
		t.Fatalf("filter grew the input: %d > %d", len(series.Points), len(samples))
	}
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
