package domain

import (
	"math"
	"sort"
	"time"

	"liftlog/internal/platform/units"
)

const (
	// DefaultRecentSessions bounds visual density on the chart.
	DefaultRecentSessions = 9

	// MaxValuePadding leaves headroom above the tallest point.
	MaxValuePadding = 1.15

	// MaxValueFallback is used when the series is empty or all-zero.
	MaxValueFallback = 10
)

// SessionSample is the raw record handed down from the session history.
// Either field may be absent or malformed; the filter decides.
type SessionSample struct {
	StartedAt     string
	TotalVolumeKg *float64
}

// ChartPoint is one plotted session, value already in the display unit.
type ChartPoint struct {
	Value    float64
	Label    string
	ISO      string
	VolumeKg float64

	startedAt time.Time
}

// StartedAt returns the parsed timestamp of the point.
func (p ChartPoint) StartedAt() time.Time { return p.startedAt }

// Series is the prepared chart data: points ascending by date plus the
// y-axis ceiling.
type Series struct {
	Points   []ChartPoint
	MaxValue float64
	Unit     units.Unit
}

// BuildSeries filters, sorts, and converts raw samples into chart points.
// Records with a missing or unparseable timestamp, or a nil or non-finite
// volume, are silently dropped. The result is capped to the most recent
// maxPoints sessions, oldest first; maxPoints <= 0 means no cap.
func BuildSeries(samples []SessionSample, unit units.Unit, maxPoints int) Series {
	points := make([]ChartPoint, 0, len(samples))
	for _, sample := range samples {
		startedAt, ok := parseTimestamp(sample.StartedAt)
		if !ok {
			continue
		}
		if sample.TotalVolumeKg == nil {
			continue
		}
		volume := *sample.TotalVolumeKg
		if math.IsNaN(volume) || math.IsInf(volume, 0) {
			continue
		}
		points = append(points, ChartPoint{
			Value:     unit.FromKg(volume),
			ISO:       sample.StartedAt,
			VolumeKg:  volume,
			startedAt: startedAt,
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].startedAt.Before(points[j].startedAt)
	})
	if maxPoints > 0 && len(points) > maxPoints {
		points = points[len(points)-maxPoints:]
	}

	return Series{
		Points:   points,
		MaxValue: maxValue(points),
		Unit:     unit,
	}
}

func maxValue(points []ChartPoint) float64 {
	var max float64
	for _, point := range points {
		if point.Value > max {
			max = point.Value
		}
	}
	if max <= 0 {
		return MaxValueFallback
	}
	return max * MaxValuePadding
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
