package domain

import "math"

const (
	// DefaultSpacing is used before layout or for a single point.
	DefaultSpacing = 26.0

	// MinSpacing keeps points from fully overlapping under crowding.
	MinSpacing = 4.0
)

// Geometry holds the fixed horizontal layout of the chart area.
type Geometry struct {
	Width          float64
	AxisLabelWidth float64
	AxisThickness  float64
	InitialPad     float64
	EndPad         float64
}

// Spacing computes the horizontal distance between adjacent points so that
// n points fill the drawable area. Falls back to DefaultSpacing when the
// width is not known yet or there is at most one point.
func (g Geometry) Spacing(n int) float64 {
	if n <= 1 || g.Width == 0 {
		return DefaultSpacing
	}
	effective := math.Max(0, g.Width-g.AxisLabelWidth-g.AxisThickness)
	available := math.Max(0, effective-g.InitialPad-g.EndPad)
	return math.Max(MinSpacing, available/float64(n-1))
}

// IndexAt maps a touch x-coordinate to the nearest point index, clamped to
// the valid range. Returns -1 when there are no points.
func (g Geometry) IndexAt(x float64, n int) int {
	if n == 0 {
		return -1
	}
	origin := g.AxisLabelWidth + g.AxisThickness + g.InitialPad
	index := int(math.Round((x - origin) / g.Spacing(n)))
	if index < 0 {
		return 0
	}
	if index > n-1 {
		return n - 1
	}
	return index
}
