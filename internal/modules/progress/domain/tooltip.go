package domain

import "math"

// Default tooltip layout constants, in chart pixels.
const (
	DefaultTooltipGap   = 8.0
	DefaultTooltipExtra = 4.0
	DefaultMinLeft      = 4.0
	DefaultMinTop       = 4.0
	DefaultMinBottom    = 4.0

	// badgeCenterOffset vertically aligns the tooltip's value badge with
	// the highlighted dot in side placements. Tuned against the rendered
	// tooltip layout.
	badgeCenterOffset = 12.0
)

// TooltipPosition is where the tooltip sits relative to the dot.
type TooltipPosition int

const (
	TooltipAbove TooltipPosition = iota
	TooltipRight
	TooltipLeft
)

func (p TooltipPosition) String() string {
	switch p {
	case TooltipAbove:
		return "above"
	case TooltipRight:
		return "right"
	case TooltipLeft:
		return "left"
	default:
		return "unknown"
	}
}

type TooltipSize struct {
	Width  float64
	Height float64
}

type TooltipMargins struct {
	Gap       float64
	Extra     float64
	MinLeft   float64
	MinTop    float64
	MinBottom float64
}

func DefaultTooltipMargins() TooltipMargins {
	return TooltipMargins{
		Gap:       DefaultTooltipGap,
		Extra:     DefaultTooltipExtra,
		MinLeft:   DefaultMinLeft,
		MinTop:    DefaultMinTop,
		MinBottom: DefaultMinBottom,
	}
}

type TooltipPlacement struct {
	Left     float64
	Top      float64
	Position TooltipPosition
}

// DotY converts a point value to its vertical pixel position. Pixel y grows
// downward, so larger values sit higher.
func DotY(value, maxValue, chartHeight float64) float64 {
	if maxValue <= 0 {
		return chartHeight
	}
	return chartHeight - value/maxValue*chartHeight
}

// PlaceTooltip decides where the inspector tooltip goes for the dot at
// (x, y) inside a chart of the given bounds.
//
// Above-centered placement wins when the tooltip fits there without any
// clamping. Otherwise the tooltip moves beside the dot: a side is chosen by
// available room, the left edge is floored at MinLeft, and no right-edge
// clamp is applied, so a very narrow chart may let the tooltip overflow on
// the right. The side placement aligns the value badge, not the tooltip
// box, with the dot, then clamps vertically.
func PlaceTooltip(x, y, chartWidth, chartHeight float64, size TooltipSize, m TooltipMargins) TooltipPlacement {
	maxTop := chartHeight - size.Height - m.MinBottom

	// Above acceptance only has to check the top and horizontal margins:
	// DotY keeps y <= chartHeight, and with Gap+Extra >= MinBottom that
	// bounds aboveTop at maxTop, so no bottom check is needed here.
	aboveTop := y - (m.Gap + m.Extra) - size.Height
	aboveLeft := x - size.Width/2
	if aboveTop >= m.MinTop &&
		aboveLeft >= m.MinLeft && aboveLeft <= chartWidth-size.Width {
		return TooltipPlacement{Left: aboveLeft, Top: aboveTop, Position: TooltipAbove}
	}

	rightRoom := chartWidth - x - m.Gap
	leftRoom := x - m.Gap
	rightFits := rightRoom >= size.Width
	leftFits := leftRoom >= size.Width

	var position TooltipPosition
	switch {
	case rightFits && !leftFits:
		position = TooltipRight
	case leftFits && !rightFits:
		position = TooltipLeft
	case leftRoom > rightRoom:
		position = TooltipLeft
	default:
		position = TooltipRight
	}

	var left float64
	if position == TooltipRight {
		left = x + m.Gap
	} else {
		left = x - m.Gap - size.Width
	}
	left = math.Max(m.MinLeft, left)

	top := y - badgeCenterOffset
	if top > maxTop {
		top = maxTop
	}
	if top < m.MinTop {
		top = m.MinTop
	}
	return TooltipPlacement{Left: left, Top: top, Position: position}
}
