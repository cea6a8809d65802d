package domain

import "time"

const labelFormat = "Jan 2"

// ApplyDensityLabels assigns x-axis labels so roughly seven fit regardless
// of how many points the series holds. A point is labeled iff its whole-day
// offset from the first point is a multiple of the interval. Offsets are
// computed from UTC midnights so daylight-saving shifts cannot skew them.
func ApplyDensityLabels(points []ChartPoint) {
	if len(points) == 0 {
		return
	}
	interval := len(points)/7 + 1
	first := midnightUTC(points[0].startedAt)
	for i := range points {
		offset := int(midnightUTC(points[i].startedAt).Sub(first).Hours() / 24)
		if offset%interval == 0 {
			points[i].Label = points[i].startedAt.Format(labelFormat)
		} else {
			points[i].Label = ""
		}
	}
}

// ApplyFixedLabels labels the first, middle, and last points. With one point
// only the first is labeled; with two, both.
func ApplyFixedLabels(points []ChartPoint) {
	for i := range points {
		points[i].Label = ""
	}
	switch n := len(points); {
	case n == 0:
	case n == 1:
		points[0].Label = points[0].startedAt.Format(labelFormat)
	case n == 2:
		points[0].Label = points[0].startedAt.Format(labelFormat)
		points[1].Label = points[1].startedAt.Format(labelFormat)
	default:
		points[0].Label = points[0].startedAt.Format(labelFormat)
		mid := (n - 1) / 2
		points[mid].Label = points[mid].startedAt.Format(labelFormat)
		points[n-1].Label = points[n-1].startedAt.Format(labelFormat)
	}
}

func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
