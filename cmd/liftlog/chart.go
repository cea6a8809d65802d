package main

import (
	"fmt"
	"strings"

	progressdto "liftlog/internal/modules/progress/dto"
)

const chartBarWidth = 40

// resolveChartPoints applies the configured chart_window when the --points
// flag is left unset.
func resolveChartPoints(flag, configured int) int {
	if flag > 0 {
		return flag
	}
	return configured
}

// renderChart draws the volume series as horizontal bars, one workout per
// line, scaled against the padded axis maximum the chart engine computed.
func renderChart(out progressdto.ChartOutput) string {
	if len(out.Points) == 0 {
		return "no workouts to chart\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("total volume per workout (%s)\n\n", out.Unit))
	for _, p := range out.Points {
		label := p.Label
		if label == "" {
			label = "      "
		}
		filled := 0
		if out.MaxValue > 0 {
			filled = int(p.Value / out.MaxValue * chartBarWidth)
		}
		if filled > chartBarWidth {
			filled = chartBarWidth
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", chartBarWidth-filled)
		sb.WriteString(fmt.Sprintf("%-6s %s %9.1f\n", label, bar, p.Value))
	}
	sb.WriteString(fmt.Sprintf("\nscale: 0 .. %.1f %s\n", out.MaxValue, out.Unit))
	return sb.String()
}
