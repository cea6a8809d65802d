package progress

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"liftlog/internal/modules/progress/domain"
	progressdto "liftlog/internal/modules/progress/dto"
	"liftlog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ProgressPort interface {
	Chart(ctx context.Context, splitID, unit string, maxPoints int) (progressdto.ChartOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ChartLoadedMsg struct {
	Chart progressdto.ChartOutput
	Err   error
}

// LongPressMsg fires when the press-and-hold timer elapses. Generation ties
// the timer to the press that armed it.
type LongPressMsg struct {
	Generation int
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      ProgressPort
	chart     progressdto.ChartOutput
	hover     domain.HoverState
	splitID   string
	unit      string
	maxPoints int
	spinner   spinner.Model
	loading   bool
	errText   string
	width     int
	height    int
}

// New builds the progress tab. maxPoints is the configured chart window; zero
// lets the chart engine fall back to its default.
func New(port ProgressPort, maxPoints int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{
		port:      port,
		hover:     domain.NewHoverState(),
		maxPoints: maxPoints,
		spinner:   sp,
		loading:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadChartCmd(), m.spinner.Tick)
}

// SetFilter scopes the chart to one split ("" means all) and reloads.
func (m *Model) SetFilter(splitID string) tea.Cmd {
	m.splitID = splitID
	m.loading = true
	return tea.Batch(m.loadChartCmd(), m.spinner.Tick)
}

// SetUnit switches the display unit and reloads.
func (m *Model) SetUnit(unit string) tea.Cmd {
	m.unit = unit
	m.loading = true
	return tea.Batch(m.loadChartCmd(), m.spinner.Tick)
}

// Reload re-fetches the chart, e.g. after a workout ends.
func (m *Model) Reload() tea.Cmd {
	return m.loadChartCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ChartLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.errText = ""
		m.chart = msg.Chart
		m.hover = domain.NewHoverState()

	case LongPressMsg:
		m.hover = domain.Transition(m.hover, domain.TimerElapsedEvent{Generation: msg.Generation}, m.indexAt)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.hover = domain.Transition(m.hover, domain.PressEvent{X: float64(msg.X)}, m.indexAt)
				generation := m.hover.Generation
				cmds = append(cmds, tea.Tick(domain.LongPressDuration, func(_ time.Time) tea.Msg {
					return LongPressMsg{Generation: generation}
				}))
			}
		case tea.MouseActionMotion:
			m.hover = domain.Transition(m.hover, domain.MoveEvent{X: float64(msg.X)}, m.indexAt)
		case tea.MouseActionRelease:
			m.hover = domain.Transition(m.hover, domain.ReleaseEvent{}, m.indexAt)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			m.loading = true
			cmds = append(cmds, m.loadChartCmd(), m.spinner.Tick)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading chart…")
	}
	if m.errText != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Hot.Render("Progress — "+m.errText))
	}
	if len(m.chart.Points) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No workouts yet — finish one to see volume here"))
	}

	header := m.renderHeader()
	body := m.renderChart()
	hint := theme.Muted.Render("press and hold to inspect  r: reload")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, hint)
}

// ─── private ─────────────────────────────────────────────────────────────────

// geometry maps terminal cells onto the chart layout. One cell is one pixel.
func (m Model) geometry() domain.Geometry {
	return domain.Geometry{
		Width:          float64(m.width),
		AxisLabelWidth: 8,
		AxisThickness:  1,
		InitialPad:     2,
		EndPad:         2,
	}
}

func (m Model) indexAt(x float64) int {
	return m.geometry().IndexAt(x, len(m.chart.Points))
}

func (m Model) chartHeight() int {
	h := m.height - 6
	if h < 6 {
		h = 6
	}
	return h
}

func (m Model) renderHeader() string {
	scope := "all splits"
	if m.splitID != "" {
		scope = m.splitID
	}
	return theme.Title.Render("Progress") + "  " +
		theme.Muted.Render(fmt.Sprintf("%s — total volume (%s), last %d workouts",
			scope, m.chart.Unit, len(m.chart.Points)))
}

func (m Model) renderChart() string {
	points := m.chart.Points
	geom := m.geometry()
	spacing := geom.Spacing(len(points))
	origin := geom.AxisLabelWidth + geom.AxisThickness + geom.InitialPad
	chartH := m.chartHeight()

	rows := make([][]rune, chartH+1)
	for r := range rows {
		rows[r] = []rune(strings.Repeat(" ", m.width))
	}

	// y axis with the padded maximum at the top and zero at the baseline.
	axisCol := int(geom.AxisLabelWidth)
	for r := 0; r < chartH; r++ {
		putRune(rows[r], axisCol, '│')
	}
	for c := axisCol; c < m.width; c++ {
		putRune(rows[chartH], c, '─')
	}
	putRune(rows[chartH], axisCol, '└')
	putLabel(rows[0], 0, fmt.Sprintf("%7.0f", m.chart.MaxValue))
	putLabel(rows[chartH], 0, fmt.Sprintf("%7.0f", 0.0))

	type dot struct{ col, row int }
	dots := make([]dot, len(points))
	for i, p := range points {
		col := int(math.Round(origin + float64(i)*spacing))
		row := int(math.Round(domain.DotY(p.Value, m.chart.MaxValue, float64(chartH))))
		if row >= chartH {
			row = chartH - 1
		}
		if row < 0 {
			row = 0
		}
		dots[i] = dot{col: col, row: row}
	}

	// connect neighbouring dots with a sparse line before drawing the dots.
	for i := 1; i < len(dots); i++ {
		drawSegment(rows, dots[i-1].col, dots[i-1].row, dots[i].col, dots[i].row)
	}
	for i, d := range dots {
		marker := '●'
		if i == m.hover.HoverIndex {
			marker = '◉'
		}
		putRune(rows[d.row], d.col, marker)
	}

	labelRow := []rune(strings.Repeat(" ", m.width))
	for i, p := range points {
		if p.Label == "" {
			continue
		}
		start := dots[i].col - len(p.Label)/2
		putLabel(labelRow, start, p.Label)
	}

	lines := make([]string, 0, len(rows)+1)
	for _, r := range rows {
		lines = append(lines, string(r))
	}
	lines = append(lines, theme.Muted.Render(string(labelRow)))

	if m.hover.HoverIndex >= 0 && m.hover.HoverIndex < len(points) {
		lines = m.overlayTooltip(lines, dots[m.hover.HoverIndex].col, dots[m.hover.HoverIndex].row)
	}
	return strings.Join(lines, "\n")
}

// overlayTooltip splices the inspector box into the rendered chart lines at
// the placement the layout engine picked.
func (m Model) overlayTooltip(lines []string, dotCol, dotRow int) []string {
	p := m.chart.Points[m.hover.HoverIndex]
	content := fmt.Sprintf("%s\n%.1f %s", p.Label, p.Value, m.chart.Unit)
	if p.Label == "" {
		content = fmt.Sprintf("%s\n%.1f %s", p.ISO, p.Value, m.chart.Unit)
	}
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Peach).
		Background(theme.Mantle).
		Padding(0, 1).
		Render(content)

	size := domain.TooltipSize{
		Width:  float64(lipgloss.Width(box)),
		Height: float64(lipgloss.Height(box)),
	}
	placement := domain.PlaceTooltip(
		float64(dotCol), float64(dotRow),
		float64(m.width), float64(m.chartHeight()),
		size, cellTooltipMargins(),
	)

	boxLines := strings.Split(box, "\n")
	left := int(math.Round(placement.Left))
	top := int(math.Round(placement.Top))
	for i, bl := range boxLines {
		row := top + i
		if row < 0 || row >= len(lines) {
			continue
		}
		lines[row] = spliceLine(lines[row], left, bl)
	}
	return lines
}

// cellTooltipMargins shrinks the pixel-tuned defaults to terminal cells.
func cellTooltipMargins() domain.TooltipMargins {
	return domain.TooltipMargins{
		Gap:       2,
		Extra:     1,
		MinLeft:   1,
		MinTop:    0,
		MinBottom: 1,
	}
}

func putRune(row []rune, col int, r rune) {
	if col >= 0 && col < len(row) {
		row[col] = r
	}
}

func putLabel(row []rune, col int, label string) {
	for i, r := range label {
		putRune(row, col+i, r)
	}
}

// drawSegment fills the cells between two dots with a faint connector.
func drawSegment(rows [][]rune, c0, r0, c1, r1 int) {
	steps := c1 - c0
	if steps <= 0 {
		return
	}
	for s := 1; s < steps; s++ {
		col := c0 + s
		row := r0 + (r1-r0)*s/steps
		if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
			continue
		}
		if rows[row][col] == ' ' {
			rows[row][col] = '·'
		}
	}
}

// spliceLine overwrites the plain-text line with overlay starting at col.
// Chart rows hold no ANSI sequences, so rune splicing is safe here.
func spliceLine(line string, col int, overlay string) string {
	runes := []rune(line)
	overlayW := lipgloss.Width(overlay)
	for len(runes) < col+overlayW {
		runes = append(runes, ' ')
	}
	return string(runes[:col]) + overlay + string(runes[col+overlayW:])
}

func (m Model) loadChartCmd() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return ChartLoadedMsg{}
		}
		chart, err := m.port.Chart(context.Background(), m.splitID, m.unit, m.maxPoints)
		return ChartLoadedMsg{Chart: chart, Err: err}
	}
}
