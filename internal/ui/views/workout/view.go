package workout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "liftlog/internal/modules/session/dto"
	apperrors "liftlog/internal/platform/errors"
	"liftlog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	Start(ctx context.Context, splitID string) (sessiondto.ActiveOutput, error)
	LogSet(ctx context.Context, exercise string, weight float64, unit string, reps int) (sessiondto.ActiveOutput, error)
	End(ctx context.Context) (sessiondto.WorkoutOutput, error)
	Status(ctx context.Context) (sessiondto.ActiveOutput, error)
	History(ctx context.Context, splitID string) ([]sessiondto.WorkoutOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ActiveLoadedMsg struct {
	Active sessiondto.ActiveOutput
	None   bool
	Err    error
}

type SetLoggedMsg struct {
	Active sessiondto.ActiveOutput
	Err    error
}

type WorkoutEndedMsg struct {
	Workout sessiondto.WorkoutOutput
	Err     error
}

type HistoryLoadedMsg struct {
	Workouts []sessiondto.WorkoutOutput
	Err      error
}

// ─── form fields ─────────────────────────────────────────────────────────────

const (
	fieldExercise = iota
	fieldWeight
	fieldReps
	fieldCount
)

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port      SessionPort
	inputs    [fieldCount]textinput.Model
	focus     int
	active    sessiondto.ActiveOutput
	hasActive bool
	history   viewport.Model
	spinner   spinner.Model
	unit      string
	status    string
	loading   bool
	width     int
	height    int
}

func New(port SessionPort, unit string) Model {
	var inputs [fieldCount]textinput.Model
	placeholders := [fieldCount]string{"exercise", "weight", "reps"}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 64
		inputs[i] = ti
	}
	inputs[fieldExercise].Focus()

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	if unit == "" {
		unit = "kg"
	}

	return Model{
		port:    port,
		inputs:  inputs,
		history: vp,
		spinner: sp,
		unit:    unit,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadActiveCmd(), m.loadHistoryCmd(), m.spinner.Tick)
}

// HasActive reports whether a workout is currently in progress.
func (m Model) HasActive() bool { return m.hasActive }

// ActiveWorkoutID returns the in-progress workout's ID, if any.
func (m Model) ActiveWorkoutID() string {
	if !m.hasActive {
		return ""
	}
	return m.active.WorkoutID
}

// ActiveSplitID returns the in-progress workout's split ID, if any.
func (m Model) ActiveSplitID() string {
	if !m.hasActive {
		return ""
	}
	return m.active.SplitID
}

// StartWorkout triggers a workout start for the given split. Called by the
// parent model from the Splits tab and the command palette.
func (m *Model) StartWorkout(splitID string) tea.Cmd {
	m.loading = true
	return tea.Batch(m.startCmd(splitID), m.spinner.Tick)
}

// EndWorkout finishes the active workout.
func (m *Model) EndWorkout() tea.Cmd {
	m.loading = true
	return tea.Batch(m.endCmd(), m.spinner.Tick)
}

// LogSetDirect logs a set without the form, used by the command palette.
func (m *Model) LogSetDirect(exercise string, weight float64, unit string, reps int) tea.Cmd {
	if unit == "" {
		unit = m.unit
	}
	return m.logSetCmd(exercise, weight, unit, reps)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ActiveLoadedMsg:
		m.loading = false
		switch {
		case msg.None:
			m.hasActive = false
			m.active = sessiondto.ActiveOutput{}
		case msg.Err != nil:
			m.status = msg.Err.Error()
		default:
			m.hasActive = true
			m.active = msg.Active
		}

	case SetLoggedMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = msg.Err.Error()
			break
		}
		m.active = msg.Active
		m.hasActive = true
		m.status = fmt.Sprintf("logged set %d", len(msg.Active.Sets))
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		m.setFocus(fieldExercise)

	case WorkoutEndedMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = msg.Err.Error()
			break
		}
		m.hasActive = false
		m.active = sessiondto.ActiveOutput{}
		m.status = fmt.Sprintf("workout saved: %s (%d sets, %.1f kg volume)",
			msg.Workout.NotePath, msg.Workout.SetCount, msg.Workout.TotalVolumeKg)
		cmds = append(cmds, m.loadHistoryCmd())

	case HistoryLoadedMsg:
		if msg.Err == nil {
			m.history.SetContent(renderHistory(msg.Workouts))
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.hasActive {
			switch msg.String() {
			case "tab", "down":
				m.setFocus((m.focus + 1) % fieldCount)
				return m, nil
			case "shift+tab", "up":
				m.setFocus((m.focus + fieldCount - 1) % fieldCount)
				return m, nil
			case "enter":
				cmd, err := m.submitForm()
				if err != nil {
					m.status = err.Error()
					return m, nil
				}
				m.loading = true
				return m, tea.Batch(cmd, m.spinner.Tick)
			case "ctrl+e":
				return m, m.EndWorkout()
			}
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
	}

	var vCmd tea.Cmd
	m.history, vCmd = m.history.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Working…")
	}

	var top string
	if m.hasActive {
		top = m.renderActive()
	} else {
		top = theme.Pane.Width(m.width - 2).Render(
			theme.Muted.Render("No active workout. Select a split on the Splits tab and press s to start."))
	}
	if m.status != "" {
		top = lipgloss.JoinVertical(lipgloss.Left, top, theme.Muted.Render(m.status))
	}

	topH := lipgloss.Height(top)
	histH := m.height - topH - 1
	if histH < 3 {
		histH = 3
	}
	m.history.Height = histH - 2

	histPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(histH - 2).
		Render(m.history.View())

	return lipgloss.JoinVertical(lipgloss.Left, top, histPane)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.history.Width = m.width - 4
	m.history.Height = m.height / 2
}

func (m *Model) setFocus(idx int) {
	m.focus = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) submitForm() (tea.Cmd, error) {
	exercise := strings.TrimSpace(m.inputs[fieldExercise].Value())
	if exercise == "" {
		return nil, fmt.Errorf("exercise name is required")
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[fieldWeight].Value()), 64)
	if err != nil {
		return nil, fmt.Errorf("weight must be a number")
	}
	reps, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldReps].Value()))
	if err != nil {
		return nil, fmt.Errorf("reps must be a whole number")
	}
	return m.logSetCmd(exercise, weight, m.unit, reps), nil
}

func (m Model) renderActive() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Active: "+m.active.SplitName) + "  " +
		theme.Muted.Render("since "+m.active.StartedAt) + "\n\n")
	for i, set := range m.active.Sets {
		sb.WriteString(fmt.Sprintf("  %2d. %-24s %7.1f kg × %d\n", i+1, set.Exercise, set.WeightKg, set.Reps))
	}
	sb.WriteString("\n")
	for i := range m.inputs {
		sb.WriteString(m.inputs[i].View() + "  ")
	}
	sb.WriteString(theme.Muted.Render("(" + m.unit + ")"))
	sb.WriteString("\n" + theme.Muted.Render("enter: log set  tab: next field  ctrl+e: end workout"))
	return theme.PaneActive.Width(m.width - 2).Render(sb.String())
}

func renderHistory(workouts []sessiondto.WorkoutOutput) string {
	if len(workouts) == 0 {
		return theme.Muted.Render("No finished workouts yet")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("History") + "\n")
	for i := len(workouts) - 1; i >= 0; i-- {
		w := workouts[i]
		sb.WriteString(fmt.Sprintf("  %s  %-20s %3d min  %2d sets  %8.1f kg\n",
			w.StartedAt[:10], w.SplitName, w.DurationMin, w.SetCount, w.TotalVolumeKg))
	}
	return sb.String()
}

func (m Model) loadActiveCmd() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return ActiveLoadedMsg{None: true}
		}
		active, err := m.port.Status(context.Background())
		if errors.Is(err, apperrors.ErrNoActiveWorkout) {
			return ActiveLoadedMsg{None: true}
		}
		return ActiveLoadedMsg{Active: active, Err: err}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return HistoryLoadedMsg{}
		}
		workouts, err := m.port.History(context.Background(), "")
		return HistoryLoadedMsg{Workouts: workouts, Err: err}
	}
}

func (m Model) startCmd(splitID string) tea.Cmd {
	return func() tea.Msg {
		active, err := m.port.Start(context.Background(), splitID)
		return ActiveLoadedMsg{Active: active, Err: err, None: false}
	}
}

func (m Model) logSetCmd(exercise string, weight float64, unit string, reps int) tea.Cmd {
	return func() tea.Msg {
		active, err := m.port.LogSet(context.Background(), exercise, weight, unit, reps)
		return SetLoggedMsg{Active: active, Err: err}
	}
}

func (m Model) endCmd() tea.Cmd {
	return func() tea.Msg {
		workout, err := m.port.End(context.Background())
		return WorkoutEndedMsg{Workout: workout, Err: err}
	}
}
