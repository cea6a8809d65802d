package app

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plugindto "liftlog/internal/modules/plugin/dto"
	"liftlog/internal/platform/units"
	"liftlog/internal/ui/components"
	"liftlog/internal/ui/theme"
	"liftlog/internal/ui/views/plugins"
	"liftlog/internal/ui/views/progress"
	"liftlog/internal/ui/views/splits"
	"liftlog/internal/ui/views/workout"
)

// ─── ports ───────────────────────────────────────────────────────────────────

// ttyPort is what the app model needs beyond the plugins view's own port.
type ttyPort interface {
	PrepareTTY(ctx context.Context, input plugindto.TTYPrepareInput) (plugindto.TTYPrepareOutput, error)
}

// prefsPort lets the palette flip the persisted display unit.
type prefsPort interface {
	SetUnit(ctx context.Context, raw string) (units.Unit, error)
	GetUnit(ctx context.Context) (units.Unit, error)
}

// reindexPort rebuilds the SQLite projections from the vault.
type reindexPort interface {
	ReindexSplits(ctx context.Context) error
	ReindexWorkouts(ctx context.Context) error
}

// ReindexBridge fans one reindex request out to both vault projections.
type ReindexBridge struct {
	Splits   func(ctx context.Context) error
	Workouts func(ctx context.Context) error
}

func (b ReindexBridge) ReindexSplits(ctx context.Context) error   { return b.Splits(ctx) }
func (b ReindexBridge) ReindexWorkouts(ctx context.Context) error { return b.Workouts(ctx) }

// ─── tabs ────────────────────────────────────────────────────────────────────

type tabID int

const (
	tabSplits tabID = iota
	tabWorkout
	tabProgress
	tabPlugins
	tabCount
)

var tabLabels = [tabCount]string{"Splits", "Workout", "Progress", "Plugins"}

// ─── messages ────────────────────────────────────────────────────────────────

type pluginTTYReadyMsg struct {
	plan plugindto.TTYPrepareOutput
	err  error
}

type pluginTTYDoneMsg struct{ err error }

type unitSetMsg struct {
	unit string
	err  error
}

type reindexDoneMsg struct{ err error }

// ─── key map ─────────────────────────────────────────────────────────────────

type keyMap struct {
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Help    key.Binding
	Palette key.Binding
	Start   key.Binding
	End     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start workout")),
		End:     key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "end workout")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Start, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab},
		{k.Start, k.End},
		{k.Palette, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	vaultPath string

	splitsView   splits.Model
	workoutView  workout.Model
	progressView progress.Model
	pluginsView  plugins.Model

	ttyPort     ttyPort
	prefsPort   prefsPort
	reindexPort reindexPort

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(
	vaultPath string,
	splitPort splits.SplitPort,
	sessionPort workout.SessionPort,
	progressPort progress.ProgressPort,
	pluginPort plugins.Port,
	tty ttyPort,
	prefs prefsPort,
	reindex reindexPort,
	unit string,
	chartWindow int,
) Model {
	return Model{
		vaultPath:    vaultPath,
		splitsView:   splits.New(splitPort),
		workoutView:  workout.New(sessionPort, unit),
		progressView: progress.New(progressPort, chartWindow),
		pluginsView:  plugins.New(pluginPort, vaultPath),
		ttyPort:      tty,
		prefsPort:    prefs,
		reindexPort:  reindex,
		keys:         newKeyMap(),
		help:         help.New(),
		palette:      components.NewPalette(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.splitsView.Init(),
		m.workoutView.Init(),
		m.progressView.Init(),
		m.pluginsView.Init(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette overlay eats input while visible.
	if m.palette.Visible() {
		switch msg.(type) {
		case components.PaletteSubmitMsg, components.PaletteCancelMsg:
		default:
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(msg.Width)
		contentMsg := tea.WindowSizeMsg{Width: msg.Width, Height: m.contentHeight()}
		var c1, c2, c3, c4 tea.Cmd
		m.splitsView, c1 = m.splitsView.Update(contentMsg)
		m.workoutView, c2 = m.workoutView.Update(contentMsg)
		m.progressView, c3 = m.progressView.Update(contentMsg)
		m.pluginsView, c4 = m.pluginsView.Update(contentMsg)
		return m, tea.Batch(c1, c2, c3, c4)

	case components.PaletteSubmitMsg:
		if msg.Input != "" {
			cmd := m.executePalette(msg.Input)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case components.PaletteCancelMsg:
		return m, nil

	case pluginTTYReadyMsg:
		if msg.err != nil {
			m.status = "tty: " + msg.err.Error()
			return m, nil
		}
		return m, m.runTTYCmd(msg.plan)

	case pluginTTYDoneMsg:
		if msg.err != nil {
			m.status = "tty exited: " + msg.err.Error()
		} else {
			m.status = "tty command finished"
		}
		return m, nil

	case unitSetMsg:
		if msg.err != nil {
			m.status = "unit: " + msg.err.Error()
			return m, nil
		}
		m.status = "display unit set to " + msg.unit
		return m, m.progressView.SetUnit(msg.unit)

	case reindexDoneMsg:
		if msg.err != nil {
			m.status = "reindex: " + msg.err.Error()
		} else {
			m.status = "reindex completed"
		}
		return m, nil

	case workout.WorkoutEndedMsg:
		// keep the chart and split list fresh after a save.
		var wCmd tea.Cmd
		m.workoutView, wCmd = m.workoutView.Update(msg)
		cmds = append(cmds, wCmd, m.progressView.Reload(), m.splitsView.Reload())
		m.syncPluginContext()
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.subViewFiltering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			if m.activeTab != tabWorkout || !m.workoutView.HasActive() {
				m.activeTab = (m.activeTab + 1) % tabCount
				return m, nil
			}
		case key.Matches(msg, m.keys.PrevTab):
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Start):
			if m.activeTab == tabSplits {
				if id, ok := m.splitsView.SelectedSplitID(); ok {
					m.activeTab = tabWorkout
					m.status = "starting workout for " + m.splitsView.SelectedSplitName()
					return m, m.workoutView.StartWorkout(id)
				}
			}
		case key.Matches(msg, m.keys.End):
			if m.activeTab != tabWorkout && m.workoutView.HasActive() {
				return m, m.workoutView.EndWorkout()
			}
		}
		if m.activeTab == tabSplits && msg.String() == "enter" {
			m.activeTab = tabWorkout
			return m, nil
		}
	}

	// Propagate to the active tab.
	switch m.activeTab {
	case tabSplits:
		var cmd tea.Cmd
		m.splitsView, cmd = m.splitsView.Update(msg)
		cmds = append(cmds, cmd)
	case tabWorkout:
		var cmd tea.Cmd
		m.workoutView, cmd = m.workoutView.Update(msg)
		cmds = append(cmds, cmd)
	case tabProgress:
		var cmd tea.Cmd
		m.progressView, cmd = m.progressView.Update(msg)
		cmds = append(cmds, cmd)
	case tabPlugins:
		var cmd tea.Cmd
		m.pluginsView, cmd = m.pluginsView.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.syncPluginContext()
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	var content string
	switch m.activeTab {
	case tabSplits:
		content = m.splitsView.View()
	case tabWorkout:
		content = m.workoutView.View()
	case tabProgress:
		content = m.progressView.View()
	case tabPlugins:
		content = m.pluginsView.View()
	}

	body := lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
	if m.palette.Visible() {
		body = lipgloss.JoinVertical(lipgloss.Left, tabBar, m.palette.View(), content, statusBar)
	}
	return body
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) contentHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

// subViewFiltering reports whether a list filter owns the keyboard, so that
// global keys like q and tab are not swallowed mid-search.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabSplits:
		return m.splitsView.Filtering()
	case tabPlugins:
		return m.pluginsView.Filtering()
	default:
		return false
	}
}

func (m *Model) syncPluginContext() {
	splitID, _ := m.splitsView.SelectedSplitID()
	if active := m.workoutView.ActiveSplitID(); active != "" {
		splitID = active
	}
	m.pluginsView.SetContext(splitID, m.workoutView.ActiveWorkoutID())
}

func (m Model) renderTabBar() string {
	var parts []string
	parts = append(parts, theme.Hot.Render("liftlog")+"  ")
	for i := tabID(0); i < tabCount; i++ {
		label := " " + tabLabels[i] + " "
		if i == m.activeTab {
			parts = append(parts, theme.Hot.Render(label))
		} else {
			parts = append(parts, theme.Muted.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.workoutView.HasActive() {
		left = theme.Hot.Render("● workout in progress") + "  " + theme.Muted.Render(left)
	} else {
		left = theme.Muted.Render(left)
	}
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, m.help.FullHelpView(m.keys.FullHelp()), left)
	}
	right := m.help.ShortHelpView(m.keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// executePalette dispatches a colon command typed into the palette. The hint
// list in components/palette.go mirrors this switch.
func (m *Model) executePalette(input string) tea.Cmd {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil
	}
	verb, args := fields[0], fields[1:]

	switch verb {
	case "workout:start":
		splitID := ""
		if len(args) > 0 {
			splitID = args[0]
		} else if id, ok := m.splitsView.SelectedSplitID(); ok {
			splitID = id
		}
		if splitID == "" {
			m.status = "workout:start needs a split id"
			return nil
		}
		m.activeTab = tabWorkout
		return m.workoutView.StartWorkout(splitID)

	case "workout:log":
		if len(args) < 3 {
			m.status = "usage: workout:log <exercise> <weight> <reps> [unit]"
			return nil
		}
		weight, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			m.status = "weight must be a number"
			return nil
		}
		reps, err := strconv.Atoi(args[2])
		if err != nil {
			m.status = "reps must be a whole number"
			return nil
		}
		unit := ""
		if len(args) > 3 {
			unit = args[3]
		}
		m.activeTab = tabWorkout
		return m.workoutView.LogSetDirect(args[0], weight, unit, reps)

	case "workout:end":
		m.activeTab = tabWorkout
		return m.workoutView.EndWorkout()

	case "workout:status":
		m.activeTab = tabWorkout
		return nil

	case "unit:set":
		if len(args) != 1 {
			m.status = "usage: unit:set <kg|lb>"
			return nil
		}
		return m.setUnitCmd(args[0])

	case "chart:open":
		m.activeTab = tabProgress
		splitID := ""
		if len(args) > 0 {
			splitID = args[0]
		}
		return m.progressView.SetFilter(splitID)

	case "plugin:export":
		if len(args) < 2 {
			m.status = "usage: plugin:export <plugin> <command> [json]"
			return nil
		}
		inputJSON := ""
		if len(args) > 2 {
			inputJSON = strings.Join(args[2:], " ")
		}
		m.activeTab = tabPlugins
		return m.pluginsView.ExecCommand(args[0], args[1], inputJSON)

	case "plugin:commands":
		if len(args) != 1 {
			m.status = "usage: plugin:commands <plugin>"
			return nil
		}
		m.activeTab = tabPlugins
		return m.pluginsView.LoadCommands(args[0])

	case "plugin:tty":
		if len(args) < 2 {
			m.status = "usage: plugin:tty <plugin> <command> [json]"
			return nil
		}
		inputJSON := ""
		if len(args) > 2 {
			inputJSON = strings.Join(args[2:], " ")
		}
		return m.prepareTTYCmd(args[0], args[1], inputJSON)

	case "reindex":
		return m.reindexCmd()

	default:
		m.status = "unknown command: " + verb
		return nil
	}
}

func (m Model) setUnitCmd(raw string) tea.Cmd {
	return func() tea.Msg {
		if m.prefsPort == nil {
			return unitSetMsg{err: fmt.Errorf("preferences are not available")}
		}
		unit, err := m.prefsPort.SetUnit(context.Background(), raw)
		return unitSetMsg{unit: string(unit), err: err}
	}
}

func (m Model) prepareTTYCmd(pluginName, commandID, inputJSON string) tea.Cmd {
	splitID, _ := m.splitsView.SelectedSplitID()
	workoutID := m.workoutView.ActiveWorkoutID()
	return func() tea.Msg {
		if m.ttyPort == nil {
			return pluginTTYReadyMsg{err: fmt.Errorf("plugins are not available")}
		}
		plan, err := m.ttyPort.PrepareTTY(context.Background(), plugindto.TTYPrepareInput{
			PluginName: pluginName,
			CommandID:  commandID,
			InputJSON:  inputJSON,
			SplitID:    splitID,
			WorkoutID:  workoutID,
			VaultPath:  m.vaultPath,
			Cwd:        m.vaultPath,
		})
		return pluginTTYReadyMsg{plan: plan, err: err}
	}
}

func (m Model) runTTYCmd(plan plugindto.TTYPrepareOutput) tea.Cmd {
	if len(plan.Argv) == 0 {
		return func() tea.Msg {
			return pluginTTYDoneMsg{err: fmt.Errorf("plugin tty plan has empty argv")}
		}
	}
	cmd := exec.Command(plan.Argv[0], plan.Argv[1:]...)
	if plan.Cwd != "" {
		cmd.Dir = plan.Cwd
	}
	env := os.Environ()
	for key, value := range plan.Env {
		env = append(env, key+"="+value)
	}
	cmd.Env = env
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return pluginTTYDoneMsg{err: err}
	})
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		if m.reindexPort == nil {
			return reindexDoneMsg{err: fmt.Errorf("reindex is not available")}
		}
		if err := m.reindexPort.ReindexSplits(context.Background()); err != nil {
			return reindexDoneMsg{err: err}
		}
		return reindexDoneMsg{err: m.reindexPort.ReindexWorkouts(context.Background())}
	}
}
