package splits

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	splitdto "liftlog/internal/modules/split/dto"
	"liftlog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type SplitPort interface {
	List(ctx context.Context) ([]splitdto.SplitOutput, error)
	Get(ctx context.Context, id string) (splitdto.SplitDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SplitsLoadedMsg struct {
	Splits []splitdto.SplitOutput
	Err    error
}

type DetailLoadedMsg struct {
	Detail splitdto.SplitDetailOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type splitItem struct {
	split splitdto.SplitOutput
}

func (i splitItem) Title() string { return i.split.Name }
func (i splitItem) Description() string {
	return fmt.Sprintf("%s  %d exercises", strings.Join(i.split.Days, " "), i.split.Exercises)
}
func (i splitItem) FilterValue() string { return i.split.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    SplitPort
	list    list.Model
	detail  splitdto.SplitDetailOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port SplitPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Splits"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSplitsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case SplitsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Splits — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Splits))
		for i, s := range msg.Splits {
			items[i] = splitItem{split: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Splits) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Splits[0].ID))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(splitItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.split.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading splits…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedSplitID returns the current selection's split ID, if any.
func (m Model) SelectedSplitID() (string, bool) {
	if item, ok := m.list.SelectedItem().(splitItem); ok {
		return item.split.ID, true
	}
	return "", false
}

// SelectedSplitName returns the current selection's name.
func (m Model) SelectedSplitName() string {
	if item, ok := m.list.SelectedItem().(splitItem); ok {
		return item.split.Name
	}
	return ""
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload re-fetches the split list, e.g. after a workout stamps a split.
func (m *Model) Reload() tea.Cmd {
	return m.loadSplitsCmd()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a split to see details")
	}
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(d.Color)).Render("●")
	var sb strings.Builder
	sb.WriteString(swatch + " " + theme.Title.Render(d.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:     ") + d.ID + "\n")
	sb.WriteString(theme.Muted.Render("status: ") + d.Status + "\n")
	if len(d.Days) > 0 {
		sb.WriteString(theme.Muted.Render("days:   ") + strings.Join(d.Days, ", ") + "\n")
	}
	if d.NotePath != "" {
		sb.WriteString(theme.Muted.Render("note:   ") + d.NotePath + "\n")
	}
	if d.LastWorkoutID != "" {
		sb.WriteString(theme.Muted.Render("last:   ") + d.LastWorkoutID + "\n")
	}
	if len(d.Exercises) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Exercises") + "\n")
		for _, ex := range d.Exercises {
			sb.WriteString(fmt.Sprintf("  %s", ex.Name))
			if ex.TargetSets > 0 && ex.TargetReps > 0 {
				sb.WriteString(theme.Muted.Render(fmt.Sprintf("  %dx%d", ex.TargetSets, ex.TargetReps)))
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("s: start workout  enter: open Workout tab"))
	return sb.String()
}

func (m Model) loadSplitsCmd() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return SplitsLoadedMsg{}
		}
		splits, err := m.port.List(context.Background())
		return SplitsLoadedMsg{Splits: splits, Err: err}
	}
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Get(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
