package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nmthang/awaybot/internal/tracker"
)

// Tracker is the slice of the session controller the watch view reads.
type Tracker interface {
	Snapshot() []tracker.ActiveView
}

// WatchModel is the TUI model for the live countdown view.
type WatchModel struct {
	width  int
	height int

	tracker Tracker
	table   table.Model

	// Animation state
	headerAnimation int

	exiting bool
}

// tickMsg is sent every second to refresh the countdowns
type tickMsg struct{}

// animationTickMsg is sent for faster animations
type animationTickMsg struct{}

// NewWatchModel creates a new watch TUI model
func NewWatchModel(t Tracker) WatchModel {
	columns := []table.Column{
		{Title: "MEMBER", Width: 16},
		{Title: "ACTIVITY", Width: 22},
		{Title: "STARTED", Width: 9},
		{Title: "DEADLINE", Width: 9},
		{Title: "REMAINING", Width: 12},
	}

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Background(lipgloss.Color(ColorAccentMain)).
		Bold(false)

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	tbl.SetStyles(s)

	m := WatchModel{tracker: t, table: tbl}
	m.refreshRows()
	return m
}

// Init starts the refresh and animation tickers
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(time.Second, func(t time.Time) tea.Msg {
			return tickMsg{}
		}),
		tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
			return animationTickMsg{}
		}),
	)
}

// Update handles messages
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refreshRows()
		if !m.exiting {
			return m, tea.Tick(time.Second, func(t time.Time) tea.Msg {
				return tickMsg{}
			})
		}
		return m, nil

	case animationTickMsg:
		m.headerAnimation = (m.headerAnimation + 1) % 4
		if !m.exiting {
			return m, tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
				return animationTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(maxInt(4, m.height-6))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.exiting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refreshRows rebuilds the table rows from the controller snapshot.
func (m *WatchModel) refreshRows() {
	views := m.tracker.Snapshot()
	rows := make([]table.Row, 0, len(views))
	for _, v := range views {
		rows = append(rows, table.Row{
			v.DisplayName,
			v.Label,
			v.StartedAt.Format("15:04:05"),
			v.Deadline.Format("15:04:05"),
			remainingCell(v.Remaining),
		})
	}
	m.table.SetRows(rows)
}

func remainingCell(remaining time.Duration) string {
	if remaining < 0 {
		return fmt.Sprintf("⛔ +%s", formatClock(-remaining))
	}
	if remaining <= time.Minute {
		return fmt.Sprintf("⚠️ %s", formatClock(remaining))
	}
	return formatClock(remaining)
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// View renders the watch TUI
func (m WatchModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	animChars := []string{"⏱", "⏲", "⏱", "⏲"}
	animChar := animChars[m.headerAnimation]

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccentBright)).
		Bold(true).
		Width(m.width).
		Align(lipgloss.Center)
	header := headerStyle.Render(fmt.Sprintf("%s  ACTIVE SESSIONS  %s", animChar, animChar))

	var body string
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText)).
			Width(m.width).
			Align(lipgloss.Center).
			PaddingTop(2)
		body = emptyStyle.Render("Nobody is away. Warnings fire here as deadlines near.")
	} else {
		body = m.table.View()
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	helpBar := helpStyle.Render("↑/↓ navigate • q/esc quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		body,
		"",
		helpBar,
	)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
