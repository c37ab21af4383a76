package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// RunWatchTUI starts the live countdown view and blocks until it exits.
// Countdown watchers keep running in the background for as long as the
// view is open.
func RunWatchTUI(t Tracker) error {
	model := NewWatchModel(t)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	fmt.Println("👋 Watch ended. Active sessions stay recorded and resume on the next run.")
	return nil
}
