// Package tui provides a read-only terminal browser for a finished sprint
// schedule using bubbletea.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jharding/sprintplan/internal/report"
)

// Run starts the schedule browser over the given matrix and blocks until
// the user quits.
func Run(m report.Matrix, marker string) error {
	p := tea.NewProgram(newModel(m, marker), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
