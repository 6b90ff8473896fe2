package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the schedule browser.
var styles = struct {
	Title  lipgloss.Style
	Footer lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),
}
