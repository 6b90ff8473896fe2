package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jharding/sprintplan/internal/report"
)

// keyMap defines the browser key bindings.
type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// model is the bubbletea model for the schedule browser.
type model struct {
	matrix   report.Matrix
	marker   string
	viewport viewport.Model
	keys     keyMap

	width  int
	height int
	ready  bool
}

func newModel(m report.Matrix, marker string) model {
	return model{
		matrix: m,
		marker: marker,
		keys:   keys,
	}
}
