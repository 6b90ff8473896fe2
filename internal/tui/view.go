package tui

import (
	"fmt"
	"strings"
)

// chromeHeight is the number of lines used by the title and footer around
// the viewport.
const chromeHeight = 2

// View implements tea.Model.
func (m model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(fmt.Sprintf("Sprint schedule: %d sprints, %d assignments", m.matrix.Sprints, len(m.matrix.Rows))))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(styles.Footer.Render("↑/↓ scroll · q quit"))
	return b.String()
}
