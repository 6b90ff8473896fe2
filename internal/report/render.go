package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultMarker fills occupied cells in rendered output.
const DefaultMarker = "X"

// styles for the terminal table.
var styles = struct {
	Header lipgloss.Style
	Team   lipgloss.Style
	Ticket lipgloss.Style
	Marker lipgloss.Style
	Empty  lipgloss.Style
}{
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")),

	Team: lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")),

	Ticket: lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")),

	Marker: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("114")),

	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),
}

// Render formats the matrix as an aligned terminal table with one column
// per sprint.
func Render(m Matrix, marker string) string {
	if marker == "" {
		marker = DefaultMarker
	}

	teamWidth := lipgloss.Width("Team")
	ticketWidth := lipgloss.Width("Ticket")
	titleWidth := lipgloss.Width("Title")
	for _, row := range m.Rows {
		teamWidth = max(teamWidth, lipgloss.Width(row.TeamName))
		ticketWidth = max(ticketWidth, lipgloss.Width(row.TicketID))
		titleWidth = max(titleWidth, lipgloss.Width(row.TicketTitle))
	}
	cellWidth := max(lipgloss.Width(marker), lipgloss.Width(sprintLabel(m.Sprints-1)))

	var b strings.Builder
	writeCell := func(s string, width int, style lipgloss.Style) {
		b.WriteString(style.Render(pad(s, width)))
		b.WriteString("  ")
	}

	writeCell("Team", teamWidth, styles.Header)
	writeCell("Ticket", ticketWidth, styles.Header)
	writeCell("Title", titleWidth, styles.Header)
	for sprint := 0; sprint < m.Sprints; sprint++ {
		writeCell(sprintLabel(sprint), cellWidth, styles.Header)
	}
	b.WriteString("\n")

	for _, row := range m.Rows {
		writeCell(row.TeamName, teamWidth, styles.Team)
		writeCell(row.TicketID, ticketWidth, styles.Ticket)
		writeCell(row.TicketTitle, titleWidth, styles.Ticket)
		for sprint := 0; sprint < m.Sprints; sprint++ {
			if sprint < len(row.Cells) && row.Cells[sprint] {
				writeCell(marker, cellWidth, styles.Marker)
			} else {
				writeCell("·", cellWidth, styles.Empty)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sprintLabel(sprint int) string {
	if sprint < 0 {
		return "S0"
	}
	return fmt.Sprintf("S%d", sprint)
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
