// Package report renders a finished schedule as a per-team sprint occupancy
// matrix, for terminal display and CSV export.
package report

import (
	"github.com/jharding/sprintplan/internal/backlog"
	"github.com/jharding/sprintplan/internal/scheduler"
)

// Row is one (team, ticket) pair with per-sprint occupancy cells.
type Row struct {
	TeamName    string
	TicketID    string
	TicketTitle string
	Cells       []bool // one per sprint column
}

// Matrix is the tabular schedule view. Every ticket that appears in any
// team's timeline contributes exactly one row, even when it spans several
// consecutive sprint columns; columns run 0..Sprints-1 across all teams,
// short timelines padded with empty cells.
type Matrix struct {
	Rows    []Row
	Sprints int
}

// BuildMatrix assembles the matrix from a finished schedule. Titles are
// looked up in the given tickets; rows follow team order, then order of
// first appearance in each team's timeline.
func BuildMatrix(s *scheduler.Schedule, tickets []*backlog.Ticket) Matrix {
	titles := make(map[string]string, len(tickets))
	for _, t := range tickets {
		titles[t.ID] = t.Title
	}

	m := Matrix{Sprints: s.Sprints}
	for _, team := range s.Teams {
		rowFor := make(map[string]int)
		for sprint, ticketID := range team.Timeline {
			if ticketID == "" {
				continue
			}
			idx, ok := rowFor[ticketID]
			if !ok {
				idx = len(m.Rows)
				rowFor[ticketID] = idx
				m.Rows = append(m.Rows, Row{
					TeamName:    team.Name,
					TicketID:    ticketID,
					TicketTitle: titles[ticketID],
					Cells:       make([]bool, s.Sprints),
				})
			}
			m.Rows[idx].Cells[sprint] = true
		}
	}
	return m
}
