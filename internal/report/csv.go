package report

import (
	"encoding/csv"
	"io"

	"github.com/jharding/sprintplan/internal/backlog"
)

// WriteMatrixCSV writes the schedule matrix as CSV: one row per (team,
// ticket) pair, columns team,ticket,title,s0..sN, occupied cells holding the
// marker and empty cells the empty string.
func WriteMatrixCSV(w io.Writer, m Matrix, marker string) error {
	if marker == "" {
		marker = DefaultMarker
	}

	cw := csv.NewWriter(w)
	header := []string{"team", "ticket", "title"}
	for sprint := 0; sprint < m.Sprints; sprint++ {
		header = append(header, sprintLabel(sprint))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range m.Rows {
		record := []string{row.TeamName, row.TicketID, row.TicketTitle}
		for sprint := 0; sprint < m.Sprints; sprint++ {
			if sprint < len(row.Cells) && row.Cells[sprint] {
				record = append(record, marker)
			} else {
				record = append(record, "")
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePlanOrderCSV writes the dependency-respecting priority order as
// id,title rows.
func WritePlanOrderCSV(w io.Writer, plan []*backlog.Ticket) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title"}); err != nil {
		return err
	}
	for _, t := range plan {
		if err := cw.Write([]string{t.ID, t.Title}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
