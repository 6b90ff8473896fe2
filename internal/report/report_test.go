package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jharding/sprintplan/internal/backlog"
	"github.com/jharding/sprintplan/internal/scheduler"
	"github.com/jharding/sprintplan/internal/testutil"
)

// fixedSchedule builds a small finished schedule by hand:
// alpha works A (sprints 0-1) then B (sprint 2); beta works C (sprint 0).
func fixedSchedule() (*scheduler.Schedule, []*backlog.Ticket) {
	alpha := testutil.Team("alpha", 5)
	alpha.Occupy("A", 0, 2)
	alpha.Occupy("B", 2, 1)
	beta := testutil.Team("beta", 5)
	beta.Occupy("C", 0, 1)

	schedule := &scheduler.Schedule{
		Teams:      []*backlog.Team{alpha, beta},
		Completion: map[string]int{"A": 1, "B": 2, "C": 0},
		Sprints:    3,
	}
	tickets := []*backlog.Ticket{
		testutil.Ticket("A", 1, 1, nil, nil),
		testutil.Ticket("B", 1, 1, nil, nil),
		testutil.Ticket("C", 1, 1, nil, nil),
	}
	return schedule, tickets
}

func TestBuildMatrix(t *testing.T) {
	schedule, tickets := fixedSchedule()
	m := BuildMatrix(schedule, tickets)

	if m.Sprints != 3 {
		t.Errorf("Sprints = %d, want 3", m.Sprints)
	}
	if len(m.Rows) != 3 {
		t.Fatalf("rows = %d, want 3 (one per ticket, even multi-sprint ones)", len(m.Rows))
	}

	a := m.Rows[0]
	if a.TeamName != "Team alpha" || a.TicketID != "A" || a.TicketTitle != "Ticket A" {
		t.Errorf("row 0 = %+v, want team alpha ticket A", a)
	}
	wantCells := []bool{true, true, false}
	for i, want := range wantCells {
		if a.Cells[i] != want {
			t.Errorf("row A cell %d = %v, want %v", i, a.Cells[i], want)
		}
	}

	// beta's single-sprint ticket is padded out to the global column count.
	c := m.Rows[2]
	if c.TeamName != "Team beta" || c.TicketID != "C" {
		t.Errorf("row 2 = %+v, want team beta ticket C", c)
	}
	if len(c.Cells) != 3 {
		t.Errorf("row C has %d cells, want 3", len(c.Cells))
	}
	if !c.Cells[0] || c.Cells[1] || c.Cells[2] {
		t.Errorf("row C cells = %v, want [true false false]", c.Cells)
	}
}

func TestRender_ContainsMarkersAndHeaders(t *testing.T) {
	schedule, tickets := fixedSchedule()
	out := Render(BuildMatrix(schedule, tickets), "X")

	for _, want := range []string{"Team", "Ticket", "S0", "S1", "S2", "Team alpha", "Ticket B", "X"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("rendered %d lines, want header + 3 rows", len(lines))
	}
}

func TestWriteMatrixCSV(t *testing.T) {
	schedule, tickets := fixedSchedule()

	var buf bytes.Buffer
	if err := WriteMatrixCSV(&buf, BuildMatrix(schedule, tickets), "X"); err != nil {
		t.Fatalf("WriteMatrixCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if lines[0] != "team,ticket,title,S0,S1,S2" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "Team alpha,A,Ticket A,X,X," {
		t.Errorf("row A = %q", lines[1])
	}
	if lines[3] != "Team beta,C,Ticket C,X,," {
		t.Errorf("row C = %q", lines[3])
	}
}

func TestWritePlanOrderCSV(t *testing.T) {
	plan := []*backlog.Ticket{
		testutil.Ticket("A", 1, 1, nil, nil),
		testutil.Ticket("B", 1, 1, nil, nil),
	}

	var buf bytes.Buffer
	if err := WritePlanOrderCSV(&buf, plan); err != nil {
		t.Fatalf("WritePlanOrderCSV: %v", err)
	}

	want := "id,title\nA,Ticket A\nB,Ticket B\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestBuildMatrix_EmptySchedule(t *testing.T) {
	schedule := &scheduler.Schedule{
		Teams:      []*backlog.Team{testutil.Team("alpha", 5)},
		Completion: map[string]int{},
	}
	m := BuildMatrix(schedule, nil)
	if len(m.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(m.Rows))
	}
}
