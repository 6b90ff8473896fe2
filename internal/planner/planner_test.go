package planner

import (
	"math"
	"testing"

	"github.com/jharding/sprintplan/internal/backlog"
	"github.com/jharding/sprintplan/internal/graph"
	"github.com/jharding/sprintplan/internal/testutil"
)

func order(t *testing.T, tickets []*backlog.Ticket) []*backlog.Ticket {
	t.Helper()
	plan, err := Order(tickets, graph.NewAggregator(tickets))
	if err != nil {
		t.Fatalf("Order: %v", err)
	}
	return plan
}

func ids(tickets []*backlog.Ticket) []string {
	out := make([]string, len(tickets))
	for i, tk := range tickets {
		out[i] = tk.ID
	}
	return out
}

func TestOrder_NoDependenciesSortsByRatio(t *testing.T) {
	tickets := []*backlog.Ticket{
		testutil.Ticket("low", 10, 10, nil, nil),   // ratio 1
		testutil.Ticket("high", 100, 10, nil, nil), // ratio 10
		testutil.Ticket("mid", 50, 10, nil, nil),   // ratio 5
	}

	plan := order(t, tickets)
	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if plan[i].ID != id {
			t.Errorf("plan[%d] = %s, want %s (full order %v)", i, plan[i].ID, id, ids(plan))
		}
	}
}

func TestOrder_TiesKeepInputOrder(t *testing.T) {
	tickets := []*backlog.Ticket{
		testutil.Ticket("first", 10, 5, nil, nil),
		testutil.Ticket("second", 20, 10, nil, nil), // same ratio 2
		testutil.Ticket("third", 4, 2, nil, nil),    // same ratio 2
	}

	plan := order(t, tickets)
	want := []string{"first", "second", "third"}
	for i, id := range want {
		if plan[i].ID != id {
			t.Errorf("plan[%d] = %s, want %s", i, plan[i].ID, id)
		}
	}
}

func TestOrder_ZeroEffortSortsFirst(t *testing.T) {
	tickets := []*backlog.Ticket{
		testutil.Ticket("big", 1000, 1, nil, nil),
		testutil.Ticket("free", 5, 0, nil, nil),
	}

	plan := order(t, tickets)
	if plan[0].ID != "free" {
		t.Errorf("plan[0] = %s, want free (zero aggregated effort is highest priority)", plan[0].ID)
	}
}

func TestOrder_BlockersPrecedeDependents(t *testing.T) {
	// C has the best ratio but depends on A and B; linearization must hoist
	// both blockers ahead of it.
	tickets := []*backlog.Ticket{
		testutil.Ticket("A", 1, 10, nil, nil),
		testutil.Ticket("B", 1, 10, []string{"A"}, nil),
		testutil.Ticket("C", 500, 1, []string{"B"}, nil),
		testutil.Ticket("D", 30, 10, nil, nil),
	}

	plan := order(t, tickets)
	pos := make(map[string]int, len(plan))
	for i, tk := range plan {
		pos[tk.ID] = i
	}

	if len(plan) != 4 {
		t.Fatalf("plan has %d tickets, want 4", len(plan))
	}
	if pos["A"] > pos["B"] || pos["B"] > pos["C"] {
		t.Errorf("dependency order violated: %v", ids(plan))
	}
	// C's chain is pulled ahead of the otherwise better-ranked standalone D.
	if pos["C"] > pos["D"] {
		t.Errorf("expected C's chain before D, got %v", ids(plan))
	}
}

func TestOrder_EveryTicketExactlyOnce(t *testing.T) {
	tickets := []*backlog.Ticket{
		testutil.Ticket("A", 10, 4, nil, nil),
		testutil.Ticket("B", 1, 1, []string{"A"}, nil),
		testutil.Ticket("C", 2, 1, []string{"A"}, nil),
		testutil.Ticket("D", 3, 1, []string{"B", "C"}, nil),
	}

	plan := order(t, tickets)
	if len(plan) != len(tickets) {
		t.Fatalf("plan has %d tickets, want %d", len(plan), len(tickets))
	}
	seen := make(map[string]int)
	for _, tk := range plan {
		seen[tk.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("ticket %s appears %d times", id, n)
		}
	}
}

func TestOrder_Idempotent(t *testing.T) {
	tickets := []*backlog.Ticket{
		testutil.Ticket("A", 10, 4, nil, nil),
		testutil.Ticket("B", 90, 3, []string{"A"}, nil),
		testutil.Ticket("C", 2, 1, nil, nil),
	}

	first := order(t, tickets)
	second := order(t, first)

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("re-ordering changed the plan: %v vs %v", ids(first), ids(second))
		}
	}
}

func TestOrder_UnknownBlockerSkipped(t *testing.T) {
	tickets := []*backlog.Ticket{
		testutil.Ticket("A", 10, 5, []string{"ghost"}, nil),
	}

	plan := order(t, tickets)
	if len(plan) != 1 || plan[0].ID != "A" {
		t.Errorf("plan = %v, want [A]", ids(plan))
	}
}

func TestOrder_CyclePropagates(t *testing.T) {
	tickets := []*backlog.Ticket{
		testutil.Ticket("A", 1, 1, []string{"B"}, nil),
		testutil.Ticket("B", 1, 1, []string{"A"}, nil),
	}

	if _, err := Order(tickets, graph.NewAggregator(tickets)); err == nil {
		t.Fatal("expected cycle error, got nil")
	}
}

func TestRank_Ratios(t *testing.T) {
	tickets := []*backlog.Ticket{
		testutil.Ticket("A", 100, 10, nil, nil),
		testutil.Ticket("B", 10, 5, []string{"A"}, nil),
		testutil.Ticket("Z", 5, 0, nil, nil),
	}

	ranked, err := Rank(tickets, graph.NewAggregator(tickets))
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	if ranked[0].Ratio != 10 {
		t.Errorf("Ratio(A) = %v, want 10", ranked[0].Ratio)
	}
	// B aggregates its blocker: (10+100)/(5+10)
	if want := 110.0 / 15.0; ranked[1].Ratio != want {
		t.Errorf("Ratio(B) = %v, want %v", ranked[1].Ratio, want)
	}
	if !math.IsInf(ranked[2].Ratio, 1) {
		t.Errorf("Ratio(Z) = %v, want +Inf", ranked[2].Ratio)
	}
}
