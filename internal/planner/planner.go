// Package planner orders a backlog by aggregated value density and
// linearizes the result so every ticket follows its transitive blockers.
package planner

import (
	"math"
	"sort"

	"github.com/jharding/sprintplan/internal/backlog"
	"github.com/jharding/sprintplan/internal/graph"
)

// Ranked pairs a ticket with its aggregated value/effort ratio.
type Ranked struct {
	Ticket *backlog.Ticket
	Ratio  float64
}

// Rank computes each ticket's priority ratio: aggregated business value over
// aggregated story points, both summed over the ticket's dependency closure.
// A zero-effort closure yields +Inf, i.e. highest possible priority. Input
// order is preserved.
func Rank(tickets []*backlog.Ticket, agg *graph.Aggregator) ([]Ranked, error) {
	ranked := make([]Ranked, 0, len(tickets))
	for _, t := range tickets {
		value, err := agg.BusinessValue(t.ID)
		if err != nil {
			return nil, err
		}
		points, err := agg.StoryPoints(t.ID)
		if err != nil {
			return nil, err
		}

		ratio := math.Inf(1)
		if points > 0 {
			ratio = value / points
		}
		ranked = append(ranked, Ranked{Ticket: t, Ratio: ratio})
	}
	return ranked, nil
}

// Order produces the plan order: tickets sorted by descending ratio (stable,
// so ties keep input order), then linearized so every ticket appears after
// all tickets that transitively block it. Every input ticket appears exactly
// once. Blocker ids that resolve to no ticket are skipped.
func Order(tickets []*backlog.Ticket, agg *graph.Aggregator) ([]*backlog.Ticket, error) {
	ranked, err := Rank(tickets, agg)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Ratio > ranked[j].Ratio
	})

	index := backlog.TicketIndex(tickets)
	seen := make(map[string]bool, len(tickets))
	plan := make([]*backlog.Ticket, 0, len(tickets))

	var visit func(t *backlog.Ticket)
	visit = func(t *backlog.Ticket) {
		if seen[t.ID] {
			return
		}
		seen[t.ID] = true
		for _, dep := range t.BlockedBy {
			if blocker, ok := index[dep]; ok {
				visit(blocker)
			}
		}
		plan = append(plan, t)
	}

	for _, r := range ranked {
		visit(r.Ticket)
	}
	return plan, nil
}
