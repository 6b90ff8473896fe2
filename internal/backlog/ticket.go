// Package backlog defines the ticket and team records the planner operates
// on, plus the readers that load them from disk.
package backlog

// Ticket is a unit of work with effort, value, dependencies, and the set of
// teams allowed to work it.
type Ticket struct {
	ID            string
	Title         string
	BlockedBy     []string // ticket ids that must complete first
	BusinessValue float64
	StoryPoints   float64
	PotentialTeam []string // team ids eligible to work this ticket
}

// EligibleFor reports whether the given team id may work this ticket.
func (t *Ticket) EligibleFor(teamID string) bool {
	for _, id := range t.PotentialTeam {
		if id == teamID {
			return true
		}
	}
	return false
}

// Team is a capacity-bounded worker. Velocity is story points completable
// per sprint. Timeline holds one ticket id per sprint slot; an empty string
// means the slot is unoccupied. The timeline is mutated only by the
// scheduler.
type Team struct {
	ID       string
	Name     string
	Velocity float64
	Timeline []string
}

// FilledSlots returns the number of occupied sprint slots, i.e. the team's
// cumulative committed work.
func (t *Team) FilledSlots() int {
	n := 0
	for _, slot := range t.Timeline {
		if slot != "" {
			n++
		}
	}
	return n
}

// Occupy fills sprints consecutive slots starting at start with the ticket
// id, growing the timeline with empty slots as needed.
func (t *Team) Occupy(ticketID string, start, sprints int) {
	for len(t.Timeline) < start+sprints {
		t.Timeline = append(t.Timeline, "")
	}
	for i := start; i < start+sprints; i++ {
		t.Timeline[i] = ticketID
	}
}

// TicketIndex builds an id lookup over the given tickets.
func TicketIndex(tickets []*Ticket) map[string]*Ticket {
	idx := make(map[string]*Ticket, len(tickets))
	for _, t := range tickets {
		idx[t.ID] = t
	}
	return idx
}
