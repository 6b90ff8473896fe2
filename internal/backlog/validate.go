package backlog

import (
	"fmt"
	"log/slog"
)

// Warning flags a reference problem that does not stop loading but will make
// the flagged ticket unschedulable.
type Warning struct {
	TicketID string
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.TicketID, w.Message)
}

// Validate cross-checks ticket and team references. Duplicate ticket ids are
// an error; dangling blockedBy ids, unknown potentialTeam ids, and empty
// potentialTeam sets are returned as warnings. A dangling blocker contributes
// zero to aggregation and never completes, so the ticket that names it can
// never be scheduled; the warning exists so the eventual failure is
// explained up front.
func Validate(tickets []*Ticket, teams []*Team) ([]Warning, error) {
	ticketIDs := make(map[string]bool, len(tickets))
	for _, t := range tickets {
		if ticketIDs[t.ID] {
			return nil, fmt.Errorf("duplicate ticket id %q", t.ID)
		}
		ticketIDs[t.ID] = true
	}

	teamIDs := make(map[string]bool, len(teams))
	for _, tm := range teams {
		teamIDs[tm.ID] = true
	}

	var warnings []Warning
	for _, t := range tickets {
		for _, dep := range t.BlockedBy {
			if !ticketIDs[dep] {
				warnings = append(warnings, Warning{
					TicketID: t.ID,
					Message:  fmt.Sprintf("blockedBy references unknown ticket %q", dep),
				})
			}
		}
		if len(t.PotentialTeam) == 0 {
			warnings = append(warnings, Warning{
				TicketID: t.ID,
				Message:  "no potential team: ticket can never be scheduled",
			})
			continue
		}
		known := false
		for _, id := range t.PotentialTeam {
			if teamIDs[id] {
				known = true
			} else {
				warnings = append(warnings, Warning{
					TicketID: t.ID,
					Message:  fmt.Sprintf("potentialTeam references unknown team %q", id),
				})
			}
		}
		if !known {
			warnings = append(warnings, Warning{
				TicketID: t.ID,
				Message:  "no potential team exists in the roster: ticket can never be scheduled",
			})
		}
	}
	return warnings, nil
}

// LogWarnings emits each warning through the logger at warn level.
func LogWarnings(logger *slog.Logger, warnings []Warning) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, w := range warnings {
		logger.Warn("backlog reference problem", "ticket_id", w.TicketID, "problem", w.Message)
	}
}
