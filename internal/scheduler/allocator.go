package scheduler

import "github.com/jharding/sprintplan/internal/backlog"

// PickNextTeam selects which team should attempt the next assignment: the
// team whose next available sprint is earliest, ties broken by fewest filled
// timeline slots (favoring under-utilized teams), further ties by input
// order. Pure function; teams missing from next are treated as available at
// sprint 0. Returns nil for an empty candidate list.
func PickNextTeam(candidates []*backlog.Team, next map[string]int) *backlog.Team {
	var best *backlog.Team
	for _, team := range candidates {
		if best == nil {
			best = team
			continue
		}
		switch {
		case next[team.ID] < next[best.ID]:
			best = team
		case next[team.ID] == next[best.ID] && team.FilledSlots() < best.FilledSlots():
			best = team
		}
	}
	return best
}
