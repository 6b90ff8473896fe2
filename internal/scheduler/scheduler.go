// Package scheduler simulates sprint-by-sprint assignment of a plan-ordered
// backlog onto capacity-constrained teams.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/jharding/sprintplan/internal/backlog"
)

// DefaultMaxIterations bounds the simulation loop as a safety net. The
// algorithm terminates on its own for any schedulable input; the budget only
// guards against inputs the progress check somehow misses.
const DefaultMaxIterations = 1_000_000

// UnschedulableError reports tickets that can never complete: no roster team
// is eligible, or a blocker can itself never complete.
type UnschedulableError struct {
	TicketIDs []string
}

func (e *UnschedulableError) Error() string {
	return fmt.Sprintf("unschedulable tickets: %s", strings.Join(e.TicketIDs, ", "))
}

// Schedule is the result of one simulation run. Completion maps ticket id to
// the 0-based sprint in which the ticket finishes (inclusive); presence in
// the map is the authoritative "done" signal. Sprints is the length of the
// longest team timeline.
type Schedule struct {
	Teams      []*backlog.Team
	Completion map[string]int
	Sprints    int
}

// Scheduler owns the simulation state for one run.
type Scheduler struct {
	teams         []*backlog.Team
	logger        *slog.Logger
	maxIterations int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for per-iteration progress logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxIterations overrides the iteration safety budget. Zero or negative
// restores the default.
func WithMaxIterations(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

// New creates a Scheduler over the given teams. The team slice and the
// timelines inside it are mutated by Run.
func New(teams []*backlog.Team, opts ...Option) *Scheduler {
	s := &Scheduler{
		teams:         teams,
		logger:        slog.Default(),
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SprintsNeeded returns how many sprints a team needs for the ticket.
func SprintsNeeded(ticket *backlog.Ticket, team *backlog.Team) int {
	return int(math.Ceil(ticket.StoryPoints / team.Velocity))
}

// Run executes the greedy simulation over the plan-ordered tickets.
//
// Each iteration the current team scans the plan for its first eligible
// ticket: not yet complete, workable by the team, and with every blocker
// completing strictly before the team's next available sprint. A hit
// occupies ceil(storyPoints/velocity) consecutive sprints and hands the
// choice of next team back to the allocator over all teams. A miss stalls
// the team exactly one sprint and the allocator picks among the other teams,
// giving blockers one more sprint to resolve. Assignments are never
// reconsidered.
//
// When a full round of consecutive stalls crosses every team without a
// completion, Run checks whether the remaining tickets can ever complete and
// returns an UnschedulableError naming the stuck ones instead of looping.
func (s *Scheduler) Run(ctx context.Context, plan []*backlog.Ticket) (*Schedule, error) {
	if len(s.teams) == 0 {
		return nil, fmt.Errorf("no teams to schedule onto")
	}

	next := make(map[string]int, len(s.teams))
	completion := make(map[string]int, len(plan))
	current := s.teams[0]
	consecutiveStalls := 0

	for iter := 0; len(completion) < len(plan); iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if iter >= s.maxIterations {
			return nil, fmt.Errorf("no schedule after %d iterations", s.maxIterations)
		}

		start := next[current.ID]
		ticket := s.firstEligible(plan, current, start, completion)

		if ticket == nil {
			// One-sprint stall: bounded impatience, lets other teams
			// catch up before this one retries.
			next[current.ID] = start + 1
			consecutiveStalls++
			s.logger.Debug("team stalled",
				"team_id", current.ID,
				"next_sprint", next[current.ID])

			if consecutiveStalls >= len(s.teams) {
				if stuck := s.findStuck(plan, completion); len(stuck) > 0 {
					return nil, &UnschedulableError{TicketIDs: stuck}
				}
			}

			current = PickNextTeam(s.exclude(current), next)
			if current == nil {
				// Single-team run: keep stalling the only team.
				current = s.teams[0]
			}
			continue
		}

		sprints := SprintsNeeded(ticket, current)
		current.Occupy(ticket.ID, start, sprints)
		next[current.ID] = start + sprints
		completion[ticket.ID] = start + sprints - 1
		consecutiveStalls = 0
		s.logger.Info("ticket assigned",
			"ticket_id", ticket.ID,
			"team_id", current.ID,
			"start_sprint", start,
			"sprints", sprints)

		current = PickNextTeam(s.teams, next)
	}

	return &Schedule{
		Teams:      s.teams,
		Completion: completion,
		Sprints:    s.maxTimeline(),
	}, nil
}

// firstEligible returns the first plan ticket the team can start at the
// given sprint, or nil.
func (s *Scheduler) firstEligible(plan []*backlog.Ticket, team *backlog.Team, start int, completion map[string]int) *backlog.Ticket {
	for _, ticket := range plan {
		if _, done := completion[ticket.ID]; done {
			continue
		}
		if !ticket.EligibleFor(team.ID) {
			continue
		}
		if blockersResolved(ticket, start, completion) {
			return ticket
		}
	}
	return nil
}

// blockersResolved reports whether every blocker completed strictly before
// the candidate start sprint. A blocker id with no completion entry (still
// pending, or not a known ticket at all) never resolves.
func blockersResolved(ticket *backlog.Ticket, start int, completion map[string]int) bool {
	for _, dep := range ticket.BlockedBy {
		done, ok := completion[dep]
		if !ok || done >= start {
			return false
		}
	}
	return true
}

// findStuck computes which pending tickets can never complete, no matter how
// far simulated time advances. Blocked-only-by-time tickets are not stuck:
// the eligibility window only widens as teams stall forward. A ticket is
// stuck when no roster team may work it or when a blocker is (transitively)
// stuck or unknown. Returned ids are sorted for stable diagnostics.
func (s *Scheduler) findStuck(plan []*backlog.Ticket, completion map[string]int) []string {
	reachable := make(map[string]bool, len(plan)+len(completion))
	for id := range completion {
		reachable[id] = true
	}

	workable := func(t *backlog.Ticket) bool {
		for _, team := range s.teams {
			if t.EligibleFor(team.ID) {
				return true
			}
		}
		return false
	}

	for changed := true; changed; {
		changed = false
		for _, t := range plan {
			if reachable[t.ID] || !workable(t) {
				continue
			}
			ok := true
			for _, dep := range t.BlockedBy {
				if !reachable[dep] {
					ok = false
					break
				}
			}
			if ok {
				reachable[t.ID] = true
				changed = true
			}
		}
	}

	var stuck []string
	for _, t := range plan {
		if !reachable[t.ID] {
			stuck = append(stuck, t.ID)
		}
	}
	sort.Strings(stuck)
	return stuck
}

// exclude returns all teams except the given one.
func (s *Scheduler) exclude(team *backlog.Team) []*backlog.Team {
	others := make([]*backlog.Team, 0, len(s.teams)-1)
	for _, t := range s.teams {
		if t != team {
			others = append(others, t)
		}
	}
	return others
}

func (s *Scheduler) maxTimeline() int {
	max := 0
	for _, t := range s.teams {
		if len(t.Timeline) > max {
			max = len(t.Timeline)
		}
	}
	return max
}
