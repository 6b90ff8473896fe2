// Package graph computes recursive aggregates over the blocked-by
// dependency closure of a backlog.
package graph

import (
	"fmt"
	"strings"

	"github.com/jharding/sprintplan/internal/backlog"
)

// CycleError reports a blockedBy cycle. Path holds the ticket ids along the
// cycle, ending with the id that closed it.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency: %s", strings.Join(e.Path, " -> "))
}

// Attribute selects the ticket field being aggregated.
type Attribute func(*backlog.Ticket) float64

// BusinessValue selects a ticket's business value.
func BusinessValue(t *backlog.Ticket) float64 { return t.BusinessValue }

// StoryPoints selects a ticket's story points.
func StoryPoints(t *backlog.Ticket) float64 { return t.StoryPoints }

// Aggregator sums a ticket attribute over the ticket's transitive blockedBy
// closure. An ancestor reachable through multiple paths (a diamond) is
// counted once per path; this overcounting biases priority toward tickets
// behind shared high-value dependencies and is kept deliberately. Ids that
// resolve to no ticket contribute zero.
type Aggregator struct {
	tickets map[string]*backlog.Ticket
	memo    map[memoKey]float64 // nil when memoization is disabled
}

type memoKey struct {
	attr string
	id   string
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithoutMemoization disables the per-ticket result cache. Aggregation
// semantics are identical either way; the cache only skips recomputation.
func WithoutMemoization() Option {
	return func(a *Aggregator) {
		a.memo = nil
	}
}

// NewAggregator builds an aggregator over the given tickets.
func NewAggregator(tickets []*backlog.Ticket, opts ...Option) *Aggregator {
	a := &Aggregator{
		tickets: backlog.TicketIndex(tickets),
		memo:    make(map[memoKey]float64),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BusinessValue aggregates business value over id's dependency closure.
func (a *Aggregator) BusinessValue(id string) (float64, error) {
	return a.aggregate("value", BusinessValue, id)
}

// StoryPoints aggregates story points over id's dependency closure.
func (a *Aggregator) StoryPoints(id string) (float64, error) {
	return a.aggregate("points", StoryPoints, id)
}

func (a *Aggregator) aggregate(attrName string, attr Attribute, id string) (float64, error) {
	return a.sum(attrName, attr, id, make(map[string]bool), nil)
}

// sum walks the closure depth-first. onPath tracks the ids on the current
// recursion path so a cycle fails fast instead of recursing forever.
func (a *Aggregator) sum(attrName string, attr Attribute, id string, onPath map[string]bool, path []string) (float64, error) {
	ticket, ok := a.tickets[id]
	if !ok {
		return 0, nil
	}
	if onPath[id] {
		return 0, &CycleError{Path: append(append([]string{}, path...), id)}
	}

	if a.memo != nil {
		if total, ok := a.memo[memoKey{attrName, id}]; ok {
			return total, nil
		}
	}

	onPath[id] = true
	path = append(path, id)

	total := attr(ticket)
	for _, dep := range ticket.BlockedBy {
		sub, err := a.sum(attrName, attr, dep, onPath, path)
		if err != nil {
			return 0, err
		}
		total += sub
	}

	delete(onPath, id)

	if a.memo != nil {
		a.memo[memoKey{attrName, id}] = total
	}
	return total, nil
}
