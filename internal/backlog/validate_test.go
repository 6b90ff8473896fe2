package backlog

import (
	"strings"
	"testing"
)

func ticket(id string, blockedBy, potentialTeam []string) *Ticket {
	return &Ticket{ID: id, BlockedBy: blockedBy, PotentialTeam: potentialTeam, BusinessValue: 1, StoryPoints: 1}
}

func team(id string) *Team {
	return &Team{ID: id, Name: id, Velocity: 1}
}

func TestValidate_Clean(t *testing.T) {
	tickets := []*Ticket{
		ticket("T1", nil, []string{"alpha"}),
		ticket("T2", []string{"T1"}, []string{"alpha"}),
	}
	warnings, err := Validate(tickets, []*Team{team("alpha")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestValidate_DuplicateTicketID(t *testing.T) {
	tickets := []*Ticket{
		ticket("T1", nil, []string{"alpha"}),
		ticket("T1", nil, []string{"alpha"}),
	}
	if _, err := Validate(tickets, []*Team{team("alpha")}); err == nil {
		t.Fatal("expected error for duplicate ticket id")
	}
}

func TestValidate_Warnings(t *testing.T) {
	tests := []struct {
		name    string
		tickets []*Ticket
		substr  string
	}{
		{
			name:    "unknown blocker",
			tickets: []*Ticket{ticket("T1", []string{"ghost"}, []string{"alpha"})},
			substr:  "unknown ticket",
		},
		{
			name:    "empty potential team",
			tickets: []*Ticket{ticket("T1", nil, nil)},
			substr:  "no potential team",
		},
		{
			name:    "unknown team id",
			tickets: []*Ticket{ticket("T1", nil, []string{"ghost"})},
			substr:  "unknown team",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings, err := Validate(tt.tickets, []*Team{team("alpha")})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(warnings) == 0 {
				t.Fatal("expected warnings, got none")
			}
			found := false
			for _, w := range warnings {
				if strings.Contains(w.Message, tt.substr) {
					found = true
				}
				if w.TicketID != "T1" {
					t.Errorf("warning names %q, want T1", w.TicketID)
				}
			}
			if !found {
				t.Errorf("no warning contains %q: %v", tt.substr, warnings)
			}
		})
	}
}

func TestValidate_UnknownTeamAmongKnown(t *testing.T) {
	// One resolvable team keeps the ticket schedulable; only the dangling
	// id is flagged.
	tickets := []*Ticket{ticket("T1", nil, []string{"ghost", "alpha"})}
	warnings, err := Validate(tickets, []*Team{team("alpha")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if !strings.Contains(warnings[0].Message, `unknown team "ghost"`) {
		t.Errorf("warning = %v, want unknown team ghost", warnings[0])
	}
}
