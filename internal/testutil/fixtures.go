package testutil

import "github.com/jharding/sprintplan/internal/backlog"

// Ticket builds a test ticket. blockedBy and potentialTeam may be nil.
func Ticket(id string, value, points float64, blockedBy, potentialTeam []string) *backlog.Ticket {
	return &backlog.Ticket{
		ID:            id,
		Title:         "Ticket " + id,
		BlockedBy:     blockedBy,
		BusinessValue: value,
		StoryPoints:   points,
		PotentialTeam: potentialTeam,
	}
}

// Team builds a test team with an empty timeline.
func Team(id string, velocity float64) *backlog.Team {
	return &backlog.Team{
		ID:       id,
		Name:     "Team " + id,
		Velocity: velocity,
	}
}

// SampleBacklogCSV is a small well-formed backlog file.
const SampleBacklogCSV = `id,title,blockedBy,businessValue,storyPoints,potentialTeam
T1,Set up database,,100,10,alpha
T2,Build API,T1,50,5,alpha-beta
T3,Build UI,T2,80,8,beta
`

// SampleRosterYAML is a matching two-team roster.
const SampleRosterYAML = `teams:
  - id: alpha
    name: Alpha
    velocity: 5
  - id: beta
    name: Beta
    velocity: 4
`

// SampleRosterJSON is the same roster in JSON form.
const SampleRosterJSON = `{
  "teams": [
    {"id": "alpha", "name": "Alpha", "velocity": 5},
    {"id": "beta", "name": "Beta", "velocity": 4}
  ]
}`
