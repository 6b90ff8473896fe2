package backlog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// rosterFile is the on-disk shape of a team roster.
type rosterFile struct {
	Teams []teamSpec `yaml:"teams" json:"teams"`
}

type teamSpec struct {
	ID       string  `yaml:"id" json:"id"`
	Name     string  `yaml:"name" json:"name"`
	Velocity float64 `yaml:"velocity" json:"velocity"`
}

// ReadRoster loads teams from a roster file. Files ending in .json are
// decoded as JSON, everything else as YAML. Each team starts with an empty
// sprint timeline.
func ReadRoster(path string) ([]*Team, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer func() { _ = file.Close() }()

	var teams []*Team
	if strings.EqualFold(filepath.Ext(path), ".json") {
		teams, err = ParseRosterJSON(file)
	} else {
		teams, err = ParseRosterYAML(file)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return teams, nil
}

// ParseRosterYAML decodes a YAML roster. Unknown fields are rejected.
func ParseRosterYAML(r io.Reader) ([]*Team, error) {
	var rf rosterFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rf); err != nil {
		return nil, err
	}
	return buildTeams(rf)
}

// ParseRosterJSON decodes a JSON roster.
func ParseRosterJSON(r io.Reader) ([]*Team, error) {
	var rf rosterFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rf); err != nil {
		return nil, err
	}
	return buildTeams(rf)
}

func buildTeams(rf rosterFile) ([]*Team, error) {
	if len(rf.Teams) == 0 {
		return nil, fmt.Errorf("roster defines no teams")
	}

	seen := make(map[string]bool, len(rf.Teams))
	teams := make([]*Team, 0, len(rf.Teams))
	for i, spec := range rf.Teams {
		if spec.ID == "" {
			return nil, fmt.Errorf("team %d: empty id", i+1)
		}
		if seen[spec.ID] {
			return nil, fmt.Errorf("duplicate team id %q", spec.ID)
		}
		seen[spec.ID] = true
		if spec.Velocity <= 0 {
			return nil, fmt.Errorf("team %q: velocity must be positive, got %v", spec.ID, spec.Velocity)
		}

		name := spec.Name
		if name == "" {
			name = spec.ID
		}
		teams = append(teams, &Team{ID: spec.ID, Name: name, Velocity: spec.Velocity})
	}
	return teams, nil
}
