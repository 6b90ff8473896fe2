package backlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// backlogColumns is the required header of a backlog CSV file.
var backlogColumns = []string{"id", "title", "blockedBy", "businessValue", "storyPoints", "potentialTeam"}

// ReadBacklog loads tickets from a backlog CSV file.
func ReadBacklog(path string) ([]*Ticket, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open backlog: %w", err)
	}
	defer func() { _ = file.Close() }()

	tickets, err := ParseBacklog(file)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tickets, nil
}

// ParseBacklog reads backlog CSV from r. The first record must be the header
// id,title,blockedBy,businessValue,storyPoints,potentialTeam. The blockedBy
// and potentialTeam columns are hyphen-joined id lists; an empty string is an
// empty list.
func ParseBacklog(r io.Reader) ([]*Ticket, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(backlogColumns)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty backlog file")
	}
	if err != nil {
		return nil, err
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var tickets []*Ticket
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		ticket, err := parseTicket(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func checkHeader(header []string) error {
	for i, want := range backlogColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("bad header column %d: got %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func parseTicket(record []string) (*Ticket, error) {
	id := strings.TrimSpace(record[0])
	if id == "" {
		return nil, fmt.Errorf("empty ticket id")
	}

	value, err := parseNumber("businessValue", record[3])
	if err != nil {
		return nil, err
	}
	points, err := parseNumber("storyPoints", record[4])
	if err != nil {
		return nil, err
	}

	return &Ticket{
		ID:            id,
		Title:         strings.TrimSpace(record[1]),
		BlockedBy:     splitIDList(record[2]),
		BusinessValue: value,
		StoryPoints:   points,
		PotentialTeam: splitIDList(record[5]),
	}, nil
}

func parseNumber(column, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", column, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: negative value %q", column, raw)
	}
	return n, nil
}

// splitIDList splits a hyphen-joined id list. Ids therefore cannot contain
// hyphens; the backlog format inherits that restriction.
func splitIDList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "-")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
