package domain

import "time"

// Candidate is the domain model for a ballot candidate.
type Candidate struct {
	ID         string
	ElectionID string
	Name       string
	Party      string
	Votes      int64
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
