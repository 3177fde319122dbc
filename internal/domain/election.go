package domain

import "time"

// ElectionStatus represents lifecycle states for an election.
type ElectionStatus string

const (
	ElectionStatusDraft  ElectionStatus = "DRAFT"
	ElectionStatusActive ElectionStatus = "ACTIVE"
	ElectionStatusClosed ElectionStatus = "CLOSED"
)

// Election groups an ordered slate of candidates under one ballot.
// Candidate order is display order only; counting does not depend on it.
type Election struct {
	ID         string
	Title      string
	StartDate  string
	EndDate    string
	Status     ElectionStatus
	Candidates []Candidate
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
