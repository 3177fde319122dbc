package domain

import "time"

// Vote is an append-only log entry for a single cast ballot.
// Rows are written once and never mutated or deleted by voting operations.
type Vote struct {
	ID          string
	VoterID     string
	ElectionID  string
	CandidateID string
	CastAt      time.Time
}

// VoteReceipt confirms a successful cast without disclosing counts.
type VoteReceipt struct {
	VoteID      string
	CandidateID string
	CastAt      time.Time
}
