package events

import (
	"time"

	"github.com/spec-kit/voting-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventVoteCast        EventType = "vote_cast"
	EventResultsReset    EventType = "results_reset"
	EventVoterRegistered EventType = "voter_registered"
	EventVoterRemoved    EventType = "voter_removed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type    domain.SubjectType `json:"type"`
	VoterID *string            `json:"voter_id,omitempty"`
	AdminID *string            `json:"admin_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// VoteCastPayload payload.
type VoteCastPayload struct {
	VoteID      string `json:"vote_id"`
	ElectionID  string `json:"election_id"`
	CandidateID string `json:"candidate_id"`
}

// ResultsResetPayload payload.
type ResultsResetPayload struct {
	VotersCleared     int64 `json:"voters_cleared"`
	CandidatesCleared int64 `json:"candidates_cleared"`
}

// VoterRegisteredPayload payload.
type VoterRegisteredPayload struct {
	VoterID  string `json:"voter_id"`
	IDNumber string `json:"id_number"`
}

// VoterRemovedPayload payload.
type VoterRemovedPayload struct {
	VoterID string `json:"voter_id"`
}
