package dto

import (
	"time"

	"github.com/spec-kit/voting-service/internal/domain"
)

// CastVoteRequest payload for POST /votes/vote.
type CastVoteRequest struct {
	CandidateID string `json:"candidateId"`
	ElectionID  string `json:"electionId,omitempty"`
}

// VoteReceiptResponse confirms a successful cast; it does not disclose counts.
type VoteReceiptResponse struct {
	VoteID      string    `json:"voteId"`
	CandidateID string    `json:"candidateId"`
	CastAt      time.Time `json:"castAt"`
}

// NewVoteReceiptResponse maps a domain receipt.
func NewVoteReceiptResponse(receipt *domain.VoteReceipt) VoteReceiptResponse {
	return VoteReceiptResponse{
		VoteID:      receipt.VoteID,
		CandidateID: receipt.CandidateID,
		CastAt:      receipt.CastAt,
	}
}

// ResetResponse reports how many records an administrative reset touched.
type ResetResponse struct {
	Message           string `json:"message"`
	VotersCleared     int64  `json:"votersCleared"`
	CandidatesCleared int64  `json:"candidatesCleared"`
}
