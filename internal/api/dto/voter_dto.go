package dto

import (
	"time"

	"github.com/spec-kit/voting-service/internal/domain"
)

// VerifyRequest payload for POST /users/verify.
type VerifyRequest struct {
	IDNumber       string    `json:"idNumber"`
	FaceDescriptor []float64 `json:"faceDescriptor,omitempty"`
	Name           string    `json:"name,omitempty"`
	DateOfBirth    string    `json:"dateOfBirth,omitempty"`
}

// RegisterVoterRequest payload for POST /voters/register.
type RegisterVoterRequest struct {
	IDNumber       string    `json:"idNumber"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Password       string    `json:"password,omitempty"`
	DateOfBirth    string    `json:"dateOfBirth,omitempty"`
	FaceDescriptor []float64 `json:"faceDescriptor"`
}

// VoterResponse is the public projection of a voter record. The biometric
// template never leaves the server.
type VoterResponse struct {
	ID           string    `json:"id"`
	IDNumber     string    `json:"idNumber"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	DateOfBirth  string    `json:"dateOfBirth,omitempty"`
	HasVoted     bool      `json:"hasVoted"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// NewVoterResponse maps a domain voter to its public projection.
func NewVoterResponse(voter *domain.Voter) VoterResponse {
	return VoterResponse{
		ID:           voter.ID,
		IDNumber:     voter.IDNumber,
		Name:         voter.Name,
		Email:        voter.Email,
		DateOfBirth:  voter.DateOfBirth,
		HasVoted:     voter.HasVoted,
		RegisteredAt: voter.RegisteredAt,
	}
}

// VerifyResponse is returned from POST /users/verify.
type VerifyResponse struct {
	Voter     VoterResponse `json:"voter"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Distance  *float64      `json:"distance,omitempty"`
}
