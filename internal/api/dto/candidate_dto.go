package dto

import "github.com/spec-kit/voting-service/internal/domain"

// AddCandidateRequest payload for POST /candidates/add.
type AddCandidateRequest struct {
	Name       string `json:"name"`
	Party      string `json:"party"`
	ElectionID string `json:"electionId,omitempty"`
}

// CandidateResponse is the public projection of a candidate.
type CandidateResponse struct {
	ID         string `json:"id"`
	ElectionID string `json:"electionId"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	Votes      int64  `json:"votes"`
}

// NewCandidateResponse maps a domain candidate.
func NewCandidateResponse(candidate *domain.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:         candidate.ID,
		ElectionID: candidate.ElectionID,
		Name:       candidate.Name,
		Party:      candidate.Party,
		Votes:      candidate.Votes,
	}
}

// CreateElectionRequest payload for POST /elections.
type CreateElectionRequest struct {
	ID         string                `json:"id,omitempty"`
	Title      string                `json:"title"`
	StartDate  string                `json:"startDate,omitempty"`
	EndDate    string                `json:"endDate,omitempty"`
	Candidates []AddCandidateRequest `json:"candidates,omitempty"`
}

// ElectionResponse is the public projection of an election.
type ElectionResponse struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	StartDate  string              `json:"startDate"`
	EndDate    string              `json:"endDate"`
	Status     string              `json:"status"`
	Candidates []CandidateResponse `json:"candidates"`
}

// NewElectionResponse maps a domain election with its slate.
func NewElectionResponse(election *domain.Election) ElectionResponse {
	candidates := make([]CandidateResponse, 0, len(election.Candidates))
	for i := range election.Candidates {
		candidates = append(candidates, NewCandidateResponse(&election.Candidates[i]))
	}
	return ElectionResponse{
		ID:         election.ID,
		Title:      election.Title,
		StartDate:  election.StartDate,
		EndDate:    election.EndDate,
		Status:     string(election.Status),
		Candidates: candidates,
	}
}
