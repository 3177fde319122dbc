package domain

// CandidateTally is one row of the published results: candidate name, party
// and current counter. Counts come from the candidate counters, never from
// the vote log.
type CandidateTally struct {
	CandidateID string `json:"candidateId"`
	Name        string `json:"name"`
	Party       string `json:"party"`
	Votes       int64  `json:"votes"`
}
