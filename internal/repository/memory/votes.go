package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/repository"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// VoteRepo is the in-memory repository.VoteRepository implementation.
type VoteRepo struct {
	db *db
}

var _ repository.VoteRepository = (*VoteRepo)(nil)

// CastVote applies the vote triple under one lock: check-and-set on the
// voter's has_voted flag, candidate counter increment, log append.
func (r *VoteRepo) CastVote(_ context.Context, vote *domain.Vote) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	voter, ok := r.db.voters[vote.VoterID]
	if !ok {
		return repository.ErrNotFound
	}
	if voter.HasVoted {
		return util.NewAlreadyVoted()
	}

	candidate, ok := r.db.candidates[vote.CandidateID]
	if !ok {
		return repository.ErrNotFound
	}

	voter.HasVoted = true
	voter.UpdatedAt = now()
	candidate.Votes++
	candidate.UpdatedAt = now()

	vote.ID = uuid.NewString()
	vote.CastAt = now()
	r.db.votes = append(r.db.votes, *vote)
	return nil
}

func (r *VoteRepo) ListByElection(_ context.Context, electionID string) ([]domain.Vote, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var votes []domain.Vote
	for _, vote := range r.db.votes {
		if vote.ElectionID == electionID {
			votes = append(votes, vote)
		}
	}
	return votes, nil
}

func (r *VoteRepo) CountByCandidate(_ context.Context, candidateID string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var count int64
	for _, vote := range r.db.votes {
		if vote.CandidateID == candidateID {
			count++
		}
	}
	return count, nil
}

// ResetResults clears flags and counters but keeps the vote log.
func (r *VoteRepo) ResetResults(_ context.Context) (repository.ResetOutcome, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var outcome repository.ResetOutcome
	for _, voter := range r.db.voters {
		if voter.HasVoted {
			voter.HasVoted = false
			voter.UpdatedAt = now()
			outcome.VotersCleared++
		}
	}
	for _, candidate := range r.db.candidates {
		if candidate.Votes > 0 {
			candidate.Votes = 0
			candidate.UpdatedAt = now()
			outcome.CandidatesCleared++
		}
	}
	return outcome, nil
}
