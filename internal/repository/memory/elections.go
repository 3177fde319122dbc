package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/repository"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// ElectionRepo is the in-memory repository.ElectionRepository implementation.
type ElectionRepo struct {
	db *db
}

var _ repository.ElectionRepository = (*ElectionRepo)(nil)

func (r *ElectionRepo) Create(_ context.Context, election *domain.Election) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if election.ID == "" {
		election.ID = uuid.NewString()
	}
	if _, ok := r.db.elections[election.ID]; ok {
		return util.NewConflict("an election with this id already exists",
			map[string]any{"field": "id"})
	}
	election.CreatedAt = now()
	election.UpdatedAt = election.CreatedAt

	stored := *election
	stored.Candidates = nil
	r.db.elections[election.ID] = &stored

	for i := range election.Candidates {
		candidate := election.Candidates[i]
		candidate.ElectionID = election.ID
		if candidate.ID == "" {
			candidate.ID = uuid.NewString()
		}
		candidate.Position = i
		candidate.CreatedAt = now()
		candidate.UpdatedAt = candidate.CreatedAt
		r.db.candidates[candidate.ID] = cloneCandidate(&candidate)
		election.Candidates[i] = candidate
	}
	return nil
}

func (r *ElectionRepo) GetByID(_ context.Context, id string) (*domain.Election, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	election, ok := r.db.elections[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *election
	out.Candidates = r.db.candidatesOf(id)
	return &out, nil
}

func (r *ElectionRepo) List(_ context.Context) ([]domain.Election, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	elections := make([]domain.Election, 0, len(r.db.elections))
	for _, election := range r.db.elections {
		out := *election
		out.Candidates = r.db.candidatesOf(election.ID)
		elections = append(elections, out)
	}
	sort.Slice(elections, func(i, j int) bool {
		return elections[i].CreatedAt.Before(elections[j].CreatedAt)
	})
	return elections, nil
}

// candidatesOf returns the display-ordered slate. Caller holds db.mu.
func (s *db) candidatesOf(electionID string) []domain.Candidate {
	var candidates []domain.Candidate
	for _, candidate := range s.candidates {
		if candidate.ElectionID == electionID {
			candidates = append(candidates, *cloneCandidate(candidate))
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Position != candidates[j].Position {
			return candidates[i].Position < candidates[j].Position
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	return candidates
}
