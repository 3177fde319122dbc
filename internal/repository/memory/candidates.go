package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/repository"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// CandidateRepo is the in-memory repository.CandidateRepository implementation.
type CandidateRepo struct {
	db *db
}

var _ repository.CandidateRepository = (*CandidateRepo)(nil)

func (r *CandidateRepo) Create(_ context.Context, candidate *domain.Candidate) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.elections[candidate.ElectionID]; !ok {
		return repository.ErrNotFound
	}
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	if _, ok := r.db.candidates[candidate.ID]; ok {
		return util.NewConflict("a candidate with this id already exists",
			map[string]any{"field": "id"})
	}
	candidate.CreatedAt = now()
	candidate.UpdatedAt = candidate.CreatedAt
	r.db.candidates[candidate.ID] = cloneCandidate(candidate)
	return nil
}

func (r *CandidateRepo) GetByID(_ context.Context, id string) (*domain.Candidate, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	candidate, ok := r.db.candidates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCandidate(candidate), nil
}

func (r *CandidateRepo) ListByElection(_ context.Context, electionID string) ([]domain.Candidate, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.candidatesOf(electionID), nil
}

func (r *CandidateRepo) ListAll(_ context.Context) ([]domain.Candidate, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	candidates := make([]domain.Candidate, 0, len(r.db.candidates))
	for _, candidate := range r.db.candidates {
		candidates = append(candidates, *cloneCandidate(candidate))
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ElectionID != b.ElectionID {
			return a.ElectionID < b.ElectionID
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return candidates, nil
}

func (r *CandidateRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.candidates[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.candidates, id)
	return nil
}
