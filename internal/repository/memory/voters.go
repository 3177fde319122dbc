package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/repository"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// VoterRepo is the in-memory repository.VoterRepository implementation.
type VoterRepo struct {
	db *db
}

var _ repository.VoterRepository = (*VoterRepo)(nil)

func (r *VoterRepo) Create(_ context.Context, voter *domain.Voter) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.voters {
		if existing.IDNumber == voter.IDNumber {
			return util.NewConflict("a voter with this ID already exists",
				map[string]any{"field": "id_number"})
		}
		if voter.Email != "" && existing.Email == voter.Email {
			return util.NewConflict("a voter with this email already exists",
				map[string]any{"field": "email"})
		}
	}

	if voter.ID == "" {
		voter.ID = uuid.NewString()
	}
	voter.RegisteredAt = now()
	voter.UpdatedAt = voter.RegisteredAt
	r.db.voters[voter.ID] = cloneVoter(voter)
	return nil
}

func (r *VoterRepo) Update(_ context.Context, voter *domain.Voter) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.voters[voter.ID]; !ok {
		return repository.ErrNotFound
	}
	voter.UpdatedAt = now()
	r.db.voters[voter.ID] = cloneVoter(voter)
	return nil
}

func (r *VoterRepo) GetByID(_ context.Context, id string) (*domain.Voter, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	voter, ok := r.db.voters[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneVoter(voter), nil
}

func (r *VoterRepo) GetByIDNumber(_ context.Context, idNumber string) (*domain.Voter, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, voter := range r.db.voters {
		if voter.IDNumber == idNumber {
			return cloneVoter(voter), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *VoterRepo) GetByEmail(_ context.Context, email string) (*domain.Voter, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, voter := range r.db.voters {
		if voter.Email == email {
			return cloneVoter(voter), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *VoterRepo) List(_ context.Context) ([]domain.Voter, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	voters := make([]domain.Voter, 0, len(r.db.voters))
	for _, voter := range r.db.voters {
		voters = append(voters, *cloneVoter(voter))
	}
	sort.Slice(voters, func(i, j int) bool {
		return voters[i].RegisteredAt.Before(voters[j].RegisteredAt)
	})
	return voters, nil
}

func (r *VoterRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.voters[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.voters, id)
	return nil
}
