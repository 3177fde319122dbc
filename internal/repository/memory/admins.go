package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/repository"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// AdminRepo is the in-memory repository.AdminRepository implementation.
type AdminRepo struct {
	db *db
}

var _ repository.AdminRepository = (*AdminRepo)(nil)

func (r *AdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, existing := range r.db.admins {
		if existing.Email == admin.Email {
			return util.NewConflict("an admin with this email already exists",
				map[string]any{"field": "email"})
		}
	}
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	admin.CreatedAt = now()
	admin.UpdatedAt = admin.CreatedAt
	r.db.admins[admin.ID] = cloneAdmin(admin)
	return nil
}

func (r *AdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	admin, ok := r.db.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneAdmin(admin), nil
}

func (r *AdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, admin := range r.db.admins {
		if admin.Email == email {
			return cloneAdmin(admin), nil
		}
	}
	return nil, repository.ErrNotFound
}
