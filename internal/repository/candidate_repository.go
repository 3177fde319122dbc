package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/voting-service/internal/domain"
)

// CandidateRepository encapsulates candidate persistence.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	GetByID(ctx context.Context, id string) (*domain.Candidate, error)
	ListByElection(ctx context.Context, electionID string) ([]domain.Candidate, error)
	ListAll(ctx context.Context) ([]domain.Candidate, error)
	Delete(ctx context.Context, id string) error
}

type candidateRepository struct {
	pool *pgxpool.Pool
}

// NewCandidateRepository instantiates repository.
func NewCandidateRepository(pool *pgxpool.Pool) CandidateRepository {
	return &candidateRepository{pool: pool}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	const query = `
        INSERT INTO candidates (id, election_id, name, party, votes, position)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		candidate.ID,
		candidate.ElectionID,
		candidate.Name,
		candidate.Party,
		candidate.Votes,
		candidate.Position,
	).Scan(&candidate.CreatedAt, &candidate.UpdatedAt)
}

const candidateColumns = `
        SELECT id, election_id, name, party, votes, position, created_at, updated_at
        FROM candidates`

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	var candidate domain.Candidate
	if err := r.pool.QueryRow(ctx, candidateColumns+` WHERE id=$1`, id).Scan(
		&candidate.ID,
		&candidate.ElectionID,
		&candidate.Name,
		&candidate.Party,
		&candidate.Votes,
		&candidate.Position,
		&candidate.CreatedAt,
		&candidate.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (r *candidateRepository) ListByElection(ctx context.Context, electionID string) ([]domain.Candidate, error) {
	return r.list(ctx, candidateColumns+` WHERE election_id=$1 ORDER BY position, created_at`, electionID)
}

func (r *candidateRepository) ListAll(ctx context.Context) ([]domain.Candidate, error) {
	return r.list(ctx, candidateColumns+` ORDER BY election_id, position, created_at`)
}

func (r *candidateRepository) list(ctx context.Context, query string, args ...any) ([]domain.Candidate, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var candidate domain.Candidate
		if err := rows.Scan(
			&candidate.ID,
			&candidate.ElectionID,
			&candidate.Name,
			&candidate.Party,
			&candidate.Votes,
			&candidate.Position,
			&candidate.CreatedAt,
			&candidate.UpdatedAt,
		); err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	return candidates, rows.Err()
}

func (r *candidateRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM candidates WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
