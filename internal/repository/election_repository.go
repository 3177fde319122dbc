package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/voting-service/internal/domain"
)

// ElectionRepository encapsulates election persistence.
type ElectionRepository interface {
	Create(ctx context.Context, election *domain.Election) error
	GetByID(ctx context.Context, id string) (*domain.Election, error)
	List(ctx context.Context) ([]domain.Election, error)
}

type electionRepository struct {
	pool       *pgxpool.Pool
	candidates CandidateRepository
}

// NewElectionRepository instantiates repository.
func NewElectionRepository(pool *pgxpool.Pool, candidates CandidateRepository) ElectionRepository {
	return &electionRepository{pool: pool, candidates: candidates}
}

// Create stores the election together with its initial candidate slate in one
// transaction.
func (r *electionRepository) Create(ctx context.Context, election *domain.Election) error {
	if election.ID == "" {
		election.ID = uuid.NewString()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.QueryRow(ctx, `
        INSERT INTO elections (id, title, start_date, end_date, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`,
		election.ID,
		election.Title,
		election.StartDate,
		election.EndDate,
		election.Status,
	).Scan(&election.CreatedAt, &election.UpdatedAt); err != nil {
		return err
	}

	for i := range election.Candidates {
		candidate := &election.Candidates[i]
		candidate.ElectionID = election.ID
		if candidate.ID == "" {
			candidate.ID = uuid.NewString()
		}
		candidate.Position = i
		if err := tx.QueryRow(ctx, `
            INSERT INTO candidates (id, election_id, name, party, votes, position)
            VALUES ($1, $2, $3, $4, $5, $6)
            RETURNING created_at, updated_at`,
			candidate.ID,
			candidate.ElectionID,
			candidate.Name,
			candidate.Party,
			candidate.Votes,
			candidate.Position,
		).Scan(&candidate.CreatedAt, &candidate.UpdatedAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *electionRepository) GetByID(ctx context.Context, id string) (*domain.Election, error) {
	const query = `
        SELECT id, title, start_date, end_date, status, created_at, updated_at
        FROM elections WHERE id=$1`

	var election domain.Election
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&election.ID,
		&election.Title,
		&election.StartDate,
		&election.EndDate,
		&election.Status,
		&election.CreatedAt,
		&election.UpdatedAt,
	); err != nil {
		return nil, err
	}

	candidates, err := r.candidates.ListByElection(ctx, election.ID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}
	election.Candidates = candidates
	return &election, nil
}

func (r *electionRepository) List(ctx context.Context) ([]domain.Election, error) {
	const query = `
        SELECT id, title, start_date, end_date, status, created_at, updated_at
        FROM elections ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var elections []domain.Election
	for rows.Next() {
		var election domain.Election
		if err := rows.Scan(
			&election.ID,
			&election.Title,
			&election.StartDate,
			&election.EndDate,
			&election.Status,
			&election.CreatedAt,
			&election.UpdatedAt,
		); err != nil {
			return nil, err
		}
		elections = append(elections, election)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range elections {
		candidates, err := r.candidates.ListByElection(ctx, elections[i].ID)
		if err != nil {
			return nil, err
		}
		elections[i].Candidates = candidates
	}
	return elections, nil
}
