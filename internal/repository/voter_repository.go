package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/voting-service/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = pgx.ErrNoRows

// IsUniqueViolation reports whether err is a Postgres duplicate-key conflict.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// VoterRepository defines persistence access for voters.
type VoterRepository interface {
	Create(ctx context.Context, voter *domain.Voter) error
	Update(ctx context.Context, voter *domain.Voter) error
	GetByID(ctx context.Context, id string) (*domain.Voter, error)
	GetByIDNumber(ctx context.Context, idNumber string) (*domain.Voter, error)
	GetByEmail(ctx context.Context, email string) (*domain.Voter, error)
	List(ctx context.Context) ([]domain.Voter, error)
	Delete(ctx context.Context, id string) error
}

type voterRepository struct {
	pool *pgxpool.Pool
}

// NewVoterRepository returns a Postgres-backed implementation.
func NewVoterRepository(pool *pgxpool.Pool) VoterRepository {
	return &voterRepository{pool: pool}
}

func (r *voterRepository) Create(ctx context.Context, voter *domain.Voter) error {
	const query = `
        INSERT INTO voters (id_number, name, email, password_hash, date_of_birth, biometric_template, has_voted)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, registered_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		voter.IDNumber,
		voter.Name,
		voter.Email,
		voter.PasswordHash,
		voter.DateOfBirth,
		voter.BiometricTemplate,
		voter.HasVoted,
	).Scan(&voter.ID, &voter.RegisteredAt, &voter.UpdatedAt)
}

func (r *voterRepository) Update(ctx context.Context, voter *domain.Voter) error {
	const query = `
        UPDATE voters SET name=$1, email=$2, password_hash=$3, date_of_birth=$4,
            biometric_template=$5, has_voted=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		voter.Name,
		voter.Email,
		voter.PasswordHash,
		voter.DateOfBirth,
		voter.BiometricTemplate,
		voter.HasVoted,
		voter.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const voterColumns = `
        SELECT id, id_number, name, email, password_hash, date_of_birth,
               biometric_template, has_voted, registered_at, updated_at
        FROM voters`

func (r *voterRepository) GetByID(ctx context.Context, id string) (*domain.Voter, error) {
	return r.fetchSingle(ctx, voterColumns+` WHERE id=$1`, id)
}

func (r *voterRepository) GetByIDNumber(ctx context.Context, idNumber string) (*domain.Voter, error) {
	return r.fetchSingle(ctx, voterColumns+` WHERE id_number=$1`, idNumber)
}

func (r *voterRepository) GetByEmail(ctx context.Context, email string) (*domain.Voter, error) {
	return r.fetchSingle(ctx, voterColumns+` WHERE email=$1`, email)
}

func (r *voterRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Voter, error) {
	var voter domain.Voter
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&voter.ID,
		&voter.IDNumber,
		&voter.Name,
		&voter.Email,
		&voter.PasswordHash,
		&voter.DateOfBirth,
		&voter.BiometricTemplate,
		&voter.HasVoted,
		&voter.RegisteredAt,
		&voter.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &voter, nil
}

func (r *voterRepository) List(ctx context.Context) ([]domain.Voter, error) {
	rows, err := r.pool.Query(ctx, voterColumns+` ORDER BY registered_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var voters []domain.Voter
	for rows.Next() {
		var voter domain.Voter
		if err := rows.Scan(
			&voter.ID,
			&voter.IDNumber,
			&voter.Name,
			&voter.Email,
			&voter.PasswordHash,
			&voter.DateOfBirth,
			&voter.BiometricTemplate,
			&voter.HasVoted,
			&voter.RegisteredAt,
			&voter.UpdatedAt,
		); err != nil {
			return nil, err
		}
		voters = append(voters, voter)
	}
	return voters, rows.Err()
}

func (r *voterRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM voters WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
