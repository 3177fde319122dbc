package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/voting-service/internal/domain"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// ResetOutcome reports how many records an administrative reset touched.
type ResetOutcome struct {
	VotersCleared     int64
	CandidatesCleared int64
}

// VoteRepository encapsulates the append-only vote log and the compound
// mutations that must stay atomic: cast (insert + counter increment + flag
// flip) and the administrative reset.
type VoteRepository interface {
	CastVote(ctx context.Context, vote *domain.Vote) error
	ListByElection(ctx context.Context, electionID string) ([]domain.Vote, error)
	CountByCandidate(ctx context.Context, candidateID string) (int64, error)
	ResetResults(ctx context.Context) (ResetOutcome, error)
}

type voteRepository struct {
	pool *pgxpool.Pool
}

// NewVoteRepository instantiates repository.
func NewVoteRepository(pool *pgxpool.Pool) VoteRepository {
	return &voteRepository{pool: pool}
}

// CastVote applies the vote triple in one transaction. The has_voted flip is
// a check-and-set: a concurrent cast for the same voter loses the race and
// observes ALREADY_VOTED instead of double counting.
func (r *voteRepository) CastVote(ctx context.Context, vote *domain.Vote) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx,
		`UPDATE voters SET has_voted=TRUE, updated_at=NOW() WHERE id=$1 AND has_voted=FALSE`,
		vote.VoterID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return util.NewAlreadyVoted()
	}

	cmd, err = tx.Exec(ctx,
		`UPDATE candidates SET votes=votes+1, updated_at=NOW() WHERE id=$1`,
		vote.CandidateID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if err := tx.QueryRow(ctx,
		`INSERT INTO votes (voter_id, election_id, candidate_id) VALUES ($1, $2, $3)
         RETURNING id, cast_at`,
		vote.VoterID, vote.ElectionID, vote.CandidateID,
	).Scan(&vote.ID, &vote.CastAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *voteRepository) ListByElection(ctx context.Context, electionID string) ([]domain.Vote, error) {
	const query = `
        SELECT id, voter_id, election_id, candidate_id, cast_at
        FROM votes WHERE election_id=$1 ORDER BY cast_at`

	rows, err := r.pool.Query(ctx, query, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var votes []domain.Vote
	for rows.Next() {
		var vote domain.Vote
		if err := rows.Scan(
			&vote.ID,
			&vote.VoterID,
			&vote.ElectionID,
			&vote.CandidateID,
			&vote.CastAt,
		); err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	return votes, rows.Err()
}

func (r *voteRepository) CountByCandidate(ctx context.Context, candidateID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM votes WHERE candidate_id=$1`, candidateID,
	).Scan(&count)
	return count, err
}

// ResetResults clears every has_voted flag and every candidate counter in one
// transaction. Historical vote rows are retained as an audit artifact.
func (r *voteRepository) ResetResults(ctx context.Context) (ResetOutcome, error) {
	var outcome ResetOutcome

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return outcome, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx,
		`UPDATE voters SET has_voted=FALSE, updated_at=NOW() WHERE has_voted=TRUE`)
	if err != nil {
		return outcome, err
	}
	outcome.VotersCleared = cmd.RowsAffected()

	cmd, err = tx.Exec(ctx,
		`UPDATE candidates SET votes=0, updated_at=NOW() WHERE votes > 0`)
	if err != nil {
		return outcome, err
	}
	outcome.CandidatesCleared = cmd.RowsAffected()

	return outcome, tx.Commit(ctx)
}
