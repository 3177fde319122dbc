package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/events"
	"github.com/spec-kit/voting-service/internal/repository"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// TallyCache caches computed result tallies. Implementations must treat a
// miss as recoverable; the service always falls back to the store.
type TallyCache interface {
	GetTally(ctx context.Context) ([]domain.CandidateTally, bool)
	SetTally(ctx context.Context, tally []domain.CandidateTally)
	Invalidate(ctx context.Context)
}

// VotingService records votes and publishes result tallies.
type VotingService struct {
	voters     repository.VoterRepository
	elections  repository.ElectionRepository
	candidates repository.CandidateRepository
	votes      repository.VoteRepository
	dispatcher events.Dispatcher
	cache      TallyCache
}

// VotingDependencies encapsulates repo requirements for the voting service.
type VotingDependencies struct {
	VoterRepo     repository.VoterRepository
	ElectionRepo  repository.ElectionRepository
	CandidateRepo repository.CandidateRepository
	VoteRepo      repository.VoteRepository
	Dispatcher    events.Dispatcher
	Cache         TallyCache
}

// NewVotingService builds the service.
func NewVotingService(deps VotingDependencies) *VotingService {
	return &VotingService{
		voters:     deps.VoterRepo,
		elections:  deps.ElectionRepo,
		candidates: deps.CandidateRepo,
		votes:      deps.VoteRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
	}
}

// CastVote records one vote for an authenticated, not-yet-voted voter.
// Preconditions run in a fixed order and the first failure wins; the
// effect itself is applied atomically by the vote repository.
func (s *VotingService) CastVote(ctx context.Context, voterID, electionID, candidateID string) (*domain.VoteReceipt, error) {
	if candidateID == "" {
		return nil, util.NewValidationError("candidateId is required", nil)
	}

	// The single-election deployment omits electionId; fall back to the
	// default (first) election.
	if electionID == "" {
		elections, err := s.elections.List(ctx)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		if len(elections) == 0 {
			return nil, util.NewElectionNotFound()
		}
		electionID = elections[0].ID
	}

	election, err := s.elections.GetByID(ctx, electionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewElectionNotFound()
		}
		return nil, util.NewStoreError(err)
	}

	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewCandidateNotFound()
		}
		return nil, util.NewStoreError(err)
	}
	if candidate.ElectionID != election.ID {
		return nil, util.NewCandidateNotFound()
	}

	voter, err := s.voters.GetByID(ctx, voterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewVoterNotFound()
		}
		return nil, util.NewStoreError(err)
	}
	if voter.HasVoted {
		return nil, util.NewAlreadyVoted()
	}

	vote := &domain.Vote{
		VoterID:     voter.ID,
		ElectionID:  election.ID,
		CandidateID: candidate.ID,
	}
	if err := s.votes.CastVote(ctx, vote); err != nil {
		if util.IsCode(err, "ALREADY_VOTED") {
			return nil, err
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewCandidateNotFound()
		}
		return nil, util.NewStoreError(err)
	}

	s.publish(ctx, events.Event{
		ID:   uuid.NewString(),
		Type: events.EventVoteCast,
		Actor: events.Actor{
			Type:    domain.SubjectTypeVoter,
			VoterID: &voter.ID,
		},
		Timestamp: time.Now(),
		Payload: events.VoteCastPayload{
			VoteID:      vote.ID,
			ElectionID:  vote.ElectionID,
			CandidateID: vote.CandidateID,
		},
	})

	return &domain.VoteReceipt{
		VoteID:      vote.ID,
		CandidateID: vote.CandidateID,
		CastAt:      vote.CastAt,
	}, nil
}

// Results reports the current tally for every candidate, serving from the
// cache when warm.
func (s *VotingService) Results(ctx context.Context) ([]domain.CandidateTally, error) {
	if s.cache != nil {
		if tally, ok := s.cache.GetTally(ctx); ok {
			return tally, nil
		}
	}

	candidates, err := s.candidates.ListAll(ctx)
	if err != nil {
		return nil, util.NewStoreError(err)
	}

	tally := make([]domain.CandidateTally, 0, len(candidates))
	for _, candidate := range candidates {
		tally = append(tally, domain.CandidateTally{
			CandidateID: candidate.ID,
			Name:        candidate.Name,
			Party:       candidate.Party,
			Votes:       candidate.Votes,
		})
	}

	if s.cache != nil {
		s.cache.SetTally(ctx, tally)
	}
	return tally, nil
}

func (s *VotingService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}
