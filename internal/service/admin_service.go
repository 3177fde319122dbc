package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/voting-service/internal/auth"
	"github.com/spec-kit/voting-service/internal/config"
	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/events"
	"github.com/spec-kit/voting-service/internal/repository"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// RegisterVoterInput carries an administrative voter-registration request.
type RegisterVoterInput struct {
	IDNumber          string
	Name              string
	Email             string
	Password          string
	DateOfBirth       string
	BiometricTemplate []float64
}

// AdminService handles administrative registration and election management.
type AdminService struct {
	voters         repository.VoterRepository
	elections      repository.ElectionRepository
	candidates     repository.CandidateRepository
	votes          repository.VoteRepository
	dispatcher     events.Dispatcher
	bcryptCost     int
	templateLength int
}

// AdminDependencies encapsulates repo requirements for the admin service.
type AdminDependencies struct {
	VoterRepo     repository.VoterRepository
	ElectionRepo  repository.ElectionRepository
	CandidateRepo repository.CandidateRepository
	VoteRepo      repository.VoteRepository
	Dispatcher    events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(cfg config.Config, deps AdminDependencies) *AdminService {
	return &AdminService{
		voters:         deps.VoterRepo,
		elections:      deps.ElectionRepo,
		candidates:     deps.CandidateRepo,
		votes:          deps.VoteRepo,
		dispatcher:     deps.Dispatcher,
		bcryptCost:     cfg.Auth.BcryptCost,
		templateLength: cfg.Biometric.TemplateLength,
	}
}

// RegisterVoter creates a voter record with a captured biometric template.
func (s *AdminService) RegisterVoter(ctx context.Context, input RegisterVoterInput) (*domain.Voter, error) {
	details := map[string]any{}
	if strings.TrimSpace(input.IDNumber) == "" {
		details["idNumber"] = "required"
	}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "required"
	}
	if len(input.BiometricTemplate) == 0 {
		details["faceDescriptor"] = "required"
	}
	if len(details) > 0 {
		return nil, util.NewValidationError("ID number, name and face data are required", details)
	}
	if len(input.BiometricTemplate) != s.templateLength {
		return nil, util.NewValidationError("face data has unexpected shape",
			map[string]any{"expectedLength": s.templateLength, "gotLength": len(input.BiometricTemplate)})
	}

	if _, err := s.voters.GetByIDNumber(ctx, input.IDNumber); err == nil {
		return nil, util.NewConflict("a voter with this ID already exists",
			map[string]any{"field": "id_number"})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, util.NewStoreError(err)
	}

	voter := &domain.Voter{
		IDNumber:          input.IDNumber,
		Name:              input.Name,
		Email:             input.Email,
		DateOfBirth:       input.DateOfBirth,
		BiometricTemplate: input.BiometricTemplate,
		HasVoted:          false,
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		voter.PasswordHash = hash
	}

	if err := s.voters.Create(ctx, voter); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, util.NewConflict("duplicate key error",
				map[string]any{"field": "id_number"})
		}
		if util.IsCode(err, "CONFLICT") {
			return nil, err
		}
		return nil, util.NewStoreError(err)
	}

	s.publish(ctx, events.EventVoterRegistered, events.VoterRegisteredPayload{
		VoterID:  voter.ID,
		IDNumber: voter.IDNumber,
	})
	return voter, nil
}

// RemoveVoter deletes a voter record.
func (s *AdminService) RemoveVoter(ctx context.Context, voterID string) error {
	if err := s.voters.Delete(ctx, voterID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return util.NewVoterNotFound()
		}
		return util.NewStoreError(err)
	}
	s.publish(ctx, events.EventVoterRemoved, events.VoterRemovedPayload{VoterID: voterID})
	return nil
}

// ListVoters returns all registered voters.
func (s *AdminService) ListVoters(ctx context.Context) ([]domain.Voter, error) {
	voters, err := s.voters.List(ctx)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return voters, nil
}

// CreateElection stores a new election with its candidate slate.
func (s *AdminService) CreateElection(ctx context.Context, election *domain.Election) (*domain.Election, error) {
	if strings.TrimSpace(election.Title) == "" {
		return nil, util.NewValidationError("title is required", nil)
	}
	if election.Status == "" {
		election.Status = domain.ElectionStatusActive
	}
	if err := s.elections.Create(ctx, election); err != nil {
		if repository.IsUniqueViolation(err) || util.IsCode(err, "CONFLICT") {
			return nil, util.NewConflict("an election with this id already exists", nil)
		}
		return nil, util.NewStoreError(err)
	}
	return election, nil
}

// GetElection loads an election with its ordered candidate slate.
func (s *AdminService) GetElection(ctx context.Context, electionID string) (*domain.Election, error) {
	election, err := s.elections.GetByID(ctx, electionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewElectionNotFound()
		}
		return nil, util.NewStoreError(err)
	}
	return election, nil
}

// ListElections returns all elections.
func (s *AdminService) ListElections(ctx context.Context) ([]domain.Election, error) {
	elections, err := s.elections.List(ctx)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return elections, nil
}

// AddCandidate appends a candidate to an election's slate. When no election
// is given the candidate joins the default (first) election.
func (s *AdminService) AddCandidate(ctx context.Context, electionID, name, party string) (*domain.Candidate, error) {
	details := map[string]any{}
	if strings.TrimSpace(name) == "" {
		details["name"] = "required"
	}
	if strings.TrimSpace(party) == "" {
		details["party"] = "required"
	}
	if len(details) > 0 {
		return nil, util.NewValidationError("name and party are required", details)
	}

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

	candidate := &domain.Candidate{
		ID:         uuid.NewString(),
		ElectionID: election.ID,
		Name:       name,
		Party:      party,
		Votes:      0,
		Position:   len(election.Candidates),
	}
	if err := s.candidates.Create(ctx, candidate); err != nil {
		return nil, util.NewStoreError(err)
	}
	return candidate, nil
}

// ListCandidates returns every candidate across all elections.
func (s *AdminService) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	candidates, err := s.candidates.ListAll(ctx)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return candidates, nil
}

// RemoveCandidate deletes a candidate from its election's slate. A candidate
// with rows in the vote log cannot be removed, that would orphan the audit
// trail.
func (s *AdminService) RemoveCandidate(ctx context.Context, candidateID string) error {
	count, err := s.votes.CountByCandidate(ctx, candidateID)
	if err != nil {
		return util.NewStoreError(err)
	}
	if count > 0 {
		return util.NewConflict("candidate has recorded votes",
			map[string]any{"voteCount": count})
	}
	if err := s.candidates.Delete(ctx, candidateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return util.NewCandidateNotFound()
		}
		return util.NewStoreError(err)
	}
	return nil
}

// ResetResults clears every voter's has_voted flag and every candidate
// counter in one administrative action. The append-only vote log is kept.
func (s *AdminService) ResetResults(ctx context.Context) (repository.ResetOutcome, error) {
	outcome, err := s.votes.ResetResults(ctx)
	if err != nil {
		return outcome, util.NewStoreError(err)
	}
	s.publish(ctx, events.EventResultsReset, events.ResultsResetPayload{
		VotersCleared:     outcome.VotersCleared,
		CandidatesCleared: outcome.CandidatesCleared,
	})
	return outcome, nil
}

func (s *AdminService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{Type: domain.SubjectTypeAdmin},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
