package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/voting-service/internal/biometric"
	"github.com/spec-kit/voting-service/internal/config"
	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/events"
	"github.com/spec-kit/voting-service/internal/repository/memory"
	util "github.com/spec-kit/voting-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
		Biometric: config.BiometricConfig{
			MatchThreshold: biometric.DefaultThreshold,
			TemplateLength: biometric.TemplateLength,
		},
	}
}

type AdminSuite struct {
	suite.Suite
	repos   *memory.Repositories
	service *AdminService
	voting  *VotingService
	ctx     context.Context
}

func (s *AdminSuite) SetupTest() {
	s.repos = memory.New()
	s.ctx = context.Background()

	dispatcher := events.NewInMemoryDispatcher()
	s.service = NewAdminService(testConfig(), AdminDependencies{
		VoterRepo:     s.repos.Voters,
		ElectionRepo:  s.repos.Elections,
		CandidateRepo: s.repos.Candidates,
		VoteRepo:      s.repos.Votes,
		Dispatcher:    dispatcher,
	})
	s.voting = NewVotingService(VotingDependencies{
		VoterRepo:     s.repos.Voters,
		ElectionRepo:  s.repos.Elections,
		CandidateRepo: s.repos.Candidates,
		VoteRepo:      s.repos.Votes,
		Dispatcher:    dispatcher,
	})

	election := &domain.Election{
		ID:     "E001",
		Title:  "Presidential Election 2025",
		Status: domain.ElectionStatusActive,
		Candidates: []domain.Candidate{
			{ID: "C001", Name: "Candidate A", Party: "Party A"},
		},
	}
	s.Require().NoError(s.repos.Elections.Create(s.ctx, election))
}

func TestAdminSuite(t *testing.T) {
	suite.Run(t, new(AdminSuite))
}

func (s *AdminSuite) TestRegisterVoter() {
	s.Run("requires id number, name and face data", func() {
		_, err := s.service.RegisterVoter(s.ctx, RegisterVoterInput{})
		s.Require().Error(err)
		s.True(util.IsCode(err, "VALIDATION_FAILED"))
	})

	s.Run("rejects malformed template", func() {
		_, err := s.service.RegisterVoter(s.ctx, RegisterVoterInput{
			IDNumber:          "ID123",
			Name:              "Jane Doe",
			BiometricTemplate: make([]float64, 64),
		})
		s.Require().Error(err)
		s.True(util.IsCode(err, "VALIDATION_FAILED"))
	})

	s.Run("registers with template", func() {
		voter, err := s.service.RegisterVoter(s.ctx, RegisterVoterInput{
			IDNumber:          "ID123",
			Name:              "Jane Doe",
			DateOfBirth:       "1990-03-15",
			BiometricTemplate: fixedTemplate(0.5),
		})
		s.Require().NoError(err)
		s.NotEmpty(voter.ID)
		s.False(voter.HasVoted)
	})

	s.Run("duplicate id number conflicts", func() {
		_, err := s.service.RegisterVoter(s.ctx, RegisterVoterInput{
			IDNumber:          "ID123",
			Name:              "Someone Else",
			BiometricTemplate: fixedTemplate(0.1),
		})
		s.Require().Error(err)
		s.True(util.IsCode(err, "CONFLICT"))
	})
}

func (s *AdminSuite) TestRemoveVoter() {
	voter, err := s.service.RegisterVoter(s.ctx, RegisterVoterInput{
		IDNumber:          "ID123",
		Name:              "Jane Doe",
		BiometricTemplate: fixedTemplate(0.5),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.RemoveVoter(s.ctx, voter.ID))

	err = s.service.RemoveVoter(s.ctx, voter.ID)
	s.Require().Error(err)
	s.True(util.IsCode(err, "VOTER_NOT_FOUND"))
}

func (s *AdminSuite) TestAddCandidate() {
	s.Run("requires name and party", func() {
		_, err := s.service.AddCandidate(s.ctx, "E001", "", "")
		s.Require().Error(err)
		s.True(util.IsCode(err, "VALIDATION_FAILED"))
	})

	s.Run("appends to the slate in display order", func() {
		candidate, err := s.service.AddCandidate(s.ctx, "E001", "Candidate B", "Party B")
		s.Require().NoError(err)
		s.Equal(1, candidate.Position)

		election, err := s.service.GetElection(s.ctx, "E001")
		s.Require().NoError(err)
		s.Require().Len(election.Candidates, 2)
		s.Equal("Candidate A", election.Candidates[0].Name)
		s.Equal("Candidate B", election.Candidates[1].Name)
	})

	s.Run("defaults to the first election", func() {
		candidate, err := s.service.AddCandidate(s.ctx, "", "Candidate C", "Party C")
		s.Require().NoError(err)
		s.Equal("E001", candidate.ElectionID)
	})

	s.Run("unknown election fails", func() {
		_, err := s.service.AddCandidate(s.ctx, "E999", "X", "Y")
		s.Require().Error(err)
		s.True(util.IsCode(err, "ELECTION_NOT_FOUND"))
	})
}

func (s *AdminSuite) TestRemoveCandidate() {
	s.Run("unknown candidate fails", func() {
		err := s.service.RemoveCandidate(s.ctx, "C999")
		s.Require().Error(err)
		s.True(util.IsCode(err, "CANDIDATE_NOT_FOUND"))
	})

	s.Run("removes a candidate with no votes", func() {
		candidate, err := s.service.AddCandidate(s.ctx, "E001", "Candidate B", "Party B")
		s.Require().NoError(err)

		s.Require().NoError(s.service.RemoveCandidate(s.ctx, candidate.ID))

		election, err := s.service.GetElection(s.ctx, "E001")
		s.Require().NoError(err)
		s.Len(election.Candidates, 1)
	})

	s.Run("refuses a candidate with rows in the vote log", func() {
		voter, err := s.service.RegisterVoter(s.ctx, RegisterVoterInput{
			IDNumber:          "ID123",
			Name:              "Jane Doe",
			BiometricTemplate: fixedTemplate(0.5),
		})
		s.Require().NoError(err)

		_, err = s.voting.CastVote(s.ctx, voter.ID, "E001", "C001")
		s.Require().NoError(err)

		err = s.service.RemoveCandidate(s.ctx, "C001")
		s.Require().Error(err)
		s.True(util.IsCode(err, "CONFLICT"))

		// the candidate and its tally are untouched
		candidate, err := s.repos.Candidates.GetByID(s.ctx, "C001")
		s.Require().NoError(err)
		s.Equal(int64(1), candidate.Votes)
	})
}

func (s *AdminSuite) TestResetResults() {
	voter, err := s.service.RegisterVoter(s.ctx, RegisterVoterInput{
		IDNumber:          "ID123",
		Name:              "Jane Doe",
		BiometricTemplate: fixedTemplate(0.5),
	})
	s.Require().NoError(err)

	_, err = s.voting.CastVote(s.ctx, voter.ID, "E001", "C001")
	s.Require().NoError(err)

	outcome, err := s.service.ResetResults(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), outcome.VotersCleared)
	s.Equal(int64(1), outcome.CandidatesCleared)

	reloaded, err := s.repos.Voters.GetByID(s.ctx, voter.ID)
	s.Require().NoError(err)
	s.False(reloaded.HasVoted)

	candidate, err := s.repos.Candidates.GetByID(s.ctx, "C001")
	s.Require().NoError(err)
	s.Equal(int64(0), candidate.Votes)

	// the append-only log survives the reset
	votes, err := s.repos.Votes.ListByElection(s.ctx, "E001")
	s.Require().NoError(err)
	s.Len(votes, 1)

	// a previously-voted voter can vote again
	_, err = s.voting.CastVote(s.ctx, voter.ID, "E001", "C001")
	s.Require().NoError(err)

	candidate, err = s.repos.Candidates.GetByID(s.ctx, "C001")
	s.Require().NoError(err)
	s.Equal(int64(1), candidate.Votes)
}

func (s *AdminSuite) TestCreateElection() {
	election, err := s.service.CreateElection(s.ctx, &domain.Election{
		Title: "City Council 2026",
		Candidates: []domain.Candidate{
			{Name: "A", Party: "P1"},
			{Name: "B", Party: "P2"},
		},
	})
	s.Require().NoError(err)
	s.NotEmpty(election.ID)
	s.Equal(domain.ElectionStatusActive, election.Status)

	loaded, err := s.service.GetElection(s.ctx, election.ID)
	s.Require().NoError(err)
	s.Len(loaded.Candidates, 2)

	_, err = s.service.CreateElection(s.ctx, &domain.Election{Title: ""})
	s.Require().Error(err)
	s.True(util.IsCode(err, "VALIDATION_FAILED"))
}
