package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/events"
	"github.com/spec-kit/voting-service/internal/repository/memory"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// countingCache records invalidations so tests can assert cache coherence.
type countingCache struct {
	mu           sync.Mutex
	tally        []domain.CandidateTally
	warm         bool
	invalidated  int
	storedWrites int
}

func (c *countingCache) GetTally(context.Context) ([]domain.CandidateTally, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.warm {
		return nil, false
	}
	return c.tally, true
}

func (c *countingCache) SetTally(_ context.Context, tally []domain.CandidateTally) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tally = tally
	c.warm = true
	c.storedWrites++
}

func (c *countingCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warm = false
	c.invalidated++
}

type VotingSuite struct {
	suite.Suite
	repos   *memory.Repositories
	cache   *countingCache
	service *VotingService
	ctx     context.Context

	voter *domain.Voter
}

func (s *VotingSuite) SetupTest() {
	s.repos = memory.New()
	s.cache = &countingCache{}
	s.ctx = context.Background()

	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventVoteCast, func(ctx context.Context, _ events.Event) error {
		s.cache.Invalidate(ctx)
		return nil
	})

	s.service = NewVotingService(VotingDependencies{
		VoterRepo:     s.repos.Voters,
		ElectionRepo:  s.repos.Elections,
		CandidateRepo: s.repos.Candidates,
		VoteRepo:      s.repos.Votes,
		Dispatcher:    dispatcher,
		Cache:         s.cache,
	})

	election := &domain.Election{
		ID:     "E001",
		Title:  "Presidential Election 2025",
		Status: domain.ElectionStatusActive,
		Candidates: []domain.Candidate{
			{ID: "C001", Name: "Candidate A", Party: "Party A"},
			{ID: "C002", Name: "Candidate B", Party: "Party B"},
		},
	}
	s.Require().NoError(s.repos.Elections.Create(s.ctx, election))

	s.voter = &domain.Voter{IDNumber: "ID123", Name: "Jane Doe"}
	s.Require().NoError(s.repos.Voters.Create(s.ctx, s.voter))
}

func TestVotingSuite(t *testing.T) {
	suite.Run(t, new(VotingSuite))
}

func (s *VotingSuite) candidateVotes(candidateID string) int64 {
	candidate, err := s.repos.Candidates.GetByID(s.ctx, candidateID)
	s.Require().NoError(err)
	return candidate.Votes
}

func (s *VotingSuite) TestCastVote() {
	receipt, err := s.service.CastVote(s.ctx, s.voter.ID, "E001", "C001")
	s.Require().NoError(err)
	s.NotEmpty(receipt.VoteID)
	s.Equal("C001", receipt.CandidateID)

	s.Equal(int64(1), s.candidateVotes("C001"))

	voter, err := s.repos.Voters.GetByID(s.ctx, s.voter.ID)
	s.Require().NoError(err)
	s.True(voter.HasVoted)

	votes, err := s.repos.Votes.ListByElection(s.ctx, "E001")
	s.Require().NoError(err)
	s.Require().Len(votes, 1)
	s.Equal(s.voter.ID, votes[0].VoterID)
}

func (s *VotingSuite) TestSecondCastFails() {
	_, err := s.service.CastVote(s.ctx, s.voter.ID, "E001", "C001")
	s.Require().NoError(err)

	_, err = s.service.CastVote(s.ctx, s.voter.ID, "E001", "C002")
	s.Require().Error(err)
	s.True(util.IsCode(err, "ALREADY_VOTED"))

	s.Equal(int64(1), s.candidateVotes("C001"))
	s.Equal(int64(0), s.candidateVotes("C002"))
}

func (s *VotingSuite) TestPreconditionOrder() {
	s.Run("unknown election", func() {
		_, err := s.service.CastVote(s.ctx, s.voter.ID, "E999", "C001")
		s.True(util.IsCode(err, "ELECTION_NOT_FOUND"))
	})

	s.Run("unknown candidate leaves counters untouched", func() {
		_, err := s.service.CastVote(s.ctx, s.voter.ID, "E001", "C999")
		s.True(util.IsCode(err, "CANDIDATE_NOT_FOUND"))
		s.Equal(int64(0), s.candidateVotes("C001"))
		s.Equal(int64(0), s.candidateVotes("C002"))
	})

	s.Run("unknown voter", func() {
		_, err := s.service.CastVote(s.ctx, "nobody", "E001", "C001")
		s.True(util.IsCode(err, "VOTER_NOT_FOUND"))
	})

	s.Run("missing candidate id", func() {
		_, err := s.service.CastVote(s.ctx, s.voter.ID, "E001", "")
		s.True(util.IsCode(err, "VALIDATION_FAILED"))
	})
}

func (s *VotingSuite) TestDefaultElectionFallback() {
	receipt, err := s.service.CastVote(s.ctx, s.voter.ID, "", "C002")
	s.Require().NoError(err)
	s.Equal("C002", receipt.CandidateID)
	s.Equal(int64(1), s.candidateVotes("C002"))
}

func (s *VotingSuite) TestConcurrentCastsSingleWinner() {
	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.service.CastVote(s.ctx, s.voter.ID, "E001", "C001")
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			s.True(util.IsCode(err, "ALREADY_VOTED"))
		}
	}
	s.Equal(1, succeeded)
	s.Equal(int64(1), s.candidateVotes("C001"))
}

func (s *VotingSuite) TestResults() {
	s.Run("cold cache computes and stores", func() {
		tally, err := s.service.Results(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(tally, 2)
		s.Equal("Candidate A", tally[0].Name)
		s.Equal("Party A", tally[0].Party)
		s.Equal(int64(0), tally[0].Votes)
		s.Equal(1, s.cache.storedWrites)
	})

	s.Run("warm cache is served", func() {
		_, err := s.service.Results(s.ctx)
		s.Require().NoError(err)
		s.Equal(1, s.cache.storedWrites)
	})

	s.Run("cast invalidates and recomputes", func() {
		_, err := s.service.CastVote(s.ctx, s.voter.ID, "E001", "C001")
		s.Require().NoError(err)
		s.Equal(1, s.cache.invalidated)

		tally, err := s.service.Results(s.ctx)
		s.Require().NoError(err)
		s.Equal(int64(1), tally[0].Votes)
	})
}
