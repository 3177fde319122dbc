// Package memory provides in-memory implementations of the repository
// interfaces. They back the test suites and the server's storeless mode
// (no POSTGRES_DSN configured).
package memory

import (
	"sync"
	"time"

	"github.com/spec-kit/voting-service/internal/domain"
)

// db is the shared state behind all in-memory repositories. One mutex guards
// everything so the cast-vote triple runs as a single unit, matching the
// per-transaction atomicity of the Postgres implementation.
type db struct {
	mu sync.Mutex

	voters     map[string]*domain.Voter
	elections  map[string]*domain.Election
	candidates map[string]*domain.Candidate
	votes      []domain.Vote
	admins     map[string]*domain.Admin
}

// Repositories bundles the in-memory implementations over one shared store.
type Repositories struct {
	Voters     *VoterRepo
	Elections  *ElectionRepo
	Candidates *CandidateRepo
	Votes      *VoteRepo
	Admins     *AdminRepo
}

// New builds a fresh set of repositories over empty state.
func New() *Repositories {
	store := &db{
		voters:     make(map[string]*domain.Voter),
		elections:  make(map[string]*domain.Election),
		candidates: make(map[string]*domain.Candidate),
		admins:     make(map[string]*domain.Admin),
	}
	return &Repositories{
		Voters:     &VoterRepo{db: store},
		Elections:  &ElectionRepo{db: store},
		Candidates: &CandidateRepo{db: store},
		Votes:      &VoteRepo{db: store},
		Admins:     &AdminRepo{db: store},
	}
}

func now() time.Time {
	return time.Now().UTC()
}

func cloneVoter(v *domain.Voter) *domain.Voter {
	out := *v
	if v.BiometricTemplate != nil {
		out.BiometricTemplate = append([]float64(nil), v.BiometricTemplate...)
	}
	return &out
}

func cloneCandidate(c *domain.Candidate) *domain.Candidate {
	out := *c
	return &out
}

func cloneAdmin(a *domain.Admin) *domain.Admin {
	out := *a
	return &out
}
