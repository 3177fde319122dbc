package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/spec-kit/voting-service/internal/api/http/handlers"
	"github.com/spec-kit/voting-service/internal/auth"
	"github.com/spec-kit/voting-service/internal/biometric"
	"github.com/spec-kit/voting-service/internal/config"
	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/events"
	"github.com/spec-kit/voting-service/internal/repository/memory"
	"github.com/spec-kit/voting-service/internal/service"
)

// fixedTemplate returns a full-length template filled with the given value.
func fixedTemplate(fill float64) []float64 {
	template := make([]float64, biometric.TemplateLength)
	for i := range template {
		template[i] = fill
	}
	return template
}

type RouterSuite struct {
	suite.Suite
	app        *fiber.App
	repos      *memory.Repositories
	voterToken string
	adminToken string
	voterID    string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	cfg := config.Config{
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

	s.repos = memory.New()
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		VoterRepo: s.repos.Voters,
		AdminRepo: s.repos.Admins,
	})
	verification := service.NewVerificationService(
		s.repos.Voters,
		biometric.NewMatcher(cfg.Biometric.MatchThreshold),
		authService.TokenManager(),
	)
	voting := service.NewVotingService(service.VotingDependencies{
		VoterRepo:     s.repos.Voters,
		ElectionRepo:  s.repos.Elections,
		CandidateRepo: s.repos.Candidates,
		VoteRepo:      s.repos.Votes,
		Dispatcher:    dispatcher,
	})
	admin := service.NewAdminService(cfg, service.AdminDependencies{
		VoterRepo:     s.repos.Voters,
		ElectionRepo:  s.repos.Elections,
		CandidateRepo: s.repos.Candidates,
		VoteRepo:      s.repos.Votes,
		Dispatcher:    dispatcher,
	})

	s.app = fiber.New()
	RegisterMiddlewares(s.app, logger, nil, 0)
	RegisterRoutes(s.app, RouteConfig{
		Health:         handlers.NewHealthHandler("voting-service", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService, verification, nil),
		Admin:          handlers.NewAdminHandler(authService),
		Voters:         handlers.NewVotersHandler(admin),
		Candidates:     handlers.NewCandidatesHandler(admin),
		Votes:          handlers.NewVotesHandler(voting, admin, nil),
		Elections:      handlers.NewElectionsHandler(admin),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), s.repos.Voters, s.repos.Admins),
		AllowedOrigins: []string{"http://localhost:5173"},
	})

	s.seed(cfg)
}

func (s *RouterSuite) seed(cfg config.Config) {
	ctx := context.Background()

	s.Require().NoError(s.repos.Elections.Create(ctx, &domain.Election{
		ID:     "E001",
		Title:  "Presidential Election 2025",
		Status: domain.ElectionStatusActive,
		Candidates: []domain.Candidate{
			{ID: "C001", Name: "Candidate A", Party: "Party A"},
			{ID: "C002", Name: "Candidate B", Party: "Party B"},
		},
	}))

	voterHash, err := auth.HashPassword("voter-pass", cfg.Auth.BcryptCost)
	s.Require().NoError(err)
	voter := &domain.Voter{
		IDNumber:          "ID123",
		Name:              "Jane Doe",
		Email:             "jane@example.com",
		PasswordHash:      voterHash,
		DateOfBirth:       "1990-03-15",
		BiometricTemplate: fixedTemplate(0.5),
	}
	s.Require().NoError(s.repos.Voters.Create(ctx, voter))
	s.voterID = voter.ID

	adminHash, err := auth.HashPassword("admin-pass", cfg.Auth.BcryptCost)
	s.Require().NoError(err)
	adminRec := &domain.Admin{
		Email:        "admin@voting-system.com",
		Name:         "Admin",
		PasswordHash: adminHash,
	}
	s.Require().NoError(s.repos.Admins.Create(ctx, adminRec))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	s.voterToken, _, err = tokens.GenerateToken(voter.ID, domain.SubjectTypeVoter)
	s.Require().NoError(err)
	s.adminToken, _, err = tokens.GenerateToken(adminRec.ID, domain.SubjectTypeAdmin)
	s.Require().NoError(err)
}

// request runs one HTTP round trip against the app and decodes the JSON body.
func (s *RouterSuite) request(method, path, token string, payload any) (int, map[string]any) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, body)
	s.Require().NoError(err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	decoded := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		s.Require().NoError(json.Unmarshal(raw, &decoded))
	} else if len(raw) > 0 && raw[0] == '[' {
		var list []any
		s.Require().NoError(json.Unmarshal(raw, &list))
		decoded["_list"] = list
	} else {
		decoded["_raw"] = string(raw)
	}
	return resp.StatusCode, decoded
}

func errorCode(body map[string]any) string {
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}

func (s *RouterSuite) TestRootBanner() {
	status, body := s.request(http.MethodGet, "/", "", nil)
	s.Equal(http.StatusOK, status)
	s.Equal("Secure Voting API is Running!", body["_raw"])
}

func (s *RouterSuite) TestHealth() {
	status, body := s.request(http.MethodGet, "/health/live", "", nil)
	s.Equal(http.StatusOK, status)
	s.Equal("alive", body["status"])

	status, body = s.request(http.MethodGet, "/health/ready", "", nil)
	s.Equal(http.StatusOK, status)
	s.Equal("ready", body["status"])
	deps := body["dependencies"].(map[string]any)
	s.Equal("in-memory", deps["store"])
	s.Equal("disabled", deps["redis"])
}

func (s *RouterSuite) TestVoterLogin() {
	s.Run("valid credentials return voter id and token", func() {
		status, body := s.request(http.MethodPost, "/users/login", "", map[string]any{
			"email":    "jane@example.com",
			"password": "voter-pass",
		})
		s.Equal(http.StatusOK, status)
		s.Equal(s.voterID, body["voterId"])
		s.NotEmpty(body["token"])
	})

	s.Run("wrong password is rejected", func() {
		status, body := s.request(http.MethodPost, "/users/login", "", map[string]any{
			"email":    "jane@example.com",
			"password": "wrong",
		})
		s.Equal(http.StatusBadRequest, status)
		s.Equal("INVALID_CREDENTIALS", errorCode(body))
	})

	s.Run("missing fields fail validation", func() {
		status, body := s.request(http.MethodPost, "/users/login", "", map[string]any{})
		s.Equal(http.StatusBadRequest, status)
		s.Equal("VALIDATION_FAILED", errorCode(body))
	})
}

func (s *RouterSuite) TestVerify() {
	s.Run("matching template issues a token", func() {
		status, body := s.request(http.MethodPost, "/users/verify", "", map[string]any{
			"idNumber":       "ID123",
			"faceDescriptor": fixedTemplate(0.5),
		})
		s.Equal(http.StatusOK, status)
		s.NotEmpty(body["token"])
		voter := body["voter"].(map[string]any)
		s.Equal("ID123", voter["idNumber"])
		s.NotContains(voter, "faceDescriptor")
	})

	s.Run("distant template is rejected", func() {
		status, body := s.request(http.MethodPost, "/users/verify", "", map[string]any{
			"idNumber":       "ID123",
			"faceDescriptor": fixedTemplate(0.9),
		})
		s.Equal(http.StatusUnauthorized, status)
		s.Equal("BIOMETRIC_MISMATCH", errorCode(body))
	})

	s.Run("unknown id number", func() {
		status, body := s.request(http.MethodPost, "/users/verify", "", map[string]any{
			"idNumber":       "MISSING",
			"faceDescriptor": fixedTemplate(0.5),
		})
		s.Equal(http.StatusNotFound, status)
		s.Equal("VOTER_NOT_FOUND", errorCode(body))
	})
}

func (s *RouterSuite) TestVoteFlow() {
	s.Run("unauthenticated cast is rejected", func() {
		status, body := s.request(http.MethodPost, "/votes/vote", "", map[string]any{
			"candidateId": "C001",
		})
		s.Equal(http.StatusUnauthorized, status)
		s.Equal("UNAUTHORIZED", errorCode(body))
	})

	s.Run("admin token cannot cast", func() {
		status, _ := s.request(http.MethodPost, "/votes/vote", s.adminToken, map[string]any{
			"candidateId": "C001",
		})
		s.Equal(http.StatusForbidden, status)
	})

	s.Run("voter token casts exactly once", func() {
		status, body := s.request(http.MethodPost, "/votes/vote", s.voterToken, map[string]any{
			"candidateId": "C001",
		})
		s.Equal(http.StatusOK, status)
		s.Equal("Vote cast successfully!", body["message"])
		receipt := body["receipt"].(map[string]any)
		s.Equal("C001", receipt["candidateId"])

		status, body = s.request(http.MethodPost, "/votes/vote", s.voterToken, map[string]any{
			"candidateId": "C002",
		})
		s.Equal(http.StatusConflict, status)
		s.Equal("ALREADY_VOTED", errorCode(body))
	})

	s.Run("candidate listing is public", func() {
		status, body := s.request(http.MethodGet, "/candidates", "", nil)
		s.Equal(http.StatusOK, status)
		s.Len(body["_list"].([]any), 2)
	})

	s.Run("results are public and reflect the cast", func() {
		status, body := s.request(http.MethodGet, "/votes/results", "", nil)
		s.Equal(http.StatusOK, status)
		list := body["_list"].([]any)
		s.Require().Len(list, 2)

		first := list[0].(map[string]any)
		s.Equal("Candidate A", first["name"])
		s.Equal("Party A", first["party"])
		s.Equal(float64(1), first["votes"])
	})

	s.Run("unknown candidate", func() {
		// reset first so the already-voted guard does not mask the lookup
		status, _ := s.request(http.MethodPost, "/votes/reset", s.adminToken, nil)
		s.Equal(http.StatusOK, status)

		status, body := s.request(http.MethodPost, "/votes/vote", s.voterToken, map[string]any{
			"candidateId": "C999",
		})
		s.Equal(http.StatusNotFound, status)
		s.Equal("CANDIDATE_NOT_FOUND", errorCode(body))
	})
}

func (s *RouterSuite) TestAdminEndpoints() {
	s.Run("voter token cannot reach admin routes", func() {
		status, _ := s.request(http.MethodPost, "/votes/reset", s.voterToken, nil)
		s.Equal(http.StatusForbidden, status)
	})

	s.Run("guards stay scoped to their own routes", func() {
		// an unauthenticated admin route fails authentication, not the
		// voter guard of an unrelated route
		status, body := s.request(http.MethodGet, "/voters", "", nil)
		s.Equal(http.StatusUnauthorized, status)
		s.Equal("UNAUTHORIZED", errorCode(body))

		status, body = s.request(http.MethodPost, "/candidates/add", s.adminToken, map[string]any{
			"name":  "Candidate Scoped",
			"party": "Party S",
		})
		s.Equal(http.StatusCreated, status)
		s.Equal("Candidate added successfully!", body["message"])

		candidate := body["candidate"].(map[string]any)
		status, _ = s.request(http.MethodDelete, "/candidates/"+candidate["id"].(string), s.adminToken, nil)
		s.Equal(http.StatusOK, status)
	})

	s.Run("admin login", func() {
		status, body := s.request(http.MethodPost, "/admin/login", "", map[string]any{
			"email":    "admin@voting-system.com",
			"password": "admin-pass",
		})
		s.Equal(http.StatusOK, status)
		s.NotEmpty(body["token"])
	})

	s.Run("register list and remove a voter", func() {
		status, body := s.request(http.MethodPost, "/voters/register", s.adminToken, map[string]any{
			"idNumber":       "ID456",
			"name":           "John Roe",
			"faceDescriptor": fixedTemplate(0.25),
		})
		s.Equal(http.StatusCreated, status)
		registered := body["voter"].(map[string]any)
		s.Equal("ID456", registered["idNumber"])

		status, body = s.request(http.MethodGet, "/voters", s.adminToken, nil)
		s.Equal(http.StatusOK, status)
		s.Len(body["_list"].([]any), 2)

		voterID := registered["id"].(string)
		status, _ = s.request(http.MethodDelete, "/voters/"+voterID, s.adminToken, nil)
		s.Equal(http.StatusOK, status)
	})

	s.Run("add candidate to the default election", func() {
		status, body := s.request(http.MethodPost, "/candidates/add", s.adminToken, map[string]any{
			"name":  "Candidate C",
			"party": "Party C",
		})
		s.Equal(http.StatusCreated, status)
		s.Equal("Candidate added successfully!", body["message"])

		status, body = s.request(http.MethodGet, "/votes/results", "", nil)
		s.Equal(http.StatusOK, status)
		s.Len(body["_list"].([]any), 3)
	})

	s.Run("reset clears flags and counters", func() {
		status, body := s.request(http.MethodPost, "/votes/vote", s.voterToken, map[string]any{
			"candidateId": "C001",
		})
		s.Equal(http.StatusOK, status)

		status, body = s.request(http.MethodPost, "/votes/reset", s.adminToken, nil)
		s.Equal(http.StatusOK, status)
		s.Equal("Voting results reset successfully", body["message"])
		s.Equal(float64(1), body["votersCleared"])

		status, body = s.request(http.MethodGet, "/votes/results", "", nil)
		s.Equal(http.StatusOK, status)
		for _, entry := range body["_list"].([]any) {
			s.Equal(float64(0), entry.(map[string]any)["votes"])
		}
	})
}
