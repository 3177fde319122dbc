package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spec-kit/voting-service/internal/auth"
	"github.com/spec-kit/voting-service/internal/config"
	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/repository"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// AuthService coordinates voter and admin login flows.
type AuthService struct {
	voters     repository.VoterRepository
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	VoterRepo repository.VoterRepository
	AdminRepo repository.AdminRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		voters:     deps.VoterRepo,
		admins:     deps.AdminRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the shared token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// EnsureAdmin provisions the initial administrator account when it does not
// exist yet. An empty password skips provisioning.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.admins.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return util.NewStoreError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.admins.Create(ctx, &domain.Admin{
		Email:        email,
		Name:         "Administrator",
		PasswordHash: hash,
	}); err != nil {
		// lost a create race to another instance, the account exists
		if util.IsCode(err, "CONFLICT") || repository.IsUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

// LoginVoter authenticates a voter by email and password.
func (s *AuthService) LoginVoter(ctx context.Context, email, password string) (*domain.Voter, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, util.NewValidationError("email and password required", nil)
	}

	voter, err := s.voters.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, util.NewDomainError(
				"INVALID_CREDENTIALS", "user not found", http.StatusBadRequest, nil)
		}
		return nil, "", time.Time{}, util.NewStoreError(err)
	}
	if err := auth.ComparePassword(voter.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewDomainError(
			"INVALID_CREDENTIALS", "invalid credentials", http.StatusBadRequest, nil)
	}

	token, exp, err := s.tokenMgr.GenerateToken(voter.ID, domain.SubjectTypeVoter)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return voter, token, exp, nil
}

// LoginAdmin authenticates an administrator.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, util.NewValidationError("email and password required", nil)
	}

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, util.NewDomainError(
				"INVALID_CREDENTIALS", "invalid email or password", http.StatusBadRequest, nil)
		}
		return nil, "", time.Time{}, util.NewStoreError(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewDomainError(
			"INVALID_CREDENTIALS", "invalid email or password", http.StatusBadRequest, nil)
	}

	token, exp, err := s.tokenMgr.GenerateToken(admin.ID, domain.SubjectTypeAdmin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}
