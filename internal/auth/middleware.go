package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/repository"
	util "github.com/spec-kit/voting-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SubjectType domain.SubjectType
	Voter       *domain.Voter
	Admin       *domain.Admin
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	voters repository.VoterRepository
	admins repository.AdminRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, voters repository.VoterRepository, admins repository.AdminRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, voters: voters, admins: admins}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return util.NewUnauthorized("no token, access denied")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return err
	}

	principal := &Principal{SubjectType: claims.Subject}

	switch claims.Subject {
	case domain.SubjectTypeVoter:
		voter, err := m.voters.GetByID(c.Context(), claims.RegisteredClaims.Subject)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return util.NewUnauthorized("voter not found")
			}
			return util.MapError(err)
		}
		principal.Voter = voter
	case domain.SubjectTypeAdmin:
		admin, err := m.admins.GetByID(c.Context(), claims.RegisteredClaims.Subject)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return util.NewUnauthorized("admin not found")
			}
			return util.MapError(err)
		}
		principal.Admin = admin
	default:
		return util.NewUnauthorized("unknown subject")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
