package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voting-service/internal/domain"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// RequireVoter ensures a VOTER is authenticated.
func RequireVoter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeVoter || principal.Voter == nil {
			return util.NewForbidden("voter required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures an ADMIN is authenticated.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.SubjectType != domain.SubjectTypeAdmin || principal.Admin == nil {
			return util.NewForbidden("admin required")
		}
		return c.Next()
	}
}
