package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voting-service/internal/api/dto"
	"github.com/spec-kit/voting-service/internal/observability"
	"github.com/spec-kit/voting-service/internal/service"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// UsersHandler exposes voter login and identity verification.
type UsersHandler struct {
	auth         *service.AuthService
	verification *service.VerificationService
	metrics      *observability.Metrics
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, verification *service.VerificationService, metrics *observability.Metrics) *UsersHandler {
	return &UsersHandler{auth: authService, verification: verification, metrics: metrics}
}

// Login handles POST /users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	voter, token, exp, err := h.auth.LoginVoter(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		VoterID:   voter.ID,
		Token:     token,
		ExpiresAt: exp,
	})
}

// Verify handles POST /users/verify.
func (h *UsersHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	result, err := h.verification.Verify(c.Context(), req.IDNumber, req.FaceDescriptor, service.VerifyAttributes{
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		h.metrics.RecordVerifyFailure(util.ToDomainError(err).Code)
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.VerifyResponse{
		Voter:     dto.NewVoterResponse(result.Voter),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Distance:  result.Distance,
	})
}
