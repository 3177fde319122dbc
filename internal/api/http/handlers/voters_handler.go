package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voting-service/internal/api/dto"
	"github.com/spec-kit/voting-service/internal/service"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// VotersHandler exposes administrative voter management.
type VotersHandler struct {
	admin *service.AdminService
}

// NewVotersHandler constructs handler.
func NewVotersHandler(admin *service.AdminService) *VotersHandler {
	return &VotersHandler{admin: admin}
}

// Register handles POST /voters/register.
func (h *VotersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterVoterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	voter, err := h.admin.RegisterVoter(c.Context(), service.RegisterVoterInput{
		IDNumber:          req.IDNumber,
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		DateOfBirth:       req.DateOfBirth,
		BiometricTemplate: req.FaceDescriptor,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Voter registered successfully",
		"voter":   dto.NewVoterResponse(voter),
	})
}

// List handles GET /voters.
func (h *VotersHandler) List(c *fiber.Ctx) error {
	voters, err := h.admin.ListVoters(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.VoterResponse, 0, len(voters))
	for i := range voters {
		out = append(out, dto.NewVoterResponse(&voters[i]))
	}
	return c.JSON(out)
}

// Remove handles DELETE /voters/:id.
func (h *VotersHandler) Remove(c *fiber.Ctx) error {
	if err := h.admin.RemoveVoter(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Voter removed successfully"})
}
