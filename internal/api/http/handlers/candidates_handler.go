package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voting-service/internal/api/dto"
	"github.com/spec-kit/voting-service/internal/service"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// CandidatesHandler exposes candidate management.
type CandidatesHandler struct {
	admin *service.AdminService
}

// NewCandidatesHandler constructs handler.
func NewCandidatesHandler(admin *service.AdminService) *CandidatesHandler {
	return &CandidatesHandler{admin: admin}
}

// Add handles POST /candidates/add.
func (h *CandidatesHandler) Add(c *fiber.Ctx) error {
	var req dto.AddCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	candidate, err := h.admin.AddCandidate(c.Context(), req.ElectionID, req.Name, req.Party)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":   "Candidate added successfully!",
		"candidate": dto.NewCandidateResponse(candidate),
	})
}

// List handles GET /candidates.
func (h *CandidatesHandler) List(c *fiber.Ctx) error {
	candidates, err := h.admin.ListCandidates(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.CandidateResponse, 0, len(candidates))
	for i := range candidates {
		out = append(out, dto.NewCandidateResponse(&candidates[i]))
	}
	return c.JSON(out)
}

// Remove handles DELETE /candidates/:id.
func (h *CandidatesHandler) Remove(c *fiber.Ctx) error {
	if err := h.admin.RemoveCandidate(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Candidate removed successfully"})
}
