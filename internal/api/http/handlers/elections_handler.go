package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voting-service/internal/api/dto"
	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/service"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// ElectionsHandler exposes election management and the public election view.
type ElectionsHandler struct {
	admin *service.AdminService
}

// NewElectionsHandler constructs handler.
func NewElectionsHandler(admin *service.AdminService) *ElectionsHandler {
	return &ElectionsHandler{admin: admin}
}

// Create handles POST /elections.
func (h *ElectionsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateElectionRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	election := &domain.Election{
		ID:        req.ID,
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	for i, cand := range req.Candidates {
		election.Candidates = append(election.Candidates, domain.Candidate{
			Name:     cand.Name,
			Party:    cand.Party,
			Position: i,
		})
	}

	created, err := h.admin.CreateElection(c.Context(), election)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewElectionResponse(created))
}

// Get handles GET /elections/:id.
func (h *ElectionsHandler) Get(c *fiber.Ctx) error {
	election, err := h.admin.GetElection(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewElectionResponse(election))
}

// List handles GET /elections.
func (h *ElectionsHandler) List(c *fiber.Ctx) error {
	elections, err := h.admin.ListElections(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.ElectionResponse, 0, len(elections))
	for i := range elections {
		out = append(out, dto.NewElectionResponse(&elections[i]))
	}
	return c.JSON(out)
}
