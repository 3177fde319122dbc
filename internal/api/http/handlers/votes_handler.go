package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voting-service/internal/api/dto"
	"github.com/spec-kit/voting-service/internal/auth"
	"github.com/spec-kit/voting-service/internal/observability"
	"github.com/spec-kit/voting-service/internal/service"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// VotesHandler exposes vote casting, results and the administrative reset.
type VotesHandler struct {
	voting  *service.VotingService
	admin   *service.AdminService
	metrics *observability.Metrics
}

// NewVotesHandler constructs handler.
func NewVotesHandler(voting *service.VotingService, admin *service.AdminService, metrics *observability.Metrics) *VotesHandler {
	return &VotesHandler{voting: voting, admin: admin, metrics: metrics}
}

// Vote handles POST /votes/vote. The voter identity comes from the bearer
// token, never from the request body.
func (h *VotesHandler) Vote(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Voter == nil {
		return util.NewUnauthorized("no token, access denied")
	}

	var req dto.CastVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	receipt, err := h.voting.CastVote(c.Context(), principal.Voter.ID, req.ElectionID, req.CandidateID)
	if err != nil {
		return err
	}
	h.metrics.RecordVoteCast()

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Vote cast successfully!",
		"receipt": dto.NewVoteReceiptResponse(receipt),
	})
}

// Results handles GET /votes/results. No authentication required.
func (h *VotesHandler) Results(c *fiber.Ctx) error {
	tally, err := h.voting.Results(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(tally)
}

// Reset handles POST /votes/reset.
func (h *VotesHandler) Reset(c *fiber.Ctx) error {
	outcome, err := h.admin.ResetResults(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.ResetResponse{
		Message:           "Voting results reset successfully",
		VotersCleared:     outcome.VotersCleared,
		CandidatesCleared: outcome.CandidatesCleared,
	})
}
