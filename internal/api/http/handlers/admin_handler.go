package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/voting-service/internal/api/dto"
	"github.com/spec-kit/voting-service/internal/service"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// AdminHandler exposes administrator login.
type AdminHandler struct {
	auth *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	admin, token, exp, err := h.auth.LoginAdmin(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AdminLoginResponse{
		AdminID:   admin.ID,
		Email:     admin.Email,
		Token:     token,
		ExpiresAt: exp,
	})
}
