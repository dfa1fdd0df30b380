package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/municipal-services/complaint-service/internal/api/dto"
	"github.com/municipal-services/complaint-service/internal/service"
	apperrors "github.com/municipal-services/complaint-service/pkg/util"
)

// AuthHandler exposes login endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// CustomerLogin POST /auth/customers/login.
func (h *AuthHandler) CustomerLogin(c *fiber.Ctx) error {
	req, err := parseLogin(c)
	if err != nil {
		return err
	}
	result, err := h.service.CustomerLogin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Role:      string(result.Role),
		Name:      result.Name,
	}})
}

// EmployeeLogin POST /auth/employees/login.
func (h *AuthHandler) EmployeeLogin(c *fiber.Ctx) error {
	req, err := parseLogin(c)
	if err != nil {
		return err
	}
	result, err := h.service.EmployeeLogin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Role:      string(result.Role),
		Name:      result.Name,
	}})
}

func parseLogin(c *fiber.Ctx) (*dto.LoginRequest, error) {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}
	return &req, nil
}
