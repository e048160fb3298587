package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/drakehanguyen/devpockit/internal/api/dto"
	"github.com/drakehanguyen/devpockit/internal/auth"
	"github.com/drakehanguyen/devpockit/internal/repository"
	"github.com/drakehanguyen/devpockit/internal/service"
	apperrors "github.com/drakehanguyen/devpockit/pkg/util"
)

// AuthHandler exposes registration and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("validation failed", dto.ValidationDetails(err))
	}

	user, err := h.auth.Register(c.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return apperrors.NewDuplicate("Email already registered")
		case errors.Is(err, repository.ErrDuplicateUsername):
			return apperrors.NewDuplicate("Username already taken")
		}
		return apperrors.NewInternalError(err)
	}

	return c.JSON(dto.OK("User registered successfully", fiber.Map{
		"user": dto.NewUserResponse(user),
	}))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("validation failed", dto.ValidationDetails(err))
	}

	user, token, _, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return apperrors.NewUnauthorized("Invalid username or password")
		}
		return apperrors.NewInternalError(err)
	}

	return c.JSON(dto.OK("Login successful", fiber.Map{
		"user":         dto.NewUserResponse(user),
		"access_token": token,
		"token_type":   "bearer",
	}))
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	return c.JSON(dto.OK("User information retrieved", fiber.Map{
		"user":          dto.NewUserResponse(user),
		"authenticated": true,
	}))
}

// Logout handles POST /auth/logout. Tokens stay valid until expiry;
// this is an acknowledgment only.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context(), ""); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(dto.OK("Logout successful", fiber.Map{
		"status": "logged_out",
	}))
}
