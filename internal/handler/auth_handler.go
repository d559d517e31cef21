package handler

import (
	"loves-api/internal/domain"
	"loves-api/internal/dto"
	"loves-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles account and token HTTP requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.Register(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.Login(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// VerifyEmail handles POST /api/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req dto.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	if err := h.service.VerifyEmail(c.Context(), &req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Email verified"})
}

// VerifyPhone handles POST /api/auth/verify-phone
func (h *AuthHandler) VerifyPhone(c *fiber.Ctx) error {
	var req dto.VerifyPhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	if err := h.service.VerifyPhone(c.Context(), &req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Phone verified"})
}

// RefreshToken handles POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	if req.RefreshToken == "" {
		return domain.NewValidationError("refreshToken is required")
	}

	resp, err := h.service.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	if err := h.service.ForgotPassword(c.Context(), &req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "If the account exists, a reset email was sent"})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	if err := h.service.ResetPassword(c.Context(), &req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Password reset"})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.GetCurrentUser(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
