package handler

import (
	"loves-api/internal/domain"
	"loves-api/internal/dto"
	"loves-api/internal/middleware"
	"loves-api/internal/service"
	"loves-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PersonalityHandler handles quiz lifecycle HTTP requests
type PersonalityHandler struct {
	service   service.PersonalityService
	validator *validation.Validator
}

// NewPersonalityHandler creates a new PersonalityHandler instance
func NewPersonalityHandler(service service.PersonalityService, validator *validation.Validator) *PersonalityHandler {
	return &PersonalityHandler{
		service:   service,
		validator: validator,
	}
}

// StartQuiz handles POST /api/personality/start
func (h *PersonalityHandler) StartQuiz(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.StartQuiz(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// SubmitQuiz handles POST /api/personality/submit
func (h *PersonalityHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	if errs := h.validator.ValidateSubmitQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitQuiz(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetByShareCode handles GET /api/personality/shared/:shareCode
func (h *PersonalityHandler) GetByShareCode(c *fiber.Ctx) error {
	shareCode := c.Params("shareCode")
	if errs := h.validator.ValidateShareCode(shareCode); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GetByShareCode(c.Context(), shareCode)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitShared handles POST /api/personality/shared/submit
func (h *PersonalityHandler) SubmitShared(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.SubmitSharedRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	if errs := h.validator.ValidateSubmitSharedRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitShared(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// History handles GET /api/personality/history
func (h *PersonalityHandler) History(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.History(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// requireUserID pulls the authenticated user id set by the JWT middleware.
func requireUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", domain.NewUnauthorizedError("Authentication required")
	}
	return userID, nil
}
