package handler

import (
	"strconv"

	"loves-api/internal/domain"
	"loves-api/internal/dto"
	"loves-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles chat HTTP requests
type ChatHandler struct {
	service service.ChatService
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// CreateOrGetChat handles POST /api/chats
func (h *ChatHandler) CreateOrGetChat(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateChatRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.CreateOrGetChat(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RequestOTP handles POST /api/chats/otp/request
func (h *ChatHandler) RequestOTP(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.ChatOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	if err := h.service.RequestOTP(c.Context(), userID, &req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Connection code sent"})
}

// VerifyOTP handles POST /api/chats/otp/verify
func (h *ChatHandler) VerifyOTP(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.ChatOTPVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	ok, err := h.service.VerifyOTP(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewUnauthorizedError("Invalid or expired connection code")
	}
	return c.JSON(dto.MessageResponse{Message: "Connection approved"})
}

// ListChats handles GET /api/chats
func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.ListChats(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListMessages handles GET /api/chats/:id/messages
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	resp, err := h.service.ListMessages(c.Context(), c.Params("id"), userID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SendMessage handles POST /api/chats/:id/messages
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.SendMessage(c.Context(), c.Params("id"), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// MarkRead handles POST /api/chats/:id/read
func (h *ChatHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.MarkRead(c.Context(), c.Params("id"), userID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Messages marked read"})
}

// Assistant handles POST /api/chats/assistant
func (h *ChatHandler) Assistant(c *fiber.Ctx) error {
	if _, err := requireUserID(c); err != nil {
		return err
	}

	var req dto.AssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.Assistant(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
