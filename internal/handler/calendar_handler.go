package handler

import (
	"strconv"
	"time"

	"loves-api/internal/domain"
	"loves-api/internal/dto"
	"loves-api/internal/service"
	"loves-api/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CalendarHandler handles calendar and journal HTTP requests
type CalendarHandler struct {
	service   service.CalendarService
	validator *validation.Validator
}

// NewCalendarHandler creates a new CalendarHandler instance
func NewCalendarHandler(service service.CalendarService, validator *validation.Validator) *CalendarHandler {
	return &CalendarHandler{
		service:   service,
		validator: validator,
	}
}

// ListEvents handles GET /api/calendar/events
func (h *CalendarHandler) ListEvents(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	startDate, err := parseDateQuery(c.Query("startDate"))
	if err != nil {
		return err
	}
	endDate, err := parseDateQuery(c.Query("endDate"))
	if err != nil {
		return err
	}

	resp, err := h.service.ListEvents(c.Context(), userID, startDate, endDate, c.Query("type"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpcomingEvents handles GET /api/calendar/events/upcoming
func (h *CalendarHandler) UpcomingEvents(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := h.service.UpcomingEvents(c.Context(), userID, limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateEvent handles POST /api/calendar/events
func (h *CalendarHandler) CreateEvent(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.CreateEvent(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateEvent handles PUT /api/calendar/events/:id
func (h *CalendarHandler) UpdateEvent(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	eventID := c.Params("id")
	if errs := h.validator.ValidateEventID(eventID); len(errs) > 0 {
		return errs
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.UpdateEvent(c.Context(), eventID, userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteEvent handles DELETE /api/calendar/events/:id
func (h *CalendarHandler) DeleteEvent(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	eventID := c.Params("id")
	if errs := h.validator.ValidateEventID(eventID); len(errs) > 0 {
		return errs
	}

	if err := h.service.DeleteEvent(c.Context(), eventID, userID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Event deleted"})
}

// ExportICS handles GET /api/calendar/events/export
func (h *CalendarHandler) ExportICS(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	export, err := h.service.ExportICS(c.Context(), userID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename+`"`)
	return c.SendString(export.Content)
}

// Stats handles GET /api/calendar/events/stats
func (h *CalendarHandler) Stats(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Stats(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Suggestions handles POST /api/calendar/suggestions
func (h *CalendarHandler) Suggestions(c *fiber.Ctx) error {
	if _, err := requireUserID(c); err != nil {
		return err
	}

	var req dto.SuggestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.Suggestions(c.Context(), req.Mode)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateFromSuggestion handles POST /api/calendar/events/from-suggestion
func (h *CalendarHandler) CreateFromSuggestion(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateFromSuggestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.CreateFromSuggestion(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpsertDailyEntry handles POST /api/calendar/events/:id/daily
func (h *CalendarHandler) UpsertDailyEntry(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	eventID := c.Params("id")
	if errs := h.validator.ValidateEventID(eventID); len(errs) > 0 {
		return errs
	}

	var req dto.UpsertDailyEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	resp, err := h.service.UpsertDailyEntry(c.Context(), eventID, userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListDailyEntries handles GET /api/calendar/events/:id/daily
func (h *CalendarHandler) ListDailyEntries(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	eventID := c.Params("id")
	if errs := h.validator.ValidateEventID(eventID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.ListDailyEntries(c.Context(), eventID, userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteDailyEntry handles DELETE /api/calendar/events/:id/daily/:dayKey
func (h *CalendarHandler) DeleteDailyEntry(c *fiber.Ctx) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	eventID := c.Params("id")
	if errs := h.validator.ValidateEventID(eventID); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.DeleteDailyEntry(c.Context(), eventID, userID, c.Params("dayKey"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, domain.NewValidationError("date query parameter is not parseable: " + raw)
}
