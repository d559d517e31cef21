package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"loves-api/internal/domain"
	"loves-api/internal/dto"
	"loves-api/internal/logger"
	"loves-api/internal/repository"

	"go.uber.org/zap"
)

const defaultUpcomingLimit = 10

// ICSExport is a rendered calendar export with its delivery metadata.
type ICSExport struct {
	Content     string
	Filename    string
	ContentType string
}

// CalendarService defines the interface for calendar and journal operations
type CalendarService interface {
	ListEvents(ctx context.Context, userID string, startDate, endDate *time.Time, eventType string) (*dto.EventListResponse, error)
	UpcomingEvents(ctx context.Context, userID string, limit int) (*dto.EventListResponse, error)
	CreateEvent(ctx context.Context, userID string, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, eventID, userID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, eventID, userID string) error
	ExportICS(ctx context.Context, userID string) (*ICSExport, error)
	Stats(ctx context.Context, userID string) (*dto.EventStatsResponse, error)
	Suggestions(ctx context.Context, mode string) (*dto.SuggestionsResponse, error)
	CreateFromSuggestion(ctx context.Context, userID string, req *dto.CreateFromSuggestionRequest) (*dto.EventResponse, error)
	UpsertDailyEntry(ctx context.Context, eventID, userID string, req *dto.UpsertDailyEntryRequest) (*dto.EventResponse, error)
	ListDailyEntries(ctx context.Context, eventID, userID string) (*dto.DailyEntryListResponse, error)
	DeleteDailyEntry(ctx context.Context, eventID, userID, dayKey string) (*dto.EventResponse, error)
}

// calendarService implements CalendarService
type calendarService struct {
	eventRepo repository.CalendarEventRepository
	assistant domain.Assistant
}

// NewCalendarService creates a new instance of calendarService
func NewCalendarService(eventRepo repository.CalendarEventRepository, assistant domain.Assistant) CalendarService {
	return &calendarService{
		eventRepo: eventRepo,
		assistant: assistant,
	}
}

// ListEvents implements CalendarService
func (s *calendarService) ListEvents(ctx context.Context, userID string, startDate, endDate *time.Time, eventType string) (*dto.EventListResponse, error) {
	if eventType != "" && !domain.ValidEventType(domain.EventType(eventType)) {
		return nil, domain.NewValidationError("unknown event type: " + eventType)
	}

	events, err := s.eventRepo.List(ctx, userID, repository.EventFilter{
		StartDate: startDate,
		EndDate:   endDate,
		Type:      domain.EventType(eventType),
	})
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to list events", err)
	}

	return &dto.EventListResponse{Events: toEventResponses(events)}, nil
}

// UpcomingEvents implements CalendarService
func (s *calendarService) UpcomingEvents(ctx context.Context, userID string, limit int) (*dto.EventListResponse, error) {
	if limit < 1 {
		limit = defaultUpcomingLimit
	}

	events, err := s.eventRepo.ListUpcoming(ctx, userID, time.Now(), limit)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to list upcoming events", err)
	}

	return &dto.EventListResponse{Events: toEventResponses(events)}, nil
}

// CreateEvent implements CalendarService
func (s *calendarService) CreateEvent(ctx context.Context, userID string, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &domain.CalendarEvent{
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		Type:         domain.EventType(req.Type),
		Date:         date,
		Description:  req.Description,
		Reminder:     domain.DefaultReminder(),
		Participants: req.Participants,
		DailyEntries: []domain.DailyEntry{},
	}
	if event.Participants == nil {
		event.Participants = []string{}
	}
	if req.Reminder != nil {
		event.Reminder = domain.Reminder{
			Enabled:       req.Reminder.Enabled,
			MinutesBefore: req.Reminder.MinutesBefore,
		}
	}
	if req.Recurring != nil {
		rec, err := parseRecurrence(req.Recurring)
		if err != nil {
			return nil, err
		}
		event.Recurring = rec
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, domain.NewUnavailableError("Failed to create event", err)
	}

	resp := toEventResponse(event)
	return &resp, nil
}

// UpdateEvent implements CalendarService. The patch is a shallow merge:
// present fields fully replace their counterparts, including nested objects.
func (s *calendarService) UpdateEvent(ctx context.Context, eventID, userID string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.loadOwnedEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			return nil, err
		}
		event.Date = date
	}
	if req.Type != nil {
		event.Type = domain.EventType(*req.Type)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Recurring != nil {
		rec, err := parseRecurrence(req.Recurring)
		if err != nil {
			return nil, err
		}
		event.Recurring = rec
	}
	if req.Participants != nil {
		event.Participants = *req.Participants
	}
	if req.Reminder != nil {
		event.Reminder = domain.Reminder{
			Enabled:       req.Reminder.Enabled,
			MinutesBefore: req.Reminder.MinutesBefore,
		}
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, domain.NewUnavailableError("Failed to update event", err)
	}

	resp := toEventResponse(event)
	return &resp, nil
}

// DeleteEvent implements CalendarService. Deletion is hard, no tombstone.
func (s *calendarService) DeleteEvent(ctx context.Context, eventID, userID string) error {
	deleted, err := s.eventRepo.Delete(ctx, eventID, userID)
	if err != nil {
		return domain.NewUnavailableError("Failed to delete event", err)
	}
	if !deleted {
		return domain.NewNotFoundError("Event not found")
	}
	return nil
}

// ExportICS implements CalendarService
func (s *calendarService) ExportICS(ctx context.Context, userID string) (*ICSExport, error) {
	events, err := s.eventRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load events for export", err)
	}

	return &ICSExport{
		Content:     BuildICS(events, time.Now()),
		Filename:    ICSFilename,
		ContentType: ICSContentType,
	}, nil
}

// Stats implements CalendarService
func (s *calendarService) Stats(ctx context.Context, userID string) (*dto.EventStatsResponse, error) {
	stats, err := s.eventRepo.Stats(ctx, userID, time.Now())
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to compute event stats", err)
	}

	return &dto.EventStatsResponse{
		Total:    stats.Total,
		Upcoming: stats.Upcoming,
		Past:     stats.Past,
		ByType:   stats.ByType,
	}, nil
}

// Suggestions implements CalendarService. When an assistant is configured
// its suggestions are used; any failure falls back to the static list.
func (s *calendarService) Suggestions(ctx context.Context, mode string) (*dto.SuggestionsResponse, error) {
	if !domain.ValidMode(mode) {
		return nil, domain.NewValidationError("mode must be love or friends")
	}

	if s.assistant != nil {
		if suggestions := s.assistantSuggestions(ctx, mode); len(suggestions) > 0 {
			return &dto.SuggestionsResponse{Suggestions: suggestions}, nil
		}
	}

	return &dto.SuggestionsResponse{Suggestions: fallbackSuggestions(mode)}, nil
}

// CreateFromSuggestion implements CalendarService. Events created from a
// suggestion get an enabled reminder by default.
func (s *calendarService) CreateFromSuggestion(ctx context.Context, userID string, req *dto.CreateFromSuggestionRequest) (*dto.EventResponse, error) {
	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}

	event := &domain.CalendarEvent{
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		Type:         domain.EventType(req.Type),
		Date:         date,
		Description:  req.Description,
		Reminder:     domain.Reminder{Enabled: true, MinutesBefore: 60},
		Participants: []string{},
		DailyEntries: []domain.DailyEntry{},
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, domain.NewUnavailableError("Failed to create event", err)
	}

	resp := toEventResponse(event)
	return &resp, nil
}

// UpsertDailyEntry implements CalendarService. Entry identity is the UTC
// calendar day; an existing entry for the same day is replaced in place.
func (s *calendarService) UpsertDailyEntry(ctx context.Context, eventID, userID string, req *dto.UpsertDailyEntryRequest) (*dto.EventResponse, error) {
	event, err := s.loadJournalEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.Mood != "" && !domain.ValidMood(domain.Mood(req.Mood)) {
		return nil, domain.NewValidationError("unknown mood: " + req.Mood)
	}

	entry := domain.DailyEntry{
		Date:   date,
		Memory: req.Memory,
		Notes:  req.Notes,
		Mood:   domain.Mood(req.Mood),
		Photos: req.Photos,
	}
	if entry.Photos == nil {
		entry.Photos = []string{}
	}

	event.UpsertDailyEntry(entry)

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, domain.NewUnavailableError("Failed to save daily entry", err)
	}

	resp := toEventResponse(event)
	return &resp, nil
}

// ListDailyEntries implements CalendarService. Entries are returned most
// recent first, the inverse of the event list order.
func (s *calendarService) ListDailyEntries(ctx context.Context, eventID, userID string) (*dto.DailyEntryListResponse, error) {
	event, err := s.loadJournalEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.DailyEntryResponse, 0, len(event.DailyEntries))
	for _, e := range event.DailyEntries {
		entries = append(entries, toDailyEntryResponse(e))
	}
	sortDailyEntriesDesc(entries)

	return &dto.DailyEntryListResponse{Entries: entries}, nil
}

// DeleteDailyEntry implements CalendarService. A day key with no entry is a
// no-op, not an error.
func (s *calendarService) DeleteDailyEntry(ctx context.Context, eventID, userID, dayKey string) (*dto.EventResponse, error) {
	if _, err := time.Parse("20060102", dayKey); err != nil {
		return nil, domain.NewValidationError("day key must be formatted YYYYMMDD")
	}

	event, err := s.loadJournalEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	if event.DeleteDailyEntry(dayKey) > 0 {
		if err := s.eventRepo.Update(ctx, event); err != nil {
			return nil, domain.NewUnavailableError("Failed to delete daily entry", err)
		}
	}

	resp := toEventResponse(event)
	return &resp, nil
}

func (s *calendarService) loadOwnedEvent(ctx context.Context, eventID, userID string) (*domain.CalendarEvent, error) {
	event, err := s.eventRepo.GetOwned(ctx, eventID, userID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load event", err)
	}
	if event == nil {
		return nil, domain.NewNotFoundError("Event not found")
	}
	return event, nil
}

// loadJournalEvent fetches the event regardless of owner so that journal
// operations can tell a missing event apart from someone else's.
func (s *calendarService) loadJournalEvent(ctx context.Context, eventID, userID string) (*domain.CalendarEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load event", err)
	}
	if event == nil {
		return nil, domain.NewNotFoundError("Event not found")
	}
	if event.UserID != userID {
		return nil, domain.NewForbiddenError("Event does not belong to caller")
	}
	return event, nil
}

func (s *calendarService) assistantSuggestions(ctx context.Context, mode string) []dto.EventSuggestion {
	l := logger.Get()

	systemPrompt := "You suggest calendar events for a relationship app. Respond with ONLY a JSON array of objects with fields title, type, description. Type must be one of: birthday, anniversary, date, event, reminder, memory."
	userPrompt := fmt.Sprintf("Suggest five %s events.", suggestionTone(mode))

	raw, err := s.assistant.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		l.Warn("assistant suggestions failed, using fallback", zap.Error(err))
		return nil
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end <= start {
		l.Warn("assistant suggestions unparseable", zap.String("response", raw))
		return nil
	}

	var suggestions []dto.EventSuggestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &suggestions); err != nil {
		l.Warn("assistant suggestions unparseable", zap.Error(err))
		return nil
	}

	valid := suggestions[:0]
	for _, sg := range suggestions {
		if sg.Title != "" && domain.ValidEventType(domain.EventType(sg.Type)) {
			valid = append(valid, sg)
		}
	}
	return valid
}

func suggestionTone(mode string) string {
	if mode == domain.ModeFriends {
		return "friendship"
	}
	return "romantic"
}

func fallbackSuggestions(mode string) []dto.EventSuggestion {
	if mode == domain.ModeFriends {
		return []dto.EventSuggestion{
			{Title: "Game night", Type: "event", Description: "Board games and snacks with the crew"},
			{Title: "Hiking trip", Type: "event", Description: "Pick a trail and make a day of it"},
			{Title: "Movie marathon", Type: "event", Description: "Back-to-back favorites at home"},
			{Title: "Friendship anniversary", Type: "anniversary", Description: "Celebrate the day you met"},
			{Title: "Catch-up dinner", Type: "date", Description: "A long overdue meal together"},
		}
	}
	return []dto.EventSuggestion{
		{Title: "Sunset picnic", Type: "date", Description: "Golden hour, a blanket, and good food"},
		{Title: "Cooking a new recipe together", Type: "date", Description: "Pick something neither of you has made"},
		{Title: "First-date anniversary", Type: "anniversary", Description: "Revisit where it all started"},
		{Title: "Stargazing night", Type: "date", Description: "Drive out of the city and look up"},
		{Title: "Memory jar evening", Type: "memory", Description: "Write down favorite shared moments"},
	}
}

func parseEventDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, domain.NewValidationError("date is required")
	}
	layouts := []string{time.RFC3339, "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.NewValidationError("date is not parseable: " + raw)
}

func parseRecurrence(req *dto.RecurrenceRequest) (*domain.Recurrence, error) {
	rec := &domain.Recurrence{Frequency: req.Frequency}
	if req.EndDate != "" {
		end, err := parseEventDate(req.EndDate)
		if err != nil {
			return nil, domain.NewValidationError("recurring.endDate is not parseable: " + req.EndDate)
		}
		rec.EndDate = &end
	}
	return rec, nil
}

func sortDailyEntriesDesc(entries []dto.DailyEntryResponse) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

func toEventResponses(events []*domain.CalendarEvent) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func toEventResponse(e *domain.CalendarEvent) dto.EventResponse {
	resp := dto.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Type:        string(e.Type),
		Date:        e.Date,
		Description: e.Description,
		Reminder: dto.ReminderRequest{
			Enabled:       e.Reminder.Enabled,
			MinutesBefore: e.Reminder.MinutesBefore,
		},
		Participants: e.Participants,
		DailyEntries: make([]dto.DailyEntryResponse, 0, len(e.DailyEntries)),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if resp.Participants == nil {
		resp.Participants = []string{}
	}
	if e.Recurring != nil {
		resp.Recurring = &dto.RecurrenceResponse{
			Frequency: e.Recurring.Frequency,
			EndDate:   e.Recurring.EndDate,
		}
	}
	for _, entry := range e.DailyEntries {
		resp.DailyEntries = append(resp.DailyEntries, toDailyEntryResponse(entry))
	}
	return resp
}

func toDailyEntryResponse(e domain.DailyEntry) dto.DailyEntryResponse {
	photos := e.Photos
	if photos == nil {
		photos = []string{}
	}
	return dto.DailyEntryResponse{
		Date:   e.Date,
		Memory: e.Memory,
		Notes:  e.Notes,
		Mood:   string(e.Mood),
		Photos: photos,
	}
}
