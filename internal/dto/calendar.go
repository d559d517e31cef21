package dto

import "time"

// RecurrenceRequest is an optional recurrence rule on an event.
type RecurrenceRequest struct {
	Frequency string `json:"frequency"`
	EndDate   string `json:"endDate,omitempty"`
}

// ReminderRequest configures the reminder on an event.
type ReminderRequest struct {
	Enabled       bool `json:"enabled"`
	MinutesBefore int  `json:"minutesBefore"`
}

// CreateEventRequest creates a calendar event.
type CreateEventRequest struct {
	Title        string             `json:"title"`
	Date         string             `json:"date"`
	Type         string             `json:"type"`
	Description  string             `json:"description,omitempty"`
	Recurring    *RecurrenceRequest `json:"recurring,omitempty"`
	Participants []string           `json:"participants,omitempty"`
	Reminder     *ReminderRequest   `json:"reminder,omitempty"`
}

// UpdateEventRequest is a shallow patch over an existing event. Nil fields
// are left untouched; present fields fully replace their counterparts.
type UpdateEventRequest struct {
	Title        *string            `json:"title,omitempty"`
	Date         *string            `json:"date,omitempty"`
	Type         *string            `json:"type,omitempty"`
	Description  *string            `json:"description,omitempty"`
	Recurring    *RecurrenceRequest `json:"recurring,omitempty"`
	Participants *[]string          `json:"participants,omitempty"`
	Reminder     *ReminderRequest   `json:"reminder,omitempty"`
}

// RecurrenceResponse mirrors RecurrenceRequest in responses.
type RecurrenceResponse struct {
	Frequency string     `json:"frequency"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// DailyEntryResponse is one per-day journal entry of an event.
type DailyEntryResponse struct {
	Date   time.Time `json:"date"`
	Memory string    `json:"memory"`
	Notes  string    `json:"notes"`
	Mood   string    `json:"mood,omitempty"`
	Photos []string  `json:"photos"`
}

// EventResponse is one calendar event.
type EventResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Type         string               `json:"type"`
	Date         time.Time            `json:"date"`
	Recurring    *RecurrenceResponse  `json:"recurring,omitempty"`
	Description  string               `json:"description,omitempty"`
	Reminder     ReminderRequest      `json:"reminder"`
	Participants []string             `json:"participants"`
	DailyEntries []DailyEntryResponse `json:"dailyEntries"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// EventListResponse lists events.
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// EventStatsResponse is the per-owner event census.
type EventStatsResponse struct {
	Total    int            `json:"total"`
	Upcoming int            `json:"upcoming"`
	Past     int            `json:"past"`
	ByType   map[string]int `json:"byType"`
}

// UpsertDailyEntryRequest adds or replaces the journal entry for one day.
type UpsertDailyEntryRequest struct {
	Date   string   `json:"date"`
	Memory string   `json:"memory,omitempty"`
	Notes  string   `json:"notes,omitempty"`
	Mood   string   `json:"mood,omitempty"`
	Photos []string `json:"photos,omitempty"`
}

// DailyEntryListResponse lists an event's journal entries.
type DailyEntryListResponse struct {
	Entries []DailyEntryResponse `json:"entries"`
}

// SuggestionsRequest asks for event ideas for a mode.
type SuggestionsRequest struct {
	Mode string `json:"mode"`
}

// EventSuggestion is one suggested event.
type EventSuggestion struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// SuggestionsResponse lists suggested events.
type SuggestionsResponse struct {
	Suggestions []EventSuggestion `json:"suggestions"`
}

// CreateFromSuggestionRequest creates an event from a suggestion.
type CreateFromSuggestionRequest struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
}
