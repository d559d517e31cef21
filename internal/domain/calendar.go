package domain

import (
	"time"
)

// EventType is the fixed calendar event enumeration.
type EventType string

const (
	EventBirthday    EventType = "birthday"
	EventAnniversary EventType = "anniversary"
	EventDate        EventType = "date"
	EventGeneric     EventType = "event"
	EventReminder    EventType = "reminder"
	EventMemory      EventType = "memory"
)

// EventTypes lists every valid event type, in enumeration order.
func EventTypes() []EventType {
	return []EventType{EventBirthday, EventAnniversary, EventDate, EventGeneric, EventReminder, EventMemory}
}

// ValidEventType reports whether t is in the fixed enumeration.
func ValidEventType(t EventType) bool {
	switch t {
	case EventBirthday, EventAnniversary, EventDate, EventGeneric, EventReminder, EventMemory:
		return true
	}
	return false
}

// Mood is the journal mood enumeration.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodExcited  Mood = "excited"
	MoodPeaceful Mood = "peaceful"
	MoodRomantic Mood = "romantic"
)

// ValidMood reports whether m is a recognized mood. The empty mood is valid
// and means "unset".
func ValidMood(m Mood) bool {
	switch m {
	case "", MoodHappy, MoodSad, MoodExcited, MoodPeaceful, MoodRomantic:
		return true
	}
	return false
}

// Recurrence frequencies.
const (
	FreqYearly  = "yearly"
	FreqMonthly = "monthly"
	FreqWeekly  = "weekly"
	FreqDaily   = "daily"
)

// ValidFrequency reports whether f is a recognized recurrence frequency.
func ValidFrequency(f string) bool {
	switch f {
	case FreqYearly, FreqMonthly, FreqWeekly, FreqDaily:
		return true
	}
	return false
}

// Recurrence is an optional repeat rule on an event.
type Recurrence struct {
	Frequency string     `json:"frequency"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Reminder is a per-event notification setting.
type Reminder struct {
	Enabled       bool `json:"enabled"`
	MinutesBefore int  `json:"minutesBefore"`
}

// DefaultReminder is applied when an event is created without one.
func DefaultReminder() Reminder {
	return Reminder{Enabled: false, MinutesBefore: 60}
}

// DailyEntry is a per-calendar-day journal sub-record embedded in an event.
// Its identity within the event is the calendar day of Date, not an id.
type DailyEntry struct {
	Date   time.Time `json:"date"`
	Memory string    `json:"memory"`
	Notes  string    `json:"notes"`
	Mood   Mood      `json:"mood,omitempty"`
	Photos []string  `json:"photos"`
}

// DayKey truncates t to its UTC calendar day, rendered as the 8-character
// YYYYMMDD form. Callers addressing daily entries must canonicalize full
// timestamps to this form.
func DayKey(t time.Time) string {
	return t.UTC().Format("20060102")
}

// CalendarEvent is an owner-scoped dated event with an embedded journal.
type CalendarEvent struct {
	ID           string
	UserID       string
	Title        string
	Type         EventType
	Date         time.Time
	Recurring    *Recurrence
	Description  string
	Reminder     Reminder
	Participants []string
	DailyEntries []DailyEntry
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the event
func (e *CalendarEvent) Validate() error {
	var errs ValidationErrors
	if e.UserID == "" {
		errs = append(errs, NewMissingFieldError("userId"))
	}
	if e.Title == "" {
		errs = append(errs, NewMissingFieldError("title"))
	} else if len(e.Title) > 200 {
		errs = append(errs, NewOutOfRangeError("title", len(e.Title), 1, 200))
	}
	if !ValidEventType(e.Type) {
		errs = append(errs, NewInvalidFormatError("type", string(e.Type)))
	}
	if e.Date.IsZero() {
		errs = append(errs, NewMissingFieldError("date"))
	}
	if e.Recurring != nil && !ValidFrequency(e.Recurring.Frequency) {
		errs = append(errs, NewInvalidFormatError("recurring.frequency", e.Recurring.Frequency))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpsertDailyEntry inserts entry, or replaces the existing entry sharing the
// same calendar day in place, preserving its position in the list. At most
// one entry exists per day.
func (e *CalendarEvent) UpsertDailyEntry(entry DailyEntry) {
	key := DayKey(entry.Date)
	for i := range e.DailyEntries {
		if DayKey(e.DailyEntries[i].Date) == key {
			e.DailyEntries[i] = entry
			return
		}
	}
	e.DailyEntries = append(e.DailyEntries, entry)
}

// DeleteDailyEntry removes every entry whose calendar day equals dayKey and
// returns the number removed. A no-op when none match.
func (e *CalendarEvent) DeleteDailyEntry(dayKey string) int {
	kept := e.DailyEntries[:0]
	removed := 0
	for _, entry := range e.DailyEntries {
		if DayKey(entry.Date) == dayKey {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	e.DailyEntries = kept
	return removed
}
