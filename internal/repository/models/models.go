package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	return scanJSON(value, s, func() { *s = StringSlice{} })
}

// Answer mirrors one recorded quiz answer inside the answers JSON column.
type Answer struct {
	QuestionID     int    `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
	IconEmoji      string `json:"iconEmoji"`
	Score          int    `json:"score"`
}

// AnswerList stores recorded answers as a JSON text column.
type AnswerList []Answer

func (a AnswerList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (a *AnswerList) Scan(value interface{}) error {
	return scanJSON(value, a, func() { *a = AnswerList{} })
}

// DailyEntry mirrors one journal sub-record inside the daily_entries JSON
// column. Within one event there is at most one entry per calendar day.
type DailyEntry struct {
	Date   time.Time `json:"date"`
	Memory string    `json:"memory"`
	Notes  string    `json:"notes"`
	Mood   string    `json:"mood,omitempty"`
	Photos []string  `json:"photos"`
}

// DailyEntryList stores journal entries as a JSON text column.
type DailyEntryList []DailyEntry

func (d DailyEntryList) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (d *DailyEntryList) Scan(value interface{}) error {
	return scanJSON(value, d, func() { *d = DailyEntryList{} })
}

// Reminder stores the per-event notification setting as a JSON text column.
type Reminder struct {
	Enabled       bool `json:"enabled"`
	MinutesBefore int  `json:"minutesBefore"`
}

func (r Reminder) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (r *Reminder) Scan(value interface{}) error {
	return scanJSON(value, r, func() { *r = Reminder{} })
}

// scanJSON decodes a TEXT/BLOB JSON column. DB NULL, the empty string and a
// literal "null" all decode to the zero value via reset.
func scanJSON(value interface{}, dest interface{}, reset func()) error {
	if value == nil {
		reset()
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("scanJSON: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		reset()
		return nil
	}

	return json.Unmarshal(bytesToParse, dest)
}

// User row.
type User struct {
	ID              string         `db:"id"`
	Name            string         `db:"name"`
	Email           string         `db:"email"`
	Phone           string         `db:"phone"`
	PasswordHash    string         `db:"password_hash"`
	DOB             time.Time      `db:"dob"`
	Gender          sql.NullString `db:"gender"`
	Pronouns        sql.NullString `db:"pronouns"`
	Location        sql.NullString `db:"location"`
	Bio             sql.NullString `db:"bio"`
	Interests       StringSlice    `db:"interests"`
	ProfilePhotos   StringSlice    `db:"profile_photos"`
	ModeDefault     string         `db:"mode_default"`
	IsEmailVerified bool           `db:"is_email_verified"`
	IsPhoneVerified bool           `db:"is_phone_verified"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
	DeletedAt       sql.NullTime   `db:"deleted_at"`
}

// PersonalityQuiz row. Answers and the sharer list are JSON columns so each
// submit is a single-row read-modify-write, which is where the documented
// last-write-wins semantics come from.
type PersonalityQuiz struct {
	ID              string       `db:"id"`
	UserID          string       `db:"user_id"`
	Mode            string       `db:"mode"`
	ShareCode       string       `db:"share_code"`
	SharedWith      StringSlice  `db:"shared_with"`
	Answers         AnswerList   `db:"answers"`
	TotalScore      int          `db:"total_score"`
	PersonalityType string       `db:"personality_type"`
	Completed       bool         `db:"completed"`
	CompletedAt     sql.NullTime `db:"completed_at"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}

// CalendarEvent row. Recurring is a nullable JSON column; Participants and
// DailyEntries are JSON columns.
type CalendarEvent struct {
	ID           string         `db:"id"`
	UserID       string         `db:"user_id"`
	Title        string         `db:"title"`
	Type         string         `db:"type"`
	Date         time.Time      `db:"date"`
	Recurring    sql.NullString `db:"recurring"`
	Description  sql.NullString `db:"description"`
	Reminder     Reminder       `db:"reminder"`
	Participants StringSlice    `db:"participants"`
	DailyEntries DailyEntryList `db:"daily_entries"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Chat row. A chat is a two-party conversation; the pair is stored in two
// columns with a uniqueness constraint on (participant_a, participant_b, mode).
type Chat struct {
	ID            string         `db:"id"`
	Mode          string         `db:"mode"`
	ParticipantA  string         `db:"participant_a"`
	ParticipantB  string         `db:"participant_b"`
	LastMessageID sql.NullString `db:"last_message_id"`
	LastMessageAt sql.NullTime   `db:"last_message_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Message row.
type Message struct {
	ID          string       `db:"id"`
	ChatID      string       `db:"chat_id"`
	SenderID    string       `db:"sender_id"`
	Content     string       `db:"content"`
	MessageType string       `db:"message_type"`
	Encrypted   bool         `db:"encrypted"`
	ReadAt      sql.NullTime `db:"read_at"`
	CreatedAt   time.Time    `db:"created_at"`
}
