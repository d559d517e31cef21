package domain

import "time"

// Message types.
const (
	MessageText  = "text"
	MessageImage = "image"
)

// Chat is a two-party conversation in one mode. The same pair of users may
// hold one love chat and one friends chat.
type Chat struct {
	ID            string
	Mode          string
	Participants  [2]string
	LastMessageID string
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasParticipant reports whether userID is one of the two chat members.
func (c *Chat) HasParticipant(userID string) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

// Message is one chat message.
type Message struct {
	ID          string
	ChatID      string
	SenderID    string
	Content     string
	MessageType string
	Encrypted   bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// Validate validates the message
func (m *Message) Validate() error {
	if m.ChatID == "" {
		return NewValidationError("chat ID is required")
	}
	if m.SenderID == "" {
		return NewValidationError("sender ID is required")
	}
	if m.Content == "" {
		return NewValidationError("content is required")
	}
	return nil
}
