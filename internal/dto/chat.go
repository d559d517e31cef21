package dto

import "time"

// CreateChatRequest creates or retrieves the chat with another user.
type CreateChatRequest struct {
	ParticipantID string `json:"participantId"`
	Mode          string `json:"mode"`
}

// ChatResponse is one chat with resolved participants.
type ChatResponse struct {
	ID            string               `json:"id"`
	Mode          string               `json:"mode"`
	Participants  []PublicUserResponse `json:"participants"`
	LastMessageAt *time.Time           `json:"lastMessageAt,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ChatListResponse lists the caller's chats.
type ChatListResponse struct {
	Chats []ChatResponse `json:"chats"`
}

// SendMessageRequest posts a message into a chat.
type SendMessageRequest struct {
	Content     string `json:"content"`
	MessageType string `json:"messageType,omitempty"`
}

// MessageResponseItem is one chat message.
type MessageResponseItem struct {
	ID          string     `json:"id"`
	ChatID      string     `json:"chatId"`
	SenderID    string     `json:"senderId"`
	Content     string     `json:"content"`
	MessageType string     `json:"messageType"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// MessageListResponse lists messages oldest first.
type MessageListResponse struct {
	Messages []MessageResponseItem `json:"messages"`
}

// ChatOTPRequest asks for a connection-approval code to be sent.
type ChatOTPRequest struct {
	TargetUserID string `json:"targetUserId"`
}

// ChatOTPVerifyRequest confirms a connection-approval code.
type ChatOTPVerifyRequest struct {
	TargetUserID string `json:"targetUserId"`
	Code         string `json:"code"`
}

// AssistantRequest asks the chat assistant for helper content.
type AssistantRequest struct {
	Kind string `json:"kind"` // tips, ideas, icebreakers, advice
	Mode string `json:"mode"`
}

// AssistantResponse carries the assistant's suggestions.
type AssistantResponse struct {
	Suggestions []string `json:"suggestions"`
}
