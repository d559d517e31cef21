package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"loves-api/internal/domain"
	"loves-api/internal/repository/models"
	"loves-api/internal/util"

	"github.com/jmoiron/sqlx"
)

// ChatRepository defines persistence for chats and their messages.
type ChatRepository interface {
	// FindByParticipants looks up the chat for an unordered user pair in the
	// given mode; (nil, nil) when none exists.
	FindByParticipants(ctx context.Context, userA, userB, mode string) (*domain.Chat, error)
	CreateChat(ctx context.Context, chat *domain.Chat) error
	GetChatByID(ctx context.Context, id string) (*domain.Chat, error)
	ListChatsByUser(ctx context.Context, userID string, limit int) ([]*domain.Chat, error)
	CreateMessage(ctx context.Context, message *domain.Message) error
	// ListMessages returns messages newest first.
	ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*domain.Message, error)
	// MarkMessagesRead marks all unread messages not sent by readerID.
	MarkMessagesRead(ctx context.Context, chatID, readerID string, at time.Time) error
	SetLastMessage(ctx context.Context, chatID, messageID string, at time.Time) error
}

type sqlxChatRepository struct {
	db *sqlx.DB
}

// NewSQLXChatRepository creates a new instance of sqlxChatRepository.
func NewSQLXChatRepository(db *sqlx.DB) ChatRepository {
	return &sqlxChatRepository{db: db}
}

const chatColumns = `id, mode, participant_a, participant_b, last_message_id,
	last_message_at, created_at, updated_at`

const messageColumns = `id, chat_id, sender_id, content, message_type, encrypted,
	read_at, created_at`

func (r *sqlxChatRepository) FindByParticipants(ctx context.Context, userA, userB, mode string) (*domain.Chat, error) {
	var model models.Chat
	query := `SELECT ` + chatColumns + ` FROM chats
	          WHERE mode = ?
	            AND ((participant_a = ? AND participant_b = ?)
	              OR (participant_a = ? AND participant_b = ?))`

	err := r.db.GetContext(ctx, &model, query, mode, userA, userB, userB, userA)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find chat by participants: %w", err)
	}
	return toDomainChat(&model), nil
}

func (r *sqlxChatRepository) CreateChat(ctx context.Context, chat *domain.Chat) error {
	model := fromDomainChat(chat)
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now

	query := `INSERT INTO chats (` + chatColumns + `)
	          VALUES (:id, :mode, :participant_a, :participant_b, :last_message_id,
	                  :last_message_at, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}

	chat.ID = model.ID
	chat.CreatedAt = model.CreatedAt
	chat.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *sqlxChatRepository) GetChatByID(ctx context.Context, id string) (*domain.Chat, error) {
	var model models.Chat
	query := `SELECT ` + chatColumns + ` FROM chats WHERE id = ?`

	err := r.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat by id %s: %w", id, err)
	}
	return toDomainChat(&model), nil
}

func (r *sqlxChatRepository) ListChatsByUser(ctx context.Context, userID string, limit int) ([]*domain.Chat, error) {
	var rows []models.Chat
	query := `SELECT ` + chatColumns + ` FROM chats
	          WHERE participant_a = ? OR participant_b = ?
	          ORDER BY last_message_at DESC
	          LIMIT ?`

	if err := r.db.SelectContext(ctx, &rows, query, userID, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list chats for user %s: %w", userID, err)
	}

	chats := make([]*domain.Chat, 0, len(rows))
	for i := range rows {
		chats = append(chats, toDomainChat(&rows[i]))
	}
	return chats, nil
}

func (r *sqlxChatRepository) CreateMessage(ctx context.Context, message *domain.Message) error {
	model := fromDomainMessage(message)
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	model.CreatedAt = time.Now()

	query := `INSERT INTO messages (` + messageColumns + `)
	          VALUES (:id, :chat_id, :sender_id, :content, :message_type, :encrypted,
	                  :read_at, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	message.ID = model.ID
	message.CreatedAt = model.CreatedAt
	return nil
}

func (r *sqlxChatRepository) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*domain.Message, error) {
	var rows []models.Message
	query := `SELECT ` + messageColumns + ` FROM messages
	          WHERE chat_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?`

	if err := r.db.SelectContext(ctx, &rows, query, chatID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list messages for chat %s: %w", chatID, err)
	}

	messages := make([]*domain.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, toDomainMessage(&rows[i]))
	}
	return messages, nil
}

func (r *sqlxChatRepository) MarkMessagesRead(ctx context.Context, chatID, readerID string, at time.Time) error {
	query := `UPDATE messages SET read_at = ?
	          WHERE chat_id = ? AND sender_id != ? AND read_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, at, chatID, readerID); err != nil {
		return fmt.Errorf("failed to mark messages read for chat %s: %w", chatID, err)
	}
	return nil
}

func (r *sqlxChatRepository) SetLastMessage(ctx context.Context, chatID, messageID string, at time.Time) error {
	query := `UPDATE chats SET last_message_id = ?, last_message_at = ?, updated_at = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, messageID, at, time.Now(), chatID); err != nil {
		return fmt.Errorf("failed to set last message for chat %s: %w", chatID, err)
	}
	return nil
}

func toDomainChat(m *models.Chat) *domain.Chat {
	if m == nil {
		return nil
	}
	return &domain.Chat{
		ID:            m.ID,
		Mode:          m.Mode,
		Participants:  [2]string{m.ParticipantA, m.ParticipantB},
		LastMessageID: m.LastMessageID.String,
		LastMessageAt: util.NullTimeToPtr(m.LastMessageAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromDomainChat(c *domain.Chat) *models.Chat {
	return &models.Chat{
		ID:            c.ID,
		Mode:          c.Mode,
		ParticipantA:  c.Participants[0],
		ParticipantB:  c.Participants[1],
		LastMessageID: util.StringToNullString(c.LastMessageID),
		LastMessageAt: util.TimePtrToNullTime(c.LastMessageAt),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toDomainMessage(m *models.Message) *domain.Message {
	if m == nil {
		return nil
	}
	return &domain.Message{
		ID:          m.ID,
		ChatID:      m.ChatID,
		SenderID:    m.SenderID,
		Content:     m.Content,
		MessageType: m.MessageType,
		Encrypted:   m.Encrypted,
		ReadAt:      util.NullTimeToPtr(m.ReadAt),
		CreatedAt:   m.CreatedAt,
	}
}

func fromDomainMessage(msg *domain.Message) *models.Message {
	return &models.Message{
		ID:          msg.ID,
		ChatID:      msg.ChatID,
		SenderID:    msg.SenderID,
		Content:     msg.Content,
		MessageType: msg.MessageType,
		Encrypted:   msg.Encrypted,
		ReadAt:      util.TimePtrToNullTime(msg.ReadAt),
		CreatedAt:   msg.CreatedAt,
	}
}
