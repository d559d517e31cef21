package service

import (
	"context"
	"strings"
	"time"

	"loves-api/internal/domain"
	"loves-api/internal/dto"
	"loves-api/internal/logger"
	"loves-api/internal/repository"
	"loves-api/internal/util"

	"go.uber.org/zap"
)

const (
	chatListLimit      = 50
	defaultMessagePage = 50
)

// ChatService defines the interface for chat operations
type ChatService interface {
	CreateOrGetChat(ctx context.Context, userID string, req *dto.CreateChatRequest) (*dto.ChatResponse, error)
	RequestOTP(ctx context.Context, userID string, req *dto.ChatOTPRequest) error
	VerifyOTP(ctx context.Context, userID string, req *dto.ChatOTPVerifyRequest) (bool, error)
	ListChats(ctx context.Context, userID string) (*dto.ChatListResponse, error)
	ListMessages(ctx context.Context, chatID, userID string, limit, offset int) (*dto.MessageListResponse, error)
	SendMessage(ctx context.Context, chatID, userID string, req *dto.SendMessageRequest) (*dto.MessageResponseItem, error)
	MarkRead(ctx context.Context, chatID, userID string) error
	Assistant(ctx context.Context, req *dto.AssistantRequest) (*dto.AssistantResponse, error)
}

// chatService implements ChatService
type chatService struct {
	chatRepo  repository.ChatRepository
	userRepo  repository.UserRepository
	otp       OTPService
	notifier  domain.Notifier
	assistant domain.Assistant
}

// NewChatService creates a new instance of chatService
func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	otp OTPService,
	notifier domain.Notifier,
	assistant domain.Assistant,
) ChatService {
	return &chatService{
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		otp:       otp,
		notifier:  notifier,
		assistant: assistant,
	}
}

// CreateOrGetChat implements ChatService. The chat for an unordered user
// pair and mode is a singleton; repeated calls return the existing chat.
func (s *chatService) CreateOrGetChat(ctx context.Context, userID string, req *dto.CreateChatRequest) (*dto.ChatResponse, error) {
	if req.ParticipantID == "" {
		return nil, domain.NewValidationError("participantId is required")
	}
	if req.ParticipantID == userID {
		return nil, domain.NewValidationError("cannot open a chat with yourself")
	}
	if !domain.ValidMode(req.Mode) {
		return nil, domain.NewValidationError("mode must be love or friends")
	}

	other, err := s.userRepo.GetUserByID(ctx, req.ParticipantID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load participant", err)
	}
	if other == nil {
		return nil, domain.NewNotFoundError("Participant not found")
	}

	chat, err := s.chatRepo.FindByParticipants(ctx, userID, req.ParticipantID, req.Mode)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to look up chat", err)
	}
	if chat == nil {
		chat = &domain.Chat{
			Mode:         req.Mode,
			Participants: [2]string{userID, req.ParticipantID},
		}
		if err := s.chatRepo.CreateChat(ctx, chat); err != nil {
			return nil, domain.NewUnavailableError("Failed to create chat", err)
		}
	}

	return s.toChatResponse(ctx, chat)
}

// RequestOTP implements ChatService. The connection-approval code is
// emailed to the target user.
func (s *chatService) RequestOTP(ctx context.Context, userID string, req *dto.ChatOTPRequest) error {
	if req.TargetUserID == "" {
		return domain.NewValidationError("targetUserId is required")
	}

	target, err := s.userRepo.GetUserByID(ctx, req.TargetUserID)
	if err != nil {
		return domain.NewUnavailableError("Failed to load target user", err)
	}
	if target == nil {
		return domain.NewNotFoundError("Target user not found")
	}

	code, err := util.NewOTP()
	if err != nil {
		return domain.NewInternalError("Failed to generate code", err)
	}
	if err := s.otp.Store(ctx, OTPKindChatConnect, chatOTPSubject(userID, req.TargetUserID), code); err != nil {
		return err
	}

	if err := s.notifier.SendEmail(ctx, target.Email, "Chat connection request",
		"Your connection code: "+code); err != nil {
		logger.Get().Warn("chat code delivery failed", zap.Error(err))
	}
	return nil
}

// VerifyOTP implements ChatService
func (s *chatService) VerifyOTP(ctx context.Context, userID string, req *dto.ChatOTPVerifyRequest) (bool, error) {
	if req.TargetUserID == "" || req.Code == "" {
		return false, domain.NewValidationError("targetUserId and code are required")
	}
	return s.otp.Verify(ctx, OTPKindChatConnect, chatOTPSubject(userID, req.TargetUserID), req.Code)
}

// ListChats implements ChatService
func (s *chatService) ListChats(ctx context.Context, userID string) (*dto.ChatListResponse, error) {
	chats, err := s.chatRepo.ListChatsByUser(ctx, userID, chatListLimit)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to list chats", err)
	}

	out := make([]dto.ChatResponse, 0, len(chats))
	for _, chat := range chats {
		resp, err := s.toChatResponse(ctx, chat)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return &dto.ChatListResponse{Chats: out}, nil
}

// ListMessages implements ChatService. Messages are fetched newest first
// and reversed so the page reads oldest first.
func (s *chatService) ListMessages(ctx context.Context, chatID, userID string, limit, offset int) (*dto.MessageListResponse, error) {
	if _, err := s.loadMemberChat(ctx, chatID, userID); err != nil {
		return nil, err
	}

	if limit < 1 {
		limit = defaultMessagePage
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := s.chatRepo.ListMessages(ctx, chatID, limit, offset)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to list messages", err)
	}

	items := make([]dto.MessageResponseItem, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		items = append(items, toMessageResponse(messages[i]))
	}
	return &dto.MessageListResponse{Messages: items}, nil
}

// SendMessage implements ChatService
func (s *chatService) SendMessage(ctx context.Context, chatID, userID string, req *dto.SendMessageRequest) (*dto.MessageResponseItem, error) {
	if _, err := s.loadMemberChat(ctx, chatID, userID); err != nil {
		return nil, err
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = domain.MessageText
	}

	message := &domain.Message{
		ChatID:      chatID,
		SenderID:    userID,
		Content:     strings.TrimSpace(req.Content),
		MessageType: messageType,
	}
	if err := message.Validate(); err != nil {
		return nil, err
	}

	if err := s.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, domain.NewUnavailableError("Failed to send message", err)
	}
	if err := s.chatRepo.SetLastMessage(ctx, chatID, message.ID, message.CreatedAt); err != nil {
		return nil, domain.NewUnavailableError("Failed to update chat", err)
	}

	resp := toMessageResponse(message)
	return &resp, nil
}

// MarkRead implements ChatService
func (s *chatService) MarkRead(ctx context.Context, chatID, userID string) error {
	if _, err := s.loadMemberChat(ctx, chatID, userID); err != nil {
		return err
	}
	if err := s.chatRepo.MarkMessagesRead(ctx, chatID, userID, time.Now()); err != nil {
		return domain.NewUnavailableError("Failed to mark messages read", err)
	}
	return nil
}

// Assistant implements ChatService. Helper content comes from the
// configured assistant when available, otherwise from mode-aware canned
// lists.
func (s *chatService) Assistant(ctx context.Context, req *dto.AssistantRequest) (*dto.AssistantResponse, error) {
	kind := req.Kind
	if !validAssistantKind(kind) {
		return nil, domain.NewValidationError("kind must be one of tips, ideas, icebreakers, advice")
	}
	mode := req.Mode
	if !domain.ValidMode(mode) {
		return nil, domain.NewValidationError("mode must be love or friends")
	}

	if s.assistant != nil {
		if suggestions := s.assistantContent(ctx, kind, mode); len(suggestions) > 0 {
			return &dto.AssistantResponse{Suggestions: suggestions}, nil
		}
	}
	return &dto.AssistantResponse{Suggestions: fallbackAssistantContent(kind, mode)}, nil
}

func (s *chatService) assistantContent(ctx context.Context, kind, mode string) []string {
	systemPrompt := "You help people connect in a relationship app. Respond with exactly five short suggestions, one per line, no numbering."
	userPrompt := "Give " + kind + " for a " + suggestionTone(mode) + " connection."

	raw, err := s.assistant.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		logger.Get().Warn("chat assistant failed, using fallback", zap.Error(err))
		return nil
	}

	var suggestions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			suggestions = append(suggestions, line)
		}
	}
	return suggestions
}

func (s *chatService) loadMemberChat(ctx context.Context, chatID, userID string) (*domain.Chat, error) {
	chat, err := s.chatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load chat", err)
	}
	if chat == nil {
		return nil, domain.NewNotFoundError("Chat not found")
	}
	if !chat.HasParticipant(userID) {
		return nil, domain.NewForbiddenError("Caller is not a chat participant")
	}
	return chat, nil
}

func (s *chatService) toChatResponse(ctx context.Context, chat *domain.Chat) (*dto.ChatResponse, error) {
	publicUsers, err := s.userRepo.GetPublicByIDs(ctx, chat.Participants[:])
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to resolve participants", err)
	}

	participants := make([]dto.PublicUserResponse, 0, len(publicUsers))
	for _, pu := range publicUsers {
		participants = append(participants, toPublicUserResponse(pu))
	}

	return &dto.ChatResponse{
		ID:            chat.ID,
		Mode:          chat.Mode,
		Participants:  participants,
		LastMessageAt: chat.LastMessageAt,
		CreatedAt:     chat.CreatedAt,
	}, nil
}

// chatOTPSubject keys a connection code by the unordered user pair.
func chatOTPSubject(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

func validAssistantKind(kind string) bool {
	switch kind {
	case "tips", "ideas", "icebreakers", "advice":
		return true
	}
	return false
}

func toMessageResponse(m *domain.Message) dto.MessageResponseItem {
	return dto.MessageResponseItem{
		ID:          m.ID,
		ChatID:      m.ChatID,
		SenderID:    m.SenderID,
		Content:     m.Content,
		MessageType: m.MessageType,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}

func fallbackAssistantContent(kind, mode string) []string {
	friends := mode == domain.ModeFriends
	switch kind {
	case "tips":
		if friends {
			return []string{
				"Check in regularly, not just when you need something",
				"Remember the small details they mention",
				"Celebrate their wins like your own",
				"Be honest when something bothers you",
				"Make time even when life gets busy",
			}
		}
		return []string{
			"Listen to understand, not to reply",
			"Say what you appreciate out loud",
			"Keep small rituals, they add up",
			"Disagree kindly and repair quickly",
			"Ask about their day and mean it",
		}
	case "ideas":
		if friends {
			return []string{
				"Start a two-person book or podcast club",
				"Cook the same recipe over a video call",
				"Plan a day trip somewhere neither of you has been",
				"Trade playlists and talk about them",
				"Take a class together, anything new",
			}
		}
		return []string{
			"Recreate your first date",
			"Write each other a letter to open in a year",
			"Cook a three-course dinner together",
			"Plan a surprise evening, alternating turns",
			"Make a photo album of your favorite moments",
		}
	case "icebreakers":
		if friends {
			return []string{
				"What's the best thing that happened to you this week?",
				"If you could master any skill overnight, what would it be?",
				"What's a movie you can rewatch forever?",
				"What did you want to be when you were ten?",
				"What's your most unpopular opinion?",
			}
		}
		return []string{
			"What's something small that always makes your day?",
			"Where would you go if we left tomorrow?",
			"What song feels like you?",
			"What's the best meal you've ever had?",
			"What are you secretly proud of?",
		}
	default: // advice
		if friends {
			return []string{
				"Say the hard thing gently and early",
				"Assume good intent before reacting",
				"Apologize without a 'but'",
				"Let them be different from you",
				"Show up when it matters most",
			}
		}
		return []string{
			"Name the feeling before solving the problem",
			"Pick your moment to talk, not mid-argument",
			"Thank them for things you usually overlook",
			"Protect time that is just for the two of you",
			"Ask what support looks like for them",
		}
	}
}
