package service

import (
	"context"
	"time"

	"loves-api/internal/domain"
	"loves-api/internal/repository"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, quiz *domain.PersonalityQuiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id string) (*domain.PersonalityQuiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PersonalityQuiz), args.Error(1)
}

func (m *MockQuizRepository) GetByShareCode(ctx context.Context, shareCode string) (*domain.PersonalityQuiz, error) {
	args := m.Called(ctx, shareCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PersonalityQuiz), args.Error(1)
}

func (m *MockQuizRepository) Update(ctx context.Context, quiz *domain.PersonalityQuiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) ListByUser(ctx context.Context, userID string) ([]*domain.PersonalityQuiz, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PersonalityQuiz), args.Error(1)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	args := m.Called(ctx, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetPublicByIDs(ctx context.Context, ids []string) ([]domain.PublicUser, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PublicUser), args.Error(1)
}

// --- MockCalendarRepository ---
type MockCalendarRepository struct {
	mock.Mock
}

func (m *MockCalendarRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockCalendarRepository) GetOwned(ctx context.Context, id, userID string) (*domain.CalendarEvent, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalendarEvent), args.Error(1)
}

func (m *MockCalendarRepository) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalendarEvent), args.Error(1)
}

func (m *MockCalendarRepository) Update(ctx context.Context, event *domain.CalendarEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockCalendarRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCalendarRepository) List(ctx context.Context, userID string, filter repository.EventFilter) ([]*domain.CalendarEvent, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CalendarEvent), args.Error(1)
}

func (m *MockCalendarRepository) ListUpcoming(ctx context.Context, userID string, from time.Time, limit int) ([]*domain.CalendarEvent, error) {
	args := m.Called(ctx, userID, from, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CalendarEvent), args.Error(1)
}

func (m *MockCalendarRepository) ListAll(ctx context.Context, userID string) ([]*domain.CalendarEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CalendarEvent), args.Error(1)
}

func (m *MockCalendarRepository) Stats(ctx context.Context, userID string, now time.Time) (*repository.EventStats, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.EventStats), args.Error(1)
}

// --- MockChatRepository ---
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) FindByParticipants(ctx context.Context, userA, userB, mode string) (*domain.Chat, error) {
	args := m.Called(ctx, userA, userB, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *MockChatRepository) CreateChat(ctx context.Context, chat *domain.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockChatRepository) GetChatByID(ctx context.Context, id string) (*domain.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chat), args.Error(1)
}

func (m *MockChatRepository) ListChatsByUser(ctx context.Context, userID string, limit int) ([]*domain.Chat, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Chat), args.Error(1)
}

func (m *MockChatRepository) CreateMessage(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockChatRepository) ListMessages(ctx context.Context, chatID string, limit, offset int) ([]*domain.Message, error) {
	args := m.Called(ctx, chatID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Message), args.Error(1)
}

func (m *MockChatRepository) MarkMessagesRead(ctx context.Context, chatID, readerID string, at time.Time) error {
	args := m.Called(ctx, chatID, readerID, at)
	return args.Error(0)
}

func (m *MockChatRepository) SetLastMessage(ctx context.Context, chatID, messageID string, at time.Time) error {
	args := m.Called(ctx, chatID, messageID, at)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockOTPService ---
type MockOTPService struct {
	mock.Mock
}

func (m *MockOTPService) Store(ctx context.Context, kind, subject, code string) error {
	args := m.Called(ctx, kind, subject, code)
	return args.Error(0)
}

func (m *MockOTPService) Verify(ctx context.Context, kind, subject, code string) (bool, error) {
	args := m.Called(ctx, kind, subject, code)
	return args.Bool(0), args.Error(1)
}

// --- MockNotifier ---
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func (m *MockNotifier) SendSMS(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

// --- MockAssistant ---
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}
