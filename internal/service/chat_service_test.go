package service

import (
	"context"
	"testing"

	"loves-api/internal/domain"
	"loves-api/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChatService(chatRepo *MockChatRepository, userRepo *MockUserRepository, otp *MockOTPService, notifier *MockNotifier, assistant domain.Assistant) ChatService {
	return NewChatService(chatRepo, userRepo, otp, notifier, assistant)
}

func TestCreateOrGetChatRejectsSelfChat(t *testing.T) {
	chatRepo := new(MockChatRepository)
	svc := newChatService(chatRepo, new(MockUserRepository), new(MockOTPService), new(MockNotifier), nil)

	_, err := svc.CreateOrGetChat(context.Background(), "user-1", &dto.CreateChatRequest{
		ParticipantID: "user-1",
		Mode:          domain.ModeLove,
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
	chatRepo.AssertNotCalled(t, "CreateChat", mock.Anything, mock.Anything)
}

func TestCreateOrGetChatUnknownParticipant(t *testing.T) {
	chatRepo := new(MockChatRepository)
	userRepo := new(MockUserRepository)
	svc := newChatService(chatRepo, userRepo, new(MockOTPService), new(MockNotifier), nil)

	userRepo.On("GetUserByID", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.CreateOrGetChat(context.Background(), "user-1", &dto.CreateChatRequest{
		ParticipantID: "ghost",
		Mode:          domain.ModeLove,
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestCreateOrGetChatReturnsExisting(t *testing.T) {
	chatRepo := new(MockChatRepository)
	userRepo := new(MockUserRepository)
	svc := newChatService(chatRepo, userRepo, new(MockOTPService), new(MockNotifier), nil)

	existing := &domain.Chat{
		ID:           "chat-1",
		Mode:         domain.ModeLove,
		Participants: [2]string{"user-2", "user-1"},
	}
	userRepo.On("GetUserByID", mock.Anything, "user-2").Return(&domain.User{ID: "user-2"}, nil)
	chatRepo.On("FindByParticipants", mock.Anything, "user-1", "user-2", domain.ModeLove).Return(existing, nil)
	userRepo.On("GetPublicByIDs", mock.Anything, []string{"user-2", "user-1"}).Return([]domain.PublicUser{
		{ID: "user-2", Name: "Sam"}, {ID: "user-1", Name: "Alex"},
	}, nil)

	resp, err := svc.CreateOrGetChat(context.Background(), "user-1", &dto.CreateChatRequest{
		ParticipantID: "user-2",
		Mode:          domain.ModeLove,
	})

	require.NoError(t, err)
	assert.Equal(t, "chat-1", resp.ID)
	assert.Len(t, resp.Participants, 2)
	chatRepo.AssertNotCalled(t, "CreateChat", mock.Anything, mock.Anything)
}

func TestCreateOrGetChatCreatesWhenMissing(t *testing.T) {
	chatRepo := new(MockChatRepository)
	userRepo := new(MockUserRepository)
	svc := newChatService(chatRepo, userRepo, new(MockOTPService), new(MockNotifier), nil)

	userRepo.On("GetUserByID", mock.Anything, "user-2").Return(&domain.User{ID: "user-2"}, nil)
	chatRepo.On("FindByParticipants", mock.Anything, "user-1", "user-2", domain.ModeFriends).Return(nil, nil)
	chatRepo.On("CreateChat", mock.Anything, mock.MatchedBy(func(c *domain.Chat) bool {
		return c.Mode == domain.ModeFriends && c.Participants == [2]string{"user-1", "user-2"}
	})).Return(nil)
	userRepo.On("GetPublicByIDs", mock.Anything, mock.Anything).Return([]domain.PublicUser{
		{ID: "user-1"}, {ID: "user-2"},
	}, nil)

	_, err := svc.CreateOrGetChat(context.Background(), "user-1", &dto.CreateChatRequest{
		ParticipantID: "user-2",
		Mode:          domain.ModeFriends,
	})

	require.NoError(t, err)
	chatRepo.AssertExpectations(t)
}

func TestRequestOTPEmailsTarget(t *testing.T) {
	userRepo := new(MockUserRepository)
	otp := new(MockOTPService)
	notifier := new(MockNotifier)
	svc := newChatService(new(MockChatRepository), userRepo, otp, notifier, nil)

	userRepo.On("GetUserByID", mock.Anything, "user-2").
		Return(&domain.User{ID: "user-2", Email: "sam@example.com"}, nil)
	otp.On("Store", mock.Anything, OTPKindChatConnect, "user-1:user-2", mock.Anything).Return(nil)
	notifier.On("SendEmail", mock.Anything, "sam@example.com", mock.Anything, mock.Anything).Return(nil)

	err := svc.RequestOTP(context.Background(), "user-1", &dto.ChatOTPRequest{TargetUserID: "user-2"})

	require.NoError(t, err)
	otp.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestChatOTPSubjectIsOrderIndependent(t *testing.T) {
	assert.Equal(t, chatOTPSubject("b", "a"), chatOTPSubject("a", "b"))
	assert.Equal(t, "a:b", chatOTPSubject("b", "a"))
}

func TestVerifyOTPUsesSortedPair(t *testing.T) {
	otp := new(MockOTPService)
	svc := newChatService(new(MockChatRepository), new(MockUserRepository), otp, new(MockNotifier), nil)

	otp.On("Verify", mock.Anything, OTPKindChatConnect, "user-1:user-2", "654321").Return(true, nil)

	ok, err := svc.VerifyOTP(context.Background(), "user-2", &dto.ChatOTPVerifyRequest{
		TargetUserID: "user-1",
		Code:         "654321",
	})

	require.NoError(t, err)
	assert.True(t, ok)
	otp.AssertExpectations(t)
}

func TestListMessagesRequiresMembership(t *testing.T) {
	chatRepo := new(MockChatRepository)
	svc := newChatService(chatRepo, new(MockUserRepository), new(MockOTPService), new(MockNotifier), nil)

	chatRepo.On("GetChatByID", mock.Anything, "chat-1").Return(&domain.Chat{
		ID: "chat-1", Participants: [2]string{"user-1", "user-2"},
	}, nil)

	_, err := svc.ListMessages(context.Background(), "chat-1", "outsider", 0, 0)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeForbidden, domainErr.Code)
	chatRepo.AssertNotCalled(t, "ListMessages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListMessagesReversesToOldestFirst(t *testing.T) {
	chatRepo := new(MockChatRepository)
	svc := newChatService(chatRepo, new(MockUserRepository), new(MockOTPService), new(MockNotifier), nil)

	chatRepo.On("GetChatByID", mock.Anything, "chat-1").Return(&domain.Chat{
		ID: "chat-1", Participants: [2]string{"user-1", "user-2"},
	}, nil)
	// Repository returns newest first.
	chatRepo.On("ListMessages", mock.Anything, "chat-1", 50, 0).Return([]*domain.Message{
		{ID: "m3", Content: "latest"},
		{ID: "m2", Content: "middle"},
		{ID: "m1", Content: "oldest"},
	}, nil)

	resp, err := svc.ListMessages(context.Background(), "chat-1", "user-1", 0, 0)

	require.NoError(t, err)
	require.Len(t, resp.Messages, 3)
	assert.Equal(t, "m1", resp.Messages[0].ID)
	assert.Equal(t, "m3", resp.Messages[2].ID)
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	chatRepo := new(MockChatRepository)
	svc := newChatService(chatRepo, new(MockUserRepository), new(MockOTPService), new(MockNotifier), nil)

	chatRepo.On("GetChatByID", mock.Anything, "chat-1").Return(&domain.Chat{
		ID: "chat-1", Participants: [2]string{"user-1", "user-2"},
	}, nil)

	_, err := svc.SendMessage(context.Background(), "chat-1", "user-1", &dto.SendMessageRequest{
		Content: "   ",
	})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
	chatRepo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestSendMessageUpdatesLastMessage(t *testing.T) {
	chatRepo := new(MockChatRepository)
	svc := newChatService(chatRepo, new(MockUserRepository), new(MockOTPService), new(MockNotifier), nil)

	chatRepo.On("GetChatByID", mock.Anything, "chat-1").Return(&domain.Chat{
		ID: "chat-1", Participants: [2]string{"user-1", "user-2"},
	}, nil)
	chatRepo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *domain.Message) bool {
		return m.ChatID == "chat-1" && m.SenderID == "user-1" &&
			m.Content == "hello" && m.MessageType == domain.MessageText
	})).Return(nil)
	chatRepo.On("SetLastMessage", mock.Anything, "chat-1", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.SendMessage(context.Background(), "chat-1", "user-1", &dto.SendMessageRequest{
		Content: "  hello  ",
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Content)
	assert.Equal(t, domain.MessageText, resp.MessageType)
	chatRepo.AssertExpectations(t)
}

func TestMarkReadRequiresMembership(t *testing.T) {
	chatRepo := new(MockChatRepository)
	svc := newChatService(chatRepo, new(MockUserRepository), new(MockOTPService), new(MockNotifier), nil)

	chatRepo.On("GetChatByID", mock.Anything, "missing").Return(nil, nil)

	err := svc.MarkRead(context.Background(), "missing", "user-1")

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestAssistantRejectsUnknownKind(t *testing.T) {
	svc := newChatService(new(MockChatRepository), new(MockUserRepository), new(MockOTPService), new(MockNotifier), nil)

	_, err := svc.Assistant(context.Background(), &dto.AssistantRequest{Kind: "jokes", Mode: domain.ModeLove})

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
}

func TestAssistantFallbackWithoutAssistant(t *testing.T) {
	svc := newChatService(new(MockChatRepository), new(MockUserRepository), new(MockOTPService), new(MockNotifier), nil)

	for _, kind := range []string{"tips", "ideas", "icebreakers", "advice"} {
		for _, mode := range []string{domain.ModeLove, domain.ModeFriends} {
			resp, err := svc.Assistant(context.Background(), &dto.AssistantRequest{Kind: kind, Mode: mode})
			require.NoError(t, err)
			assert.Len(t, resp.Suggestions, 5, "kind %s mode %s", kind, mode)
		}
	}
}

func TestAssistantSplitsReplyLines(t *testing.T) {
	assistant := new(MockAssistant)
	svc := newChatService(new(MockChatRepository), new(MockUserRepository), new(MockOTPService), new(MockNotifier), assistant)

	assistant.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("First idea\n\nSecond idea\nThird idea\n", nil)

	resp, err := svc.Assistant(context.Background(), &dto.AssistantRequest{Kind: "ideas", Mode: domain.ModeLove})

	require.NoError(t, err)
	assert.Equal(t, []string{"First idea", "Second idea", "Third idea"}, resp.Suggestions)
}

func TestAssistantFailureFallsBack(t *testing.T) {
	assistant := new(MockAssistant)
	svc := newChatService(new(MockChatRepository), new(MockUserRepository), new(MockOTPService), new(MockNotifier), assistant)

	assistant.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("", domain.NewError(domain.CodeAssistantError, "upstream timeout", nil))

	resp, err := svc.Assistant(context.Background(), &dto.AssistantRequest{Kind: "tips", Mode: domain.ModeFriends})

	require.NoError(t, err)
	assert.Len(t, resp.Suggestions, 5)
}
