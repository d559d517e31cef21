package service

import (
	"context"
	"encoding/json"
	"time"

	"loves-api/internal/config"
	"loves-api/internal/domain"
	"loves-api/internal/dto"
	"loves-api/internal/logger"
	"loves-api/internal/repository"
	"loves-api/internal/util"

	"go.uber.org/zap"
)

const shareCodeCachePrefix = "quiz:share:"

// PersonalityService defines the interface for quiz lifecycle operations
type PersonalityService interface {
	StartQuiz(ctx context.Context, userID string, req *dto.StartQuizRequest) (*dto.StartQuizResponse, error)
	SubmitQuiz(ctx context.Context, userID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error)
	GetByShareCode(ctx context.Context, shareCode string) (*dto.SharedQuizResponse, error)
	SubmitShared(ctx context.Context, responderID string, req *dto.SubmitSharedRequest) (*dto.SubmitSharedResponse, error)
	History(ctx context.Context, userID string) (*dto.QuizHistoryResponse, error)
}

// personalityService implements PersonalityService
type personalityService struct {
	quizRepo  repository.PersonalityQuizRepository
	userRepo  repository.UserRepository
	questions *domain.QuestionSet
	cache     domain.Cache
	cfg       *config.Config
}

// NewPersonalityService creates a new instance of personalityService
func NewPersonalityService(
	quizRepo repository.PersonalityQuizRepository,
	userRepo repository.UserRepository,
	questions *domain.QuestionSet,
	cache domain.Cache,
	cfg *config.Config,
) PersonalityService {
	return &personalityService{
		quizRepo:  quizRepo,
		userRepo:  userRepo,
		questions: questions,
		cache:     cache,
		cfg:       cfg,
	}
}

// StartQuiz implements PersonalityService
func (s *personalityService) StartQuiz(ctx context.Context, userID string, req *dto.StartQuizRequest) (*dto.StartQuizResponse, error) {
	if !domain.ValidMode(req.Mode) {
		return nil, domain.NewValidationError("mode must be love or friends")
	}

	shareCode, err := util.NewShareCode()
	if err != nil {
		return nil, domain.NewInternalError("Failed to generate share code", err)
	}

	quiz := &domain.PersonalityQuiz{
		UserID:     userID,
		Mode:       req.Mode,
		ShareCode:  shareCode,
		SharedWith: []string{},
		Answers:    []domain.PersonalityAnswer{},
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, domain.NewUnavailableError("Failed to create quiz", err)
	}

	return &dto.StartQuizResponse{
		QuizID:    quiz.ID,
		ShareCode: quiz.ShareCode,
		Mode:      quiz.Mode,
		Questions: questionBankResponse(s.questions),
	}, nil
}

// SubmitQuiz implements PersonalityService
func (s *personalityService) SubmitQuiz(ctx context.Context, userID string, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	quiz, err := s.quizRepo.GetByID(ctx, req.QuizID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}
	if quiz.UserID != userID {
		return nil, domain.NewForbiddenError("Quiz does not belong to caller")
	}

	result := s.questions.Score(toSubmittedAnswers(req.Answers))
	quiz.ApplyScore(result, time.Now())

	if err := s.quizRepo.Update(ctx, quiz); err != nil {
		return nil, domain.NewUnavailableError("Failed to save quiz result", err)
	}
	s.invalidateShareCache(ctx, quiz.ShareCode)

	return &dto.SubmitQuizResponse{
		Quiz: dto.QuizSummary{
			ID:              quiz.ID,
			PersonalityType: quiz.PersonalityType,
			TotalScore:      quiz.TotalScore,
			ShareCode:       quiz.ShareCode,
		},
	}, nil
}

// GetByShareCode implements PersonalityService. The lookup is public; no
// ownership check applies. Results are cached under the share code.
func (s *personalityService) GetByShareCode(ctx context.Context, shareCode string) (*dto.SharedQuizResponse, error) {
	if shareCode == "" {
		return nil, domain.NewValidationError("share code is required")
	}

	if cached := s.getCachedShare(ctx, shareCode); cached != nil {
		return cached, nil
	}

	quiz, err := s.quizRepo.GetByShareCode(ctx, shareCode)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}

	owner, err := s.userRepo.GetUserByID(ctx, quiz.UserID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load quiz owner", err)
	}

	resp := &dto.SharedQuizResponse{
		QuizID:          quiz.ID,
		Mode:            quiz.Mode,
		PersonalityType: quiz.PersonalityType,
		TotalScore:      quiz.TotalScore,
		Questions:       questionBankResponse(s.questions),
	}
	if owner != nil {
		resp.Owner = toPublicUserResponse(owner.Public())
	}

	s.setCachedShare(ctx, shareCode, resp)
	return resp, nil
}

// SubmitShared implements PersonalityService
func (s *personalityService) SubmitShared(ctx context.Context, responderID string, req *dto.SubmitSharedRequest) (*dto.SubmitSharedResponse, error) {
	original, err := s.quizRepo.GetByID(ctx, req.OriginalQuizID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load original quiz", err)
	}
	if original == nil {
		return nil, domain.NewNotFoundError("Quiz not found")
	}

	shareCode, err := util.NewShareCode()
	if err != nil {
		return nil, domain.NewInternalError("Failed to generate share code", err)
	}

	responderQuiz := &domain.PersonalityQuiz{
		UserID:     responderID,
		Mode:       original.Mode,
		ShareCode:  shareCode,
		SharedWith: []string{},
		Answers:    []domain.PersonalityAnswer{},
	}
	result := s.questions.Score(toSubmittedAnswers(req.Answers))
	responderQuiz.ApplyScore(result, time.Now())

	if err := s.quizRepo.Create(ctx, responderQuiz); err != nil {
		return nil, domain.NewUnavailableError("Failed to create responder quiz", err)
	}

	if original.AddSharer(responderID) {
		if err := s.quizRepo.Update(ctx, original); err != nil {
			return nil, domain.NewUnavailableError("Failed to record sharer", err)
		}
	}

	score := domain.Compatibility(original.TotalScore, responderQuiz.TotalScore)

	return &dto.SubmitSharedResponse{
		MyPersonality: dto.PersonalitySummary{
			Type:  responderQuiz.PersonalityType,
			Score: responderQuiz.TotalScore,
		},
		Compatibility: dto.CompatibilitySummary{
			Score:   score,
			Message: domain.CompatibilityMessage(score),
		},
		OriginalUserPersonality: dto.PersonalitySummary{
			Type:  original.PersonalityType,
			Score: original.TotalScore,
		},
	}, nil
}

// History implements PersonalityService
func (s *personalityService) History(ctx context.Context, userID string) (*dto.QuizHistoryResponse, error) {
	quizzes, err := s.quizRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to list quizzes", err)
	}

	// Resolve every sharer id across all quizzes in one lookup.
	seen := make(map[string]bool)
	var ids []string
	for _, q := range quizzes {
		for _, id := range q.SharedWith {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	publicByID := make(map[string]domain.PublicUser, len(ids))
	if len(ids) > 0 {
		publicUsers, err := s.userRepo.GetPublicByIDs(ctx, ids)
		if err != nil {
			return nil, domain.NewUnavailableError("Failed to resolve sharers", err)
		}
		for _, pu := range publicUsers {
			publicByID[pu.ID] = pu
		}
	}

	items := make([]dto.QuizHistoryItem, 0, len(quizzes))
	for _, q := range quizzes {
		sharedWith := make([]dto.PublicUserResponse, 0, len(q.SharedWith))
		for _, id := range q.SharedWith {
			if pu, ok := publicByID[id]; ok {
				sharedWith = append(sharedWith, toPublicUserResponse(pu))
			}
		}
		items = append(items, dto.QuizHistoryItem{
			ID:              q.ID,
			Mode:            q.Mode,
			ShareCode:       q.ShareCode,
			TotalScore:      q.TotalScore,
			PersonalityType: q.PersonalityType,
			Completed:       q.Completed,
			CompletedAt:     q.CompletedAt,
			SharedWith:      sharedWith,
			CreatedAt:       q.CreatedAt,
		})
	}

	return &dto.QuizHistoryResponse{Quizzes: items}, nil
}

func (s *personalityService) getCachedShare(ctx context.Context, shareCode string) *dto.SharedQuizResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, shareCodeCachePrefix+shareCode)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("share-code cache read failed", zap.Error(err))
		}
		return nil
	}
	var resp dto.SharedQuizResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		logger.Get().Warn("share-code cache entry corrupt", zap.Error(err))
		return nil
	}
	return &resp
}

func (s *personalityService) setCachedShare(ctx context.Context, shareCode string, resp *dto.SharedQuizResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, shareCodeCachePrefix+shareCode, string(raw), s.cfg.Share.CacheTTL); err != nil {
		logger.Get().Warn("share-code cache write failed", zap.Error(err))
	}
}

func (s *personalityService) invalidateShareCache(ctx context.Context, shareCode string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, shareCodeCachePrefix+shareCode); err != nil {
		logger.Get().Warn("share-code cache invalidation failed", zap.Error(err))
	}
}

func toSubmittedAnswers(reqs []dto.SubmittedAnswerRequest) []domain.SubmittedAnswer {
	answers := make([]domain.SubmittedAnswer, 0, len(reqs))
	for _, a := range reqs {
		answers = append(answers, domain.SubmittedAnswer{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
		})
	}
	return answers
}

func questionBankResponse(qs *domain.QuestionSet) []dto.QuestionResponse {
	questions := qs.Questions()
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		opts := make([]dto.QuestionOptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			opts = append(opts, dto.QuestionOptionResponse{
				Text:  o.Text,
				Emoji: o.Emoji,
				Score: o.Score,
			})
		}
		out = append(out, dto.QuestionResponse{ID: q.ID, Prompt: q.Prompt, Options: opts})
	}
	return out
}

func toPublicUserResponse(pu domain.PublicUser) dto.PublicUserResponse {
	photos := pu.ProfilePhotos
	if photos == nil {
		photos = []string{}
	}
	return dto.PublicUserResponse{
		ID:            pu.ID,
		Name:          pu.Name,
		ProfilePhotos: photos,
	}
}
