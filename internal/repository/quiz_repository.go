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

// PersonalityQuizRepository defines persistence for quiz attempts.
// Lookups return (nil, nil) when no row matches; services translate that
// into NotFound.
type PersonalityQuizRepository interface {
	Create(ctx context.Context, quiz *domain.PersonalityQuiz) error
	GetByID(ctx context.Context, id string) (*domain.PersonalityQuiz, error)
	GetByShareCode(ctx context.Context, shareCode string) (*domain.PersonalityQuiz, error)
	// Update writes answers, score, type, completion and the sharer list in
	// one statement against one row.
	Update(ctx context.Context, quiz *domain.PersonalityQuiz) error
	ListByUser(ctx context.Context, userID string) ([]*domain.PersonalityQuiz, error)
}

type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) PersonalityQuizRepository {
	return &sqlxQuizRepository{db: db}
}

const quizColumns = `id, user_id, mode, share_code, shared_with, answers,
	total_score, personality_type, completed, completed_at, created_at, updated_at`

func (r *sqlxQuizRepository) Create(ctx context.Context, quiz *domain.PersonalityQuiz) error {
	model := fromDomainQuiz(quiz)
	if model == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now

	query := `INSERT INTO personality_quizzes (` + quizColumns + `)
	          VALUES (:id, :user_id, :mode, :share_code, :shared_with, :answers,
	                  :total_score, :personality_type, :completed, :completed_at, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create personality quiz: %w", err)
	}

	quiz.ID = model.ID
	quiz.CreatedAt = model.CreatedAt
	quiz.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *sqlxQuizRepository) GetByID(ctx context.Context, id string) (*domain.PersonalityQuiz, error) {
	var model models.PersonalityQuiz
	query := `SELECT ` + quizColumns + ` FROM personality_quizzes WHERE id = ?`

	err := r.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by id %s: %w", id, err)
	}
	return toDomainQuiz(&model), nil
}

func (r *sqlxQuizRepository) GetByShareCode(ctx context.Context, shareCode string) (*domain.PersonalityQuiz, error) {
	var model models.PersonalityQuiz
	query := `SELECT ` + quizColumns + ` FROM personality_quizzes WHERE share_code = ?`

	err := r.db.GetContext(ctx, &model, query, shareCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by share code: %w", err)
	}
	return toDomainQuiz(&model), nil
}

func (r *sqlxQuizRepository) Update(ctx context.Context, quiz *domain.PersonalityQuiz) error {
	model := fromDomainQuiz(quiz)
	if model == nil {
		return fmt.Errorf("cannot update nil quiz")
	}
	if model.ID == "" {
		return fmt.Errorf("cannot update quiz with empty ID")
	}
	model.UpdatedAt = time.Now()

	query := `UPDATE personality_quizzes SET
	            shared_with = :shared_with,
	            answers = :answers,
	            total_score = :total_score,
	            personality_type = :personality_type,
	            completed = :completed,
	            completed_at = :completed_at,
	            updated_at = :updated_at
	          WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update quiz: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("quiz with ID %s not found or not updated", quiz.ID)
	}
	quiz.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *sqlxQuizRepository) ListByUser(ctx context.Context, userID string) ([]*domain.PersonalityQuiz, error) {
	var rows []models.PersonalityQuiz
	query := `SELECT ` + quizColumns + ` FROM personality_quizzes
	          WHERE user_id = ? ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list quizzes for user %s: %w", userID, err)
	}

	quizzes := make([]*domain.PersonalityQuiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes, nil
}

func toDomainQuiz(m *models.PersonalityQuiz) *domain.PersonalityQuiz {
	if m == nil {
		return nil
	}
	answers := make([]domain.PersonalityAnswer, 0, len(m.Answers))
	for _, a := range m.Answers {
		answers = append(answers, domain.PersonalityAnswer{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			IconEmoji:      a.IconEmoji,
			Score:          a.Score,
		})
	}
	return &domain.PersonalityQuiz{
		ID:              m.ID,
		UserID:          m.UserID,
		Mode:            m.Mode,
		ShareCode:       m.ShareCode,
		SharedWith:      []string(m.SharedWith),
		Answers:         answers,
		TotalScore:      m.TotalScore,
		PersonalityType: m.PersonalityType,
		Completed:       m.Completed,
		CompletedAt:     util.NullTimeToPtr(m.CompletedAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromDomainQuiz(q *domain.PersonalityQuiz) *models.PersonalityQuiz {
	if q == nil {
		return nil
	}
	answers := make(models.AnswerList, 0, len(q.Answers))
	for _, a := range q.Answers {
		answers = append(answers, models.Answer{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			IconEmoji:      a.IconEmoji,
			Score:          a.Score,
		})
	}
	return &models.PersonalityQuiz{
		ID:              q.ID,
		UserID:          q.UserID,
		Mode:            q.Mode,
		ShareCode:       q.ShareCode,
		SharedWith:      models.StringSlice(q.SharedWith),
		Answers:         answers,
		TotalScore:      q.TotalScore,
		PersonalityType: q.PersonalityType,
		Completed:       q.Completed,
		CompletedAt:     util.TimePtrToNullTime(q.CompletedAt),
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}
