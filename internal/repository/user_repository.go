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

// UserRepository defines the interface for user data operations.
// Lookups return (nil, nil) for not found; services translate that.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetUserByEmailOrPhone is the duplicate check at registration.
	GetUserByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	// GetPublicByIDs resolves ids to public display fields, preserving input
	// order and skipping unknown ids.
	GetPublicByIDs(ctx context.Context, ids []string) ([]domain.PublicUser, error)
}

type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) UserRepository {
	return &sqlxUserRepository{db: db}
}

const userColumns = `id, name, email, phone, password_hash, dob, gender, pronouns,
	location, bio, interests, profile_photos, mode_default,
	is_email_verified, is_phone_verified, created_at, updated_at, deleted_at`

func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	model := fromDomainUser(user)
	if model == nil {
		return fmt.Errorf("cannot save nil user")
	}
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now

	query := `INSERT INTO users (` + userColumns + `)
	          VALUES (:id, :name, :email, :phone, :password_hash, :dob, :gender, :pronouns,
	                  :location, :bio, :interests, :profile_photos, :mode_default,
	                  :is_email_verified, :is_phone_verified, :created_at, :updated_at, :deleted_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var model models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ? AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &model, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&model), nil
}

func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &model, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toDomainUser(&model), nil
}

func (r *sqlxUserRepository) GetUserByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error) {
	var model models.User
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE (email = ? OR phone = ?) AND deleted_at IS NULL LIMIT 1`

	err := r.db.GetContext(ctx, &model, query, email, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email or phone: %w", err)
	}
	return toDomainUser(&model), nil
}

func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	model := fromDomainUser(user)
	if model == nil {
		return fmt.Errorf("cannot update nil user")
	}
	model.UpdatedAt = time.Now()

	query := `UPDATE users SET
	            name = :name,
	            email = :email,
	            phone = :phone,
	            password_hash = :password_hash,
	            gender = :gender,
	            pronouns = :pronouns,
	            location = :location,
	            bio = :bio,
	            interests = :interests,
	            profile_photos = :profile_photos,
	            mode_default = :mode_default,
	            is_email_verified = :is_email_verified,
	            is_phone_verified = :is_phone_verified,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %s not found or not updated", user.ID)
	}
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *sqlxUserRepository) GetPublicByIDs(ctx context.Context, ids []string) ([]domain.PublicUser, error) {
	if len(ids) == 0 {
		return []domain.PublicUser{}, nil
	}

	query, args, err := sqlx.In(
		`SELECT id, name, profile_photos FROM users WHERE id IN (?) AND deleted_at IS NULL`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build public user query: %w", err)
	}

	var rows []struct {
		ID            string             `db:"id"`
		Name          string             `db:"name"`
		ProfilePhotos models.StringSlice `db:"profile_photos"`
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get public users: %w", err)
	}

	byID := make(map[string]domain.PublicUser, len(rows))
	for _, row := range rows {
		byID[row.ID] = domain.PublicUser{ID: row.ID, Name: row.Name, ProfilePhotos: row.ProfilePhotos}
	}

	users := make([]domain.PublicUser, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		PasswordHash:    m.PasswordHash,
		DOB:             m.DOB,
		Gender:          m.Gender.String,
		Pronouns:        m.Pronouns.String,
		Location:        m.Location.String,
		Bio:             m.Bio.String,
		Interests:       []string(m.Interests),
		ProfilePhotos:   []string(m.ProfilePhotos),
		ModeDefault:     m.ModeDefault,
		IsEmailVerified: m.IsEmailVerified,
		IsPhoneVerified: m.IsPhoneVerified,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		DeletedAt:       util.NullTimeToPtr(m.DeletedAt),
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		PasswordHash:    u.PasswordHash,
		DOB:             u.DOB,
		Gender:          util.StringToNullString(u.Gender),
		Pronouns:        util.StringToNullString(u.Pronouns),
		Location:        util.StringToNullString(u.Location),
		Bio:             util.StringToNullString(u.Bio),
		Interests:       models.StringSlice(u.Interests),
		ProfilePhotos:   models.StringSlice(u.ProfilePhotos),
		ModeDefault:     u.ModeDefault,
		IsEmailVerified: u.IsEmailVerified,
		IsPhoneVerified: u.IsPhoneVerified,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		DeletedAt:       util.TimePtrToNullTime(u.DeletedAt),
	}
}
