package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"loves-api/internal/config"
	"loves-api/internal/domain"
	"loves-api/internal/dto"
	"loves-api/internal/logger"
	"loves-api/internal/repository"
	"loves-api/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Token types carried in JWT claims.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const minPasswordLength = 8

// ErrInvalidJWTToken indicates the provided JWT is invalid or expired.
var ErrInvalidJWTToken = errors.New("invalid or expired jwt token")

// AuthService defines the interface for account and token operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) error
	VerifyPhone(ctx context.Context, req *dto.VerifyPhoneRequest) error
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	CreateJWT(userID string, ttl time.Duration, tokenType string) (string, error)
	ValidateJWT(tokenString string) (*dto.AuthClaims, error)
}

// authService implements AuthService
type authService struct {
	userRepo repository.UserRepository
	otp      OTPService
	notifier domain.Notifier
	cfg      *config.Config
}

// NewAuthService creates a new instance of authService
func NewAuthService(
	userRepo repository.UserRepository,
	otp OTPService,
	notifier domain.Notifier,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo: userRepo,
		otp:      otp,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Register implements AuthService
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return nil, domain.NewValidationError("dob must be formatted YYYY-MM-DD")
	}

	existing, err := s.userRepo.GetUserByEmailOrPhone(ctx, strings.ToLower(req.Email), req.Phone)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to check existing accounts", err)
	}
	if existing != nil {
		return nil, domain.NewValidationError("an account with this email or phone already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}

	modeDefault := req.ModeDefault
	if modeDefault == "" {
		modeDefault = domain.ModeLove
	}
	if !domain.ValidMode(modeDefault) {
		return nil, domain.NewValidationError("modeDefault must be love or friends")
	}

	user := &domain.User{
		Name:          req.Name,
		Email:         strings.ToLower(req.Email),
		Phone:         req.Phone,
		PasswordHash:  string(hash),
		DOB:           dob,
		Gender:        req.Gender,
		Pronouns:      req.Pronouns,
		Location:      req.Location,
		Bio:           req.Bio,
		Interests:     req.Interests,
		ProfilePhotos: req.ProfilePhotos,
		ModeDefault:   modeDefault,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewUnavailableError("Failed to create account", err)
	}

	s.issueVerifications(ctx, user)

	accessToken, err := s.CreateJWT(user.ID, s.cfg.JWT.AccessTokenTTL, TokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to issue access token", err)
	}

	return &dto.RegisterResponse{
		User:        toUserProfileResponse(user),
		AccessToken: accessToken,
	}, nil
}

// issueVerifications sends the email verification token and phone OTP.
// Delivery failures are logged, never surfaced; registration has already
// succeeded.
func (s *authService) issueVerifications(ctx context.Context, user *domain.User) {
	l := logger.Get()

	token, err := util.NewVerificationToken()
	if err == nil {
		if err := s.otp.Store(ctx, OTPKindEmailVerify, user.Email, token); err == nil {
			if err := s.notifier.SendEmail(ctx, user.Email, "Verify your email",
				"Your verification token: "+token); err != nil {
				l.Warn("email verification delivery failed", zap.Error(err))
			}
		} else {
			l.Warn("email verification token store failed", zap.Error(err))
		}
	}

	code, err := util.NewOTP()
	if err == nil {
		if err := s.otp.Store(ctx, OTPKindPhoneVerify, user.Phone, code); err == nil {
			if err := s.notifier.SendSMS(ctx, user.Phone, "Your verification code: "+code); err != nil {
				l.Warn("phone verification delivery failed", zap.Error(err))
			}
		} else {
			l.Warn("phone verification code store failed", zap.Error(err))
		}
	}
}

// Login implements AuthService
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if req.EmailOrPhone == "" || req.Password == "" {
		return nil, domain.NewValidationError("emailOrPhone and password are required")
	}

	identifier := strings.ToLower(req.EmailOrPhone)
	user, err := s.userRepo.GetUserByEmailOrPhone(ctx, identifier, req.EmailOrPhone)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load account", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("Invalid credentials")
	}

	return s.issueTokenPair(user.ID)
}

// VerifyEmail implements AuthService
func (s *authService) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) error {
	if req.Email == "" || req.Token == "" {
		return domain.NewValidationError("email and token are required")
	}

	email := strings.ToLower(req.Email)
	ok, err := s.otp.Verify(ctx, OTPKindEmailVerify, email, req.Token)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewUnauthorizedError("Invalid or expired verification token")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.NewUnavailableError("Failed to load account", err)
	}
	if user == nil {
		return domain.NewNotFoundError("Account not found")
	}

	user.IsEmailVerified = true
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return domain.NewUnavailableError("Failed to update account", err)
	}
	return nil
}

// VerifyPhone implements AuthService
func (s *authService) VerifyPhone(ctx context.Context, req *dto.VerifyPhoneRequest) error {
	if req.Phone == "" || req.Code == "" {
		return domain.NewValidationError("phone and code are required")
	}

	ok, err := s.otp.Verify(ctx, OTPKindPhoneVerify, req.Phone, req.Code)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewUnauthorizedError("Invalid or expired verification code")
	}

	user, err := s.userRepo.GetUserByEmailOrPhone(ctx, "", req.Phone)
	if err != nil {
		return domain.NewUnavailableError("Failed to load account", err)
	}
	if user == nil {
		return domain.NewNotFoundError("Account not found")
	}

	user.IsPhoneVerified = true
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return domain.NewUnavailableError("Failed to update account", err)
	}
	return nil
}

// RefreshToken implements AuthService
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.ValidateJWT(refreshToken)
	if err != nil {
		return nil, domain.NewUnauthorizedError("Invalid refresh token")
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, domain.NewUnauthorizedError("Token is not a refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load account", err)
	}
	if user == nil {
		return nil, domain.NewUnauthorizedError("Account no longer exists")
	}

	return s.issueTokenPair(user.ID)
}

// ForgotPassword implements AuthService. Account existence is never
// revealed: the call succeeds whether or not the email matches an account.
func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	if req.Email == "" {
		return domain.NewValidationError("email is required")
	}

	email := strings.ToLower(req.Email)
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.NewUnavailableError("Failed to load account", err)
	}
	if user == nil {
		return nil
	}

	token, err := util.NewVerificationToken()
	if err != nil {
		return domain.NewInternalError("Failed to generate reset token", err)
	}
	if err := s.otp.Store(ctx, OTPKindPasswordReset, email, token); err != nil {
		return err
	}
	if err := s.notifier.SendEmail(ctx, email, "Reset your password",
		"Your password reset token: "+token); err != nil {
		logger.Get().Warn("password reset delivery failed", zap.Error(err))
	}
	return nil
}

// ResetPassword implements AuthService
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if req.Email == "" || req.Token == "" {
		return domain.NewValidationError("email and token are required")
	}
	if len(req.NewPassword) < minPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	email := strings.ToLower(req.Email)
	ok, err := s.otp.Verify(ctx, OTPKindPasswordReset, email, req.Token)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewUnauthorizedError("Invalid or expired reset token")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.NewUnavailableError("Failed to load account", err)
	}
	if user == nil {
		return domain.NewNotFoundError("Account not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewInternalError("Failed to hash password", err)
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return domain.NewUnavailableError("Failed to update account", err)
	}
	return nil
}

// GetCurrentUser implements AuthService
func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewUnavailableError("Failed to load account", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("Account not found")
	}

	profile := toUserProfileResponse(user)
	return &profile, nil
}

func (s *authService) issueTokenPair(userID string) (*dto.TokenResponse, error) {
	accessToken, err := s.CreateJWT(userID, s.cfg.JWT.AccessTokenTTL, TokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to issue access token", err)
	}
	refreshToken, err := s.CreateJWT(userID, s.cfg.JWT.RefreshTokenTTL, TokenTypeRefresh)
	if err != nil {
		return nil, domain.NewInternalError("Failed to issue refresh token", err)
	}
	return &dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// CreateJWT implements AuthService
func (s *authService) CreateJWT(userID string, ttl time.Duration, tokenType string) (string, error) {
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

// ValidateJWT implements AuthService
func (s *authService) ValidateJWT(tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}

func validateRegistration(req *dto.RegisterRequest) error {
	var errs domain.ValidationErrors
	if req.Name == "" {
		errs = append(errs, domain.NewMissingFieldError("name"))
	}
	if req.Email == "" {
		errs = append(errs, domain.NewMissingFieldError("email"))
	} else if !strings.Contains(req.Email, "@") {
		errs = append(errs, domain.NewInvalidFormatError("email", req.Email))
	}
	if req.Phone == "" {
		errs = append(errs, domain.NewMissingFieldError("phone"))
	}
	if len(req.Password) < minPasswordLength {
		errs = append(errs, domain.NewOutOfRangeError("password", len(req.Password), minPasswordLength, 128))
	}
	if req.DOB == "" {
		errs = append(errs, domain.NewMissingFieldError("dob"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func toUserProfileResponse(u *domain.User) dto.UserProfileResponse {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	photos := u.ProfilePhotos
	if photos == nil {
		photos = []string{}
	}
	return dto.UserProfileResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Phone:           u.Phone,
		DOB:             u.DOB,
		Gender:          u.Gender,
		Pronouns:        u.Pronouns,
		Location:        u.Location,
		Bio:             u.Bio,
		Interests:       interests,
		ProfilePhotos:   photos,
		ModeDefault:     u.ModeDefault,
		IsEmailVerified: u.IsEmailVerified,
		IsPhoneVerified: u.IsPhoneVerified,
		CreatedAt:       u.CreatedAt,
	}
}
