package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Password      string   `json:"password"`
	DOB           string   `json:"dob"`
	Gender        string   `json:"gender,omitempty"`
	Pronouns      string   `json:"pronouns,omitempty"`
	Location      string   `json:"location,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	ProfilePhotos []string `json:"profilePhotos,omitempty"`
	ModeDefault   string   `json:"modeDefault,omitempty"`
}

// LoginRequest authenticates by email or phone.
type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	Password     string `json:"password"`
}

// TokenResponse carries the issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// RegisterResponse returns the created profile and an access token.
type RegisterResponse struct {
	User        UserProfileResponse `json:"user"`
	AccessToken string              `json:"accessToken"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// VerifyEmailRequest confirms an email verification token.
type VerifyEmailRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// VerifyPhoneRequest confirms a phone OTP.
type VerifyPhoneRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes a password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// UserProfileResponse is the caller's own profile.
type UserProfileResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	DOB             time.Time `json:"dob"`
	Gender          string    `json:"gender,omitempty"`
	Pronouns        string    `json:"pronouns,omitempty"`
	Location        string    `json:"location,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Interests       []string  `json:"interests"`
	ProfilePhotos   []string  `json:"profilePhotos"`
	ModeDefault     string    `json:"modeDefault"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	IsPhoneVerified bool      `json:"isPhoneVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}
