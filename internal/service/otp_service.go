package service

import (
	"context"
	"time"

	"loves-api/internal/domain"
)

// One-time code kinds with their storage TTLs.
const (
	OTPKindEmailVerify   = "email_verify"
	OTPKindPhoneVerify   = "phone_verify"
	OTPKindPasswordReset = "password_reset"
	OTPKindChatConnect   = "chat_connect"
)

var otpTTLs = map[string]time.Duration{
	OTPKindEmailVerify:   24 * time.Hour,
	OTPKindPhoneVerify:   10 * time.Minute,
	OTPKindPasswordReset: 60 * time.Minute,
	OTPKindChatConnect:   10 * time.Minute,
}

// OTPService stores and verifies one-time codes. Verification is one-shot:
// a matching code is deleted on success.
type OTPService interface {
	Store(ctx context.Context, kind, subject, code string) error
	Verify(ctx context.Context, kind, subject, code string) (bool, error)
}

type otpService struct {
	cache domain.Cache
}

// NewOTPService creates a new instance of otpService
func NewOTPService(cache domain.Cache) OTPService {
	return &otpService{cache: cache}
}

func otpKey(kind, subject string) string {
	return "otp:" + kind + ":" + subject
}

// Store implements OTPService. Issuing a new code replaces any outstanding
// one for the same kind and subject.
func (s *otpService) Store(ctx context.Context, kind, subject, code string) error {
	ttl, ok := otpTTLs[kind]
	if !ok {
		return domain.NewInternalError("unknown OTP kind: "+kind, nil)
	}
	if err := s.cache.Set(ctx, otpKey(kind, subject), code, ttl); err != nil {
		return domain.NewUnavailableError("Failed to store one-time code", err)
	}
	return nil
}

// Verify implements OTPService
func (s *otpService) Verify(ctx context.Context, kind, subject, code string) (bool, error) {
	key := otpKey(kind, subject)
	stored, err := s.cache.Get(ctx, key)
	if err != nil {
		if err == domain.ErrCacheMiss {
			return false, nil
		}
		return false, domain.NewUnavailableError("Failed to read one-time code", err)
	}
	if stored != code {
		return false, nil
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		return false, domain.NewUnavailableError("Failed to consume one-time code", err)
	}
	return true, nil
}
