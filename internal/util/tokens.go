package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// NewShareCode generates a URL-safe share code: 8 random bytes rendered as
// uppercase hex, giving 64 bits of entropy.
func NewShareCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate share code: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// NewVerificationToken generates a 32-byte hex token for email verification
// and password reset links.
func NewVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate verification token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewOTP generates a 6-digit numeric one-time code.
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
