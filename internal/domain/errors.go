package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeUnavailable  ErrorCode = "STORAGE_UNAVAILABLE"

	// Field-level validation errors
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Assistant errors
	CodeAssistantError ErrorCode = "ASSISTANT_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewUnavailableError wraps a failed storage round trip. No retry is attempted
// here; retry policy belongs to the storage layer if anywhere.
func NewUnavailableError(message string, cause error) *DomainError {
	return NewError(CodeUnavailable, message, cause)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors so a request can report all of
// them in one response.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("value %d must be between %d and %d", value, min, max)}
}

// NewValidationError creates a single-message validation failure.
func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}
