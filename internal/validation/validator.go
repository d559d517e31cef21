package validation

import (
	"regexp"
	"strings"

	"loves-api/internal/domain"
	"loves-api/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSubmitQuizRequest validates a quiz submission
func (v *Validator) ValidateSubmitQuizRequest(req *dto.SubmitQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.QuizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("quizId"))
	} else if !isValidULID(req.QuizID) {
		errors = append(errors, domain.NewInvalidFormatError("quizId", req.QuizID))
	}

	errors = append(errors, validateAnswers(req.Answers)...)
	return errors
}

// ValidateSubmitSharedRequest validates a shared-quiz submission
func (v *Validator) ValidateSubmitSharedRequest(req *dto.SubmitSharedRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.OriginalQuizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("originalQuizId"))
	} else if !isValidULID(req.OriginalQuizID) {
		errors = append(errors, domain.NewInvalidFormatError("originalQuizId", req.OriginalQuizID))
	}

	errors = append(errors, validateAnswers(req.Answers)...)
	return errors
}

// ValidateShareCode validates a share code path parameter
func (v *Validator) ValidateShareCode(code string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(code) == "" {
		errors = append(errors, domain.NewMissingFieldError("shareCode"))
	} else if !isValidShareCode(code) {
		errors = append(errors, domain.NewInvalidFormatError("shareCode", code))
	}

	return errors
}

// ValidateEventID validates an event id path parameter
func (v *Validator) ValidateEventID(eventID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(eventID) == "" {
		errors = append(errors, domain.NewMissingFieldError("eventId"))
	} else if !isValidULID(eventID) {
		errors = append(errors, domain.NewInvalidFormatError("eventId", eventID))
	}

	return errors
}

// validateAnswers requires the answers field to be present but accepts an
// empty list; a blank submission scores zero downstream.
func validateAnswers(answers []dto.SubmittedAnswerRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if answers == nil {
		errors = append(errors, domain.NewMissingFieldError("answers"))
		return errors
	}
	for _, a := range answers {
		if strings.TrimSpace(a.SelectedOption) == "" {
			errors = append(errors, domain.NewMissingFieldError("answers.selectedOption"))
			break
		}
	}
	return errors
}

// Helper functions for validation

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}

// isValidShareCode checks if the string is an uppercase-hex share code
func isValidShareCode(s string) bool {
	if len(s) != 16 {
		return false
	}
	validShareCode := regexp.MustCompile(`^[0-9A-F]{16}$`)
	return validShareCode.MatchString(s)
}
