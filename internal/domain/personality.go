package domain

import (
	"time"
)

// Quiz modes. Mode affects which fallback content applies elsewhere, not scoring.
const (
	ModeLove    = "love"
	ModeFriends = "friends"
)

// ValidMode reports whether m is a recognized quiz mode.
func ValidMode(m string) bool {
	return m == ModeLove || m == ModeFriends
}

// QuestionOption is one selectable answer with its fixed score.
type QuestionOption struct {
	Text  string
	Emoji string
	Score int
}

// Question is an immutable quiz question. Questions are configuration data,
// not persisted per user.
type Question struct {
	ID      int
	Prompt  string
	Options []QuestionOption
}

// PersonalityRange maps a closed score interval [Min, Max] to a type label.
type PersonalityRange struct {
	Min  int
	Max  int
	Type string
	Icon string
}

// PersonalityAnswer is a recorded answer with the option's emoji and score
// denormalized at submission time.
type PersonalityAnswer struct {
	QuestionID     int    `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
	IconEmoji      string `json:"iconEmoji"`
	Score          int    `json:"score"`
}

// PersonalityQuiz represents one user's attempt at the questionnaire.
type PersonalityQuiz struct {
	ID              string
	UserID          string
	Mode            string
	ShareCode       string
	SharedWith      []string
	Answers         []PersonalityAnswer
	TotalScore      int
	PersonalityType string
	Completed       bool
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate validates the quiz
func (q *PersonalityQuiz) Validate() error {
	if q.UserID == "" {
		return NewValidationError("user ID is required")
	}
	if !ValidMode(q.Mode) {
		return NewValidationError("mode must be love or friends")
	}
	if q.ShareCode == "" {
		return NewValidationError("share code is required")
	}
	return nil
}

// ApplyScore records a scoring result and marks the quiz completed in one
// step, so the invariant total == sum(answer scores) holds at every save.
func (q *PersonalityQuiz) ApplyScore(result ScoreResult, at time.Time) {
	q.Answers = result.Answers
	q.TotalScore = result.TotalScore
	q.PersonalityType = result.PersonalityType
	q.Completed = true
	q.CompletedAt = &at
}

// AddSharer appends userID to the sharer list if not already present.
// Returns false when the user was already a sharer.
func (q *PersonalityQuiz) AddSharer(userID string) bool {
	for _, id := range q.SharedWith {
		if id == userID {
			return false
		}
	}
	q.SharedWith = append(q.SharedWith, userID)
	return true
}
