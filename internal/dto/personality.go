package dto

import "time"

// QuestionOptionResponse is one selectable quiz option.
type QuestionOptionResponse struct {
	Text  string `json:"text"`
	Emoji string `json:"emoji"`
	Score int    `json:"score"`
}

// QuestionResponse is one question from the static bank.
type QuestionResponse struct {
	ID      int                      `json:"id"`
	Prompt  string                   `json:"question"`
	Options []QuestionOptionResponse `json:"options"`
}

// StartQuizRequest starts a new quiz attempt.
type StartQuizRequest struct {
	Mode string `json:"mode"`
}

// StartQuizResponse returns the new quiz and the question bank.
type StartQuizResponse struct {
	QuizID    string             `json:"quizId"`
	ShareCode string             `json:"shareCode"`
	Mode      string             `json:"mode"`
	Questions []QuestionResponse `json:"questions"`
}

// SubmittedAnswerRequest is one answer in a submission.
type SubmittedAnswerRequest struct {
	QuestionID     int    `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
}

// SubmitQuizRequest submits answers for an owned quiz.
type SubmitQuizRequest struct {
	QuizID  string                   `json:"quizId"`
	Answers []SubmittedAnswerRequest `json:"answers"`
}

// QuizSummary is the observable result of a submission.
type QuizSummary struct {
	ID              string `json:"id"`
	PersonalityType string `json:"personalityType"`
	TotalScore      int    `json:"totalScore"`
	ShareCode       string `json:"shareCode"`
}

// SubmitQuizResponse wraps the submission summary.
type SubmitQuizResponse struct {
	Quiz QuizSummary `json:"quiz"`
}

// SharedQuizResponse is the public view behind a share code. It carries the
// owner's result so responders see what they are being compared against.
type SharedQuizResponse struct {
	QuizID          string             `json:"quizId"`
	Mode            string             `json:"mode"`
	PersonalityType string             `json:"personalityType"`
	TotalScore      int                `json:"totalScore"`
	Owner           PublicUserResponse `json:"owner"`
	Questions       []QuestionResponse `json:"questions"`
}

// SubmitSharedRequest submits a responder's answers against an original quiz.
type SubmitSharedRequest struct {
	OriginalQuizID string                   `json:"originalQuizId"`
	Answers        []SubmittedAnswerRequest `json:"answers"`
}

// PersonalitySummary is one party's personality in a compatibility result.
type PersonalitySummary struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
}

// CompatibilitySummary is the pairwise compatibility outcome.
type CompatibilitySummary struct {
	Score   int    `json:"score"`
	Message string `json:"message"`
}

// SubmitSharedResponse is the observable shape of a shared submission.
type SubmitSharedResponse struct {
	MyPersonality           PersonalitySummary   `json:"myPersonality"`
	Compatibility           CompatibilitySummary `json:"compatibility"`
	OriginalUserPersonality PersonalitySummary   `json:"originalUserPersonality"`
}

// QuizHistoryItem is one past quiz with resolved sharer identities.
type QuizHistoryItem struct {
	ID              string               `json:"id"`
	Mode            string               `json:"mode"`
	ShareCode       string               `json:"shareCode"`
	TotalScore      int                  `json:"totalScore"`
	PersonalityType string               `json:"personalityType"`
	Completed       bool                 `json:"completed"`
	CompletedAt     *time.Time           `json:"completedAt,omitempty"`
	SharedWith      []PublicUserResponse `json:"sharedWith"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// QuizHistoryResponse lists the caller's quizzes, newest first.
type QuizHistoryResponse struct {
	Quizzes []QuizHistoryItem `json:"quizzes"`
}
