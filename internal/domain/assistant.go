package domain

import "context"

// Assistant is the port for LLM-backed helper content. Implementations may
// be absent; callers fall back to static content when the assistant is nil
// or returns an error.
type Assistant interface {
	// Complete sends a system prompt and a user prompt and returns the reply.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewAssistantError wraps an assistant backend failure.
func NewAssistantError(cause error) *DomainError {
	return NewError(CodeAssistantError, "Failed to get assistant response", cause)
}
