package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"loves-api/internal/config"
	"loves-api/internal/domain"
	"loves-api/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

const requestTimeout = 20 * time.Second

// openAIAssistant implements domain.Assistant on top of the OpenAI chat API.
type openAIAssistant struct {
	llm *openai.LLM
}

// NewOpenAIAssistant creates an assistant backed by OpenAI. It returns
// (nil, nil) when no API key is configured so callers can fall back to
// static content.
func NewOpenAIAssistant(cfg config.AssistantConfig) (domain.Assistant, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	opts := []openai.Option{openai.WithToken(cfg.APIKey)}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
	}

	return &openAIAssistant{llm: llm}, nil
}

// Complete implements domain.Assistant.
func (a *openAIAssistant) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	l := logger.Get()

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := a.llm.GenerateContent(ctx, messages, llms.WithTemperature(0.7))
	if err != nil {
		l.Error("assistant request failed", zap.Error(err))
		return "", domain.NewAssistantError(err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewAssistantError(fmt.Errorf("empty response from assistant"))
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
