// Package narrative generates executive summary text through the OpenAI API.
package narrative

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/brightops/pulse/internal/domain/report"
	"github.com/sashabaranov/go-openai"
)

const (
	defaultModel = "gpt-4o-mini"
	temperature  = 0.7
	maxTokens    = 2000
)

// OpenAIGenerator implements report.Generator over the OpenAI chat API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIGenerator creates a generator for the given API key and model.
func NewOpenAIGenerator(apiKey, model string, logger *slog.Logger) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}, nil
}

// Generate asks the chat model for a narrative report.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("generating narrative", "model", g.model)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: report.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
