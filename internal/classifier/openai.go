package classifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

// OpenAIOracle completes prompts against an OpenAI-compatible chat
// completion endpoint.
type OpenAIOracle struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIOracle creates an oracle backed by the OpenAI API.
func NewOpenAIOracle(apiKey, model string, logger *slog.Logger) *OpenAIOracle {
	return &OpenAIOracle{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// Complete implements Oracle.
func (o *OpenAIOracle) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	o.logger.Debug("requesting completion", "model", o.model, "max_tokens", maxTokens)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxCompletionTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
