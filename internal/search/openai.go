// Copyright FluxGen Manufacturing Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIBackend calls the OpenAI chat completion API with the same
// prompt contract as the Claude backend. It has no web-search tool, so
// result quality depends on the model; the parse-or-empty policy in
// Search covers the difference. Per prd002-search R2.4.
type OpenAIBackend struct {
	Client *openai.Client
	Model  string
}

// NewOpenAIBackend builds a backend from an API key.
func NewOpenAIBackend(apiKey, model string) *OpenAIBackend {
	return &OpenAIBackend{
		Client: openai.NewClient(apiKey),
		Model:  model,
	}
}

// Name returns the backend identifier.
func (b *OpenAIBackend) Name() string { return "openai" }

// Search sends the supplier search prompt and returns the first
// choice's message content.
func (b *OpenAIBackend) Search(ctx context.Context, query string, maxResults int) (string, error) {
	prompt, err := renderSearchPrompt(query)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	resp, err := b.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     b.Model,
		MaxTokens: 4096,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
