// Package llm provides the OpenAI-backed item summarizer.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"techdigest/internal/domain"
	"techdigest/internal/ports"
)

const systemPrompt = "You write one-sentence summaries of tech news items for a daily digest. " +
	"Answer with the summary only, at most 40 words, no preamble."

// OpenAISummarizer implements ports.Summarizer via the chat completions API.
type OpenAISummarizer struct {
	client openai.Client
	model  string
}

var _ ports.Summarizer = (*OpenAISummarizer)(nil)

// NewOpenAISummarizer builds a summarizer from an API key and model name.
func NewOpenAISummarizer(apiKey, model string) *OpenAISummarizer {
	return &OpenAISummarizer{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Summarize asks the model for a one-line summary of the item.
func (s *OpenAISummarizer) Summarize(ctx context.Context, item domain.ClassifiedItem) (string, error) {
	prompt := fmt.Sprintf("Title: %s\nURL: %s\nCategory: %s", item.Title, item.URL, item.Category)

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(80),
	})
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
