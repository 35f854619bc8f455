package providers

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// TextGenerator produces a single completion for a prompt. No streaming, no
// multi-turn state.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

type llmTextGenerator struct {
	client *openai.Client
	model  string
}

// NewTextGenerator creates a TextGenerator backed by an OpenAI-compatible
// chat completion endpoint.
func NewTextGenerator(apiKey, baseURL, model string) TextGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &llmTextGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *llmTextGenerator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("ERROR: [TextGenerator] Completion request failed for model %s: %v", g.model, err)
		return "", fmt.Errorf("text generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("text generation returned no choices for model %s", g.model)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
