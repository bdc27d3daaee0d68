// Package ai provides implementations of the text generation port: a client
// for OpenAI-compatible chat completion APIs and a deterministic local
// provider used when no API key is configured.
package ai

import (
	"context"
	"fmt"
	"strings"

	"storeseo-core/internal/ports"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/rs/zerolog"
)

const defaultModel = "deepseek-chat"

type provider struct {
	client openai.Client
	model  string
	logger zerolog.Logger
}

// NewProvider creates a text provider backed by an OpenAI-compatible chat
// completion endpoint. An empty baseURL targets the OpenAI API; DeepSeek and
// similar services are selected by their base URL.
func NewProvider(apiKey, baseURL, model string, logger zerolog.Logger) ports.TextProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}
	if model == "" {
		model = defaultModel
	}
	return &provider{
		client: openai.NewClient(opts...),
		model:  model,
		logger: logger,
	}
}

func (p *provider) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}
	return content, nil
}
