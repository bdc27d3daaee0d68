package ai

import (
	"context"
	"errors"

	"storeseo-core/internal/ports"
)

// ErrNotConfigured is returned by the local provider for every completion.
var ErrNotConfigured = errors.New("no text generation provider configured")

type localProvider struct{}

// NewLocalProvider returns a provider for deployments without an API key. It
// fails every completion with ErrNotConfigured, which routes the content
// services onto their deterministic template generators, so all operations
// still complete with reproducible output.
func NewLocalProvider() ports.TextProvider {
	return localProvider{}
}

func (localProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	return "", ErrNotConfigured
}
