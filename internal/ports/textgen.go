package ports

import "context"

// TextProvider defines the text generation collaborator. Implementations may
// call a hosted model or synthesize text locally; callers treat the provider
// as a black box that either returns generated text or fails.
type TextProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}
