package providers

import (
	"context"
	"errors"
)

// ErrMissingCredential is returned when a provider is configured without the
// key it needs to authenticate
var ErrMissingCredential = errors.New("missing language model credential")

// ErrEmptyResponse is returned when the service answers without any text
var ErrEmptyResponse = errors.New("empty response from language model")

// GenerationConfig holds the sampling parameters of a single call
type GenerationConfig struct {
	Temperature float64
	MaxTokens   int
	TopK        int
	TopP        float64
}

// Provider interface for LLM providers
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error)
}
