package providers

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/googleai"
)

// NewGoogleAIProvider creates a Gemini provider
func NewGoogleAIProvider(ctx context.Context, apiKey, model string) (*LangChainProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("googleai: %w", ErrMissingCredential)
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	return NewLangChainProvider("googleai", model, client), nil
}
