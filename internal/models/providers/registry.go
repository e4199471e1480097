package providers

import (
	"context"
	"fmt"

	"drinkingman/internal/config"
)

// New builds the provider selected by cfg. A missing API key yields an error
// wrapping ErrMissingCredential so callers can run without generation.
func New(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGoogleAI, "":
		p, err := NewGoogleAIProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderAzure:
		p, err := NewAzureOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Deployment)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Provider)
	}
}
