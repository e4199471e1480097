package providers

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/openai"
)

// GitHubModelsBaseURL serves an OpenAI-compatible API for GitHub tokens
const GitHubModelsBaseURL = "https://models.inference.ai.azure.com"

// NewOpenAIProvider creates a provider for OpenAI or any compatible API.
// An empty baseURL targets api.openai.com.
func NewOpenAIProvider(token, baseURL, model string) (*LangChainProvider, error) {
	if token == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingCredential)
	}

	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return NewLangChainProvider("openai", model, client), nil
}
