package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// LangChainProvider adapts any langchaingo model to Provider
type LangChainProvider struct {
	name  string
	model string
	llm   llms.Model
}

// NewLangChainProvider wraps llm. model is passed on every call when non-empty.
func NewLangChainProvider(name, model string, llm llms.Model) *LangChainProvider {
	return &LangChainProvider{name: name, model: model, llm: llm}
}

// Name returns the provider name
func (p *LangChainProvider) Name() string {
	return p.name
}

// Generate sends prompt as a single human message
func (p *LangChainProvider) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	opts := []llms.CallOption{
		llms.WithTemperature(cfg.Temperature),
	}
	if cfg.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(cfg.MaxTokens))
	}
	if cfg.TopK > 0 {
		opts = append(opts, llms.WithTopK(cfg.TopK))
	}
	if cfg.TopP > 0 {
		opts = append(opts, llms.WithTopP(cfg.TopP))
	}
	if p.model != "" {
		opts = append(opts, llms.WithModel(p.model))
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt, opts...)
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", p.name, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
