package providers

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

// AzureOpenAIProvider implements the Provider interface for Azure OpenAI
type AzureOpenAIProvider struct {
	client         *azopenai.Client
	deploymentName string
}

// NewAzureOpenAIProvider creates a new Azure OpenAI provider
func NewAzureOpenAIProvider(endpoint, apiKey, deploymentName string) (*AzureOpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("azure: %w", ErrMissingCredential)
	}
	if endpoint == "" || deploymentName == "" {
		return nil, fmt.Errorf("azure openai configuration missing: endpoint and deployment are required")
	}

	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure OpenAI client: %w", err)
	}

	return &AzureOpenAIProvider{
		client:         client,
		deploymentName: deploymentName,
	}, nil
}

// Name returns the provider name
func (p *AzureOpenAIProvider) Name() string {
	return "azure"
}

// Generate implements the Provider interface
func (p *AzureOpenAIProvider) Generate(ctx context.Context, prompt string, cfg GenerationConfig) (string, error) {
	opts := azopenai.ChatCompletionsOptions{
		Messages: []azopenai.ChatRequestMessageClassification{
			&azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(prompt),
			},
		},
		Temperature:    to.Ptr(float32(cfg.Temperature)),
		DeploymentName: to.Ptr(p.deploymentName),
	}
	if cfg.MaxTokens > 0 {
		opts.MaxTokens = to.Ptr(int32(cfg.MaxTokens))
	}
	if cfg.TopP > 0 {
		opts.TopP = to.Ptr(float32(cfg.TopP))
	}

	resp, err := p.client.GetChatCompletions(ctx, opts, nil)
	if err != nil {
		return "", fmt.Errorf("Azure OpenAI completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return "", ErrEmptyResponse
	}

	return *resp.Choices[0].Message.Content, nil
}
