// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	config *Config
	client *openai.Client
}

func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

func (p *OpenAIProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, NewValidationError("embedding", "empty input text")
	}

	req := openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(p.config.EmbeddingModel),
		Dimensions: p.config.EmbeddingDimension,
	}

	resp, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, NewProviderError("embedding", "failed to create embedding", err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, &AIError{
			Type:      ErrTypeProvider,
			Operation: "embedding",
			Message:   "empty embedding response",
		}
	}

	return resp.Data[0].Embedding, nil
}

func (p *OpenAIProvider) Dimension() int {
	return p.config.EmbeddingDimension
}

func (p *OpenAIProvider) GetCompletion(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = p.config.ChatModel
	}

	resp, err := p.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: p.config.Temperature,
			TopP:        p.config.TopP,
		},
	)

	if err != nil {
		return "", NewProviderError("completion", "failed to create completion", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{
			Type:      ErrTypeProvider,
			Operation: "completion",
			Message:   "empty completion response",
		}
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) HealthCheck(ctx context.Context) error {
	return nil
}

func (p *OpenAIProvider) GetStatus(ctx context.Context) ProviderStatus {
	return ProviderStatus{
		IsHealthy:        true,
		EmbeddingHealthy: true,
		LLMHealthy:       true,
		Message:          "OpenAI provider healthy",
	}
}
