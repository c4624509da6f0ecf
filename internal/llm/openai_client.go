// ABOUTME: OpenAI chat client used as the intent oracle transport
// ABOUTME: Sends a single-prompt chat completion and returns the raw answer text
package llm

import (
	"context"
	"fmt"
	"math"

	"github.com/aivix/bench/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

// CompletionRequest is one prompt plus the sampling parameters for it
type CompletionRequest struct {
	Prompt      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey  string
	BaseURL string
}

// ConfigFromApp extracts the client settings from the application config
func ConfigFromApp(cfg *config.Config) *ClientConfig {
	return &ClientConfig{
		APIKey:  cfg.OpenAIKey,
		BaseURL: cfg.OpenAIBaseURL,
	}
}

// OpenAIClient wraps the OpenAI API client
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates a new OpenAI client with the given API key
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(&ClientConfig{APIKey: apiKey})
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration.
// BaseURL points the client at any OpenAI-compatible endpoint.
func NewOpenAIClientWithConfig(cfg *ClientConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// GetClient returns the underlying OpenAI client for direct use
func (c *OpenAIClient) GetClient() *openai.Client {
	return c.client
}

// Complete sends req.Prompt as a single user message and returns the answer content.
// The deadline is taken from ctx; the client itself never retries.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	// The request struct omits a zero temperature, which the API reads as 1
	temperature := req.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
		Temperature: temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
