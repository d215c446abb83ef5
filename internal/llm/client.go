package llm

import (
	"context"
	"fmt"

	"inventory-app/config"
)

// Message represents a chat message.
type Message struct {
	Role      string                   `json:"role"`
	Content   string                   `json:"content"`
	ToolCalls []map[string]interface{} `json:"tool_calls,omitempty"`
	ToolID    string                   `json:"tool_id,omitempty"`
	ToolName  string                   `json:"tool_name,omitempty"`
}

// CompletionRequest represents a completion request.
type CompletionRequest struct {
	Messages     []*Message               `json:"messages"`
	Tools        []map[string]interface{} `json:"tools,omitempty"`
	SystemPrompt string                   `json:"system_prompt,omitempty"`
	MaxTokens    int                      `json:"max_tokens,omitempty"`
	Temperature  float64                  `json:"temperature,omitempty"`
}

// CompletionResponse represents a completion response.
type CompletionResponse struct {
	Content    string                   `json:"content"`
	ToolCalls  []map[string]interface{} `json:"tool_calls,omitempty"`
	StopReason string                   `json:"stop_reason"`
}

// Client is the capability interface every provider implements.
type Client interface {
	// CompleteWithRequest sends a full completion request and returns the response.
	CompleteWithRequest(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
	// Complete is a simplified version for a single prompt.
	Complete(ctx context.Context, prompt string) (string, error)
	// GetModelName returns the model name.
	GetModelName() string
}

// NewClientFromConfig builds a client for the configured provider. An empty
// model falls back to the provider default; an empty provider falls back to
// config.LLM_PROVIDER.
func NewClientFromConfig(provider, model string) (Client, error) {
	if provider == "" {
		provider = config.LLM_PROVIDER
	}
	switch provider {
	case "anthropic":
		return NewAnthropicClient(config.ANTHROPIC_API_KEY, model)
	case "openai":
		return NewOpenAIClient(config.OPENAI_API_KEY, model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
