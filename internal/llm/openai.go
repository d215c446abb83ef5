package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient implements the Client interface using the official OpenAI SDK.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates an OpenAI client backed by the official SDK.
func NewOpenAIClient(apiKey, modelName string) (Client, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, fmt.Errorf("openai client requires an API key")
	}

	model := strings.TrimSpace(modelName)
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(key)),
		model:  model,
	}, nil
}

func (c *OpenAIClient) GetModelName() string {
	return c.model
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.CompleteWithRequest(ctx, &CompletionRequest{
		Messages: []*Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *OpenAIClient) CompleteWithRequest(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("openai completion request cannot be nil")
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.model),
		Messages: convertMessagesToOpenAI(req.SystemPrompt, req.Messages),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if len(req.Tools) > 0 {
		params.Tools = convertOpenAITools(req.Tools)
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return &CompletionResponse{StopReason: "stop"}, nil
	}

	choice := completion.Choices[0]
	return &CompletionResponse{
		Content:    choice.Message.Content,
		ToolCalls:  convertOpenAIToolCalls(choice.Message.ToolCalls),
		StopReason: choice.FinishReason,
	}, nil
}

func convertMessagesToOpenAI(systemPrompt string, messages []*Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)+1)
	if sys := strings.TrimSpace(systemPrompt); sys != "" {
		result = append(result, openai.SystemMessage(sys))
	}

	for _, msg := range messages {
		if msg == nil {
			continue
		}
		switch strings.ToLower(msg.Role) {
		case "system":
			if msg.Content != "" {
				result = append(result, openai.SystemMessage(msg.Content))
			}
		case "assistant":
			result = append(result, buildOpenAIAssistantMessage(msg))
		case "tool":
			if msg.ToolID != "" {
				result = append(result, openai.ToolMessage(msg.Content, msg.ToolID))
			} else if msg.Content != "" {
				result = append(result, openai.UserMessage(msg.Content))
			}
		default:
			if msg.Content != "" {
				result = append(result, openai.UserMessage(msg.Content))
			}
		}
	}
	return result
}

func buildOpenAIAssistantMessage(msg *Message) openai.ChatCompletionMessageParamUnion {
	if len(msg.ToolCalls) == 0 {
		return openai.AssistantMessage(msg.Content)
	}

	assistant := openai.ChatCompletionAssistantMessageParam{}
	if msg.Content != "" {
		assistant.Content.OfString = openai.String(msg.Content)
	}
	for idx, call := range msg.ToolCalls {
		function, ok := call["function"].(map[string]interface{})
		if !ok || function == nil {
			continue
		}
		name, _ := function["name"].(string)
		callID, _ := call["id"].(string)
		if callID == "" {
			callID = fmt.Sprintf("tool_call_%d", idx)
		}
		assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
			ID: callID,
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      name,
				Arguments: argumentsAsJSON(function["arguments"]),
			},
		})
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant}
}

func convertOpenAITools(tools []map[string]interface{}) []openai.ChatCompletionToolParam {
	result := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, raw := range tools {
		function, ok := raw["function"].(map[string]interface{})
		if !ok || function == nil {
			continue
		}
		name, _ := function["name"].(string)
		if name == "" {
			continue
		}

		def := shared.FunctionDefinitionParam{Name: name}
		if desc, _ := function["description"].(string); desc != "" {
			def.Description = openai.String(desc)
		}
		if params, ok := function["parameters"].(map[string]interface{}); ok {
			def.Parameters = shared.FunctionParameters(params)
		}

		result = append(result, openai.ChatCompletionToolParam{Function: def})
	}
	return result
}

func convertOpenAIToolCalls(calls []openai.ChatCompletionMessageToolCall) []map[string]interface{} {
	if len(calls) == 0 {
		return nil
	}
	result := make([]map[string]interface{}, 0, len(calls))
	for _, call := range calls {
		result = append(result, map[string]interface{}{
			"id":   call.ID,
			"type": "function",
			"function": map[string]interface{}{
				"name":      call.Function.Name,
				"arguments": call.Function.Arguments,
			},
		})
	}
	return result
}

func argumentsAsJSON(raw interface{}) string {
	switch value := raw.(type) {
	case nil:
		return "{}"
	case string:
		if strings.TrimSpace(value) == "" {
			return "{}"
		}
		return value
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return "{}"
		}
		return string(data)
	}
}
