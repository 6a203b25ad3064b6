package provider

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/petasbytes/toolloop/memory"
	"github.com/petasbytes/toolloop/tools"
	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures an OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	// HTTPClient overrides the transport; nil uses the library default.
	HTTPClient *http.Client
}

// OpenAI talks to an OpenAI-compatible chat completions API such as OpenRouter.
type OpenAI struct {
	client *openai.Client
}

// NewOpenAI returns an endpoint for cfg.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	c := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		c.HTTPClient = cfg.HTTPClient
	}
	return &OpenAI{client: openai.NewClientWithConfig(c)}
}

// Complete sends req as a chat completion request.
func (o *OpenAI) Complete(ctx context.Context, req Request) (*Response, error) {
	params := openai.ChatCompletionRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		Messages:  toOpenAIMessages(req.Messages),
	}
	if len(req.Tools) > 0 {
		params.Tools = toOpenAITools(req.Tools)
	}

	resp, err := o.client.CreateChatCompletion(ctx, params)
	if err != nil {
		return nil, err
	}

	out := &Response{Choices: make([]Choice, 0, len(resp.Choices))}
	for _, c := range resp.Choices {
		out.Choices = append(out.Choices, Choice{
			Message:      fromOpenAIMessage(c.Message),
			FinishReason: string(c.FinishReason),
		})
	}
	return out, nil
}

func toOpenAIMessages(msgs []memory.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case memory.RoleUser:
			out = append(out, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: m.Content})
		case memory.RoleAssistant:
			msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: m.Content}
			for _, tc := range m.ToolCalls {
				msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				})
			}
			out = append(out, msg)
		case memory.RoleTool:
			out = append(out, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    toolResultContent(m),
				ToolCallID: m.ToolCallID,
			})
		}
	}
	return out
}

func toOpenAITools(specs []tools.Spec) []openai.Tool {
	out := make([]openai.Tool, 0, len(specs))
	for _, s := range specs {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        s.Name,
				Description: s.Description,
				Parameters:  s.Parameters,
			},
		})
	}
	return out
}

func fromOpenAIMessage(m openai.ChatCompletionMessage) memory.Message {
	msg := memory.Message{Role: memory.RoleAssistant, Content: m.Content}
	for _, tc := range m.ToolCalls {
		id := tc.ID
		if id == "" {
			// Some OpenAI-compatible backends omit IDs; results still need one to reference.
			id = "call_" + uuid.NewString()
		}
		msg.ToolCalls = append(msg.ToolCalls, memory.ToolCall{
			ID:        id,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return msg
}
