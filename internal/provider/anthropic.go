package provider

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/petasbytes/toolloop/memory"
	"github.com/petasbytes/toolloop/tools"
)

// AnthropicConfig configures the Anthropic Messages endpoint.
type AnthropicConfig struct {
	APIKey string
	// BaseURL overrides the SDK default when set.
	BaseURL    string
	HTTPClient *http.Client
}

// Anthropic adapts the Anthropic Messages API to Endpoint.
type Anthropic struct {
	client anthropic.Client
}

// NewAnthropic returns an endpoint for cfg.
func NewAnthropic(cfg AnthropicConfig) *Anthropic {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	return &Anthropic{client: anthropic.NewClient(opts...)}
}

// Complete sends req to the Messages API. The single returned message is
// reported as one choice.
func (a *Anthropic) Complete(ctx context.Context, req Request) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(req.MaxTokens),
		Messages:  toAnthropicMessages(req.Messages),
	}
	if len(req.Tools) > 0 {
		params.Tools = toAnthropicTools(req.Tools)
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	out := memory.Message{Role: memory.RoleAssistant}
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			if out.Content != "" {
				out.Content += "\n"
			}
			out.Content += v.Text
		case anthropic.ToolUseBlock:
			out.ToolCalls = append(out.ToolCalls, memory.ToolCall{
				ID:        v.ID,
				Name:      v.Name,
				Arguments: v.JSON.Input.Raw(),
			})
		}
	}
	return &Response{Choices: []Choice{{Message: out, FinishReason: finishReason(msg.StopReason)}}}, nil
}

func finishReason(r anthropic.StopReason) string {
	switch r {
	case anthropic.StopReasonEndTurn, anthropic.StopReasonStopSequence:
		return FinishReasonStop
	case anthropic.StopReasonToolUse:
		return FinishReasonToolCalls
	case anthropic.StopReasonMaxTokens:
		return FinishReasonLength
	}
	return string(r)
}

// toAnthropicMessages maps history to Messages API params. Consecutive tool
// messages are folded into one user message of tool_result blocks.
func toAnthropicMessages(msgs []memory.Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(msgs))
	var results []anthropic.ContentBlockParamUnion
	flush := func() {
		if len(results) > 0 {
			out = append(out, anthropic.NewUserMessage(results...))
			results = nil
		}
	}

	for _, m := range msgs {
		if m.Role == memory.RoleTool {
			results = append(results, anthropic.NewToolResultBlock(m.ToolCallID, toolResultContent(m), m.IsError))
			continue
		}
		flush()
		switch m.Role {
		case memory.RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case memory.RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, toolInput(tc.Arguments), tc.Name))
			}
			out = append(out, anthropic.NewAssistantMessage(blocks...))
		}
	}
	flush()
	return out
}

// toolInput returns args as raw JSON, substituting an empty object when the
// model produced something that is not valid JSON.
func toolInput(args string) json.RawMessage {
	if args == "" || !json.Valid([]byte(args)) {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(args)
}

func toAnthropicTools(specs []tools.Spec) []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(specs))
	for _, s := range specs {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        s.Name,
			Description: anthropic.String(s.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: s.Parameters.Properties,
				Required:   s.Parameters.Required,
			},
		}})
	}
	return out
}
