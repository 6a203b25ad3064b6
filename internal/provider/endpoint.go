// Package provider adapts chat-completion APIs to the agent's message model.
//
// Each adapter converts memory.Message history and tool specs to its wire
// format and maps the response back. Two adapters exist: an OpenAI-compatible
// one (used with OpenRouter) and one for the Anthropic Messages API.
package provider

import (
	"context"

	"github.com/petasbytes/toolloop/memory"
	"github.com/petasbytes/toolloop/tools"
)

// Finish reasons reported in Choice.FinishReason.
const (
	FinishReasonStop      = "stop"
	FinishReasonToolCalls = "tool_calls"
	FinishReasonLength    = "length"
)

// EmptyToolResult replaces empty tool message content on the wire; both APIs
// reject tool results without content.
const EmptyToolResult = "(no output)"

func toolResultContent(m memory.Message) string {
	if m.Content == "" {
		return EmptyToolResult
	}
	return m.Content
}

// Request is one chat-completion call.
type Request struct {
	Model     string
	MaxTokens int
	Messages  []memory.Message
	Tools     []tools.Spec
}

// Choice is one candidate completion.
type Choice struct {
	Message      memory.Message `json:"message"`
	FinishReason string         `json:"finish_reason"`
}

// Response carries the choices returned by the endpoint.
type Response struct {
	Choices []Choice `json:"choices"`
}

// Endpoint performs chat-completion calls.
// Transport and API errors are returned as-is and are fatal to the run.
type Endpoint interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}
