package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/petasbytes/toolloop/internal/safety"
	"github.com/petasbytes/toolloop/memory"
	"github.com/tidwall/gjson"
)

// Registry maps tool names to their definitions. Names are unique and
// registration order is preserved for advertisement.
type Registry struct {
	defs  map[string]ToolDefinition
	order []string
}

// NewRegistry returns a registry holding defs, failing on the first duplicate name.
func NewRegistry(defs ...ToolDefinition) (*Registry, error) {
	r := &Registry{defs: make(map[string]ToolDefinition, len(defs))}
	for _, d := range defs {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds d. A second registration under the same name fails with
// ErrDuplicateTool and leaves the first one in place.
func (r *Registry) Register(d ToolDefinition) error {
	if d.Name == "" {
		return fmt.Errorf("tool name is empty")
	}
	if d.Function == nil {
		return fmt.Errorf("tool %s has no handler", d.Name)
	}
	if _, exists := r.defs[d.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, d.Name)
	}
	r.defs[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// Specs returns the advertised specs of all tools in registration order.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name].Spec())
	}
	return out
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Dispatch executes call and returns the tool message answering it.
//
// The returned message is always a tool message with ToolCallID = call.ID.
// When the call fails (unknown tool, invalid arguments, handler error or
// timeout) the message carries a ToolError body and IsError is set; the
// returned error wraps the matching sentinel so callers can log or count it.
// Such errors are never fatal to the conversation.
func (r *Registry) Dispatch(ctx context.Context, call memory.ToolCall) (memory.Message, error) {
	def, ok := r.defs[call.Name]
	if !ok {
		te := safety.ToolError{Code: safety.CodeUnknownTool, Message: fmt.Sprintf("unknown tool %q", call.Name)}
		return failure(call.ID, te), fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
	}

	input, err := checkArguments(call.Arguments, def.InputSchema.Required)
	if err != nil {
		te := safety.ToolError{Code: safety.CodeInvalidArguments, Message: err.Error()}
		return failure(call.ID, te), err
	}

	out, err := def.Function(ctx, input)
	if err != nil {
		te, sentinel := describe(err)
		return failure(call.ID, te), fmt.Errorf("%w: %w", sentinel, err)
	}
	return memory.NewToolMessage(call.ID, out, false), nil
}

func failure(callID string, te safety.ToolError) memory.Message {
	return memory.NewToolMessage(callID, te.Error(), true)
}

// checkArguments verifies that raw is a JSON object holding every required
// field. Empty payloads are treated as an empty object.
func checkArguments(raw string, required []string) (json.RawMessage, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "{}"
	}
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: arguments are not valid JSON", ErrInvalidArguments)
	}
	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return nil, fmt.Errorf("%w: arguments must be a JSON object", ErrInvalidArguments)
	}

	present := make(map[string]struct{})
	parsed.ForEach(func(key, _ gjson.Result) bool {
		present[key.String()] = struct{}{}
		return true
	})
	for _, field := range required {
		if _, ok := present[field]; !ok {
			return nil, fmt.Errorf("%w: missing required field %q", ErrInvalidArguments, field)
		}
	}
	return json.RawMessage(raw), nil
}

// describe converts a handler error into the ToolError sent to the model and
// the sentinel reported to the caller.
func describe(err error) (safety.ToolError, error) {
	switch {
	case errors.Is(err, ErrInvalidArguments):
		return safety.ToolError{Code: safety.CodeInvalidArguments, Message: err.Error()}, ErrInvalidArguments
	case errors.Is(err, ErrTimeout):
		return safety.ToolError{Code: safety.CodeTimeout, Message: err.Error()}, ErrTimeout
	}
	var te safety.ToolError
	if errors.As(err, &te) {
		return te, ErrToolExecution
	}
	return safety.ToolError{Code: safety.CodeToolExecution, Message: err.Error()}, ErrToolExecution
}
