package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Handler executes a tool with arguments that already passed schema checks.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// Schema is the JSON Schema object advertised for a tool's parameters.
type Schema struct {
	Type       string   `json:"type"`
	Properties any      `json:"properties"`
	Required   []string `json:"required,omitempty"`
}

// ToolDefinition pairs the advertised description of a tool with its handler.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema Schema
	Function    Handler
}

// Spec is the advertised part of a ToolDefinition, as sent to the model endpoint.
type Spec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// Spec returns the advertised description of d.
func (d ToolDefinition) Spec() Spec {
	return Spec{Name: d.Name, Description: d.Description, Parameters: d.InputSchema}
}

// GenerateSchema reflects T into an object schema. Fields without `omitempty`
// in their json tag are listed as required.
func GenerateSchema[T any]() Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	s := reflector.Reflect(v)

	var props any = map[string]any{}
	if s.Properties != nil && s.Properties.Len() > 0 {
		props = s.Properties
	}
	return Schema{Type: "object", Properties: props, Required: s.Required}
}

// decodeInput unmarshals raw tool arguments into T, reporting type mismatches
// as invalid arguments.
func decodeInput[T any](input json.RawMessage) (T, error) {
	var in T
	if err := json.Unmarshal(input, &in); err != nil {
		return in, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return in, nil
}
