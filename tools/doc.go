// Package tools defines tool contracts, the registry, and the built-in tools.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Registry: unique names, Specs() for advertisement, Dispatch() for execution.
//   - Built-in tools: Read, Write, Bash.
//   - Invariant: Dispatch always answers a call with exactly one tool message,
//     including unknown tools, malformed arguments, and handler failures.
package tools
