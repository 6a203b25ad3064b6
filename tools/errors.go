package tools

import "errors"

var (
	// ErrDuplicateTool is returned by Register when the name is already taken.
	ErrDuplicateTool = errors.New("duplicate tool")
	// ErrUnknownTool reports a call naming a tool that is not registered.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArguments reports malformed argument JSON or a missing required field.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrToolExecution reports a handler failure such as a file access error.
	ErrToolExecution = errors.New("tool execution failed")
	// ErrTimeout reports a tool invocation that exceeded its time limit.
	ErrTimeout = errors.New("tool timed out")
)
