// Package safety resolves tool-supplied paths and shapes tool-facing errors.
package safety

import (
	"encoding/json"
	"errors"
	"io/fs"
)

// Machine-readable codes carried in ToolError bodies.
const (
	CodeUnknownTool      = "ERR_UNKNOWN_TOOL"
	CodeInvalidArguments = "ERR_INVALID_ARGUMENTS"
	CodeNotFound         = "ERR_NOT_FOUND"
	CodePermissionDenied = "ERR_PERMISSION_DENIED"
	CodeNotAFile         = "ERR_NOT_A_FILE"
	CodeIO               = "ERR_IO"
	CodeToolExecution    = "ERR_TOOL_EXECUTION"
	CodeTimeout          = "ERR_TIMEOUT"
)

// ToolError is a machine-readable error body for surfacing back to the model as JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string to keep tool message payloads small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Classify maps err onto a ToolError. Errors that already are (or wrap) a
// ToolError are returned unchanged; file system errors get a specific code and
// everything else is reported as ERR_IO.
func Classify(err error) ToolError {
	var te ToolError
	if errors.As(err, &te) {
		return te
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ToolError{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, fs.ErrPermission):
		return ToolError{Code: CodePermissionDenied, Message: err.Error()}
	default:
		return ToolError{Code: CodeIO, Message: err.Error()}
	}
}
