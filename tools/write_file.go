package tools

import (
	"context"
	"encoding/json"

	"github.com/petasbytes/toolloop/internal/fsops"
)

// WriteInput is the argument payload of the Write tool.
type WriteInput struct {
	FilePath string `json:"file_path" jsonschema_description:"The path of the file to write to"`
	Content  string `json:"content" jsonschema_description:"The content to write to the file"`
}

// WriteConfirmation is the fixed result of a successful Write.
const WriteConfirmation = "Write successful"

// WriteInputSchema is the advertised parameter schema derived from WriteInput.
var WriteInputSchema = GenerateSchema[WriteInput]()

// WriteDefinition returns the Write tool backed by fs. The file is created or
// overwritten with exactly the given content.
func WriteDefinition(fs *fsops.FS) ToolDefinition {
	return ToolDefinition{
		Name:        "Write",
		Description: "Write content to a file",
		InputSchema: WriteInputSchema,
		Function: func(_ context.Context, input json.RawMessage) (string, error) {
			in, err := decodeInput[WriteInput](input)
			if err != nil {
				return "", err
			}
			if err := fs.WriteFile(in.FilePath, in.Content); err != nil {
				return "", err
			}
			return WriteConfirmation, nil
		},
	}
}
