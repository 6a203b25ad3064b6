package tools

import (
	"context"
	"encoding/json"

	"github.com/petasbytes/toolloop/internal/fsops"
)

// ReadInput is the argument payload of the Read tool.
type ReadInput struct {
	FilePath string `json:"file_path" jsonschema_description:"The path to the file to be read"`
}

// ReadInputSchema is the advertised parameter schema derived from ReadInput.
var ReadInputSchema = GenerateSchema[ReadInput]()

// ReadDefinition returns the Read tool backed by fs.
func ReadDefinition(fs *fsops.FS) ToolDefinition {
	return ToolDefinition{
		Name:        "Read",
		Description: "Read and return the contents of a file",
		InputSchema: ReadInputSchema,
		Function: func(_ context.Context, input json.RawMessage) (string, error) {
			in, err := decodeInput[ReadInput](input)
			if err != nil {
				return "", err
			}
			return fs.ReadFile(in.FilePath)
		},
	}
}
