package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petasbytes/toolloop/internal/shell"
)

// BashInput is the argument payload of the Bash tool.
type BashInput struct {
	Command string `json:"command" jsonschema_description:"The command to execute"`
}

// BashOutput selects which streams a Bash result reports.
type BashOutput string

const (
	// BashOutputLossy returns stderr on a non-zero exit and stdout otherwise.
	BashOutputLossy BashOutput = "lossy"
	// BashOutputCombined returns stdout and stderr together.
	BashOutputCombined BashOutput = "combined"
)

// BashInputSchema is the advertised parameter schema derived from BashInput.
var BashInputSchema = GenerateSchema[BashInput]()

// BashDefinition returns the Bash tool running commands through r.
// Non-zero exits are reported in the result text, not as errors; only spawn
// failures and timeouts fail the call.
func BashDefinition(r *shell.Runner, mode BashOutput) ToolDefinition {
	return ToolDefinition{
		Name:        "Bash",
		Description: "Execute a shell command",
		InputSchema: BashInputSchema,
		Function: func(ctx context.Context, input json.RawMessage) (string, error) {
			in, err := decodeInput[BashInput](input)
			if err != nil {
				return "", err
			}
			res, err := r.Run(ctx, in.Command)
			if err != nil {
				return "", err
			}
			if res.TimedOut {
				return "", fmt.Errorf("%w: command did not finish within %s", ErrTimeout, r.Timeout)
			}
			if mode == BashOutputCombined {
				return res.Combined(), nil
			}
			return res.Lossy(), nil
		},
	}
}
