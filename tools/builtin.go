package tools

import (
	"github.com/petasbytes/toolloop/internal/fsops"
	"github.com/petasbytes/toolloop/internal/shell"
)

// NewDefault returns a registry wired with Read, Write and Bash.
func NewDefault(fs *fsops.FS, sh *shell.Runner, mode BashOutput) (*Registry, error) {
	return NewRegistry(
		ReadDefinition(fs),
		WriteDefinition(fs),
		BashDefinition(sh, mode),
	)
}
