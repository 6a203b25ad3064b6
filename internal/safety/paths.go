package safety

import (
	"fmt"
	"os"
	"path/filepath"
)

// InitRoot resolves the absolute root that relative tool paths are joined to.
// An empty root defaults to the current working directory.
func InitRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = cwd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs(root): %w", err)
	}

	// Resolve symlinks where possible; fall back to the absolute path when the
	// root does not exist yet.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return abs, nil
}

// ResolvePath returns the absolute location of p. Absolute inputs are cleaned
// and returned as-is; relative inputs are joined to absRoot. Empty paths are
// rejected with ERR_INVALID_ARGUMENTS.
func ResolvePath(absRoot, p string) (string, error) {
	if p == "" {
		return "", ToolError{Code: CodeInvalidArguments, Message: "file_path must not be empty"}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	return filepath.Join(absRoot, filepath.Clean(p)), nil
}
