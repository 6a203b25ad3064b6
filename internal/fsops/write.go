package fsops

import (
	"os"
	"path/filepath"

	"github.com/petasbytes/toolloop/internal/safety"
)

// WriteFile creates or truncates the file addressed by p and writes content.
// Missing parent directories are created.
func (f *FS) WriteFile(p, content string) error {
	absPath, err := safety.ResolvePath(f.Root, p)
	if err != nil {
		return err
	}

	if fi, err := os.Stat(absPath); err == nil && fi.IsDir() {
		return safety.ToolError{Code: safety.CodeNotAFile, Message: "path is a directory"}
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return safety.Classify(err)
	}
	if err := os.WriteFile(absPath, []byte(content), 0o644); err != nil {
		return safety.Classify(err)
	}
	return nil
}
