package fsops

import (
	"os"

	"github.com/petasbytes/toolloop/internal/safety"
)

// ReadFile reads the whole file addressed by p and returns it as text.
// Directory targets yield ERR_NOT_A_FILE; other failures are classified into a ToolError.
func (f *FS) ReadFile(p string) (string, error) {
	absPath, err := safety.ResolvePath(f.Root, p)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(absPath)
	if err != nil {
		return "", safety.Classify(err)
	}
	if fi.IsDir() {
		return "", safety.ToolError{Code: safety.CodeNotAFile, Message: "path is a directory"}
	}

	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", safety.Classify(err)
	}
	return string(b), nil
}
