package fsops

import "github.com/petasbytes/toolloop/internal/safety"

// FS performs blocking file operations for tools. Relative paths are resolved
// against Root; absolute paths are used as given.
type FS struct {
	Root string
}

// New returns an FS rooted at root (defaulting to the working directory).
func New(root string) (*FS, error) {
	abs, err := safety.InitRoot(root)
	if err != nil {
		return nil, err
	}
	return &FS{Root: abs}, nil
}
