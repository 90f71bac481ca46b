package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// EnsureDir creates dir and any missing parents. An existing directory is
// left untouched; an existing non-directory at dir is an error.
func EnsureDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("directory path required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}
