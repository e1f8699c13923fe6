// Package fileutil provides cache-directory and image-path helpers.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrEmptyDir indicates a cache directory was not configured.
var ErrEmptyDir = errors.New("cache directory cannot be empty")

// EnsureDir creates the cache directory if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" {
		return ErrEmptyDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	return nil
}

// NewImagePath returns a fresh PNG path inside dir. Each call generates a
// new random identifier, so concurrent renders never collide on a path.
// Files are never deleted here; retention is the deployment's concern.
func NewImagePath(dir string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, uuid.NewString()+".png"), nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
