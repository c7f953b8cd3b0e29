package util

import (
	"os"
	"path/filepath"
)

// GetAbsolutePath resolves path against the current working directory.
func GetAbsolutePath(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	root, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return filepath.Join(root, path), nil
}
