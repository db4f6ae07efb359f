// Package download saves exported files to disk without clobbering
// earlier downloads of the same name.
package download

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Save writes data into dir under the suggested name. When a file of that
// name already exists, a numbered variant like "paper (1).pdf" is chosen,
// the way browsers name repeated downloads. The final path is returned.
func Save(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download directory: %w", err)
	}

	path, err := freePath(dir, name)
	if err != nil {
		return "", err
	}

	// Write to a temp file first so a failed write never leaves a
	// truncated download at the final name.
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close download: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("move download into place: %w", err)
	}
	return path, nil
}

// freePath returns the first unoccupied path for name in dir.
func freePath(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", fmt.Errorf("check %s: %w", path, err)
		}
	}
}
