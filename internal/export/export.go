// Package export writes reports to disk without overwriting earlier runs.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile creates a new file at path, or at path with a numeric suffix if
// path already exists, and fills it with write. It returns the path used.
func WriteFile(path string, write func(io.Writer) error) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("cannot create output folder %q: %w", dir, err)
		}
	}

	f, dest, err := createUnique(path)
	if err != nil {
		return "", err
	}

	if err := write(f); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("cannot write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cannot finalize %s: %w", dest, err)
	}
	return dest, nil
}

// createUnique appends _1, _2, ... before the extension until it finds a
// name that does not exist yet.
func createUnique(path string) (*os.File, string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	candidate := path
	for i := 1; ; i++ {
		f, err := os.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, candidate, nil
		}
		if !os.IsExist(err) {
			return nil, "", fmt.Errorf("cannot create %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s_%d%s", base, i, ext)
	}
}
