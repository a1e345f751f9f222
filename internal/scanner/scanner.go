// Package scanner resolves command-line arguments into the list of images
// to analyze.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLimit is the largest batch analyzed at once.
const DefaultLimit = 5

// SupportedExtensions contains the set of image file extensions we process.
var SupportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
	".avif": true,
}

// Result holds the images selected for analysis.
type Result struct {
	ImagePaths   []string
	SkippedCount int
	// Truncated counts images dropped because the batch limit was reached.
	Truncated int
}

// IsImage reports whether path has a supported image extension.
func IsImage(path string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Collect resolves each argument, which may be an image file or a directory,
// into image paths in argument order. Directories are read non-recursively
// and hidden entries are ignored. At most limit images are kept; limit <= 0
// means DefaultLimit.
func Collect(args []string, limit int) (*Result, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var paths []string
	result := &Result{}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if !info.IsDir() {
			if IsImage(arg) {
				paths = append(paths, arg)
			} else {
				result.SkippedCount++
			}
			continue
		}

		found, skipped, err := scanDir(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
		result.SkippedCount += skipped
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no image files found in %s", strings.Join(args, ", "))
	}

	if len(paths) > limit {
		result.Truncated = len(paths) - limit
		paths = paths[:limit]
	}
	result.ImagePaths = paths
	return result, nil
}

// scanDir lists the images directly inside dir, in name order.
func scanDir(dir string) ([]string, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read directory: %w", err)
	}

	var paths []string
	skipped := 0
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if IsImage(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		} else {
			skipped++
		}
	}
	return paths, skipped, nil
}
