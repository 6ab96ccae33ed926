package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/jmylchreest/chromaspec/internal/extract"
	imageutil "github.com/jmylchreest/chromaspec/internal/image"
)

// ErrNoFiles is returned when a pattern or directory yields no supported files.
var ErrNoFiles = errors.New("no supported files found")

// CollectFiles expands a glob pattern and keeps supported regular files in
// sorted order.
func CollectFiles(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no files match pattern %q", ErrNoFiles, pattern)
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		if extract.IsSupported(m) {
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: pattern %q matched no supported files", ErrNoFiles, pattern)
	}
	slices.Sort(files)
	return files, nil
}

// CollectDir lists the supported files directly inside dir.
func CollectDir(dir string) ([]string, error) {
	files, err := imageutil.ScanDirectory(dir, extract.IsSupported)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, dir)
	}
	return files, nil
}
