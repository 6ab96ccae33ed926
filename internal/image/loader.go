// Package image provides utilities for loading and processing raster images.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format
)

// DefaultMaxDecodePixels bounds the canvas a file may declare before it is
// decoded, matching the usual decompression-bomb limit.
const DefaultMaxDecodePixels = 89_478_485

// ErrImageTooLarge is returned when a file declares more pixels than allowed.
var ErrImageTooLarge = errors.New("image dimensions exceed limit")

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct {
	// MaxPixels rejects images whose header declares a larger canvas.
	// Zero or less disables the check.
	MaxPixels int
}

// NewFileLoader creates a FileLoader guarded by DefaultMaxDecodePixels.
func NewFileLoader() *FileLoader {
	return &FileLoader{MaxPixels: DefaultMaxDecodePixels}
}

// Load decodes the image at path. The header is read first so oversized
// canvases are refused before any pixel data is allocated.
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if l.MaxPixels > 0 {
		cfg, format, err := image.DecodeConfig(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read image header: %w", err)
		}
		if px := int64(cfg.Width) * int64(cfg.Height); px > int64(l.MaxPixels) {
			return nil, fmt.Errorf("%w: %s is %dx%d (%s), limit is %d pixels", ErrImageTooLarge, filepath.Base(path), cfg.Width, cfg.Height, format, l.MaxPixels)
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind image file: %w", err)
		}
	}
	return Decode(file)
}

// Decode decodes an image in any registered format.
func Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectory returns the regular files in dirPath that match accept,
// sorted by name. It does not recurse into subdirectories, but follows symlinks.
func ScanDirectory(dirPath string, accept func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			continue
		}
		if accept == nil || accept(entry.Name()) {
			files = append(files, fullPath)
		}
	}
	slices.Sort(files)
	return files, nil
}
