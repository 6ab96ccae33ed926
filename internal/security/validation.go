// Package security provides path, size and string validation for untrusted input.
package security

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

// ErrSizeLimit is returned by LimitedReader once its budget is spent.
var ErrSizeLimit = errors.New("size limit exceeded")

// Limits on sanitised strings.
const (
	MaxFilenameLength  = 255
	MaxPDFStringLength = 10000
)

// ValidateSafePath rejects paths containing ".." components. When baseDir is
// non-empty the resolved path must also lie inside it.
func ValidateSafePath(path, baseDir string) error {
	if path == "" {
		return colour.NewValidationError("path", "empty path")
	}
	for _, part := range strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' }) {
		if part == ".." {
			return colour.NewValidationError("path", "%q contains directory traversal (..)", path)
		}
	}
	if baseDir == "" {
		return nil
	}
	return ValidateWithinDir(path, baseDir)
}

// ValidateWithinDir ensures path resolves to baseDir or somewhere beneath it.
func ValidateWithinDir(path, baseDir string) error {
	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	absBase, err := filepath.Abs(filepath.Clean(baseDir))
	if err != nil {
		return fmt.Errorf("invalid base directory: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return colour.NewValidationError("path", "%q escapes base directory %q", path, baseDir)
	}
	return nil
}

// ValidateOutputPath checks that an output file path is safe to write
// beneath baseDir and creates its parent directory.
func ValidateOutputPath(path, baseDir string) error {
	if err := ValidateSafePath(path, baseDir); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return colour.NewValidationError("output", "%q is a directory", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// ValidateFileSize stats path and rejects files larger than maxBytes.
// A non-positive maxBytes disables the check.
func ValidateFileSize(path string, maxBytes int64) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return info.Size(), colour.NewValidationError("file", "%s is %d bytes, limit is %d", filepath.Base(path), info.Size(), maxBytes)
	}
	return info.Size(), nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// SanitizeFilename replaces anything outside [A-Za-z0-9_.-] with "_", strips
// leading dots and truncates to MaxFilenameLength keeping the extension.
func SanitizeFilename(name string) string {
	safe := unsafeFilenameChars.ReplaceAllString(name, "_")
	safe = strings.TrimLeft(safe, ".")
	if safe == "" {
		return "unnamed_file"
	}
	if len(safe) <= MaxFilenameLength {
		return safe
	}
	ext := filepath.Ext(safe)
	if ext == "" || len(ext) >= MaxFilenameLength {
		return safe[:MaxFilenameLength]
	}
	return safe[:MaxFilenameLength-len(ext)] + ext
}

// SanitizePDFString strips control characters, replaces characters outside
// Latin-1 with "?" and truncates long text. PDF syntax escaping is left to
// the PDF writer.
func SanitizePDFString(text string) string {
	var b strings.Builder
	n := 0
	for _, r := range text {
		if n >= MaxPDFStringLength {
			b.WriteString("...")
			break
		}
		switch {
		case r == '\t' || r == '\n':
			b.WriteRune(r)
		case unicode.IsControl(r):
			continue
		case r > unicode.MaxLatin1:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
		n++
	}
	return b.String()
}

// FileHash returns the hex SHA-256 digest of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 - caller validated path
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SafeUint8 safely converts an integer to uint8 with bounds checking.
// Values outside 0-255 are clamped to the valid range.
func SafeUint8(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// LimitedReader wraps an io.Reader and fails once more than the allowed
// number of bytes has been read.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits. Reading exactly the budget
// succeeds; any further byte yields ErrSizeLimit.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining < 0 {
		return 0, ErrSizeLimit
	}
	// Allow one byte past the budget so an exact-size input reads cleanly to EOF.
	if int64(len(p)) > l.Remaining+1 {
		p = p[:l.Remaining+1]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	if l.Remaining < 0 {
		return n, ErrSizeLimit
	}
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
