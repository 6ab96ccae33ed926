// Package extract reads SVG and raster files and measures how often each
// colour occurs.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/chromaspec/internal/colour"
	imageutil "github.com/jmylchreest/chromaspec/internal/image"
	"github.com/jmylchreest/chromaspec/internal/security"
)

// File-level defaults.
const (
	DefaultMaxFileBytes  = 50 * 1024 * 1024
	DefaultDecodeTimeout = 30 * time.Second
)

// Format is the kind of input file.
type Format string

const (
	FormatSVG    Format = "svg"
	FormatRaster Format = "raster"
)

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".svg":
		return FormatSVG, nil
	case imageutil.IsImageFile(path):
		return FormatRaster, nil
	}
	return "", fmt.Errorf("%w: %q (supported: .svg, %s)", ErrUnsupportedFormat, ext, strings.Join(imageutil.SupportedImageExtensions(), ", "))
}

// IsSupported reports whether path has an extension the extractor accepts.
func IsSupported(path string) bool {
	_, err := DetectFormat(path)
	return err == nil
}

// Config holds extraction limits.
type Config struct {
	MaxFileBytes    int64
	MaxDecodePixels int
	DecodeTimeout   time.Duration
	SVG             SVGLimits
	Image           ImageOptions
	ProminentCount  int
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		MaxFileBytes:    DefaultMaxFileBytes,
		MaxDecodePixels: imageutil.DefaultMaxDecodePixels,
		DecodeTimeout:   DefaultDecodeTimeout,
		SVG:             DefaultSVGLimits(),
		Image:           DefaultImageOptions(),
		ProminentCount:  imageutil.DefaultProminentCount,
	}
}

// Validate validates the extraction configuration.
func (c Config) Validate() error {
	switch {
	case c.MaxFileBytes < 0:
		return colour.NewValidationError("max_file_bytes", "must not be negative, got %d", c.MaxFileBytes)
	case c.MaxDecodePixels < 0:
		return colour.NewValidationError("max_decode_pixels", "must not be negative, got %d", c.MaxDecodePixels)
	case c.DecodeTimeout < 0:
		return colour.NewValidationError("decode_timeout", "must not be negative, got %s", c.DecodeTimeout)
	case c.SVG.MaxBytes < 0:
		return colour.NewValidationError("max_svg_bytes", "must not be negative, got %d", c.SVG.MaxBytes)
	case c.SVG.MaxMatches < 0:
		return colour.NewValidationError("max_color_matches", "must not be negative, got %d", c.SVG.MaxMatches)
	case c.SVG.MaxColours < 0 || c.Image.MaxColours < 0:
		return colour.NewValidationError("max_colors", "must not be negative")
	case c.Image.MaxPixels < 0:
		return colour.NewValidationError("max_pixels", "must not be negative, got %d", c.Image.MaxPixels)
	case c.Image.AlphaThreshold < 0 || c.Image.AlphaThreshold > 255:
		return colour.NewValidationError("alpha_threshold", "must be between 0 and 255, got %d", c.Image.AlphaThreshold)
	case c.Image.QuantizeBits < 1 || c.Image.QuantizeBits > 8:
		return colour.NewValidationError("quantize_bits", "must be between 1 and 8, got %d", c.Image.QuantizeBits)
	case c.ProminentCount < 0:
		return colour.NewValidationError("prominent_colors", "must not be negative, got %d", c.ProminentCount)
	}
	return nil
}

// Result is the outcome of analysing one file.
type Result struct {
	Path       string                      `json:"file"`
	Format     Format                      `json:"format"`
	Size       int64                       `json:"size_bytes"`
	Colours    colour.FrequencyMap         `json:"colors"`
	Prominent  []imageutil.ProminentColour `json:"prominent,omitempty"`
	Width      int                         `json:"width,omitempty"`
	Height     int                         `json:"height,omitempty"`
	Truncated  bool                        `json:"truncated,omitempty"`
	Duration   time.Duration               `json:"-"`
	SVGStats   *SVGStats                   `json:"-"`
	ImageStats *ImageStats                 `json:"-"`
}

// Extractor reads files and produces colour frequency maps.
type Extractor struct {
	cfg    Config
	loader imageutil.Loader
	logger hclog.Logger
}

// New returns an Extractor. A nil logger discards output.
func New(cfg Config, logger hclog.Logger) *Extractor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Extractor{
		cfg:    cfg,
		loader: &imageutil.FileLoader{MaxPixels: cfg.MaxDecodePixels},
		logger: logger.Named("extract"),
	}
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// Extract returns the colour frequency map of the file at path.
func (e *Extractor) Extract(ctx context.Context, path string) (colour.FrequencyMap, error) {
	res, err := e.Analyse(ctx, path)
	if err != nil {
		return nil, err
	}
	return res.Colours, nil
}

// Analyse validates path, then extracts colours under the decode timeout.
func (e *Extractor) Analyse(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrFileRead, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, colour.NewValidationError("path", "%s is not a regular file", path)
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if _, err := security.ValidateFileSize(path, e.cfg.MaxFileBytes); err != nil {
		return nil, err
	}

	e.logger.Debug("extracting colours", "path", path, "format", format, "size", info.Size())

	res, err := e.withTimeout(ctx, func() (*Result, error) {
		if format == FormatSVG {
			return e.extractSVG(path)
		}
		return e.extractRaster(path)
	})
	if err != nil {
		return nil, err
	}

	res.Path = path
	res.Format = format
	res.Size = info.Size()
	res.Duration = time.Since(start)
	e.logger.Debug("extraction complete", "path", path, "colours", len(res.Colours), "duration", res.Duration)
	return res, nil
}

// withTimeout runs fn in a goroutine and abandons it when the deadline passes.
func (e *Extractor) withTimeout(ctx context.Context, fn func() (*Result, error)) (*Result, error) {
	if e.cfg.DecodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.DecodeTimeout)
		defer cancel()
	}

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := fn()
		done <- outcome{res: res, err: err}
	}()

	select {
	case out := <-done:
		return out.res, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeoutExceeded, e.cfg.DecodeTimeout)
		}
		return nil, ctx.Err()
	}
}

func (e *Extractor) extractSVG(path string) (*Result, error) {
	f, err := os.Open(path) // #nosec G304 - User-specified input path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	defer f.Close()

	var r io.Reader = f
	if e.cfg.SVG.MaxBytes > 0 {
		r = security.NewLimitedReader(f, int64(e.cfg.SVG.MaxBytes))
	}
	data, err := io.ReadAll(r)
	if err != nil {
		if errors.Is(err, security.ErrSizeLimit) {
			return nil, fmt.Errorf("%w: exceeds limit of %d bytes", ErrSVGTooLarge, e.cfg.SVG.MaxBytes)
		}
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}

	freqs, stats, err := ExtractSVG(data, e.cfg.SVG)
	if err != nil {
		return nil, err
	}
	if stats.Truncated {
		e.logger.Debug("svg colours truncated", "distinct", stats.Distinct, "kept", len(freqs))
	}
	return &Result{Colours: freqs, Truncated: stats.Truncated, SVGStats: &stats}, nil
}

func (e *Extractor) extractRaster(path string) (*Result, error) {
	img, err := e.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}

	freqs, stats := ExtractImage(img, e.cfg.Image)
	if stats.Transparent > 0 {
		e.logger.Debug("transparent pixels excluded", "count", stats.Transparent, "sampled", stats.Sampled)
	}
	res := &Result{
		Colours:    freqs,
		Width:      stats.SourceWidth,
		Height:     stats.SourceHeight,
		Truncated:  stats.Truncated,
		ImageStats: &stats,
	}

	if e.cfg.ProminentCount > 0 && stats.Sampled > stats.Transparent {
		prominent, err := imageutil.Prominent(img, e.cfg.ProminentCount)
		if err != nil {
			e.logger.Warn("prominent colour clustering failed", "path", path, "error", err)
		} else {
			res.Prominent = prominent
		}
	}
	return res, nil
}
