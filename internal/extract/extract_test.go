package extract

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmylchreest/chromaspec/internal/colour"
	imageutil "github.com/jmylchreest/chromaspec/internal/image"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeTestPNG(t *testing.T, dir, name string, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fill(img, img.Bounds(), c)
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "logo.svg", want: FormatSVG},
		{path: "LOGO.SVG", want: FormatSVG},
		{path: "photo.jpeg", want: FormatRaster},
		{path: "scan.tiff", want: FormatRaster},
		{path: "notes.txt", wantErr: true},
		{path: "noext", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("DetectFormat(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("DetectFormat(%q) = %v, %v, want %v", tt.path, got, err, tt.want)
			}
		})
	}
}

func TestExtractorSVG(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "logo.svg", `<svg><rect fill="#FF0000"/></svg>`)

	got, err := New(DefaultConfig(), nil).Extract(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if got["#FF0000"] != 100 {
		t.Errorf("Extract() = %v", got)
	}
}

func TestExtractorRaster(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "blue.png", color.NRGBA{B: 255, A: 255})

	cfg := DefaultConfig()
	cfg.ProminentCount = 0
	res, err := New(cfg, nil).Analyse(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Format != FormatRaster || res.Width != 8 || res.Height != 8 {
		t.Errorf("Result = %+v", res)
	}
	if res.Colours["#0000FF"] != 100 {
		t.Errorf("Colours = %v", res.Colours)
	}
}

func TestExtractorErrors(t *testing.T) {
	dir := t.TempDir()
	corrupt := writeFile(t, dir, "broken.png", "definitely not a png")
	unsupported := writeFile(t, dir, "notes.txt", "hello")
	bigSVG := writeFile(t, dir, "big.svg", `<svg><rect fill="#FF0000"/></svg>`)
	bigPNG := writeTestPNG(t, dir, "big.png", color.NRGBA{B: 255, A: 255})

	tests := []struct {
		name   string
		path   string
		mutate func(*Config)
		want   error
	}{
		{name: "missing", path: filepath.Join(dir, "nope.svg"), want: ErrFileNotFound},
		{name: "unsupported", path: unsupported, want: ErrUnsupportedFormat},
		{name: "corrupt", path: corrupt, want: ErrFileRead},
		{name: "svg ceiling", path: bigSVG, mutate: func(c *Config) { c.SVG.MaxBytes = 10 }, want: ErrSVGTooLarge},
		{name: "decode ceiling", path: bigPNG, mutate: func(c *Config) { c.MaxDecodePixels = 10 }, want: imageutil.ErrImageTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			_, err := New(cfg, nil).Extract(context.Background(), tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("Extract() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestExtractorValidationErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "logo.svg", `<svg><rect fill="#FF0000"/></svg>`)

	cfg := DefaultConfig()
	cfg.MaxFileBytes = 5
	_, err := New(cfg, nil).Extract(context.Background(), path)
	var verr *colour.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("file size error = %v, want ValidationError", err)
	}

	sub := filepath.Join(dir, "folder.svg")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	_, err = New(DefaultConfig(), nil).Extract(context.Background(), sub)
	if !errors.As(err, &verr) {
		t.Errorf("directory error = %v, want ValidationError", err)
	}
}

func TestWithTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DecodeTimeout = 20 * time.Millisecond
	e := New(cfg, nil)

	release := make(chan struct{})
	defer close(release)
	_, err := e.withTimeout(context.Background(), func() (*Result, error) {
		<-release
		return &Result{}, nil
	})
	if !errors.Is(err, ErrTimeoutExceeded) {
		t.Errorf("error = %v, want ErrTimeoutExceeded", err)
	}

	res, err := e.withTimeout(context.Background(), func() (*Result, error) {
		return &Result{Width: 1}, nil
	})
	if err != nil || res.Width != 1 {
		t.Errorf("fast call = %+v, %v", res, err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}

	cfg := DefaultConfig()
	cfg.Image.QuantizeBits = 9
	var verr *colour.ValidationError
	if err := cfg.Validate(); !errors.As(err, &verr) || verr.Field != "quantize_bits" {
		t.Errorf("Validate() = %v, want quantize_bits error", err)
	}
}
