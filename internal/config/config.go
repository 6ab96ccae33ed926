// Package config loads chromaspec settings from YAML, a sibling .env file
// and CHROMASPEC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/chromaspec/internal/colour"
	"github.com/jmylchreest/chromaspec/internal/extract"
	imageutil "github.com/jmylchreest/chromaspec/internal/image"
	"github.com/jmylchreest/chromaspec/internal/report"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CHROMASPEC_"

// LimitsConfig bounds the input accepted per file.
type LimitsConfig struct {
	MaxFileMB       int64         `yaml:"max_file_mb"`
	MaxSVGBytes     int           `yaml:"max_svg_bytes"`
	MaxColorMatches int           `yaml:"max_color_matches"`
	MaxColors       int           `yaml:"max_colors"`
	DecodeTimeout   time.Duration `yaml:"decode_timeout"`
}

// ImageConfig controls raster sampling and clustering.
type ImageConfig struct {
	MaxPixels       int `yaml:"max_pixels"`
	MaxDecodePixels int `yaml:"max_decode_pixels"`
	AlphaThreshold  int `yaml:"alpha_threshold"`
	QuantizeBits    int `yaml:"quantize_bits"`
	ProminentColors int `yaml:"prominent_colors"`
}

// AccessibilityConfig sets the backgrounds, target rating and harmony used for checks and palettes.
type AccessibilityConfig struct {
	LightBackground string        `yaml:"light_background"`
	DarkBackground  string        `yaml:"dark_background"`
	MinRating       colour.Rating `yaml:"min_rating"`
	Harmony         string        `yaml:"harmony"`
}

// ReportConfig sizes the PDF report tables.
type ReportConfig struct {
	TopColors           int `yaml:"top_colors"`
	AccessibilityColors int `yaml:"accessibility_colors"`
}

// Config is the full chromaspec configuration.
type Config struct {
	Limits        LimitsConfig        `yaml:"limits"`
	Image         ImageConfig         `yaml:"image"`
	Accessibility AccessibilityConfig `yaml:"accessibility"`
	Report        ReportConfig        `yaml:"report"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxFileMB:       extract.DefaultMaxFileBytes / (1024 * 1024),
			MaxSVGBytes:     extract.DefaultMaxSVGBytes,
			MaxColorMatches: extract.DefaultMaxMatches,
			MaxColors:       extract.DefaultMaxColours,
			DecodeTimeout:   extract.DefaultDecodeTimeout,
		},
		Image: ImageConfig{
			MaxPixels:       extract.DefaultMaxPixels,
			MaxDecodePixels: imageutil.DefaultMaxDecodePixels,
			AlphaThreshold:  extract.DefaultAlphaThreshold,
			QuantizeBits:    extract.DefaultQuantizeBits,
			ProminentColors: imageutil.DefaultProminentCount,
		},
		Accessibility: AccessibilityConfig{
			LightBackground: colour.DefaultLightBackground,
			DarkBackground:  colour.DefaultDarkBackground,
			MinRating:       colour.DefaultMinRating,
			Harmony:         string(colour.HarmonyComplementary),
		},
		Report: ReportConfig{
			TopColors:           report.DefaultTopColours,
			AccessibilityColors: report.DefaultAccessibilityColours,
		},
	}
}

// Load reads configPath over the defaults. An empty path skips the file but
// still applies environment overrides. A .env next to the file is loaded
// when present.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		envPath := filepath.Join(filepath.Dir(configPath), ".env")
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}

		data, err := os.ReadFile(configPath) // #nosec G304 - User-specified config path
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"MAX_SVG_BYTES", &c.Limits.MaxSVGBytes},
		{"MAX_COLOR_MATCHES", &c.Limits.MaxColorMatches},
		{"MAX_COLORS", &c.Limits.MaxColors},
		{"MAX_PIXELS", &c.Image.MaxPixels},
		{"MAX_DECODE_PIXELS", &c.Image.MaxDecodePixels},
		{"ALPHA_THRESHOLD", &c.Image.AlphaThreshold},
		{"QUANTIZE_BITS", &c.Image.QuantizeBits},
		{"TOP_COLORS", &c.Report.TopColors},
	}
	for _, v := range ints {
		raw, ok := lookup(EnvPrefix + v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return colour.NewValidationError(strings.ToLower(v.name), "%s%s must be an integer, got %q", EnvPrefix, v.name, raw)
		}
		*v.dst = n
	}

	if raw, ok := lookup(EnvPrefix + "MAX_FILE_MB"); ok && raw != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return colour.NewValidationError("max_file_mb", "%sMAX_FILE_MB must be an integer, got %q", EnvPrefix, raw)
		}
		c.Limits.MaxFileMB = n
	}

	if raw, ok := lookup(EnvPrefix + "DECODE_TIMEOUT"); ok && raw != "" {
		d, err := parseDuration(raw)
		if err != nil {
			return colour.NewValidationError("decode_timeout", "%sDECODE_TIMEOUT: %v", EnvPrefix, err)
		}
		c.Limits.DecodeTimeout = d
	}

	if raw, ok := lookup(EnvPrefix + "LIGHT_BACKGROUND"); ok && raw != "" {
		c.Accessibility.LightBackground = raw
	}
	if raw, ok := lookup(EnvPrefix + "DARK_BACKGROUND"); ok && raw != "" {
		c.Accessibility.DarkBackground = raw
	}
	return nil
}

// parseDuration accepts Go durations and bare seconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// Validate checks every field and returns a *colour.ValidationError naming the
// first invalid one.
func (c *Config) Validate() error {
	if c.Limits.MaxFileMB < 0 {
		return colour.NewValidationError("max_file_mb", "must not be negative, got %d", c.Limits.MaxFileMB)
	}
	if err := c.ExtractConfig().Validate(); err != nil {
		return err
	}

	backgrounds := []struct{ field, hex string }{
		{"light_background", c.Accessibility.LightBackground},
		{"dark_background", c.Accessibility.DarkBackground},
	}
	for _, bg := range backgrounds {
		if _, err := colour.HexToRGB(bg.hex); err != nil {
			return colour.NewValidationError(bg.field, "%q is not a #RRGGBB colour", bg.hex)
		}
	}
	if _, err := colour.ParseHarmonyType(c.Accessibility.Harmony); err != nil {
		return colour.NewValidationError("harmony", "%v", err)
	}
	if c.Report.TopColors < 1 {
		return colour.NewValidationError("top_colors", "must be at least 1, got %d", c.Report.TopColors)
	}
	if c.Report.AccessibilityColors < 1 {
		return colour.NewValidationError("accessibility_colors", "must be at least 1, got %d", c.Report.AccessibilityColors)
	}
	return nil
}

// ExtractConfig maps the configuration onto extractor settings.
func (c *Config) ExtractConfig() extract.Config {
	return extract.Config{
		MaxFileBytes:    c.Limits.MaxFileMB * 1024 * 1024,
		MaxDecodePixels: c.Image.MaxDecodePixels,
		DecodeTimeout:   c.Limits.DecodeTimeout,
		SVG: extract.SVGLimits{
			MaxBytes:   c.Limits.MaxSVGBytes,
			MaxMatches: c.Limits.MaxColorMatches,
			MaxColours: c.Limits.MaxColors,
		},
		Image: extract.ImageOptions{
			MaxPixels:      c.Image.MaxPixels,
			AlphaThreshold: c.Image.AlphaThreshold,
			QuantizeBits:   c.Image.QuantizeBits,
			MaxColours:     c.Limits.MaxColors,
		},
		ProminentCount: c.Image.ProminentColors,
	}
}

// ReportOptions maps the configuration onto report settings.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		TopColours:           c.Report.TopColors,
		AccessibilityColours: c.Report.AccessibilityColors,
		LightBackground:      c.Accessibility.LightBackground,
		DarkBackground:       c.Accessibility.DarkBackground,
		MinRating:            c.Accessibility.MinRating,
	}
}

// HarmonyType returns the configured palette harmony.
func (c *Config) HarmonyType() colour.HarmonyType {
	h, err := colour.ParseHarmonyType(c.Accessibility.Harmony)
	if err != nil {
		return colour.HarmonyComplementary
	}
	return h
}
