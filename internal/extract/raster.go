package extract

import (
	"image"

	"github.com/jmylchreest/chromaspec/internal/colour"
	imageutil "github.com/jmylchreest/chromaspec/internal/image"
)

// Raster defaults.
const (
	DefaultMaxPixels      = 200 * 200
	DefaultAlphaThreshold = 16
	DefaultQuantizeBits   = 8
)

// ImageOptions controls raster histogramming.
type ImageOptions struct {
	// MaxPixels is the pixel budget above which the image is downsampled.
	MaxPixels int
	// AlphaThreshold excludes pixels whose alpha is below it.
	AlphaThreshold int
	// QuantizeBits keeps this many high bits per channel; 8 disables quantisation.
	QuantizeBits int
	// MaxColours caps the number of distinct colours returned.
	MaxColours int
}

// DefaultImageOptions returns the default raster options.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		MaxPixels:      DefaultMaxPixels,
		AlphaThreshold: DefaultAlphaThreshold,
		QuantizeBits:   DefaultQuantizeBits,
		MaxColours:     DefaultMaxColours,
	}
}

// ImageStats describes what ExtractImage sampled.
type ImageStats struct {
	SourceWidth  int
	SourceHeight int
	SampleWidth  int
	SampleHeight int
	Sampled      int
	Transparent  int
	Distinct     int
	Truncated    bool
}

// ExtractImage histograms the pixels of img. Each frequency is a share of
// all sampled pixels, so transparent exclusions leave the total below 100.
func ExtractImage(img image.Image, opts ImageOptions) (colour.FrequencyMap, ImageStats) {
	bounds := img.Bounds()
	stats := ImageStats{SourceWidth: bounds.Dx(), SourceHeight: bounds.Dy()}
	if bounds.Empty() {
		return colour.FrequencyMap{}, stats
	}

	sample := imageutil.Downsample(img, opts.MaxPixels)
	width, height := sample.Bounds().Dx(), sample.Bounds().Dy()
	stats.SampleWidth, stats.SampleHeight = width, height

	bits := opts.QuantizeBits
	if bits <= 0 || bits > 8 {
		bits = 8
	}
	shift := uint(8 - bits)
	var centre uint8
	if shift > 0 {
		centre = uint8(1 << (shift - 1))
	}
	quantize := func(v uint8) uint8 {
		if shift == 0 {
			return v
		}
		return (v>>shift)<<shift | centre
	}

	counts := map[colour.RGB]int{}
	for y := 0; y < height; y++ {
		row := y * sample.Stride
		for x := 0; x < width; x++ {
			offset := row + x*4
			stats.Sampled++
			if int(sample.Pix[offset+3]) < opts.AlphaThreshold {
				stats.Transparent++
				continue
			}
			rgb := colour.RGB{
				R: quantize(sample.Pix[offset]),
				G: quantize(sample.Pix[offset+1]),
				B: quantize(sample.Pix[offset+2]),
			}
			counts[rgb]++
		}
	}

	hexCounts := make(map[string]int, len(counts))
	for rgb, n := range counts {
		hexCounts[rgb.Hex()] = n
	}
	freqs := normalise(hexCounts, stats.Sampled, opts.MaxColours)
	stats.Distinct = len(hexCounts)
	stats.Truncated = len(freqs) < len(hexCounts)
	return freqs, stats
}
