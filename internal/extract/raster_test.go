package extract

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func TestExtractImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	fill(img, image.Rect(0, 0, 10, 5), color.NRGBA{R: 255, A: 255})
	fill(img, image.Rect(0, 5, 10, 10), color.NRGBA{B: 255, A: 255})

	got, stats := ExtractImage(img, DefaultImageOptions())
	if got["#FF0000"] != 50 || got["#0000FF"] != 50 || len(got) != 2 {
		t.Errorf("ExtractImage() = %v", got)
	}
	if stats.Sampled != 100 || stats.Transparent != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestExtractImageTransparency(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	fill(img, image.Rect(0, 0, 10, 4), color.NRGBA{G: 255, A: 255})
	fill(img, image.Rect(0, 4, 10, 10), color.NRGBA{R: 255, A: 10})

	got, stats := ExtractImage(img, DefaultImageOptions())
	if len(got) != 1 || got["#00FF00"] != 40 {
		t.Errorf("ExtractImage() = %v, want {#00FF00: 40}", got)
	}
	if stats.Transparent != 60 {
		t.Errorf("Transparent = %d, want 60", stats.Transparent)
	}
	if sum := got.Sum(); sum >= 100 {
		t.Errorf("Sum() = %v, want < 100 with exclusions", sum)
	}
}

func TestExtractImageFullyTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	got, _ := ExtractImage(img, DefaultImageOptions())
	if len(got) != 0 {
		t.Errorf("ExtractImage() = %v, want empty", got)
	}
}

func TestExtractImageDownsamples(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 400))
	fill(img, img.Bounds(), color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	got, stats := ExtractImage(img, DefaultImageOptions())
	if stats.SampleWidth*stats.SampleHeight > DefaultMaxPixels {
		t.Errorf("sample %dx%d exceeds budget", stats.SampleWidth, stats.SampleHeight)
	}
	if stats.SourceWidth != 400 {
		t.Errorf("SourceWidth = %d", stats.SourceWidth)
	}
	if math.Abs(got["#0A141E"]-100) > 1e-9 {
		t.Errorf("ExtractImage() = %v", got)
	}
}

func TestExtractImageQuantize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{R: 205, G: 12, B: 14, A: 255})

	opts := DefaultImageOptions()
	opts.QuantizeBits = 4
	got, _ := ExtractImage(img, opts)
	// Both pixels fall in bin 0xC0/0x00/0x00, reported at the bin centre.
	if len(got) != 1 || got["#C80808"] != 100 {
		t.Errorf("ExtractImage() = %v, want {#C80808: 100}", got)
	}
}
