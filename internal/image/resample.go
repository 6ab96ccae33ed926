package image

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// ToNRGBA converts img to non-premultiplied RGBA, reusing it when it already is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// FitPixels returns dimensions no larger than maxPixels in area that keep
// the aspect ratio of w by h. Dimensions already within budget are returned
// unchanged.
func FitPixels(w, h, maxPixels int) (int, int) {
	if maxPixels <= 0 || w*h <= maxPixels {
		return w, h
	}
	scale := math.Sqrt(float64(maxPixels) / float64(w*h))
	nw := max(1, int(math.Floor(float64(w)*scale)))
	nh := max(1, int(math.Floor(float64(h)*scale)))
	// Very thin images clamp one side to 1, so trim the other to stay in budget.
	nw = max(1, min(nw, maxPixels/nh))
	nh = max(1, min(nh, maxPixels/nw))
	return nw, nh
}

// Downsample returns img as NRGBA, scaled with nearest-neighbour sampling
// when its pixel count exceeds maxPixels.
func Downsample(img image.Image, maxPixels int) *image.NRGBA {
	bounds := img.Bounds()
	w, h := FitPixels(bounds.Dx(), bounds.Dy(), maxPixels)
	if w == bounds.Dx() && h == bounds.Dy() {
		return ToNRGBA(img)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
