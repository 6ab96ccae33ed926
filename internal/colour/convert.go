// Package colour provides colour space conversion, classification, harmony,
// accessibility and palette generation.
package colour

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Default display precision for rounded views.
const (
	DefaultHSLPrecision      = 1
	DefaultCMYKPrecision     = 0
	DefaultContrastPrecision = 2
)

var strictHexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// RGB represents a colour in 8-bit sRGB.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the colour as an uppercase hex string (e.g., "#1A2B3C").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B)
}

// RGBA implements color.Color with full opacity.
func (rgb RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}.RGBA()
}

// ToRGB converts a color.Color to RGB, discarding alpha.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// HSL is a colour in hue (0-360), saturation (0-100) and lightness (0-100).
// Values are kept at full precision; use Round for display.
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Round returns a copy with every component rounded to places decimals.
func (h HSL) Round(places int) HSL {
	return HSL{H: Round(h.H, places), S: Round(h.S, places), L: Round(h.L, places)}
}

func (h HSL) String() string {
	r := h.Round(DefaultHSLPrecision)
	return fmt.Sprintf("hsl(%.1f, %.1f%%, %.1f%%)", r.H, r.S, r.L)
}

// CMYK is a colour in cyan, magenta, yellow and key, each 0-100.
type CMYK struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Round returns a copy with every component rounded to places decimals.
func (c CMYK) Round(places int) CMYK {
	return CMYK{C: Round(c.C, places), M: Round(c.M, places), Y: Round(c.Y, places), K: Round(c.K, places)}
}

func (c CMYK) String() string {
	r := c.Round(DefaultCMYKPrecision)
	return fmt.Sprintf("cmyk(%.0f%%, %.0f%%, %.0f%%, %.0f%%)", r.C, r.M, r.Y, r.K)
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// HexToRGB parses a strict "#RRGGBB" string.
func HexToRGB(hex string) (RGB, error) {
	if !strictHexPattern.MatchString(hex) {
		return RGB{}, fmt.Errorf("%w: %q (expected #RRGGBB)", ErrInvalidFormat, hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidFormat, hex)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// RGBToHex formats integer channels as "#RRGGBB".
// Any channel outside 0-255 yields ErrInvalidRange.
func RGBToHex(r, g, b int) (string, error) {
	for _, ch := range []struct {
		name string
		v    int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if ch.v < 0 || ch.v > 255 {
			return "", fmt.Errorf("%w: %s channel %d not in [0, 255]", ErrInvalidRange, ch.name, ch.v)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}.Hex(), nil
}

// NormaliseHex accepts #RGB, #RGBA, #RRGGBB and #RRGGBBAA (case-insensitive)
// and returns the canonical uppercase "#RRGGBB". Alpha is discarded.
func NormaliseHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	body := s[1:]
	for _, c := range body {
		if !isHexDigit(c) {
			return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
	}
	switch len(body) {
	case 3, 4:
		body = string([]byte{body[0], body[0], body[1], body[1], body[2], body[2]})
	case 6, 8:
		body = body[:6]
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return "#" + strings.ToUpper(body), nil
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// RGBToHSL converts RGB to HSL at full precision.
func RGBToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l := (maxVal + minVal) / 2.0

	// Achromatic.
	if delta == 0 {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	var s float64
	if l < 0.5 {
		s = delta / (maxVal + minVal)
	} else {
		s = delta / (2.0 - maxVal - minVal)
	}

	var h float64
	switch maxVal {
	case r:
		h = (g - b) / delta
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h *= 60
	if h >= 360 {
		h -= 360
	}

	return HSL{H: h, S: s * 100, L: l * 100}
}

// HSLToRGB converts HSL to RGB. Hue is normalised modulo 360 and saturation
// and lightness are clamped to 0-100.
func HSLToRGB(hsl HSL) RGB {
	h := NormaliseHue(hsl.H)
	s := clamp(hsl.S, 0, 100) / 100
	l := clamp(hsl.L, 0, 100) / 100

	if s == 0 {
		v := channel(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: channel(hueToRGB(p, q, h+120)),
		G: channel(hueToRGB(p, q, h)),
		B: channel(hueToRGB(p, q, h-120)),
	}
}

// NormaliseHue maps any hue in degrees into [0, 360).
func NormaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func hueToRGB(p, q, t float64) float64 {
	t = NormaliseHue(t)
	if t < 60 {
		return p + (q-p)*t/60
	}
	if t < 180 {
		return q
	}
	if t < 240 {
		return p + (q-p)*(240-t)/60
	}
	return p
}

func channel(v float64) uint8 {
	return uint8(clamp(math.Round(v*255), 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// RGBToCMYK converts RGB to CMYK percentages. Pure black maps to (0, 0, 0, 100).
func RGBToCMYK(rgb RGB) CMYK {
	if rgb.R == 0 && rgb.G == 0 && rgb.B == 0 {
		return CMYK{K: 100}
	}
	r := float64(rgb.R) / 255.0
	g := float64(rgb.G) / 255.0
	b := float64(rgb.B) / 255.0

	k := 1 - math.Max(r, math.Max(g, b))
	return CMYK{
		C: (1 - r - k) / (1 - k) * 100,
		M: (1 - g - k) / (1 - k) * 100,
		Y: (1 - b - k) / (1 - k) * 100,
		K: k * 100,
	}
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(rgb RGB) float64 {
	rf := gammaCorrect(float64(rgb.R) / 255.0)
	gf := gammaCorrect(float64(rgb.G) / 255.0)
	bf := gammaCorrect(float64(rgb.B) / 255.0)
	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// HueDistance calculates the angular distance between two hues on the colour wheel.
// Returns a value between 0 and 180 degrees.
func HueDistance(h1, h2 float64) float64 {
	diff := math.Abs(NormaliseHue(h1) - NormaliseHue(h2))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}
