package colour

import (
	"fmt"
	"strings"
)

// DefaultAnalogousOffset is the hue offset used for analogous colours.
const DefaultAnalogousOffset = 30.0

// HarmonyType names a hue-rotation scheme.
type HarmonyType string

const (
	HarmonyComplementary      HarmonyType = "complementary"
	HarmonyAnalogous          HarmonyType = "analogous"
	HarmonyTriadic            HarmonyType = "triadic"
	HarmonySplitComplementary HarmonyType = "split-complementary"
	HarmonyTetradic           HarmonyType = "tetradic"
)

// HarmonyTypes lists the supported schemes.
func HarmonyTypes() []HarmonyType {
	return []HarmonyType{
		HarmonyComplementary,
		HarmonyAnalogous,
		HarmonyTriadic,
		HarmonySplitComplementary,
		HarmonyTetradic,
	}
}

// ParseHarmonyType parses a scheme name.
func ParseHarmonyType(s string) (HarmonyType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, h := range HarmonyTypes() {
		if string(h) == s {
			return h, nil
		}
	}
	return "", fmt.Errorf("%w: unknown harmony %q (valid: %v)", ErrInvalidFormat, s, HarmonyTypes())
}

// Offsets returns the hue rotations of the scheme, base colour first.
func (h HarmonyType) Offsets() []float64 {
	switch h {
	case HarmonyComplementary:
		return []float64{0, 180}
	case HarmonyAnalogous:
		return []float64{0, -DefaultAnalogousOffset, DefaultAnalogousOffset}
	case HarmonyTriadic:
		return []float64{0, 120, 240}
	case HarmonySplitComplementary:
		return []float64{0, 150, 210}
	case HarmonyTetradic:
		return []float64{0, 90, 180, 270}
	}
	return nil
}

// RotateHue rotates hex around the hue wheel, preserving saturation and lightness.
func RotateHue(hex string, degrees float64) (string, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return "", err
	}
	return rotateRGB(rgb, degrees).Hex(), nil
}

func rotateRGB(rgb RGB, degrees float64) RGB {
	hsl := RGBToHSL(rgb)
	hsl.H = NormaliseHue(hsl.H + degrees)
	return HSLToRGB(hsl)
}

func rotations(hex string, offsets ...float64) ([]string, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(offsets))
	for i, o := range offsets {
		if NormaliseHue(o) == 0 {
			out[i] = rgb.Hex()
			continue
		}
		out[i] = rotateRGB(rgb, o).Hex()
	}
	return out, nil
}

// Complementary returns the colour opposite hex on the hue wheel.
func Complementary(hex string) (string, error) {
	return RotateHue(hex, 180)
}

// Analogous returns the two colours offset degrees either side of hex.
// A non-positive offset uses DefaultAnalogousOffset.
func Analogous(hex string, offset float64) ([2]string, error) {
	if offset <= 0 {
		offset = DefaultAnalogousOffset
	}
	out, err := rotations(hex, -offset, offset)
	if err != nil {
		return [2]string{}, err
	}
	return [2]string{out[0], out[1]}, nil
}

// Triadic returns the two colours at 120 and 240 degrees.
func Triadic(hex string) ([2]string, error) {
	out, err := rotations(hex, 120, 240)
	if err != nil {
		return [2]string{}, err
	}
	return [2]string{out[0], out[1]}, nil
}

// SplitComplementary returns the two colours either side of the complement.
func SplitComplementary(hex string) ([2]string, error) {
	out, err := rotations(hex, 150, 210)
	if err != nil {
		return [2]string{}, err
	}
	return [2]string{out[0], out[1]}, nil
}

// Tetradic returns the three colours at 90, 180 and 270 degrees.
func Tetradic(hex string) ([3]string, error) {
	out, err := rotations(hex, 90, 180, 270)
	if err != nil {
		return [3]string{}, err
	}
	return [3]string{out[0], out[1], out[2]}, nil
}

// Harmony returns every colour of the scheme, base colour first.
func Harmony(h HarmonyType, hex string) ([]string, error) {
	offsets := h.Offsets()
	if offsets == nil {
		return nil, fmt.Errorf("%w: unknown harmony %q", ErrInvalidFormat, h)
	}
	return rotations(hex, offsets...)
}
