package colour

import (
	"fmt"
	"math"
)

// Default dark-mode backgrounds and minimum rating.
const (
	DefaultLightBackground = "#FFFFFF"
	DefaultDarkBackground  = "#121212"
	DefaultMinRating       = RatingAA
)

// Lightness sweep used by SuggestDarkModeAdjustments.
const (
	DarkModeStep      = 5.0
	DarkModeMaxOffset = 50.0
)

// ModeContrast is a colour's contrast against one mode's background.
type ModeContrast struct {
	Background string  `json:"background"`
	Ratio      float64 `json:"contrast_ratio"`
	Rating     Rating  `json:"wcag_rating"`
}

// DarkModeResult describes how a colour performs on light and dark backgrounds.
type DarkModeResult struct {
	Colour     string       `json:"text_color"`
	Light      ModeContrast `json:"light_mode"`
	Dark       ModeContrast `json:"dark_mode"`
	MinRating  Rating       `json:"min_rating"`
	Compatible bool         `json:"is_compatible"`
}

func (r DarkModeResult) String() string {
	status := "compatible"
	if !r.Compatible {
		status = "not compatible"
	}
	return fmt.Sprintf("%s %s (light %s %.2f:1 %s, dark %s %.2f:1 %s)",
		r.Colour, status,
		r.Light.Background, r.Light.Ratio, r.Light.Rating,
		r.Dark.Background, r.Dark.Ratio, r.Dark.Rating)
}

// DarkModeSuggestion is a lightness-adjusted colour that works in both modes.
type DarkModeSuggestion struct {
	Colour        string  `json:"color"`
	Adjustment    string  `json:"adjustment"`
	Offset        float64 `json:"offset"`
	LightContrast float64 `json:"light_contrast"`
	DarkContrast  float64 `json:"dark_contrast"`
}

type backgrounds struct {
	light, dark RGB
}

func parseBackgrounds(lightBg, darkBg string) (backgrounds, error) {
	light, err := HexToRGB(lightBg)
	if err != nil {
		return backgrounds{}, fmt.Errorf("light background: %w", err)
	}
	dark, err := HexToRGB(darkBg)
	if err != nil {
		return backgrounds{}, fmt.Errorf("dark background: %w", err)
	}
	return backgrounds{light: light, dark: dark}, nil
}

func (b backgrounds) check(rgb RGB, min Rating) DarkModeResult {
	lightRatio := ContrastRatioRGB(rgb, b.light)
	darkRatio := ContrastRatioRGB(rgb, b.dark)
	res := DarkModeResult{
		Colour:    rgb.Hex(),
		Light:     ModeContrast{Background: b.light.Hex(), Ratio: Round(lightRatio, DefaultContrastPrecision), Rating: RatingFor(lightRatio, false)},
		Dark:      ModeContrast{Background: b.dark.Hex(), Ratio: Round(darkRatio, DefaultContrastPrecision), Rating: RatingFor(darkRatio, false)},
		MinRating: min,
	}
	res.Compatible = res.Light.Rating.Meets(min) && res.Dark.Rating.Meets(min)
	return res
}

// CheckDarkMode measures hex against both backgrounds. The result is
// compatible when both ratings meet min.
func CheckDarkMode(hex, lightBg, darkBg string, min Rating) (DarkModeResult, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return DarkModeResult{}, err
	}
	bgs, err := parseBackgrounds(lightBg, darkBg)
	if err != nil {
		return DarkModeResult{}, err
	}
	return bgs.check(rgb, min), nil
}

// AdjustLightness shifts the HSL lightness of rgb by delta percentage points.
func AdjustLightness(rgb RGB, delta float64) RGB {
	hsl := RGBToHSL(rgb)
	hsl.L = clamp(hsl.L+delta, 0, 100)
	return HSLToRGB(hsl)
}

// SuggestDarkModeAdjustments sweeps the lightness of hex in DarkModeStep
// increments up to DarkModeMaxOffset either way, smallest change first
// (darker before lighter), and returns every candidate compatible with both
// backgrounds. The result may be empty.
func SuggestDarkModeAdjustments(hex, lightBg, darkBg string, min Rating) ([]DarkModeSuggestion, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	bgs, err := parseBackgrounds(lightBg, darkBg)
	if err != nil {
		return nil, err
	}

	suggestions := []DarkModeSuggestion{}
	seen := map[RGB]bool{rgb: true}
	steps := int(math.Round(DarkModeMaxOffset / DarkModeStep))
	for i := 1; i <= steps; i++ {
		for _, offset := range []float64{-float64(i) * DarkModeStep, float64(i) * DarkModeStep} {
			candidate := AdjustLightness(rgb, offset)
			if seen[candidate] {
				continue
			}
			seen[candidate] = true

			res := bgs.check(candidate, min)
			if !res.Compatible {
				continue
			}
			suggestions = append(suggestions, DarkModeSuggestion{
				Colour:        candidate.Hex(),
				Adjustment:    fmt.Sprintf("%+.0f%%", offset),
				Offset:        offset,
				LightContrast: res.Light.Ratio,
				DarkContrast:  res.Dark.Ratio,
			})
		}
	}
	return suggestions, nil
}

// textCandidates are tried in order before the grey ramp.
var textCandidates = []RGB{
	{0x00, 0x00, 0x00},
	{0xFF, 0xFF, 0xFF},
	{0x33, 0x33, 0x33},
	{0x66, 0x66, 0x66},
	{0x99, 0x99, 0x99},
}

// CompatibleTextColour finds a single text colour readable on both
// backgrounds at min. Black is returned when nothing qualifies.
func CompatibleTextColour(lightBg, darkBg string, min Rating) (string, error) {
	bgs, err := parseBackgrounds(lightBg, darkBg)
	if err != nil {
		return "", err
	}
	for _, c := range textCandidates {
		if bgs.check(c, min).Compatible {
			return c.Hex(), nil
		}
	}
	for v := 0x10; v <= 0xF0; v += 0x10 {
		grey := RGB{R: uint8(v), G: uint8(v), B: uint8(v)}
		if bgs.check(grey, min).Compatible {
			return grey.Hex(), nil
		}
	}
	return Black, nil
}

// DarkModePalette builds a triadic palette from hex and checks every role and
// the palette's text colour against both backgrounds.
func DarkModePalette(hex, lightBg, darkBg string, min Rating) (map[string]DarkModeResult, error) {
	bgs, err := parseBackgrounds(lightBg, darkBg)
	if err != nil {
		return nil, err
	}
	palette, err := NewGenerator(nil).Generate(HarmonyTriadic, hex, min)
	if err != nil {
		return nil, err
	}

	results := make(map[string]DarkModeResult, len(palette.Roles)+1)
	for _, role := range palette.Roles {
		rgb, _ := HexToRGB(role.Hex)
		results[role.Name] = bgs.check(rgb, min)
	}
	text, _ := HexToRGB(palette.Text)
	results[RoleText] = bgs.check(text, min)
	return results, nil
}
