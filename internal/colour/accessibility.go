package colour

import (
	"fmt"
	"strings"
)

// WCAG 2.0 contrast thresholds.
const (
	ContrastAAA     = 7.0
	ContrastAA      = 4.5
	ContrastAALarge = 3.0
)

// Rating is a WCAG conformance level, ordered Fail < AA Large < AA < AAA.
type Rating int

const (
	RatingFail Rating = iota
	RatingAALarge
	RatingAA
	RatingAAA
)

func (r Rating) String() string {
	switch r {
	case RatingAAA:
		return "AAA"
	case RatingAA:
		return "AA"
	case RatingAALarge:
		return "AA Large"
	default:
		return "Fail"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Rating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rating) UnmarshalText(b []byte) error {
	parsed, err := ParseRating(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRating parses "AAA", "AA", "AA Large" (also "aa-large") or "Fail".
func ParseRating(s string) (Rating, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	switch norm {
	case "AAA":
		return RatingAAA, nil
	case "AA":
		return RatingAA, nil
	case "AA LARGE":
		return RatingAALarge, nil
	case "FAIL":
		return RatingFail, nil
	}
	return RatingFail, fmt.Errorf("%w: unknown rating %q", ErrInvalidFormat, s)
}

// Meets reports whether r is at least min.
func (r Rating) Meets(min Rating) bool {
	return r >= min
}

// Threshold returns the contrast ratio needed for normal text to reach r.
func (r Rating) Threshold() float64 {
	switch r {
	case RatingAAA:
		return ContrastAAA
	case RatingAA:
		return ContrastAA
	case RatingAALarge:
		return ContrastAALarge
	}
	return 1
}

// RatingFor maps a contrast ratio to a rating. Large text (18pt, or 14pt
// bold) reaches AAA at 4.5 and AA at 3.
func RatingFor(ratio float64, largeText bool) Rating {
	if largeText {
		switch {
		case ratio >= ContrastAA:
			return RatingAAA
		case ratio >= ContrastAALarge:
			return RatingAA
		}
		return RatingFail
	}
	switch {
	case ratio >= ContrastAAA:
		return RatingAAA
	case ratio >= ContrastAA:
		return RatingAA
	case ratio >= ContrastAALarge:
		return RatingAALarge
	}
	return RatingFail
}

// ContrastRatioRGB calculates the WCAG 2.0 contrast ratio between two colours.
// Returns a value between 1 and 21.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatioRGB(a, b RGB) float64 {
	l1 := Luminance(a)
	l2 := Luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// ContrastRatio calculates the contrast ratio between two hex colours.
func ContrastRatio(hexA, hexB string) (float64, error) {
	a, err := HexToRGB(hexA)
	if err != nil {
		return 0, err
	}
	b, err := HexToRGB(hexB)
	if err != nil {
		return 0, err
	}
	return ContrastRatioRGB(a, b), nil
}

// BackgroundContrast is the contrast of a colour against one background.
type BackgroundContrast struct {
	Background string  `json:"background"`
	Ratio      float64 `json:"contrast_ratio"`
	Rating     Rating  `json:"wcag_rating"`
	LargeText  Rating  `json:"wcag_rating_large"`
}

// BackgroundAnalysis summarises a colour against a set of backgrounds.
type BackgroundAnalysis struct {
	Colour         string               `json:"color"`
	Backgrounds    []BackgroundContrast `json:"backgrounds"`
	Recommendation string               `json:"recommendation"`
}

// Recommendations for text placed on a colour.
const (
	RecommendWhiteText = "White text on color"
	RecommendBlackText = "Black text on color"
)

// AnalyseBackgrounds measures hex against each background. With no
// backgrounds given, white and black are used.
func AnalyseBackgrounds(hex string, backgrounds ...string) (BackgroundAnalysis, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return BackgroundAnalysis{}, err
	}
	if len(backgrounds) == 0 {
		backgrounds = []string{White, Black}
	}

	out := BackgroundAnalysis{Colour: rgb.Hex()}
	for _, bg := range backgrounds {
		bgRGB, err := HexToRGB(bg)
		if err != nil {
			return BackgroundAnalysis{}, fmt.Errorf("background: %w", err)
		}
		ratio := ContrastRatioRGB(rgb, bgRGB)
		out.Backgrounds = append(out.Backgrounds, BackgroundContrast{
			Background: bgRGB.Hex(),
			Ratio:      Round(ratio, DefaultContrastPrecision),
			Rating:     RatingFor(ratio, false),
			LargeText:  RatingFor(ratio, true),
		})
	}
	out.Recommendation = BestTextRecommendation(rgb)
	return out, nil
}

// BestTextRecommendation says whether white or black text reads better on rgb.
func BestTextRecommendation(rgb RGB) string {
	if ContrastRatioRGB(rgb, whiteRGB) >= ContrastRatioRGB(rgb, blackRGB) {
		return RecommendWhiteText
	}
	return RecommendBlackText
}

// Common reference colours.
const (
	White = "#FFFFFF"
	Black = "#000000"
)

var (
	whiteRGB = RGB{R: 255, G: 255, B: 255}
	blackRGB = RGB{}
)
