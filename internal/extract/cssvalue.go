package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/chromaspec/internal/colour"
	"github.com/jmylchreest/chromaspec/internal/security"
)

var (
	hexValueRegex   = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
	rgbValueRegex   = regexp.MustCompile(`^rgba?\(\s*([0-9.]+%?)\s*[,\s]\s*([0-9.]+%?)\s*[,\s]\s*([0-9.]+%?)`)
	hslValueRegex   = regexp.MustCompile(`^hsla?\(\s*(-?[0-9.]+)(?:deg)?\s*[,\s]\s*([0-9.]+)%?\s*[,\s]\s*([0-9.]+)%?`)
	oklchValueRegex = regexp.MustCompile(`^oklch\(\s*([0-9.]+%?)\s+([0-9.]+)\s+(-?[0-9.]+)`)
	oklabValueRegex = regexp.MustCompile(`^oklab\(\s*([0-9.]+%?)\s+(-?[0-9.]+)\s+(-?[0-9.]+)`)
)

// skippedValues are colour-bearing values that name no concrete colour.
var skippedValues = map[string]bool{
	"none":         true,
	"transparent":  true,
	"currentcolor": true,
	"inherit":      true,
	"initial":      true,
	"unset":        true,
	"revert":       true,
	"context-fill": true,
}

// ParseColourValue resolves a CSS/SVG paint value to canonical "#RRGGBB".
// It supports hex, rgb(), hsl(), oklch(), oklab() and CSS keywords.
// References (url()), gradients and keywords without a concrete colour
// report false.
func ParseColourValue(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimSpace(strings.TrimSuffix(v, "!important"))
	if v == "" || skippedValues[v] {
		return "", false
	}

	switch {
	case strings.HasPrefix(v, "#"):
		if !hexValueRegex.MatchString(v) {
			return "", false
		}
		hex, err := colour.NormaliseHex(v)
		return hex, err == nil
	case strings.HasPrefix(v, "rgb"):
		return parseRGBFunc(v)
	case strings.HasPrefix(v, "hsl"):
		return parseHSLFunc(v)
	case strings.HasPrefix(v, "oklch"):
		return parseOKLCHFunc(v)
	case strings.HasPrefix(v, "oklab"):
		return parseOKLABFunc(v)
	case strings.HasPrefix(v, "url(") || strings.Contains(v, "gradient("):
		return "", false
	}

	// A paint may carry a fallback after a url(); only plain words are keywords.
	if strings.ContainsAny(v, " (") {
		return "", false
	}
	return colour.LookupKeyword(v)
}

// channelValue parses an rgb() component, either 0-255 or a percentage.
func channelValue(s string) uint8 {
	if strings.HasSuffix(s, "%") {
		// Regex guarantees a valid float.
		p, _ := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64) //nolint:errcheck
		return security.SafeUint8(int(math.Round(p / 100 * 255)))
	}
	f, _ := strconv.ParseFloat(s, 64) //nolint:errcheck
	return security.SafeUint8(int(math.Round(f)))
}

func parseRGBFunc(v string) (string, bool) {
	m := rgbValueRegex.FindStringSubmatch(v)
	if len(m) != 4 {
		return "", false
	}
	rgb := colour.RGB{R: channelValue(m[1]), G: channelValue(m[2]), B: channelValue(m[3])}
	return rgb.Hex(), true
}

func parseHSLFunc(v string) (string, bool) {
	m := hslValueRegex.FindStringSubmatch(v)
	if len(m) != 4 {
		return "", false
	}
	h, _ := strconv.ParseFloat(m[1], 64) //nolint:errcheck
	s, _ := strconv.ParseFloat(m[2], 64) //nolint:errcheck
	l, _ := strconv.ParseFloat(m[3], 64) //nolint:errcheck
	return colour.HSLToRGB(colour.HSL{H: h, S: s, L: l}).Hex(), true
}

// oklabLightness parses an OK lightness given as 0-1 or a percentage.
func oklabLightness(s string) float64 {
	if strings.HasSuffix(s, "%") {
		p, _ := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64) //nolint:errcheck
		return p / 100
	}
	l, _ := strconv.ParseFloat(s, 64) //nolint:errcheck
	return l
}

// parseOKLCHFunc handles oklch(L C H) where L is 0-1, C is 0-0.4, H is 0-360.
func parseOKLCHFunc(v string) (string, bool) {
	m := oklchValueRegex.FindStringSubmatch(v)
	if len(m) != 4 {
		return "", false
	}
	l := oklabLightness(m[1])
	c, _ := strconv.ParseFloat(m[2], 64) //nolint:errcheck
	h, _ := strconv.ParseFloat(m[3], 64) //nolint:errcheck
	hRad := h * math.Pi / 180.0
	return oklabToRGB(l, c*math.Cos(hRad), c*math.Sin(hRad)).Hex(), true
}

// parseOKLABFunc handles oklab(L a b) where a and b are roughly -0.4 to 0.4.
func parseOKLABFunc(v string) (string, bool) {
	m := oklabValueRegex.FindStringSubmatch(v)
	if len(m) != 4 {
		return "", false
	}
	l := oklabLightness(m[1])
	a, _ := strconv.ParseFloat(m[2], 64) //nolint:errcheck
	b, _ := strconv.ParseFloat(m[3], 64) //nolint:errcheck
	return oklabToRGB(l, a, b).Hex(), true
}

// oklabToRGB converts OKLAB to sRGB.
// Reference: https://bottosson.github.io/posts/oklab/.
func oklabToRGB(l, a, b float64) colour.RGB {
	lVal := l + 0.3963377774*a + 0.2158037573*b
	mVal := l - 0.1055613458*a - 0.0638541728*b
	sVal := l - 0.0894841775*a - 1.2914855480*b

	lVal = lVal * lVal * lVal
	mVal = mVal * mVal * mVal
	sVal = sVal * sVal * sVal

	r := +4.0767416621*lVal - 3.3077115913*mVal + 0.2309699292*sVal
	g := -1.2684380046*lVal + 2.6097574011*mVal - 0.3413193965*sVal
	bl := -0.0041960863*lVal - 0.7034186147*mVal + 1.7076147010*sVal

	return colour.RGB{
		R: security.SafeUint8(int(math.Round(linearToSRGB(r) * 255))),
		G: security.SafeUint8(int(math.Round(linearToSRGB(g) * 255))),
		B: security.SafeUint8(int(math.Round(linearToSRGB(bl) * 255))),
	}
}

func linearToSRGB(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}
