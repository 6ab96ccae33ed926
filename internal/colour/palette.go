package colour

import "github.com/hashicorp/go-hclog"

// Contrast search parameters.
const (
	MaxSearchIterations = 20
	SearchStep          = 5.0
)

// Role names.
const (
	RolePrimary    = "primary"
	RoleSecondary  = "secondary"
	RoleAccent     = "accent"
	RoleBackground = "background"
	RoleText       = "text"
)

var foregroundRoleNames = []string{RolePrimary, RoleSecondary, RoleAccent}

// PaletteRole is one named colour of a palette.
type PaletteRole struct {
	Name string `json:"name"`
	Hex  string `json:"color"`
}

// Palette is a harmony-based set of roles with a background adjusted for contrast.
type Palette struct {
	Name        HarmonyType   `json:"name"`
	Base        string        `json:"base"`
	Roles       []PaletteRole `json:"roles"`
	Text        string        `json:"text"`
	Target      Rating        `json:"target_rating"`
	Rating      Rating        `json:"wcag_rating"`
	Contrast    float64       `json:"contrast_ratio"`
	MetTarget   bool          `json:"met_target"`
	Iterations  int           `json:"iterations"`
	background  int
	foregrounds []int
}

// Background returns the background role.
func (p Palette) Background() PaletteRole {
	return p.Roles[p.background]
}

// Foregrounds returns every role except the background.
func (p Palette) Foregrounds() []PaletteRole {
	out := make([]PaletteRole, 0, len(p.foregrounds))
	for _, i := range p.foregrounds {
		out = append(out, p.Roles[i])
	}
	return out
}

// Role returns the role with the given name.
func (p Palette) Role(name string) (PaletteRole, bool) {
	for _, r := range p.Roles {
		if r.Name == name {
			return r, true
		}
	}
	return PaletteRole{}, false
}

// Hexes returns the role colours in order.
func (p Palette) Hexes() []string {
	out := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		out[i] = r.Hex
	}
	return out
}

// Generator builds accessible palettes.
type Generator struct {
	logger hclog.Logger
}

// NewGenerator returns a Generator logging to logger. A nil logger discards output.
func NewGenerator(logger hclog.Logger) *Generator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Generator{logger: logger.Named("palette")}
}

// Generate builds a palette for the harmony from baseHex, then searches the
// background lightness until its contrast against every foreground meets
// target. When the step budget runs out the best candidate is returned with
// MetTarget false. Only a malformed base colour is an error.
func (g *Generator) Generate(harmony HarmonyType, baseHex string, target Rating) (Palette, error) {
	hexes, err := Harmony(harmony, baseHex)
	if err != nil {
		return Palette{}, err
	}

	rgbs := make([]RGB, len(hexes))
	for i, h := range hexes {
		rgbs[i], _ = HexToRGB(h)
	}

	bgIdx := 0
	for i := range rgbs {
		if Luminance(rgbs[i]) > Luminance(rgbs[bgIdx]) {
			bgIdx = i
		}
	}
	var fgIdx []int
	for i := range rgbs {
		if i != bgIdx {
			fgIdx = append(fgIdx, i)
		}
	}

	fgs := make([]RGB, len(fgIdx))
	for i, idx := range fgIdx {
		fgs[i] = rgbs[idx]
	}
	bg, ratio, iterations, met := searchBackground(rgbs[bgIdx], fgs, target.Threshold())
	rgbs[bgIdx] = bg

	p := Palette{
		Name:        harmony,
		Base:        hexes[0],
		Roles:       make([]PaletteRole, len(rgbs)),
		Text:        bestText(bg).Hex(),
		Target:      target,
		Rating:      RatingFor(ratio, false),
		Contrast:    Round(ratio, DefaultContrastPrecision),
		MetTarget:   met,
		Iterations:  iterations,
		background:  bgIdx,
		foregrounds: fgIdx,
	}
	p.Roles[bgIdx] = PaletteRole{Name: RoleBackground, Hex: bg.Hex()}
	for n, idx := range fgIdx {
		p.Roles[idx] = PaletteRole{Name: foregroundRoleNames[n], Hex: rgbs[idx].Hex()}
	}

	if met {
		g.logger.Debug("palette generated", "harmony", harmony, "base", p.Base, "contrast", p.Contrast, "rating", p.Rating, "iterations", iterations)
	} else {
		g.logger.Warn("palette below target contrast", "harmony", harmony, "base", p.Base, "target", target, "contrast", p.Contrast, "rating", p.Rating)
	}
	return p, nil
}

// searchBackground steps the background lightness darker then lighter by
// SearchStep until the minimum contrast against fgs reaches threshold.
func searchBackground(bg RGB, fgs []RGB, threshold float64) (RGB, float64, int, bool) {
	best := bg
	bestRatio := minContrast(bg, fgs)
	if bestRatio >= threshold {
		return best, bestRatio, 0, true
	}

	iterations := 0
	for i := 1; i <= MaxSearchIterations; i++ {
		iterations = i
		for _, delta := range []float64{-float64(i) * SearchStep, float64(i) * SearchStep} {
			candidate := AdjustLightness(bg, delta)
			ratio := minContrast(candidate, fgs)
			if ratio > bestRatio {
				best, bestRatio = candidate, ratio
			}
			if ratio >= threshold {
				return candidate, ratio, iterations, true
			}
		}
	}
	return best, bestRatio, iterations, false
}

func minContrast(bg RGB, fgs []RGB) float64 {
	lowest := 21.0
	for _, fg := range fgs {
		if r := ContrastRatioRGB(bg, fg); r < lowest {
			lowest = r
		}
	}
	return lowest
}

func bestText(bg RGB) RGB {
	if ContrastRatioRGB(bg, whiteRGB) >= ContrastRatioRGB(bg, blackRGB) {
		return whiteRGB
	}
	return blackRGB
}

// AccessibilityPalette returns a two-role complementary palette.
func (g *Generator) AccessibilityPalette(baseHex string, target Rating) (Palette, error) {
	return g.Generate(HarmonyComplementary, baseHex, target)
}

// TriadicPalette returns a three-role triadic palette.
func (g *Generator) TriadicPalette(baseHex string, target Rating) (Palette, error) {
	return g.Generate(HarmonyTriadic, baseHex, target)
}

// SplitComplementaryPalette returns a three-role split-complementary palette.
func (g *Generator) SplitComplementaryPalette(baseHex string, target Rating) (Palette, error) {
	return g.Generate(HarmonySplitComplementary, baseHex, target)
}

// TetradicPalette returns a four-role tetradic palette.
func (g *Generator) TetradicPalette(baseHex string, target Rating) (Palette, error) {
	return g.Generate(HarmonyTetradic, baseHex, target)
}
