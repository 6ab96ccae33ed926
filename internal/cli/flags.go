package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/chromaspec/internal/batch"
	"github.com/jmylchreest/chromaspec/internal/colour"
)

// ratingValue is a WCAG rating flag.
type ratingValue colour.Rating

var _ pflag.Value = (*ratingValue)(nil)

func (r *ratingValue) String() string { return colour.Rating(*r).String() }

func (r *ratingValue) Set(s string) error {
	parsed, err := colour.ParseRating(s)
	if err != nil {
		return err
	}
	*r = ratingValue(parsed)
	return nil
}

func (r *ratingValue) Type() string { return "rating" }

// harmonyValue is a colour harmony flag.
type harmonyValue colour.HarmonyType

var _ pflag.Value = (*harmonyValue)(nil)

func (h *harmonyValue) String() string { return string(*h) }

func (h *harmonyValue) Set(s string) error {
	parsed, err := colour.ParseHarmonyType(s)
	if err != nil {
		return err
	}
	*h = harmonyValue(parsed)
	return nil
}

func (h *harmonyValue) Type() string { return "harmony" }

// formatValue is a batch export format flag.
type formatValue batch.Format

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	parsed, err := batch.ParseFormat(s)
	if err != nil {
		return err
	}
	*f = formatValue(parsed)
	return nil
}

func (f *formatValue) Type() string { return "format" }

// colourArg accepts #RGB, #RRGGBB (with optional alpha) or a CSS colour name
// and returns canonical #RRGGBB.
func colourArg(s string) (string, error) {
	s = strings.TrimSpace(s)
	if hex, ok := colour.LookupKeyword(s); ok {
		return hex, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	hex, err := colour.NormaliseHex(s)
	if err != nil {
		return "", fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return hex, nil
}

// backgroundFlags registers --light, --dark and --rating on fs.
type backgroundFlags struct {
	light  string
	dark   string
	rating ratingValue
}

func (b *backgroundFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&b.light, "light", "", "light mode background (default from config, "+colour.DefaultLightBackground+")")
	fs.StringVar(&b.dark, "dark", "", "dark mode background (default from config, "+colour.DefaultDarkBackground+")")
	fs.Var(&b.rating, "rating", "minimum WCAG rating (AAA, AA, AA-Large)")
}
