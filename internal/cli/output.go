package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// showPreview reports whether w is a terminal that renders ANSI colour.
func showPreview(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && colour.SupportsANSIColours(f)
}

// previewCell is a colour block for the last table column, empty when
// preview is off.
func previewCell(hex string, preview bool) string {
	if !preview {
		return ""
	}
	rgb, err := colour.HexToRGB(hex)
	if err != nil {
		return ""
	}
	return colour.ColourPreview(rgb, 6)
}

// withPreview appends a Preview header when preview is on.
func withPreview(headers []string, preview bool) []string {
	if preview {
		return append(headers, "Preview")
	}
	return headers
}

// ratingText renders a rating coloured by outcome when preview is on.
func ratingText(r colour.Rating, preview bool) string {
	if !preview {
		return r.String()
	}
	switch {
	case r.Meets(colour.RatingAA):
		return colour.ColourString(colour.RGB{G: 200}, r.String())
	case r == colour.RatingAALarge:
		return colour.ColourString(colour.RGB{R: 230, G: 160}, r.String())
	default:
		return colour.ColourString(colour.RGB{R: 220, G: 40, B: 40}, r.String())
	}
}
