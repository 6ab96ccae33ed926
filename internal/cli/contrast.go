package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

// contrastReport is the JSON form of the contrast command.
type contrastReport struct {
	Foreground string        `json:"foreground"`
	Background string        `json:"background"`
	Ratio      float64       `json:"contrast_ratio"`
	Rating     colour.Rating `json:"wcag_rating"`
	LargeText  bool          `json:"large_text"`
}

func newContrastCmd(global *globalOptions) *cobra.Command {
	var large bool

	cmd := &cobra.Command{
		Use:   "contrast <color> <color>",
		Short: "Compute the WCAG contrast ratio of two colours",
		Long: `Compute the WCAG 2.1 contrast ratio between two colours and rate it for
normal or large text.

Examples:
  chromaspec contrast "#FFFFFF" "#767676"
  chromaspec contrast navy white --large`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := colourArg(args[0])
			if err != nil {
				return err
			}
			b, err := colourArg(args[1])
			if err != nil {
				return err
			}
			ratio, err := colour.ContrastRatio(a, b)
			if err != nil {
				return err
			}

			rep := contrastReport{
				Foreground: a,
				Background: b,
				Ratio:      colour.Round(ratio, colour.DefaultContrastPrecision),
				Rating:     colour.RatingFor(ratio, large),
				LargeText:  large,
			}

			out := cmd.OutOrStdout()
			if global.jsonOutput {
				return writeJSON(out, rep)
			}
			size := "normal"
			if large {
				size = "large"
			}
			fmt.Fprintf(out, "%s on %s: %.2f:1 (%s, %s text)\n", a, b, rep.Ratio, ratingText(rep.Rating, showPreview(out)), size)
			return nil
		},
	}

	cmd.Flags().BoolVar(&large, "large", false, "rate for large text (18pt, or 14pt bold)")
	return cmd
}
