package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

func newPaletteCmd(global *globalOptions) *cobra.Command {
	var (
		harmony harmonyValue
		rating  ratingValue
	)

	cmd := &cobra.Command{
		Use:   "palette <color>",
		Short: "Generate an accessible palette from a base colour",
		Long: `Generate a harmony-based palette from a base colour. The lightest role
becomes the background and its lightness is adjusted until every other role
meets the target WCAG contrast, or the search budget runs out.

Harmonies: complementary, analogous, triadic, split-complementary, tetradic

Examples:
  chromaspec palette "#3366CC"
  chromaspec palette tomato --harmony triadic --rating AAA
  chromaspec palette "#FF0000" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := colourArg(args[0])
			if err != nil {
				return err
			}
			cfg, err := global.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("harmony") {
				harmony = harmonyValue(cfg.HarmonyType())
			}
			if !cmd.Flags().Changed("rating") {
				rating = ratingValue(cfg.Accessibility.MinRating)
			}

			gen := colour.NewGenerator(global.logger(cmd.ErrOrStderr()))
			p, err := gen.Generate(colour.HarmonyType(harmony), base, colour.Rating(rating))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if global.jsonOutput {
				return writeJSON(out, p)
			}

			preview := showPreview(out)
			table := NewTable(withPreview([]string{"Role", "Color", "HSL", "Contrast"}, preview))
			bg := p.Background()
			for _, role := range p.Roles {
				contrast := "-"
				if role.Name != colour.RoleBackground {
					if r, err := colour.ContrastRatio(bg.Hex, role.Hex); err == nil {
						contrast = strconv.FormatFloat(colour.Round(r, colour.DefaultContrastPrecision), 'f', 2, 64) + ":1"
					}
				}
				hsl := ""
				if rgb, err := colour.HexToRGB(role.Hex); err == nil {
					hsl = colour.RGBToHSL(rgb).String()
				}
				table.AddRow([]string{role.Name, role.Hex, hsl, contrast, rolePreview(role, preview)})
			}
			fmt.Fprint(out, table.Render())

			status := "met"
			if !p.MetTarget {
				status = "not met (best effort)"
			}
			fmt.Fprintf(out, "\nText: %s\n", p.Text)
			fmt.Fprintf(out, "Minimum contrast: %.2f:1 (%s)\n", p.Contrast, ratingText(p.Rating, preview))
			fmt.Fprintf(out, "Target %s: %s after %d iterations\n", p.Target, status, p.Iterations)
			return nil
		},
	}

	cmd.Flags().Var(&harmony, "harmony", "harmony scheme (default from config, complementary)")
	cmd.Flags().Var(&rating, "rating", "target WCAG rating (default from config, AA)")
	return cmd
}

func rolePreview(role colour.PaletteRole, preview bool) string {
	if !preview {
		return ""
	}
	rgb, err := colour.HexToRGB(role.Hex)
	if err != nil {
		return ""
	}
	return colour.ColourPreviewWithText(rgb, role.Name, 12)
}
