package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

// darkModeReport is the JSON form of the darkmode command.
type darkModeReport struct {
	Result      colour.DarkModeResult            `json:"result"`
	Text        string                           `json:"compatible_text_color"`
	Suggestions []colour.DarkModeSuggestion      `json:"suggestions,omitempty"`
	Palette     map[string]colour.DarkModeResult `json:"palette,omitempty"`
}

func newDarkModeCmd(global *globalOptions) *cobra.Command {
	var (
		bg      backgroundFlags
		suggest bool
		palette bool
	)

	cmd := &cobra.Command{
		Use:   "darkmode <color>",
		Short: "Check a colour against light and dark backgrounds",
		Long: `Check whether a colour meets the minimum WCAG rating on both a light and a
dark background, and optionally suggest lightness adjustments that do.

Examples:
  chromaspec darkmode "#3366CC"
  chromaspec darkmode "#777777" --rating AA --suggest
  chromaspec darkmode coral --light "#FAFAFA" --dark "#1E1E1E"
  chromaspec darkmode "#3366CC" --palette`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hex, err := colourArg(args[0])
			if err != nil {
				return err
			}
			cfg, err := global.config()
			if err != nil {
				return err
			}
			light, dark := cfg.Accessibility.LightBackground, cfg.Accessibility.DarkBackground
			if bg.light != "" {
				if light, err = colourArg(bg.light); err != nil {
					return fmt.Errorf("--light: %w", err)
				}
			}
			if bg.dark != "" {
				if dark, err = colourArg(bg.dark); err != nil {
					return fmt.Errorf("--dark: %w", err)
				}
			}
			minRating := cfg.Accessibility.MinRating
			if cmd.Flags().Changed("rating") {
				minRating = colour.Rating(bg.rating)
			}

			res, err := colour.CheckDarkMode(hex, light, dark, minRating)
			if err != nil {
				return err
			}
			text, err := colour.CompatibleTextColour(light, dark, minRating)
			if err != nil {
				return err
			}
			rep := darkModeReport{Result: res, Text: text}
			if suggest && !res.Compatible {
				if rep.Suggestions, err = colour.SuggestDarkModeAdjustments(hex, light, dark, minRating); err != nil {
					return err
				}
			}

			if palette {
				if rep.Palette, err = colour.DarkModePalette(hex, light, dark, minRating); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if global.jsonOutput {
				return writeJSON(out, rep)
			}

			preview := showPreview(out)
			table := NewTable(withPreview([]string{"Mode", "Background", "Contrast", "Rating"}, preview))
			table.AddRow([]string{"light", res.Light.Background, fmt.Sprintf("%.2f:1", res.Light.Ratio), res.Light.Rating.String(), previewCell(res.Light.Background, preview)})
			table.AddRow([]string{"dark", res.Dark.Background, fmt.Sprintf("%.2f:1", res.Dark.Ratio), res.Dark.Rating.String(), previewCell(res.Dark.Background, preview)})
			fmt.Fprint(out, table.Render())

			verdict := "compatible"
			if !res.Compatible {
				verdict = "not compatible"
			}
			fmt.Fprintf(out, "\n%s is %s with both modes at %s\n", res.Colour, verdict, res.MinRating)
			fmt.Fprintf(out, "Text colour readable on both backgrounds: %s\n", text)

			if palette {
				printPaletteModes(out, rep.Palette, preview)
			}

			if suggest && !res.Compatible {
				if len(rep.Suggestions) == 0 {
					fmt.Fprintln(out, "\nNo lightness adjustment within 50% reaches the target.")
					return nil
				}
				fmt.Fprintln(out, "\nSuggested adjustments:")
				st := NewTable(withPreview([]string{"Color", "Lightness", "Light", "Dark"}, preview))
				for _, s := range rep.Suggestions {
					st.AddRow([]string{
						s.Colour, s.Adjustment,
						fmt.Sprintf("%.2f:1", s.LightContrast),
						fmt.Sprintf("%.2f:1", s.DarkContrast),
						previewCell(s.Colour, preview),
					})
				}
				fmt.Fprint(out, st.Render())
			}
			return nil
		},
	}

	bg.register(cmd.Flags())
	cmd.Flags().BoolVar(&suggest, "suggest", false, "suggest lightness adjustments when not compatible")
	cmd.Flags().BoolVar(&palette, "palette", false, "also check every role of a triadic palette built from the colour")
	return cmd
}

func printPaletteModes(out io.Writer, results map[string]colour.DarkModeResult, preview bool) {
	roles := make([]string, 0, len(results))
	for role := range results {
		roles = append(roles, role)
	}
	slices.Sort(roles)

	fmt.Fprintln(out, "\nTriadic palette:")
	table := NewTable(withPreview([]string{"Role", "Color", "Light", "Dark", "Compatible"}, preview))
	for _, role := range roles {
		r := results[role]
		table.AddRow([]string{
			role, r.Colour,
			fmt.Sprintf("%.2f:1", r.Light.Ratio),
			fmt.Sprintf("%.2f:1", r.Dark.Ratio),
			fmt.Sprintf("%t", r.Compatible),
			previewCell(r.Colour, preview),
		})
	}
	fmt.Fprint(out, table.Render())
}
