// Package cli provides the command-line interface for chromaspec.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/chromaspec/internal/batch"
	"github.com/jmylchreest/chromaspec/internal/config"
	"github.com/jmylchreest/chromaspec/internal/version"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	verbose    bool
	quiet      bool
	jsonOutput bool
	configPath string
}

// logger builds the process logger writing to w.
func (g *globalOptions) logger(w io.Writer) hclog.Logger {
	level := hclog.Info
	switch {
	case g.verbose:
		level = hclog.Debug
	case g.quiet:
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "chromaspec",
		Level:  level,
		Output: w,
		Color:  hclog.AutoColor,
	})
}

// config loads the configuration named by --config, or defaults plus
// environment overrides when the flag is unset.
func (g *globalOptions) config() (*config.Config, error) {
	return config.Load(g.configPath)
}

// NewRootCmd builds the chromaspec command tree.
func NewRootCmd() *cobra.Command {
	global := &globalOptions{}
	analyse := &analyseOptions{format: formatValue(batch.FormatJSON)}

	rootCmd := &cobra.Command{
		Use:   "chromaspec <input> [output.pdf]",
		Short: "Extract and analyse colours from SVG and image files",
		Long: `chromaspec extracts the colours used in SVG and raster image files,
groups them into red, green, blue and other, and renders a PDF report with
harmonies, WCAG contrast ratings and dark-mode checks.

Supported formats: .svg .png .jpg .jpeg .gif .bmp .tiff .tif .webp

Examples:
  # Single file, PDF written next to the input as logo_colors.pdf
  chromaspec logo.svg

  # Single file with an explicit PDF path
  chromaspec photo.jpg custom_output.pdf

  # Single file as JSON on stdout
  chromaspec --json logo.svg

  # Batch every supported file in a directory
  chromaspec --batch ./images

  # Batch with a pattern, CSV ledger and one PDF per file
  chromaspec --batch --pattern "images/*.png" --output results.csv --format csv --pdfs`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyse(cmd, global, analyse, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&global.verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&global.quiet, "quiet", "q", false, "suppress non-error output")
	pf.BoolVar(&global.jsonOutput, "json", false, "write results as JSON to stdout")
	pf.StringVar(&global.configPath, "config", "", "path to a YAML configuration file")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	analyse.registerFlags(rootCmd.Flags())

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd(global))
	rootCmd.AddCommand(newPaletteCmd(global))
	rootCmd.AddCommand(newDarkModeCmd(global))
	rootCmd.AddCommand(newContrastCmd(global))
	return rootCmd
}

func newVersionCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if global.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), version.GetInfo())
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		},
	}
}
