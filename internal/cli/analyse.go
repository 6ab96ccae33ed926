package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/chromaspec/internal/batch"
	"github.com/jmylchreest/chromaspec/internal/colour"
	"github.com/jmylchreest/chromaspec/internal/config"
	"github.com/jmylchreest/chromaspec/internal/extract"
	imageutil "github.com/jmylchreest/chromaspec/internal/image"
	"github.com/jmylchreest/chromaspec/internal/report"
	"github.com/jmylchreest/chromaspec/internal/security"
)

// analyseOptions are the root command's own flags.
type analyseOptions struct {
	batch   bool
	pattern string
	output  string
	format  formatValue
	pdfs    bool
}

func (o *analyseOptions) registerFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.batch, "batch", false, "process many files and write a consolidated report")
	fs.StringVar(&o.pattern, "pattern", "", "glob of files to process in batch mode (e.g. 'images/*.svg')")
	fs.StringVarP(&o.output, "output", "o", "", "batch report path (default: batch_report.<format>)")
	fs.VarP(&o.format, "format", "f", "batch report format (json, csv)")
	fs.BoolVar(&o.pdfs, "pdfs", false, "write a PDF per file in batch mode")
}

// singleResult is the JSON form of a single-file analysis.
type singleResult struct {
	File              string                      `json:"file"`
	Format            extract.Format              `json:"format"`
	SizeBytes         int64                       `json:"size_bytes"`
	Width             int                         `json:"width,omitempty"`
	Height            int                         `json:"height,omitempty"`
	Truncated         bool                        `json:"truncated,omitempty"`
	TotalColours      int                         `json:"total_colors"`
	ColoursByCategory colour.Categorised          `json:"colors_by_category"`
	Prominent         []imageutil.ProminentColour `json:"prominent,omitempty"`
	Palette           *colour.Palette             `json:"palette,omitempty"`
	SHA256            string                      `json:"sha256,omitempty"`
	PDF               string                      `json:"pdf,omitempty"`
}

// app holds the components shared by single-file and batch runs.
type app struct {
	cfg      *config.Config
	logger   hclog.Logger
	pipeline *batch.Pipeline
	renderer *report.Generator
	out      io.Writer
	global   *globalOptions
}

func newApp(cmd *cobra.Command, global *globalOptions) (*app, error) {
	logger := global.logger(cmd.ErrOrStderr())
	cfg, err := global.config()
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "path", global.configPath, "max_pixels", cfg.Image.MaxPixels, "decode_timeout", cfg.Limits.DecodeTimeout)

	extractor := extract.New(cfg.ExtractConfig(), logger)
	pipeline := batch.NewPipeline(extractor, batch.PipelineOptions{
		Harmony: cfg.HarmonyType(),
		Target:  cfg.Accessibility.MinRating,
	}, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		pipeline: pipeline,
		renderer: report.New(cfg.ReportOptions(), logger),
		out:      cmd.OutOrStdout(),
		global:   global,
	}, nil
}

func runAnalyse(cmd *cobra.Command, global *globalOptions, opts *analyseOptions, args []string) error {
	a, err := newApp(cmd, global)
	if err != nil {
		return err
	}
	if opts.batch {
		return a.runBatch(cmd.Context(), opts, args, cmd.Flags().Changed("format"))
	}
	if opts.pattern != "" || opts.pdfs {
		return fmt.Errorf("--pattern and --pdfs require --batch")
	}
	return a.runSingle(cmd.Context(), args)
}

// runSingle analyses one file and writes its PDF, or JSON with --json. The
// first error aborts the run.
func (a *app) runSingle(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("an input file is required (or use --batch)")
	}
	if len(args) > 2 {
		return fmt.Errorf("expected <input> [output.pdf], got %d arguments", len(args))
	}
	input := args[0]
	if _, err := extract.DetectFormat(input); err != nil {
		return err
	}

	output := ""
	switch {
	case len(args) == 2:
		output = args[1]
		if !strings.EqualFold(filepath.Ext(output), ".pdf") {
			return colour.NewValidationError("output", "%q must have a .pdf extension", output)
		}
	case !a.global.jsonOutput:
		output = filepath.Join(filepath.Dir(input), batch.PDFName(input))
	}
	if output != "" {
		if err := security.ValidateOutputPath(output, ""); err != nil {
			return err
		}
	}

	analysis, err := a.pipeline.ProcessFile(ctx, input)
	if err != nil {
		return err
	}
	if analysis.Colours.Total() == 0 {
		return colour.NewValidationError("input", "no colours found in %s", input)
	}

	if output != "" {
		if err := a.renderer.WriteFile(output, analysis.ReportData(time.Now())); err != nil {
			return err
		}
	}

	if a.global.jsonOutput {
		res := analysis.Result
		return writeJSON(a.out, singleResult{
			File:              res.Path,
			Format:            res.Format,
			SizeBytes:         res.Size,
			Width:             res.Width,
			Height:            res.Height,
			Truncated:         res.Truncated,
			TotalColours:      analysis.Colours.Total(),
			ColoursByCategory: analysis.Colours,
			Prominent:         res.Prominent,
			Palette:           analysis.Palette,
			SHA256:            analysis.SHA256,
			PDF:               output,
		})
	}
	if !a.global.quiet {
		a.printAnalysis(analysis, output)
	}
	return nil
}

func (a *app) printAnalysis(analysis *batch.Analysis, pdf string) {
	preview := showPreview(a.out)
	c := analysis.Colours
	fmt.Fprintf(a.out, "Found colors - Red: %d, Green: %d, Blue: %d, Other: %d\n\n",
		c.Count(colour.CategoryRed), c.Count(colour.CategoryGreen), c.Count(colour.CategoryBlue), c.Count(colour.CategoryOther))

	table := NewTable(withPreview([]string{"#", "Color", "Category", "Frequency", "Name"}, preview))
	for i, cf := range c.Top(a.cfg.Report.TopColors) {
		rgb, err := colour.HexToRGB(cf.Hex)
		if err != nil {
			continue
		}
		name, _ := colour.NearestName(rgb)
		table.AddRow([]string{
			strconv.Itoa(i + 1),
			cf.Hex,
			a.pipeline.Converter().Categorise(rgb).String(),
			fmt.Sprintf("%.2f%%", cf.Frequency),
			name,
			previewCell(cf.Hex, preview),
		})
	}
	fmt.Fprint(a.out, table.Render())

	if p := analysis.Palette; p != nil {
		fmt.Fprintf(a.out, "\n%s palette: %s (contrast %.2f:1, %s)\n", p.Name, strings.Join(p.Hexes(), " "), p.Contrast, p.Rating)
	}
	if pdf != "" {
		fmt.Fprintf(a.out, "\nPDF saved to: %s\n", pdf)
	}
}

// runBatch processes every collected file, writes the ledger and prints a
// summary. Per-file failures never fail the run.
func (a *app) runBatch(ctx context.Context, opts *analyseOptions, args []string, formatSet bool) error {
	files, output, err := collectBatchInputs(opts, args)
	if err != nil {
		return err
	}

	format := batch.Format(opts.format)
	if output == "" {
		output = batch.DefaultOutputPath(format)
	} else if !formatSet {
		if f, err := batch.ParseFormat(strings.TrimPrefix(filepath.Ext(output), ".")); err == nil {
			format = f
		}
	}

	proc := batch.NewProcessor(a.pipeline, a.renderer, batch.Options{PDFs: opts.pdfs}, a.logger)
	rep := proc.Run(ctx, files)

	if err := batch.WriteFile(output, rep, format); err != nil {
		return err
	}
	a.logger.Info("batch report written", "path", output, "format", format)

	switch {
	case a.global.jsonOutput:
		return writeJSON(a.out, rep)
	case !a.global.quiet:
		a.printBatchSummary(rep, output)
	}
	return nil
}

// collectBatchInputs resolves the batch file list. A directory argument with
// no pattern is scanned; other arguments are taken as files, and a trailing
// .json or .csv argument names the report when --output is unset.
func collectBatchInputs(opts *analyseOptions, args []string) ([]string, string, error) {
	output := opts.output
	if output == "" && len(args) > 0 {
		last := args[len(args)-1]
		if _, err := batch.ParseFormat(strings.TrimPrefix(filepath.Ext(last), ".")); err == nil {
			output = last
			args = args[:len(args)-1]
		}
	}

	if opts.pattern != "" {
		files, err := batch.CollectFiles(opts.pattern)
		return files, output, err
	}
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			files, err := batch.CollectDir(args[0])
			return files, output, err
		}
	}
	if len(args) == 0 {
		return nil, "", fmt.Errorf("--pattern is required for batch mode unless a directory is provided")
	}

	var files []string
	for _, arg := range args {
		if extract.IsSupported(arg) {
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		return nil, "", fmt.Errorf("%w among %d arguments", batch.ErrNoFiles, len(args))
	}
	return files, output, nil
}

func (a *app) printBatchSummary(rep *batch.Report, output string) {
	table := NewTable([]string{"File", "Status", "Colors", "Red", "Green", "Blue", "Other"})
	table.SetColumnMaxWidth(0, 48)
	for _, f := range rep.Files {
		if !f.OK() {
			table.AddRow([]string{f.File, string(f.Status), "-", "-", "-", "-", "-"})
			continue
		}
		table.AddRow([]string{
			f.File, string(f.Status), strconv.Itoa(f.TotalColours),
			strconv.Itoa(f.Counts.Red), strconv.Itoa(f.Counts.Green),
			strconv.Itoa(f.Counts.Blue), strconv.Itoa(f.Counts.Other),
		})
	}
	fmt.Fprint(a.out, table.Render())

	s := rep.Summary
	fmt.Fprintf(a.out, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintf(a.out, "Consolidated report generated: %s\n", output)
	fmt.Fprintf(a.out, "Files processed: %d\n", s.TotalFiles)
	fmt.Fprintf(a.out, "Successful: %d\n", s.SuccessfulFiles)
	fmt.Fprintf(a.out, "Errors: %d\n", s.FailedFiles)
	fmt.Fprintf(a.out, "Average colors per file: %.2f\n", s.AverageColours)
	if s.MostColours != nil {
		fmt.Fprintf(a.out, "Most colors: %s (%d)\n", s.MostColours.File, s.MostColours.Count)
	}
	for _, e := range s.Errors {
		fmt.Fprintf(a.out, "  %s: %s\n", e.File, e.Error)
	}
}
