// Package batch runs the extract, classify and palette pipeline over one or
// many files and exports the results as JSON or CSV.
package batch

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/chromaspec/internal/colour"
	"github.com/jmylchreest/chromaspec/internal/extract"
	"github.com/jmylchreest/chromaspec/internal/report"
	"github.com/jmylchreest/chromaspec/internal/security"
)

// Analyser extracts colours from a file.
type Analyser interface {
	Analyse(ctx context.Context, path string) (*extract.Result, error)
}

// PipelineOptions selects the palette generated for each file.
type PipelineOptions struct {
	Harmony colour.HarmonyType
	Target  colour.Rating
}

// Analysis is the pipeline output for one file.
type Analysis struct {
	Result  *extract.Result
	Colours colour.Categorised
	Palette *colour.Palette
	SHA256  string
}

// ReportData converts the analysis into PDF report input.
func (a *Analysis) ReportData(now time.Time) report.Data {
	return report.Data{
		Source:      a.Result.Path,
		GeneratedAt: now,
		Colours:     a.Colours,
		Prominent:   a.Result.Prominent,
		Palette:     a.Palette,
	}
}

// Pipeline extracts, classifies and builds a palette for files. It is not
// safe for concurrent use except for the shared HSL cache.
type Pipeline struct {
	analyser  Analyser
	converter *colour.Converter
	palettes  *colour.Generator
	opts      PipelineOptions
	logger    hclog.Logger
}

// NewPipeline returns a Pipeline. A nil logger discards output.
func NewPipeline(analyser Analyser, opts PipelineOptions, logger hclog.Logger) *Pipeline {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.Harmony == "" {
		opts.Harmony = colour.HarmonyComplementary
	}
	return &Pipeline{
		analyser:  analyser,
		converter: colour.NewConverter(colour.NewHSLCache()),
		palettes:  colour.NewGenerator(logger),
		opts:      opts,
		logger:    logger,
	}
}

// Converter returns the pipeline's caching converter.
func (p *Pipeline) Converter() *colour.Converter {
	return p.converter
}

// ProcessFile runs the pipeline for path.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*Analysis, error) {
	if err := security.ValidateSafePath(path, ""); err != nil {
		return nil, err
	}

	res, err := p.analyser.Analyse(ctx, path)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		Result:  res,
		Colours: p.converter.CategoriseMany(res.Colours),
	}
	if sum, err := security.FileHash(path); err == nil {
		a.SHA256 = sum
	} else {
		p.logger.Debug("failed to hash file", "path", path, "error", err)
	}

	if top := a.Colours.Top(1); len(top) > 0 {
		palette, err := p.palettes.Generate(p.opts.Harmony, top[0].Hex, p.opts.Target)
		if err != nil {
			p.logger.Warn("palette generation failed", "path", path, "base", top[0].Hex, "error", err)
		} else {
			a.Palette = &palette
		}
	}

	p.logger.Debug("file analysed", "path", path,
		"red", a.Colours.Count(colour.CategoryRed),
		"green", a.Colours.Count(colour.CategoryGreen),
		"blue", a.Colours.Count(colour.CategoryBlue),
		"other", a.Colours.Count(colour.CategoryOther))
	return a, nil
}
