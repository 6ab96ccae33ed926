package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/chromaspec/internal/colour"
	imageutil "github.com/jmylchreest/chromaspec/internal/image"
	"github.com/jmylchreest/chromaspec/internal/report"
	"github.com/jmylchreest/chromaspec/internal/security"
)

// Status is the outcome of one file.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// CategoryCounts is the number of distinct colours per category.
type CategoryCounts struct {
	Red   int `json:"red"`
	Green int `json:"green"`
	Blue  int `json:"blue"`
	Other int `json:"other"`
}

func countsOf(c colour.Categorised) CategoryCounts {
	return CategoryCounts{
		Red:   c.Count(colour.CategoryRed),
		Green: c.Count(colour.CategoryGreen),
		Blue:  c.Count(colour.CategoryBlue),
		Other: c.Count(colour.CategoryOther),
	}
}

// FileResult is one ledger entry.
type FileResult struct {
	File              string                      `json:"file"`
	Status            Status                      `json:"status"`
	TotalColours      int                         `json:"total_colors"`
	Counts            CategoryCounts              `json:"counts"`
	ColoursByCategory colour.Categorised          `json:"colors_by_category"`
	Prominent         []imageutil.ProminentColour `json:"prominent,omitempty"`
	Palette           *colour.Palette             `json:"palette,omitempty"`
	SHA256            string                      `json:"sha256,omitempty"`
	PDF               string                      `json:"pdf,omitempty"`
	Error             string                      `json:"error,omitempty"`
}

// OK reports whether the file was processed successfully.
func (r FileResult) OK() bool {
	return r.Status == StatusOK
}

// MostColours names the file with the largest colour count.
type MostColours struct {
	File  string `json:"file"`
	Count int    `json:"color_count"`
}

// FileError is one entry of the error ledger.
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// Summary aggregates a batch run.
type Summary struct {
	TotalFiles      int          `json:"total_files"`
	SuccessfulFiles int          `json:"successful_files"`
	FailedFiles     int          `json:"failed_files"`
	TotalColours    int          `json:"total_colors_found"`
	AverageColours  float64      `json:"average_colors_per_file"`
	MostColours     *MostColours `json:"file_with_most_colors"`
	Errors          []FileError  `json:"errors"`
}

// Report is the full batch output.
type Report struct {
	RunID       string       `json:"run_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Files       []FileResult `json:"files"`
	Summary     Summary      `json:"summary"`
}

// Summarise computes the summary of results. The average is taken over
// successful files and rounded to two places.
func Summarise(results []FileResult) Summary {
	s := Summary{TotalFiles: len(results), Errors: []FileError{}}
	for _, r := range results {
		if !r.OK() {
			s.FailedFiles++
			s.Errors = append(s.Errors, FileError{File: r.File, Error: r.Error})
			continue
		}
		s.SuccessfulFiles++
		s.TotalColours += r.TotalColours
		if r.TotalColours > 0 && (s.MostColours == nil || r.TotalColours > s.MostColours.Count) {
			s.MostColours = &MostColours{File: r.File, Count: r.TotalColours}
		}
	}
	if s.SuccessfulFiles > 0 {
		s.AverageColours = colour.Round(float64(s.TotalColours)/float64(s.SuccessfulFiles), 2)
	}
	return s
}

// Renderer writes a per-file PDF.
type Renderer interface {
	WriteFile(path string, data report.Data) error
}

// Options configures a batch run.
type Options struct {
	// PDFs renders a report per successful file.
	PDFs bool
	// PDFDir holds per-file PDFs. Empty places each next to its input.
	PDFDir string
}

// Processor runs the pipeline over a list of files and keeps a ledger.
type Processor struct {
	pipeline *Pipeline
	renderer Renderer
	opts     Options
	logger   hclog.Logger
	now      func() time.Time
	newID    func() string
}

// NewProcessor returns a Processor. renderer may be nil when opts.PDFs is false.
func NewProcessor(pipeline *Pipeline, renderer Renderer, opts Options, logger hclog.Logger) *Processor {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Processor{
		pipeline: pipeline,
		renderer: renderer,
		opts:     opts,
		logger:   logger.Named("batch"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Run processes files in order. A failing file is recorded in the ledger and
// never stops the run. Cancelling ctx marks the remaining files as failed.
func (p *Processor) Run(ctx context.Context, files []string) *Report {
	runID := p.newID()
	logger := p.logger.With("run_id", runID)
	logger.Info("batch started", "files", len(files))

	results := make([]FileResult, 0, len(files))
	for i, path := range files {
		logger.Info("processing file", "index", i+1, "total", len(files), "file", filepath.Base(path))
		r := p.processFile(ctx, path)
		if r.OK() {
			logger.Info("file processed", "file", path, "colors", r.TotalColours,
				"red", r.Counts.Red, "green", r.Counts.Green, "blue", r.Counts.Blue, "other", r.Counts.Other)
		} else {
			logger.Error("file failed", "file", path, "error", r.Error)
		}
		results = append(results, r)
	}

	rep := &Report{
		RunID:       runID,
		GeneratedAt: p.now().UTC(),
		Files:       results,
		Summary:     Summarise(results),
	}
	logger.Info("batch complete", "successful", rep.Summary.SuccessfulFiles, "failed", rep.Summary.FailedFiles)
	return rep
}

func (p *Processor) processFile(ctx context.Context, path string) FileResult {
	fail := func(err error) FileResult {
		return FileResult{
			File:              path,
			Status:            StatusError,
			ColoursByCategory: colour.CategoriseMany(nil),
			Error:             err.Error(),
		}
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	a, err := p.pipeline.ProcessFile(ctx, path)
	if err != nil {
		return fail(err)
	}

	r := FileResult{
		File:              path,
		Status:            StatusOK,
		TotalColours:      a.Colours.Total(),
		Counts:            countsOf(a.Colours),
		ColoursByCategory: a.Colours,
		Prominent:         a.Result.Prominent,
		Palette:           a.Palette,
		SHA256:            a.SHA256,
	}

	if p.opts.PDFs && p.renderer != nil {
		pdfPath, err := p.pdfPath(path)
		if err == nil {
			err = p.renderer.WriteFile(pdfPath, a.ReportData(p.now()))
		}
		if err != nil {
			return fail(fmt.Errorf("failed to write PDF: %w", err))
		}
		r.PDF = pdfPath
	}
	return r
}

// PDFName returns the sanitised per-file report name, <stem>_colors.pdf.
func PDFName(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return security.SanitizeFilename(stem + "_colors.pdf")
}

func (p *Processor) pdfPath(input string) (string, error) {
	dir := p.opts.PDFDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	out := filepath.Join(dir, PDFName(input))
	if err := security.ValidateOutputPath(out, dir); err != nil {
		return "", err
	}
	return out, nil
}
