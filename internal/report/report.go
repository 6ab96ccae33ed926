// Package report renders colour analysis results as a PDF document.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/chromaspec/internal/colour"
	imageutil "github.com/jmylchreest/chromaspec/internal/image"
	"github.com/jmylchreest/chromaspec/internal/security"
)

// ErrPDFGeneration is returned when the document cannot be rendered or written.
var ErrPDFGeneration = errors.New("pdf generation failed")

// Defaults for the number of colours listed on the summary pages.
const (
	DefaultTopColours           = 5
	DefaultAccessibilityColours = 8
)

// Page geometry in millimetres on US Letter.
const (
	pageSize     = "Letter"
	margin       = 15.0
	headerHeight = 12.0
	footerHeight = 10.0
	swatchWidth  = 30.0
	swatchHeight = 7.0
	labelGap     = 4.0
	sectionGap   = 6.0
)

// Data is everything rendered into one report.
type Data struct {
	Source      string
	GeneratedAt time.Time
	Colours     colour.Categorised
	Prominent   []imageutil.ProminentColour
	Palette     *colour.Palette
}

// Options controls report content.
type Options struct {
	TopColours           int
	AccessibilityColours int
	LightBackground      string
	DarkBackground       string
	MinRating            colour.Rating
}

// DefaultOptions returns the default report options.
func DefaultOptions() Options {
	return Options{
		TopColours:           DefaultTopColours,
		AccessibilityColours: DefaultAccessibilityColours,
		LightBackground:      colour.DefaultLightBackground,
		DarkBackground:       colour.DefaultDarkBackground,
		MinRating:            colour.DefaultMinRating,
	}
}

// Generator renders PDF reports.
type Generator struct {
	opts   Options
	logger hclog.Logger
}

// New returns a Generator. A nil logger discards output.
func New(opts Options, logger hclog.Logger) *Generator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if opts.TopColours <= 0 {
		opts.TopColours = DefaultTopColours
	}
	if opts.AccessibilityColours <= 0 {
		opts.AccessibilityColours = DefaultAccessibilityColours
	}
	if opts.LightBackground == "" {
		opts.LightBackground = colour.DefaultLightBackground
	}
	if opts.DarkBackground == "" {
		opts.DarkBackground = colour.DefaultDarkBackground
	}
	return &Generator{opts: opts, logger: logger.Named("report")}
}

// Write renders data as a PDF to w.
func (g *Generator) Write(w io.Writer, data Data) error {
	doc := g.render(data)
	if err := doc.pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}
	g.logger.Debug("report rendered", "source", data.Source, "pages", doc.pdf.PageNo())
	return nil
}

// WriteFile renders data to path, creating parent directories.
func (g *Generator) WriteFile(path string, data Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: failed to create output directory: %w", ErrPDFGeneration, err)
	}
	f, err := os.Create(path) // #nosec G304 - Output path validated by caller
	if err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", ErrPDFGeneration, path, err)
	}
	if err := g.Write(f, data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to close %s: %w", ErrPDFGeneration, path, err)
	}
	g.logger.Info("PDF saved", "path", path)
	return nil
}

// document wraps the fpdf instance with a text translator for core fonts.
type document struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	width  float64
	height float64
}

func (g *Generator) render(data Data) *document {
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now()
	}
	if data.Colours == nil {
		data.Colours = colour.CategoriseMany(nil)
	}

	pdf := fpdf.New("P", "mm", pageSize, "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCreationDate(data.GeneratedAt)
	pdf.SetModificationDate(data.GeneratedAt)
	pdf.SetTitle("ChromaSpec Color Analysis", false)
	pdf.SetCreator("chromaspec", false)

	width, height := pdf.GetPageSize()
	doc := &document{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		width:  width,
		height: height,
	}

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			doc.header()
		}
	})
	pdf.SetFooterFunc(func() {
		doc.footer(data.GeneratedAt)
	})

	if data.Colours.Total() == 0 {
		g.logger.Warn("no colours to render", "source", data.Source)
	}

	doc.coverPage(data)
	doc.statisticsPage(data.Colours)
	doc.topColoursPage(data.Colours.Top(g.opts.TopColours))
	doc.accessibilityPage(data.Colours.Top(g.opts.AccessibilityColours), g.opts)
	doc.swatchPages(data.Colours)
	return doc
}

func (d *document) header() {
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Text(margin, margin+4, "ChromaSpec Color Analysis")
	d.pdf.SetDrawColor(180, 180, 180)
	d.pdf.Line(margin, margin+headerHeight/2+1, d.width-margin, margin+headerHeight/2+1)
}

func (d *document) footer(generated time.Time) {
	d.pdf.SetFont("Helvetica", "", 8)
	d.pdf.SetTextColor(120, 120, 120)
	y := d.height - margin + 2
	d.pdf.Text(margin, y, generated.Format("2006-01-02 15:04"))
	label := fmt.Sprintf("Page %d", d.pdf.PageNo())
	d.pdf.Text(d.width-margin-d.pdf.GetStringWidth(label), y, label)
}

// text writes s at (x, y) after stripping characters the core fonts cannot show.
func (d *document) text(x, y float64, s string) {
	d.pdf.Text(x, y, d.tr(security.SanitizePDFString(s)))
}

func (d *document) fill(hex string) {
	rgb, err := colour.HexToRGB(hex)
	if err != nil {
		d.pdf.SetError(fmt.Errorf("invalid swatch colour: %w", err))
		return
	}
	d.pdf.SetFillColor(int(rgb.R), int(rgb.G), int(rgb.B))
}

func (d *document) swatch(hex string, x, y, w, h float64) {
	d.fill(hex)
	d.pdf.Rect(x, y, w, h, "F")
}

// contentTop is the first usable y below the running header.
func contentTop() float64 {
	return margin + headerHeight
}

// contentBottom is the last usable y above the footer.
func (d *document) contentBottom() float64 {
	return d.height - margin - footerHeight
}
