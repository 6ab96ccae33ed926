package report

import (
	"fmt"
	"path/filepath"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

type ratingStyle struct{ r, g, b int }

var (
	ratingGood    = ratingStyle{0, 128, 0}
	ratingWarning = ratingStyle{200, 120, 0}
	ratingFail    = ratingStyle{200, 0, 0}
)

func styleFor(r colour.Rating) ratingStyle {
	switch {
	case r.Meets(colour.RatingAA):
		return ratingGood
	case r == colour.RatingAALarge:
		return ratingWarning
	default:
		return ratingFail
	}
}

func (d *document) setTextStyle(s ratingStyle) {
	d.pdf.SetTextColor(s.r, s.g, s.b)
}

func (d *document) title(y float64, s string) {
	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.SetTextColor(0, 0, 0)
	d.text(margin, y, s)
}

func (d *document) coverPage(data Data) {
	pdf := d.pdf
	pdf.AddPage()

	y := d.height / 4
	pdf.SetFont("Helvetica", "B", 32)
	pdf.SetTextColor(0, 0, 0)
	d.text(margin, y, "ChromaSpec")
	y += 12
	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(90, 90, 90)
	d.text(margin, y, "Color Analysis Report")

	y += 20
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	source := filepath.Base(data.Source)
	if data.Source == "" {
		source = "-"
	}
	d.text(margin, y, "File: "+source)
	y += 7
	d.text(margin, y, "Generated: "+data.GeneratedAt.Format("2006-01-02 15:04:05"))
	y += 7
	d.text(margin, y, fmt.Sprintf("Total colors: %d", data.Colours.Total()))
	for _, cat := range colour.Categories {
		y += 6
		d.text(margin+6, y, fmt.Sprintf("%s: %d", categoryTitle(cat), data.Colours.Count(cat)))
	}

	if len(data.Prominent) > 0 {
		y += 14
		pdf.SetFont("Helvetica", "B", 12)
		d.text(margin, y, "Prominent colors")
		y += 4
		pdf.SetFont("Helvetica", "", 9)
		x := margin
		for _, p := range data.Prominent {
			d.swatch(p.Hex, x, y, 25, 14)
			pdf.SetTextColor(0, 0, 0)
			d.text(x, y+19, p.Hex)
			d.text(x, y+23, fmt.Sprintf("%.1f%%", p.Share))
			x += 30
		}
		y += 26
	}

	if data.Palette != nil {
		d.paletteBlock(y+8, *data.Palette)
	}
}

func (d *document) paletteBlock(y float64, p colour.Palette) {
	pdf := d.pdf
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	d.text(margin, y, fmt.Sprintf("Suggested %s palette", p.Name))
	y += 4
	pdf.SetFont("Helvetica", "", 9)
	x := margin
	for _, role := range p.Roles {
		d.swatch(role.Hex, x, y, 25, 14)
		pdf.SetTextColor(0, 0, 0)
		d.text(x, y+19, role.Name)
		d.text(x, y+23, role.Hex)
		x += 30
	}
	y += 30
	status := "meets"
	if !p.MetTarget {
		status = "below"
	}
	d.setTextStyle(styleFor(p.Rating))
	d.text(margin, y, fmt.Sprintf("Contrast %.2f:1 (%s), %s target %s", p.Contrast, p.Rating, status, p.Target))
}

func (d *document) statisticsPage(c colour.Categorised) {
	d.pdf.AddPage()
	y := contentTop() + 8
	d.title(y, "Color Distribution")
	y += 8

	const radius = 35.0
	cx, cy := margin+radius+5, y+radius
	d.pieChart(c, cx, cy, radius)

	total := c.Total()
	legendX := cx + radius + 15
	legendY := y + 8
	d.pdf.SetFont("Helvetica", "", 10)
	for _, cat := range colour.Categories {
		count := c.Count(cat)
		pct := 0.0
		if total > 0 {
			pct = float64(count) / float64(total) * 100
		}
		d.swatch(categoryColour[cat], legendX, legendY-3.5, 4, 4)
		d.pdf.SetTextColor(0, 0, 0)
		d.text(legendX+7, legendY, fmt.Sprintf("%s: %d (%.1f%%)", categoryTitle(cat), count, pct))
		legendY += 9
	}
	if total == 0 {
		d.pdf.SetTextColor(120, 120, 120)
		d.text(legendX, legendY+4, "No colors found")
	}

	y = cy + radius + 15
	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.SetTextColor(0, 0, 0)
	d.text(margin, y, "Color Count Comparison")
	d.barChart(c, margin, y+6, d.width-2*margin-40)
}

func (d *document) topColoursPage(top []colour.ColourFrequency) {
	pdf := d.pdf
	pdf.AddPage()
	y := contentTop() + 8
	d.title(y, "Top Colors & Harmonies")
	y += 10

	const box, row = 12.0, 6.0
	for i, cf := range top {
		if y+2*row+8 > d.contentBottom() {
			break
		}
		rgb, err := colour.HexToRGB(cf.Hex)
		if err != nil {
			continue
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		d.text(margin, y, fmt.Sprintf("#%d Most Used Color (%.2f%%)", i+1, cf.Frequency))
		y += 3

		d.swatch(cf.Hex, margin, y, box, 2*row)
		infoX := margin + box + 5
		harmonyX := infoX + 55
		swatchX := harmonyX + 28

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		hsl := colour.RGBToHSL(rgb).Round(colour.DefaultHSLPrecision)
		d.text(infoX, y+row-2, "HEX: "+rgb.Hex())
		d.text(infoX, y+2*row-2, fmt.Sprintf("HSL: %.1f deg, %.1f%%, %.1f%%", hsl.H, hsl.S, hsl.L))

		if comp, err := colour.Complementary(cf.Hex); err == nil {
			pdf.SetTextColor(0, 0, 0)
			d.text(harmonyX, y+row-2, "Complementary:")
			d.swatch(comp, swatchX, y, 8, row)
		}
		if analog, err := colour.Analogous(cf.Hex, colour.DefaultAnalogousOffset); err == nil {
			pdf.SetTextColor(0, 0, 0)
			d.text(harmonyX, y+2*row-2, "Analogous:")
			d.swatch(analog[0], swatchX, y+row, 8, row)
			d.swatch(analog[1], swatchX+8, y+row, 8, row)
		}
		if name, _ := colour.NearestName(rgb); name != "" {
			pdf.SetTextColor(90, 90, 90)
			d.text(swatchX+22, y+row-2, "Nearest: "+name)
		}
		y += 2*row + 10
	}
	if len(top) == 0 {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(120, 120, 120)
		d.text(margin, y, "No colors found")
	}
}

func (d *document) accessibilityPage(top []colour.ColourFrequency, opts Options) {
	pdf := d.pdf
	pdf.AddPage()
	y := contentTop() + 8
	d.title(y, "Accessibility & Contrast")
	y += 6
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(120, 120, 120)
	d.text(margin, y, "WCAG 2.1 contrast ratios for text readability")
	y += 10

	cols := []float64{margin, margin + 30, margin + 65, margin + 100, margin + 140}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, h := range []string{"Color", "vs White", "vs Black", "Best Use", "Dark Mode"} {
		d.text(cols[i], y, h)
	}
	y += 2
	pdf.SetDrawColor(150, 150, 150)
	pdf.Line(margin, y, d.width-margin, y)
	y += 3

	const box = 5.0
	pdf.SetFont("Helvetica", "", 9)
	for _, cf := range top {
		analysis, err := colour.AnalyseBackgrounds(cf.Hex)
		if err != nil {
			continue
		}
		d.swatch(cf.Hex, margin, y, box, box)
		textY := y + box - 1.2
		pdf.SetTextColor(0, 0, 0)
		d.text(margin+box+2, textY, analysis.Colour)

		for i, bg := range analysis.Backgrounds {
			d.setTextStyle(styleFor(bg.Rating))
			d.text(cols[1+i], textY, fmt.Sprintf("%.1f:1 (%s)", bg.Ratio, bg.Rating))
		}
		pdf.SetTextColor(0, 0, 0)
		d.text(cols[3], textY, analysis.Recommendation)

		if dm, err := colour.CheckDarkMode(cf.Hex, opts.LightBackground, opts.DarkBackground, opts.MinRating); err == nil {
			if dm.Compatible {
				d.setTextStyle(ratingGood)
				d.text(cols[4], textY, "Compatible")
			} else {
				d.setTextStyle(ratingFail)
				d.text(cols[4], textY, "Adjust")
			}
		}
		y += box + 3
	}

	y += 6
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 0)
	d.text(margin, y, "WCAG Rating Guide:")
	pdf.SetFont("Helvetica", "", 9)
	guide := []struct {
		style ratingStyle
		text  string
	}{
		{ratingGood, "AAA (>= 7:1) - Excellent for all text"},
		{ratingGood, "AA (>= 4.5:1) - Good for normal text"},
		{ratingWarning, "AA Large (>= 3:1) - OK for large text only"},
		{ratingFail, "Fail (< 3:1) - Not accessible"},
	}
	for _, line := range guide {
		y += 5
		d.setTextStyle(line.style)
		d.text(margin, y, line.text)
	}
	y += 8
	pdf.SetTextColor(90, 90, 90)
	d.text(margin, y, fmt.Sprintf("Dark mode checks %s minimum against %s and %s.", opts.MinRating, opts.LightBackground, opts.DarkBackground))
}
