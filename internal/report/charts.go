package report

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

// categoryColour is the chart fill for each category.
var categoryColour = map[colour.Category]string{
	colour.CategoryRed:   "#D32F2F",
	colour.CategoryGreen: "#388E3C",
	colour.CategoryBlue:  "#1976D2",
	colour.CategoryOther: "#9E9E9E",
}

func categoryTitle(c colour.Category) string {
	switch c {
	case colour.CategoryRed:
		return "Red"
	case colour.CategoryGreen:
		return "Green"
	case colour.CategoryBlue:
		return "Blue"
	default:
		return "Other"
	}
}

// pieChart draws one wedge per non-empty category, clockwise from 12 o'clock.
func (d *document) pieChart(c colour.Categorised, cx, cy, radius float64) {
	total := c.Total()
	if total == 0 {
		d.pdf.SetDrawColor(200, 200, 200)
		d.pdf.Circle(cx, cy, radius, "D")
		return
	}

	start := -90.0
	for _, cat := range colour.Categories {
		sweep := float64(c.Count(cat)) / float64(total) * 360
		if sweep <= 0 {
			continue
		}
		d.fill(categoryColour[cat])
		d.pdf.Polygon(wedgePoints(cx, cy, radius, start, sweep), "F")
		start += sweep
	}
}

// wedgePoints approximates a circular sector with a polygon, one vertex per
// two degrees of arc.
func wedgePoints(cx, cy, radius, start, sweep float64) []fpdf.PointType {
	steps := int(math.Ceil(sweep / 2))
	if steps < 1 {
		steps = 1
	}
	pts := make([]fpdf.PointType, 0, steps+2)
	pts = append(pts, fpdf.PointType{X: cx, Y: cy})
	for i := 0; i <= steps; i++ {
		a := (start + sweep*float64(i)/float64(steps)) * math.Pi / 180
		pts = append(pts, fpdf.PointType{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)})
	}
	return pts
}

// barChart draws horizontal bars scaled to the largest category.
func (d *document) barChart(c colour.Categorised, x, y, maxWidth float64) float64 {
	const barHeight, labelWidth = 7.0, 18.0

	largest := 1
	for _, cat := range colour.Categories {
		largest = max(largest, c.Count(cat))
	}

	d.pdf.SetFont("Helvetica", "", 10)
	for _, cat := range colour.Categories {
		count := c.Count(cat)
		width := float64(count) / float64(largest) * maxWidth

		d.pdf.SetTextColor(0, 0, 0)
		d.text(x, y+barHeight-2, categoryTitle(cat)+":")
		if width > 0 {
			d.swatch(categoryColour[cat], x+labelWidth, y, width, barHeight)
		}
		d.pdf.SetTextColor(0, 0, 0)
		d.text(x+labelWidth+width+2, y+barHeight-2, fmt.Sprintf("%d", count))
		y += barHeight + 3
	}
	return y
}
