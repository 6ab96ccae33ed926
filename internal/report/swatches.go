package report

import (
	"fmt"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

// swatchPages lists every colour of every non-empty category with its HEX,
// RGB, CMYK and frequency, breaking pages as needed.
func (d *document) swatchPages(c colour.Categorised) {
	pdf := d.pdf
	newPage := func() float64 {
		pdf.AddPage()
		return contentTop()
	}

	y := newPage()
	for _, cat := range colour.Categories {
		entries := c[cat]
		if len(entries) == 0 {
			continue
		}
		if y+sectionGap+2*swatchHeight > d.contentBottom() {
			y = newPage()
		}

		y += sectionGap
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetTextColor(0, 0, 0)
		d.text(margin, y, categoryTitle(cat)+" Colors")
		y += 3

		pdf.SetFont("Courier", "", 9)
		for _, cf := range entries {
			if y+swatchHeight > d.contentBottom() {
				y = newPage()
				pdf.SetFont("Courier", "", 9)
			}
			rgb, err := colour.HexToRGB(cf.Hex)
			if err != nil {
				continue
			}
			d.swatch(rgb.Hex(), margin, y, swatchWidth, swatchHeight)
			pdf.SetTextColor(0, 0, 0)
			d.text(margin+swatchWidth+labelGap, y+swatchHeight/2+1.2, swatchLabel(rgb, cf.Frequency))
			y += swatchHeight
		}
		y += sectionGap
	}
}

func swatchLabel(rgb colour.RGB, frequency float64) string {
	cmyk := colour.RGBToCMYK(rgb).Round(colour.DefaultCMYKPrecision)
	return fmt.Sprintf("%s   RGB(%3d, %3d, %3d)   CMYK(%3.0f, %3.0f, %3.0f, %3.0f)   %.3f%%",
		rgb.Hex(), rgb.R, rgb.G, rgb.B, cmyk.C, cmyk.M, cmyk.Y, cmyk.K, frequency)
}
