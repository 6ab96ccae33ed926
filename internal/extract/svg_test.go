package extract

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestExtractSVGSingleRect(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg"><rect width="10" height="10" fill="#FF0000"/></svg>`
	got, stats, err := ExtractSVG([]byte(svg), DefaultSVGLimits())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got["#FF0000"] != 100 {
		t.Errorf("ExtractSVG() = %v, want {#FF0000: 100}", got)
	}
	if stats.Occurrences != 1 {
		t.Errorf("Occurrences = %d, want 1", stats.Occurrences)
	}
}

func TestExtractSVGSources(t *testing.T) {
	svg := `<svg>
  <style>
    .a { fill: #00ff00; stroke: blue }
    .b { background-color: #123456; color: rgb(255, 0, 0) }
  </style>
  <defs>
    <linearGradient id="g"><stop offset="0" stop-color="#f00"/><stop offset="1" stop-color='white'/></linearGradient>
  </defs>
  <rect fill="url(#g)" stroke="none"/>
  <circle style="fill:#FF0000;stroke: currentColor" />
  <path fill="red" />
</svg>`
	got, stats, err := ExtractSVG([]byte(svg), DefaultSVGLimits())
	if err != nil {
		t.Fatal(err)
	}

	// Recognised: #f00, white, red (path), #FF0000 (style), #00ff00, blue, rgb(255,0,0).
	if stats.Occurrences != 7 {
		t.Errorf("Occurrences = %d, want 7", stats.Occurrences)
	}
	if _, ok := got["#123456"]; ok {
		t.Error("background-color should not be counted")
	}
	wantRed := 4.0 / 7.0 * 100
	if math.Abs(got["#FF0000"]-wantRed) > 1e-9 {
		t.Errorf("#FF0000 = %v, want %v", got["#FF0000"], wantRed)
	}
	for _, hex := range []string{"#00FF00", "#0000FF", "#FFFFFF"} {
		if _, ok := got[hex]; !ok {
			t.Errorf("missing %s in %v", hex, got)
		}
	}
	if sum := got.Sum(); math.Abs(sum-100) > 1e-9 {
		t.Errorf("Sum() = %v, want 100", sum)
	}
}

func TestExtractSVGLongStyleAttribute(t *testing.T) {
	for _, quote := range []string{`"`, `'`} {
		style := "--pad:" + strings.Repeat("a", 5000) + ";fill:#00FF00"
		svg := `<svg><rect style=` + quote + style + quote + `/></svg>`
		got, _, err := ExtractSVG([]byte(svg), DefaultSVGLimits())
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got["#00FF00"] != 100 {
			t.Errorf("ExtractSVG() with %s-quoted style = %v, want {#00FF00: 100}", quote, got)
		}
	}
}

func TestExtractSVGNoColours(t *testing.T) {
	got, _, err := ExtractSVG([]byte(`<svg><rect fill="none"/></svg>`), DefaultSVGLimits())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("ExtractSVG() = %v, want empty", got)
	}
}

func TestExtractSVGTooLarge(t *testing.T) {
	limits := DefaultSVGLimits()
	limits.MaxBytes = 16
	_, _, err := ExtractSVG([]byte(`<svg><rect fill="#FF0000"/></svg>`), limits)
	if !errors.Is(err, ErrSVGTooLarge) {
		t.Errorf("error = %v, want ErrSVGTooLarge", err)
	}
}

func TestExtractSVGTooManyMatches(t *testing.T) {
	var b strings.Builder
	b.WriteString("<svg>")
	for i := 0; i < 11; i++ {
		fmt.Fprintf(&b, `<rect fill="#%02X0000"/>`, i)
	}
	b.WriteString("</svg>")

	limits := DefaultSVGLimits()
	limits.MaxMatches = 10
	_, _, err := ExtractSVG([]byte(b.String()), limits)
	if !errors.Is(err, ErrTooManyMatches) {
		t.Errorf("error = %v, want ErrTooManyMatches", err)
	}

	limits.MaxMatches = 11
	if _, _, err := ExtractSVG([]byte(b.String()), limits); err != nil {
		t.Errorf("at the ceiling: unexpected error %v", err)
	}
}

func TestExtractSVGMaxColours(t *testing.T) {
	svg := `<svg><rect fill="#FF0000"/><rect fill="#FF0000"/><rect fill="#00FF00"/><rect fill="#0000FF"/></svg>`
	limits := DefaultSVGLimits()
	limits.MaxColours = 1
	got, stats, err := ExtractSVG([]byte(svg), limits)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got["#FF0000"] != 50 {
		t.Errorf("ExtractSVG() = %v, want {#FF0000: 50}", got)
	}
	if !stats.Truncated || stats.Distinct != 3 {
		t.Errorf("stats = %+v", stats)
	}
}
