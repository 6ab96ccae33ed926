package extract

import (
	"fmt"
	"regexp"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

// SVG defaults.
const (
	DefaultMaxSVGBytes  = 10 * 1024 * 1024
	DefaultMaxMatches   = 10000
	DefaultMaxColours   = 1000
	colourPropertyNames = `fill|stroke|stop-color|flood-color|lighting-color|color`
)

var (
	// Presentation attributes: fill="#F00", stop-color='red'.
	svgAttrRegex = regexp.MustCompile(`(?i)(?:^|[\s<])(` + colourPropertyNames + `)\s*=\s*(?:"([^"]{1,100})"|'([^']{1,100})')`)

	// Inline style attributes.
	svgStyleAttrRegex = regexp.MustCompile(`(?i)(?:^|\s)style\s*=\s*(?:"([^"]*)"|'([^']*)')`)

	// <style> blocks.
	svgStyleBlockRegex = regexp.MustCompile(`(?is)<style[^>]{0,200}>(.*?)</style>`)

	// CSS declarations inside style attributes or blocks.
	cssDeclRegex = regexp.MustCompile(`(?i)(?:^|[;{\s])(` + colourPropertyNames + `)\s*:\s*([^;}"'<>]{1,100})`)
)

// SVGLimits bounds the work done on one SVG document.
type SVGLimits struct {
	MaxBytes   int
	MaxMatches int
	MaxColours int
}

// DefaultSVGLimits returns the default SVG limits.
func DefaultSVGLimits() SVGLimits {
	return SVGLimits{
		MaxBytes:   DefaultMaxSVGBytes,
		MaxMatches: DefaultMaxMatches,
		MaxColours: DefaultMaxColours,
	}
}

// SVGStats describes what ExtractSVG saw.
type SVGStats struct {
	Occurrences int
	Skipped     int
	Distinct    int
	Truncated   bool
}

// ExtractSVG counts colour occurrences in presentation attributes, style
// attributes and <style> blocks. Frequencies are each colour's share of all
// recognised occurrences, as percentages.
func ExtractSVG(data []byte, limits SVGLimits) (colour.FrequencyMap, SVGStats, error) {
	var stats SVGStats
	if limits.MaxBytes > 0 && len(data) > limits.MaxBytes {
		return nil, stats, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrSVGTooLarge, len(data), limits.MaxBytes)
	}

	content := string(data)
	counts := map[string]int{}

	record := func(value string) error {
		hex, ok := ParseColourValue(value)
		if !ok {
			stats.Skipped++
			return nil
		}
		stats.Occurrences++
		if limits.MaxMatches > 0 && stats.Occurrences > limits.MaxMatches {
			return fmt.Errorf("%w: more than %d colour occurrences", ErrTooManyMatches, limits.MaxMatches)
		}
		counts[hex]++
		return nil
	}

	for _, m := range svgAttrRegex.FindAllStringSubmatch(content, -1) {
		if err := record(firstNonEmpty(m[2], m[3])); err != nil {
			return nil, stats, err
		}
	}

	var css []string
	for _, m := range svgStyleAttrRegex.FindAllStringSubmatch(content, -1) {
		css = append(css, firstNonEmpty(m[1], m[2]))
	}
	for _, m := range svgStyleBlockRegex.FindAllStringSubmatch(content, -1) {
		css = append(css, m[1])
	}
	for _, block := range css {
		for _, m := range cssDeclRegex.FindAllStringSubmatch(block, -1) {
			if err := record(m[2]); err != nil {
				return nil, stats, err
			}
		}
	}

	freqs := normalise(counts, stats.Occurrences, limits.MaxColours)
	stats.Distinct = len(counts)
	stats.Truncated = len(freqs) < len(counts)
	return freqs, stats, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// normalise converts counts into percentages of total, keeping at most
// maxColours of the most frequent entries.
func normalise(counts map[string]int, total, maxColours int) colour.FrequencyMap {
	freqs := make(colour.FrequencyMap, len(counts))
	if total == 0 {
		return freqs
	}
	for hex, n := range counts {
		freqs[hex] = float64(n) / float64(total) * 100
	}
	if maxColours <= 0 || len(freqs) <= maxColours {
		return freqs
	}
	kept := make(colour.FrequencyMap, maxColours)
	for _, e := range freqs.Entries()[:maxColours] {
		kept[e.Hex] = e.Frequency
	}
	return kept
}
