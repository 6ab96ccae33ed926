package colour

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	ansiReset    = "\033[0m"
	defaultWidth = 8
)

// DisableColourOutput makes the preview helpers return plain text.
var DisableColourOutput = false

// sgr is a 24-bit colour escape; layer is 38 for foreground, 48 for background.
func sgr(layer int, c RGB) string {
	return fmt.Sprintf("\033[%d;2;%d;%d;%dm", layer, c.R, c.G, c.B)
}

// ColourPreview returns a block of width cells filled with c.
func ColourPreview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if DisableColourOutput {
		return strings.Repeat("#", width)
	}
	return sgr(48, c) + strings.Repeat(" ", width) + ansiReset
}

// ColourPreviewWithText centres text in a block filled with c, drawn in
// whichever of black or white contrasts better.
func ColourPreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	label := fitText(text, width)
	if DisableColourOutput {
		return label
	}
	return sgr(48, c) + sgr(38, bestText(c)) + label + ansiReset
}

// fitText truncates or centres text to exactly width runes.
func fitText(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n >= width {
		return string([]rune(text)[:width])
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-n-left)
}

// SupportsANSIColours reports whether f is a terminal that should receive
// ANSI colour codes. NO_COLOR and TERM=dumb disable colours.
func SupportsANSIColours(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// ColourString draws text in rgb unless colour output is disabled.
func ColourString(rgb RGB, text string) string {
	if DisableColourOutput {
		return text
	}
	return sgr(38, rgb) + text + ansiReset
}
