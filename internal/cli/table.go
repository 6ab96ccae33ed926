package cli

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiSequence matches the SGR escapes used for colour previews.
var ansiSequence = regexp.MustCompile("\x1b\\[[0-9;]*m")

// columnGap separates adjacent columns.
const columnGap = "  "

// Table renders rows as aligned plain-text columns. Widths are measured in
// visible runes so preview cells carrying ANSI escapes line up with plain ones.
type Table struct {
	headers   []string
	rows      [][]string
	maxWidths map[int]int
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{headers: headers, maxWidths: map[int]int{}}
}

// SetColumnMaxWidth wraps cells of column col longer than width onto
// further lines.
func (t *Table) SetColumnMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// AddRow appends a row, padding or truncating it to the header count.
// Callers pass a trailing preview cell unconditionally and let the header
// decide whether it is shown.
func (t *Table) AddRow(row []string) {
	fitted := make([]string, len(t.headers))
	copy(fitted, row)
	t.rows = append(t.rows, fitted)
}

// Render returns the table with a header, a dashed separator and one or
// more lines per row.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			cells[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}

	widths := make([]int, len(t.headers))
	for c, h := range t.headers {
		widths[c] = visibleWidth(h)
	}
	for _, row := range cells {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], visibleWidth(line))
			}
		}
	}

	var b strings.Builder
	writeLine := func(parts []string) {
		for c, p := range parts {
			parts[c] = padRight(p, widths[c])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, columnGap), " "))
		b.WriteByte('\n')
	}

	writeLine(append([]string(nil), t.headers...))
	sep := make([]string, len(widths))
	for c, w := range widths {
		sep[c] = strings.Repeat("-", w)
	}
	writeLine(sep)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for l := 0; l < height; l++ {
			parts := make([]string, len(t.headers))
			for c, lines := range row {
				if l < len(lines) {
					parts[c] = lines[l]
				}
			}
			writeLine(parts)
		}
	}
	return b.String()
}

// visibleWidth is the rune count of s with ANSI escapes removed.
func visibleWidth(s string) int {
	if strings.IndexByte(s, '\x1b') >= 0 {
		s = ansiSequence.ReplaceAllString(s, "")
	}
	return utf8.RuneCountInString(s)
}

// padRight pads s with spaces to width visible runes.
func padRight(s string, width int) string {
	if n := visibleWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// wrapText breaks text at spaces into lines of at most width runes. Words
// longer than width are split, and path separators are preferred as break
// points. Text containing escapes is never wrapped.
func wrapText(text string, width int) []string {
	if width <= 0 || visibleWidth(text) <= width || strings.IndexByte(text, '\x1b') >= 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			head, rest := splitWord(word, width)
			lines = append(lines, head)
			word = rest
		}
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitWord cuts word after at most width runes, just after the last '/'
// within that span when there is one.
func splitWord(word string, width int) (string, string) {
	runes := []rune(word)
	cut := width
	for i := width - 1; i > 0; i-- {
		if runes[i] == '/' {
			cut = i + 1
			break
		}
	}
	return string(runes[:cut]), string(runes[cut:])
}
