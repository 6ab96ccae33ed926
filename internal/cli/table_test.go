package cli

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Role", "Color"})
	table.AddRow([]string{"background", "#FFFFFF"})
	table.AddRow([]string{"text", "#000000"})

	want := "Role        Color\n" +
		"----------  -------\n" +
		"background  #FFFFFF\n" +
		"text        #000000\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
	if got, want := NewTable([]string{"A", "BB"}).Render(), "A  BB\n-  --\n"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestTableAddRowFitsHeaders(t *testing.T) {
	table := NewTable([]string{"A", "B"})
	table.AddRow([]string{"1"})
	table.AddRow([]string{"1", "2", "preview"})

	want := [][]string{{"1", ""}, {"1", "2"}}
	if !reflect.DeepEqual(table.rows, want) {
		t.Errorf("rows = %v, want %v", table.rows, want)
	}
}

func TestTableIgnoresANSIWidth(t *testing.T) {
	block := colour.ColourPreview(colour.RGB{R: 255}, 4)
	table := NewTable([]string{"Color", "Preview", "X"})
	table.AddRow([]string{"#FF0000", block, "x"})

	lines := strings.Split(table.Render(), "\n")
	if got := visibleWidth(lines[2]); got != visibleWidth(lines[0]) {
		t.Errorf("row width %d, header width %d:\n%s", got, visibleWidth(lines[0]), strings.Join(lines, "\n"))
	}
}

func TestTableWrapsColumn(t *testing.T) {
	table := NewTable([]string{"File", "Status"})
	table.SetColumnMaxWidth(0, 10)
	table.AddRow([]string{"images/very/long.svg", "ok"})

	want := "File      Status\n" +
		"--------  ------\n" +
		"images/   ok\n" +
		"very/\n" +
		"long.svg\n"
	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{in: "", want: 0},
		{in: "#FF0000", want: 7},
		{in: "hsl(120°, 50%, 50%)", want: 19},
		{in: "\x1b[48;2;255;0;0m    \x1b[0m", want: 4},
	}
	for _, tt := range tests {
		if got := visibleWidth(tt.in); got != tt.want {
			t.Errorf("visibleWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "ab", width: 4, want: "ab  "},
		{in: "abcd", width: 2, want: "abcd"},
		{in: "°", width: 2, want: "° "},
	}
	for _, tt := range tests {
		if got := padRight(tt.in, tt.width); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "fits", text: "short", width: 10, want: []string{"short"}},
		{name: "no limit", text: "a b c", width: 0, want: []string{"a b c"}},
		{name: "words", text: "failed to decode image", width: 10, want: []string{"failed to", "decode", "image"}},
		{name: "long word", text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "path", text: "a/bcdef/gh", width: 5, want: []string{"a/", "bcdef", "/gh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
