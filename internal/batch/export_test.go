package batch

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

func sampleReport() *Report {
	ok := colour.CategoriseMany(colour.FrequencyMap{"#FF0000": 60, "#0000FF": 40})
	results := []FileResult{
		{
			File:              "a.svg",
			Status:            StatusOK,
			TotalColours:      ok.Total(),
			Counts:            countsOf(ok),
			ColoursByCategory: ok,
		},
		{
			File:              "b.png",
			Status:            StatusError,
			ColoursByCategory: colour.CategoriseMany(nil),
			Error:             "failed to read file: bad, corrupt",
		},
	}
	return &Report{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Files:       results,
		Summary:     Summarise(results),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: "CSV", want: FormatCSV},
		{in: " json ", want: FormatJSON},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	if got := DefaultOutputPath(FormatCSV); got != "batch_report.csv" {
		t.Errorf("DefaultOutputPath(csv) = %q", got)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	want := [][]string{
		CSVHeader,
		{"a.svg", "ok", "2", "1", "0", "1", "0", ""},
		{"b.png", "error", "-", "-", "-", "-", "-", "failed to read file: bad, corrupt"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		RunID       string `json:"run_id"`
		GeneratedAt string `json:"generated_at"`
		Files       []struct {
			File              string                      `json:"file"`
			Status            string                      `json:"status"`
			ColoursByCategory map[string][]map[string]any `json:"colors_by_category"`
			Error             string                      `json:"error"`
		} `json:"files"`
		Summary Summary `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if decoded.RunID != "run-1" || decoded.GeneratedAt != "2024-05-01T12:00:00Z" {
		t.Errorf("header = %q %q", decoded.RunID, decoded.GeneratedAt)
	}
	if len(decoded.Files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(decoded.Files))
	}
	red := decoded.Files[0].ColoursByCategory["red"]
	if len(red) != 1 || red[0]["color"] != "#FF0000" || red[0]["frequency"] != 60.0 {
		t.Errorf("red = %v", red)
	}
	for _, key := range []string{"red", "green", "blue", "other"} {
		if _, ok := decoded.Files[1].ColoursByCategory[key]; !ok {
			t.Errorf("failed entry missing %q category", key)
		}
	}
	s := decoded.Summary
	if s.TotalFiles != 2 || s.FailedFiles != 1 || s.AverageColours != 2 {
		t.Errorf("summary = %+v", s)
	}
	if s.MostColours == nil || s.MostColours.File != "a.svg" || s.MostColours.Count != 2 {
		t.Errorf("most colours = %+v", s.MostColours)
	}
	if len(s.Errors) != 1 || s.Errors[0].File != "b.png" {
		t.Errorf("errors = %+v", s.Errors)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []Format{FormatJSON, FormatCSV} {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(dir, "out", DefaultOutputPath(f))
			if err := WriteFile(path, sampleReport(), f); err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if len(data) == 0 {
				t.Error("empty report")
			}
		})
	}

	if err := Write(&bytes.Buffer{}, sampleReport(), Format("xml")); err == nil {
		t.Error("Write() with unknown format succeeded")
	}
}
