package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Format is a ledger export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat parses "json" or "csv", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unsupported batch format %q (valid: json, csv)", s)
}

// DefaultOutputPath is the ledger path used when none is given.
func DefaultOutputPath(f Format) string {
	return "batch_report." + string(f)
}

// CSVHeader is the first row of a CSV export.
var CSVHeader = []string{"File", "Status", "Total Colors", "Red Count", "Green Count", "Blue Count", "Other Count", "Error"}

// Write encodes rep to w in the given format.
func Write(w io.Writer, rep *Report, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, rep)
	case FormatCSV:
		return WriteCSV(w, rep)
	}
	return fmt.Errorf("unsupported batch format %q", f)
}

// WriteJSON writes the full report, files and summary, as indented JSON.
func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}

// WriteCSV writes one row per file. Failed files carry "-" counts and the
// error message.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rep.Files {
		row := []string{r.File, string(r.Status), "-", "-", "-", "-", "-", r.Error}
		if r.OK() {
			row[2] = strconv.Itoa(r.TotalColours)
			row[3] = strconv.Itoa(r.Counts.Red)
			row[4] = strconv.Itoa(r.Counts.Green)
			row[5] = strconv.Itoa(r.Counts.Blue)
			row[6] = strconv.Itoa(r.Counts.Other)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV report: %w", err)
	}
	return nil
}

// WriteFile writes rep to path, creating parent directories.
func WriteFile(path string, rep *Report, f Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create batch report: %w", err)
	}
	if err := Write(file, rep, f); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close batch report: %w", err)
	}
	return nil
}
