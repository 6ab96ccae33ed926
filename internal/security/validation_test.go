package security

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/chromaspec/internal/colour"
)

func TestValidateSafePath(t *testing.T) {
	base := t.TempDir()
	tests := []struct {
		name    string
		path    string
		base    string
		wantErr bool
	}{
		{name: "relative", path: "output/report.pdf"},
		{name: "absolute without base", path: "/tmp/test.svg"},
		{name: "traversal", path: "../../etc/passwd", wantErr: true},
		{name: "embedded traversal", path: "out/../../x.pdf", wantErr: true},
		{name: "dots in name are fine", path: "a..b.pdf"},
		{name: "inside base", path: filepath.Join(base, "r.pdf"), base: base},
		{name: "outside base", path: "/etc/passwd", base: base, wantErr: true},
		{name: "empty", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSafePath(tt.path, tt.base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSafePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil {
				var verr *colour.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("error %v is not a ValidationError", err)
				}
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	base := t.TempDir()
	out := filepath.Join(base, "nested", "report.pdf")
	if err := ValidateOutputPath(out, base); err != nil {
		t.Fatalf("ValidateOutputPath() error: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(out)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
	if err := ValidateOutputPath(base, base); err == nil {
		t.Error("expected error when output is a directory")
	}
}

func TestValidateFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.svg")
	if err := os.WriteFile(path, make([]byte, 100), 0o644); err != nil {
		t.Fatal(err)
	}
	if size, err := ValidateFileSize(path, 100); err != nil || size != 100 {
		t.Errorf("ValidateFileSize(100) = %d, %v", size, err)
	}
	if _, err := ValidateFileSize(path, 99); err == nil {
		t.Error("expected error above limit")
	}
	if _, err := ValidateFileSize(path, 0); err != nil {
		t.Errorf("zero limit should disable check: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"../../evil.pdf", "_.._evil.pdf"},
		{".hidden_file", "hidden_file"},
		{"file<>:name.pdf", "file___name.pdf"},
		{"...", "unnamed_file"},
		{"logo final.svg", "logo_final.svg"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := strings.Repeat("a", 300) + ".pdf"
	got := SanitizeFilename(long)
	if len(got) != MaxFilenameLength || !strings.HasSuffix(got, ".pdf") {
		t.Errorf("long name = %d chars, suffix ok %v", len(got), strings.HasSuffix(got, ".pdf"))
	}
}

func TestSanitizePDFString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello (World)", "Hello (World)"},
		{"bell\x07char", "bellchar"},
		{"café", "café"},
		{"snow ☃", "snow ?"},
	}
	for _, tt := range tests {
		if got := SanitizePDFString(tt.in); got != tt.want {
			t.Errorf("SanitizePDFString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := SanitizePDFString(strings.Repeat("x", MaxPDFStringLength+5)); len(got) != MaxPDFStringLength+3 {
		t.Errorf("truncated length = %d", len(got))
	}
}

func TestLimitedReader(t *testing.T) {
	data := []byte("0123456789")

	got, err := io.ReadAll(NewLimitedReader(bytes.NewReader(data), 10))
	if err != nil || !bytes.Equal(got, data) {
		t.Errorf("exact budget: %q, %v", got, err)
	}

	_, err = io.ReadAll(NewLimitedReader(bytes.NewReader(data), 9))
	if !errors.Is(err, ErrSizeLimit) {
		t.Errorf("over budget error = %v, want ErrSizeLimit", err)
	}
}

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FileHash(path)
	if err != nil {
		t.Fatal(err)
	}
	const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got != emptySHA256 {
		t.Errorf("FileHash() = %s", got)
	}
}

func TestSafeUint8(t *testing.T) {
	tests := []struct {
		in   int
		want uint8
	}{{-5, 0}, {0, 0}, {128, 128}, {300, 255}}
	for _, tt := range tests {
		if got := SafeUint8(tt.in); got != tt.want {
			t.Errorf("SafeUint8(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
