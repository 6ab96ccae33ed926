package batch

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.svg", "a.png", "notes.txt", "c.SVG"} {
		writeFile(t, dir, name, "x")
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.svg"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := CollectFiles(filepath.Join(dir, "*"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.svg"), filepath.Join(dir, "c.SVG")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CollectFiles() = %v, want %v", got, want)
	}

	got, err = CollectFiles(filepath.Join(dir, "*.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != filepath.Join(dir, "b.svg") {
		t.Errorf("CollectFiles(*.svg) = %v", got)
	}
}

func TestCollectFilesErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "x")

	tests := []struct {
		name    string
		pattern string
	}{
		{name: "no matches", pattern: filepath.Join(dir, "*.png")},
		{name: "unsupported only", pattern: filepath.Join(dir, "*.txt")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CollectFiles(tt.pattern); !errors.Is(err, ErrNoFiles) {
				t.Errorf("CollectFiles() error = %v, want ErrNoFiles", err)
			}
		})
	}

	if _, err := CollectFiles("[invalid"); err == nil {
		t.Error("CollectFiles() with malformed pattern succeeded")
	}
}

func TestCollectDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "logo.svg", "x")
	writeFile(t, dir, "readme.md", "x")

	got, err := CollectDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != filepath.Join(dir, "logo.svg") {
		t.Errorf("CollectDir() = %v", got)
	}

	empty := t.TempDir()
	if _, err := CollectDir(empty); !errors.Is(err, ErrNoFiles) {
		t.Errorf("CollectDir(empty) error = %v, want ErrNoFiles", err)
	}
}
