package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureFreshDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "vault")
	if err := EnsureFreshDir(dir); err != nil {
		t.Fatalf("EnsureFreshDir() unexpected error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}

	// A second run against the same path must refuse.
	if err := EnsureFreshDir(dir); !errors.Is(err, ErrOutputExists) {
		t.Fatalf("EnsureFreshDir() error = %v, want ErrOutputExists", err)
	}
}

func TestWriteDocument(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "doc.md")
	if err := WriteDocument(path, "content\n"); err != nil {
		t.Fatalf("WriteDocument() unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(data) != "content\n" {
		t.Errorf("content = %q, want %q", data, "content\n")
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "x.yaml")
	if err := os.WriteFile(file, []byte("a: b"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists() = false for an existing file")
	}
	if FileExists(dir) {
		t.Error("FileExists() = true for a directory")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists() = true for a missing path")
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "bare name", in: "production", want: false},
		{name: "relative path", in: "./config.yaml", want: true},
		{name: "absolute path", in: "/etc/app/config.yaml", want: true},
		{name: "windows path", in: `C:\app\config.yaml`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsFilePath(tt.in); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "file with extension", in: "/vault/Bu Pj 1 (Expulsion).md", want: "Bu Pj 1 (Expulsion)"},
		{name: "no extension", in: "README", want: "README"},
		{name: "dotted name keeps earlier dots", in: "a/b.c.d.md", want: "b.c.d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Stem(tt.in); got != tt.want {
				t.Errorf("Stem(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
