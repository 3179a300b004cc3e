package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-nbdoc/internal/fileutil"
)

func TestValidatePathPart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		part    string
		wantErr error
	}{
		{name: "plain file name", part: "processed.ipynb"},
		{name: "hash name", part: "0a1b2c.png"},
		{name: "empty", part: "", wantErr: fileutil.ErrEmptyPathPart},
		{name: "dot", part: ".", wantErr: fileutil.ErrUnsafePathPart},
		{name: "traversal", part: "..", wantErr: fileutil.ErrUnsafePathPart},
		{name: "forward slash", part: "a/b", wantErr: fileutil.ErrUnsafePathPart},
		{name: "backslash", part: `a\b`, wantErr: fileutil.ErrUnsafePathPart},
		{name: "null byte", part: "a\x00b", wantErr: fileutil.ErrUnsafePathPart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidatePathPart(tt.part)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteOutputFile(t *testing.T) {
	t.Parallel()

	t.Run("writes nested file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path, err := fileutil.WriteOutputFile(dir, []string{"static", "out.txt"}, []byte("hello"), true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path != filepath.Join(dir, "static", "out.txt") {
			t.Errorf("path = %q", path)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "hello" {
			t.Errorf("content = %q, want hello", got)
		}
	})

	t.Run("keeps existing file without overwrite", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if _, err := fileutil.WriteOutputFile(dir, []string{"a.txt"}, []byte("first"), true); err != nil {
			t.Fatal(err)
		}
		if _, err := fileutil.WriteOutputFile(dir, []string{"a.txt"}, []byte("second"), false); err != nil {
			t.Fatal(err)
		}
		got, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
		if string(got) != "first" {
			t.Errorf("content = %q, want first", got)
		}
	})

	t.Run("overwrites when asked", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		_, _ = fileutil.WriteOutputFile(dir, []string{"a.txt"}, []byte("first"), true)
		if _, err := fileutil.WriteOutputFile(dir, []string{"a.txt"}, []byte("second"), true); err != nil {
			t.Fatal(err)
		}
		got, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
		if string(got) != "second" {
			t.Errorf("content = %q, want second", got)
		}
	})

	t.Run("rejects traversal", func(t *testing.T) {
		t.Parallel()

		_, err := fileutil.WriteOutputFile(t.TempDir(), []string{"..", "escape.txt"}, nil, true)
		if !errors.Is(err, fileutil.ErrUnsafePathPart) {
			t.Errorf("error = %v, want ErrUnsafePathPart", err)
		}
	})

	t.Run("requires directory", func(t *testing.T) {
		t.Parallel()

		_, err := fileutil.WriteOutputFile("", []string{"a"}, nil, true)
		if !errors.Is(err, fileutil.ErrEmptyOutputDir) {
			t.Errorf("error = %v, want ErrEmptyOutputDir", err)
		}
	})
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f.ipynb")
	if err := os.WriteFile(file, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestHasExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		exts []string
		want bool
	}{
		{path: "a.ipynb", exts: []string{".ipynb"}, want: true},
		{path: "A.IPYNB", exts: []string{".ipynb"}, want: true},
		{path: "a.md", exts: []string{".ipynb"}, want: false},
		{path: "noext", exts: []string{".ipynb"}, want: false},
	}

	for _, tt := range tests {
		if got := fileutil.HasExtension(tt.path, tt.exts...); got != tt.want {
			t.Errorf("HasExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestReplaceExtension(t *testing.T) {
	t.Parallel()

	if got := fileutil.ReplaceExtension("dir/nb.ipynb", ".html"); got != "dir/nb.html" {
		t.Errorf("ReplaceExtension() = %q, want dir/nb.html", got)
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	if fileutil.IsFilePath("nbdoc") {
		t.Error("IsFilePath(name) = true, want false")
	}
	if !fileutil.IsFilePath("./nbdoc.yaml") {
		t.Error("IsFilePath(path) = false, want true")
	}
}
