package nbdoc

// Notes:
// - Convert is exercised end to end on small inline notebooks; rendering
//   details are covered in internal/render, serialization in internal/writer.
// - Tests writing side files use t.TempDir() and never share folders.
// - Image payloads are tiny base64 strings; they only need to decode.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/alnah/go-nbdoc/internal/render"
	"github.com/alnah/go-nbdoc/internal/tree"
)

const testNotebook = `{
 "cells": [
  {"cell_type": "markdown", "metadata": {}, "source": "# Analysis\n\nSome *text*."},
  {
   "cell_type": "code",
   "execution_count": 1,
   "metadata": {},
   "source": "print('hi')",
   "outputs": [
    {"output_type": "stream", "name": "stdout", "text": "hi\n"},
    {"output_type": "display_data", "metadata": {},
     "data": {"image/png": "iVBORw0KGgo=", "text/plain": "<Figure>"}}
   ]
  }
 ],
 "metadata": {
  "kernelspec": {"name": "python3", "language": "python"},
  "language_info": {"name": "python"}
 },
 "nbformat": 4,
 "nbformat_minor": 5
}`

// ---------------------------------------------------------------------------
// NewConverter
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		conv, err := NewConverter()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if conv.Format() != FormatHTML {
			t.Errorf("Format() = %q, want %q", conv.Format(), FormatHTML)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := NewConverter(WithFormat("docx"))
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("error = %v, want ErrUnknownFormat", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		cfg := DefaultConfig()
		cfg.BuilderName = ""
		_, err := NewConverter(WithConfig(cfg))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("nil config keeps default", func(t *testing.T) {
		t.Parallel()

		if _, err := NewConverter(WithConfig(nil)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// Convert - input errors
// ---------------------------------------------------------------------------

func TestConvert_InputErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrEmptyNotebook},
		{"malformed JSON", "{", ErrInvalidNotebook},
		{"nbformat 3", `{"nbformat": 3, "worksheets": []}`, ErrUnsupportedFormat},
	}

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := conv.Convert(context.Background(), Input{Notebook: []byte(tt.input)})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvert_CanceledContext(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = conv.Convert(ctx, Input{Notebook: []byte(testNotebook)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// Convert - output
// ---------------------------------------------------------------------------

func TestConvert_HTMLInlinesCSS(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := conv.Convert(context.Background(), Input{Notebook: []byte(testNotebook), SourcePath: "analysis.ipynb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := string(result.Output)
	wants := []string{
		"<title>Analysis</title>",
		"<style>",
		"div.cell_input",
		".chroma",
		`src="data:image/png;base64,iVBORw0KGgo="`,
		"hi\n",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if len(result.Files) != 0 {
		t.Errorf("Files = %v, want none without an output folder", result.Files)
	}
	if result.Warnings != 0 {
		t.Errorf("Warnings = %d, want 0", result.Warnings)
	}
	if result.Tree.Kind != tree.KindDocument || result.Tree.AttrString("source") != "analysis.ipynb" {
		t.Errorf("Tree = %s source=%q", result.Tree.Kind, result.Tree.AttrString("source"))
	}
}

func TestConvert_PseudoXML(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithFormat(FormatPseudoXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := conv.Convert(context.Background(), Input{Notebook: []byte(testNotebook)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := string(result.Output)
	for _, want := range []string{"<document", "<container", "<literal_block", "<image"} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if strings.Contains(got, "<style>") {
		t.Error("pseudo-XML output should not carry CSS")
	}
}

func TestConvert_OutputFolder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.OutputFolder = filepath.Join(dir, "build")

	conv, err := NewConverter(WithConfig(cfg))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := conv.Convert(context.Background(), Input{
		Notebook:  []byte(testNotebook),
		OutputDir: cfg.OutputFolder,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{ProcessedNotebookName, StyleFileName, HighlightFileName} {
		path := filepath.Join(cfg.OutputFolder, name)
		if !slices.Contains(result.Files, path) {
			t.Errorf("Files = %v, missing %s", result.Files, path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("stat %s: %v", name, err)
		}
	}
	if len(result.Files) != 4 {
		t.Errorf("Files = %v, want 3 side files and 1 image", result.Files)
	}

	got := string(result.Output)
	for _, want := range []string{`href="nbdoc.css"`, `href="chroma.css"`} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if strings.Contains(got, "data:image/png") {
		t.Error("image should be written to the output folder, not embedded")
	}

	images := result.Tree.Find(tree.KindImage)
	if len(images) != 1 {
		t.Fatalf("images = %d, want 1", len(images))
	}
	uri := images[0].AttrString("uri")
	if strings.Contains(uri, "/") || !strings.HasSuffix(uri, ".png") {
		t.Errorf("image uri = %q, want a bare file name relative to the output dir", uri)
	}

	processed, err := os.ReadFile(filepath.Join(cfg.OutputFolder, ProcessedNotebookName))
	if err != nil {
		t.Fatalf("reading processed notebook: %v", err)
	}
	if !strings.Contains(string(processed), `"nbformat": 4`) {
		t.Errorf("processed notebook is not nbformat 4:\n%s", processed)
	}
}

func TestConvert_NotebookOverride(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithFormat(FormatPseudoXML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("valid override removes outputs", func(t *testing.T) {
		t.Parallel()

		nb := strings.Replace(testNotebook, `"kernelspec"`, `"mystnb": {"remove_code_outputs": true}, "kernelspec"`, 1)
		result, err := conv.Convert(context.Background(), Input{Notebook: []byte(nb)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Tree.Find(tree.KindImage)) != 0 {
			t.Error("outputs should be removed by the notebook override")
		}
	})

	t.Run("invalid override becomes a warning", func(t *testing.T) {
		t.Parallel()

		nb := strings.Replace(testNotebook, `"kernelspec"`, `"mystnb": {"no_such_key": 1}, "kernelspec"`, 1)
		result, err := conv.Convert(context.Background(), Input{Notebook: []byte(nb)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Warnings != 1 {
			t.Errorf("Warnings = %d, want 1", result.Warnings)
		}
		if len(result.Tree.Find(tree.KindImage)) != 1 {
			t.Error("rendering should continue with the unmodified configuration")
		}
	})
}

// countingElements wraps the default renderer and counts MIME renders.
type countingElements struct {
	*render.Elements
	mimeTypes []string
}

func (c *countingElements) RenderMimeType(data render.MimeData) ([]*tree.Node, error) {
	c.mimeTypes = append(c.mimeTypes, data.MimeType)
	return c.Elements.RenderMimeType(data)
}

func TestConvert_WithElementRenderer(t *testing.T) {
	t.Parallel()

	elements := &countingElements{Elements: render.NewElements(DefaultConfig(), nil)}
	conv, err := NewConverter(WithElementRenderer(elements))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := conv.Convert(context.Background(), Input{Notebook: []byte(testNotebook)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(elements.mimeTypes, []string{"image/png"}) {
		t.Errorf("rendered mime types = %v, want [image/png]", elements.mimeTypes)
	}
}

// ---------------------------------------------------------------------------
// relativeLink
// ---------------------------------------------------------------------------

func TestRelativeLink(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		dir  string
		want string
	}{
		{"no dir", filepath.Join("build", "a.png"), "", "build/a.png"},
		{"same dir", filepath.Join("build", "a.png"), "build", "a.png"},
		{"sibling dir", filepath.Join("build", "a.png"), "site", "../build/a.png"},
		{"nested", filepath.Join("build", "img", "a.png"), "build", "img/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := relativeLink(tt.path, tt.dir); got != tt.want {
				t.Errorf("relativeLink(%q, %q) = %q, want %q", tt.path, tt.dir, got, tt.want)
			}
		})
	}
}
