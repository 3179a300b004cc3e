package nbdoc

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-nbdoc/internal/assets"
	"github.com/alnah/go-nbdoc/internal/config"
	"github.com/alnah/go-nbdoc/internal/notebook"
	"github.com/alnah/go-nbdoc/internal/render"
	"github.com/alnah/go-nbdoc/internal/tree"
	"github.com/alnah/go-nbdoc/internal/writer"
)

// Side file names in the output folder.
const (
	ProcessedNotebookName = "processed.ipynb"
	StyleFileName         = "nbdoc.css"
	HighlightFileName     = "chroma.css"
)

// Converter orchestrates the notebook-to-document pipeline.
// Create with NewConverter and call Convert for each notebook.
type Converter struct {
	cfg      *config.Config
	logger   *log.Logger
	elements render.ElementRenderer // nil = a new render.Elements per conversion
	format   string
}

// fileLister is implemented by element renderers that track written files.
type fileLister interface {
	Files() []string
}

// NewConverter creates a Converter with default configuration.
// Returns an error if the configuration or the output format is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:    config.DefaultConfig(),
		format: FormatHTML,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if !slices.Contains(writer.Formats(), c.format) {
		return nil, fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownFormat, c.format, strings.Join(writer.Formats(), ", "))
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Format returns the output format.
func (c *Converter) Format() string {
	return c.format
}

// Convert parses, renders and serializes one notebook.
// Cell-level problems become warning nodes and are counted in
// Result.Warnings; errors are returned only when no document can be produced.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if len(input.Notebook) == 0 {
		return nil, ErrEmptyNotebook
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nb, err := notebook.Read(input.Notebook)
	if err != nil {
		return nil, fmt.Errorf("reading notebook: %w", err)
	}

	// An invalid notebook override is reported by the renderer; side files
	// follow the configuration it falls back to.
	cfg, _ := render.NotebookConfig(c.cfg, nb.Metadata)

	elements := c.elements
	if elements == nil {
		elements = render.NewElements(cfg, nil)
	}

	r, err := render.New(c.cfg,
		render.WithLogger(c.logger),
		render.WithElementRenderer(elements),
	)
	if err != nil {
		return nil, err
	}

	doc := tree.NewDocument(input.SourcePath)
	if err := r.Render(nb, doc); err != nil {
		return nil, fmt.Errorf("rendering notebook: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.OutputFolder != "" {
		data, err := notebook.Write(nb)
		if err != nil {
			return nil, err
		}
		if _, err := elements.WriteFile([]string{ProcessedNotebookName}, data, true); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	opts, err := c.pageOptions(cfg, elements, input.OutputDir)
	if err != nil {
		return nil, err
	}
	if input.OutputDir != "" {
		relinkFiles(doc, input.OutputDir)
	}

	w, err := writer.New(c.format, opts)
	if err != nil {
		return nil, err
	}
	out, err := w.Write(doc)
	if err != nil {
		return nil, err
	}

	result = &Result{
		Tree:     doc,
		Output:   out,
		Warnings: tree.CountWarnings(doc),
	}
	if lister, ok := elements.(fileLister); ok {
		result.Files = lister.Files()
	}
	return result, nil
}

// pageOptions builds the HTML page options. With append_css the page style
// and the highlight style are written next to the other side files and
// linked, or inlined when there is no output folder.
func (c *Converter) pageOptions(cfg *config.Config, elements render.ElementRenderer, outputDir string) (writer.HTMLOptions, error) {
	var opts writer.HTMLOptions
	if c.format != FormatHTML || !cfg.AppendCSS {
		return opts, nil
	}

	styles, err := assets.NewStyleResolver(cfg.AssetsPath)
	if err != nil {
		return opts, fmt.Errorf("loading styles: %w", err)
	}
	pageCSS, err := styles.LoadStyle(cfg.Style)
	if err != nil {
		return opts, fmt.Errorf("loading style %q: %w", cfg.Style, err)
	}
	highlightCSS, err := writer.ChromaCSS(cfg.HighlightStyle)
	if err != nil {
		return opts, err
	}

	if cfg.OutputFolder == "" {
		opts.CSS = pageCSS + "\n" + highlightCSS
		return opts, nil
	}

	for _, sheet := range []struct{ name, content string }{
		{StyleFileName, pageCSS},
		{HighlightFileName, highlightCSS},
	} {
		path, err := elements.WriteFile([]string{sheet.name}, []byte(sheet.content), true)
		if err != nil {
			return opts, fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		opts.StyleSheets = append(opts.StyleSheets, relativeLink(path, outputDir))
	}
	return opts, nil
}

// relinkFiles rewrites image URIs pointing at written files so they resolve
// from dir. Data URIs and remote URLs are left alone.
func relinkFiles(doc *tree.Node, dir string) {
	for _, img := range doc.Find(tree.KindImage) {
		uri := img.AttrString("uri")
		if uri == "" || strings.HasPrefix(uri, "data:") || strings.Contains(uri, "://") {
			continue
		}
		img.Set("uri", relativeLink(uri, dir))
	}
}

// relativeLink returns path relative to dir with forward slashes, or path
// itself when no relative form exists.
func relativeLink(path, dir string) string {
	if dir == "" {
		return filepath.ToSlash(path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
