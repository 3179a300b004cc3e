package render

import (
	"github.com/alnah/go-nbdoc/internal/notebook"
	"github.com/alnah/go-nbdoc/internal/tree"
)

// ElementRenderer turns individual notebook elements into tree nodes.
// Implementations decide how each element looks; the Renderer decides
// which elements are rendered and where the nodes go.
type ElementRenderer interface {
	RenderStdout(out *notebook.Stream, cellMeta notebook.Metadata, cellIndex, line int) []*tree.Node
	RenderStderr(out *notebook.Stream, cellMeta notebook.Metadata, cellIndex, line int) []*tree.Node
	RenderError(out *notebook.Error, cellMeta notebook.Metadata, cellIndex, line int) []*tree.Node
	// RenderRawCell renders a raw cell. It may return no nodes.
	RenderRawCell(content string, cellMeta notebook.Metadata, cellIndex, line int) ([]*tree.Node, error)
	// RenderMimeType renders the single representation chosen from a bundle.
	RenderMimeType(data MimeData) ([]*tree.Node, error)
	// WriteFile writes content under the output folder and returns its path.
	// An existing file is kept unless overwrite is set.
	WriteFile(parts []string, content []byte, overwrite bool) (string, error)
	// RenderNotebookMetadata returns the metadata to expose as front matter.
	RenderNotebookMetadata(meta notebook.Metadata) notebook.Metadata
}

// MimeData is one chosen representation of a rich output.
type MimeData struct {
	MimeType       string
	Content        any // string for text types, decoded JSON for JSON types
	CellMetadata   notebook.Metadata
	OutputMetadata notebook.Metadata
	CellIndex      int
	OutputIndex    int // -1 for raw cells
	Line           int
}

// Text returns Content as a string when it is a text payload.
func (d MimeData) Text() (string, bool) {
	return notebook.PayloadText(d.Content)
}
