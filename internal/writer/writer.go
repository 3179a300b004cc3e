package writer

import (
	"errors"
	"fmt"

	"github.com/alnah/go-nbdoc/internal/tree"
)

// Output formats.
const (
	FormatHTML      = "html"
	FormatPseudoXML = "pseudoxml"
)

// Sentinel errors for writers.
var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrNotDocument   = errors.New("root node is not a document")
	ErrWrite         = errors.New("failed to write document")
)

// Writer serializes a document tree.
type Writer interface {
	Write(doc *tree.Node) ([]byte, error)
}

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatHTML, FormatPseudoXML}
}

// New returns the writer for format. opts is only used by the HTML writer.
func New(format string, opts HTMLOptions) (Writer, error) {
	switch format {
	case FormatHTML:
		return NewHTML(opts), nil
	case FormatPseudoXML:
		return &PseudoXML{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownFormat, format, FormatHTML, FormatPseudoXML)
	}
}

// Extension returns the file extension for format, with the leading dot.
func Extension(format string) string {
	if format == FormatPseudoXML {
		return ".xml"
	}
	return ".html"
}

func checkDocument(doc *tree.Node) error {
	if doc == nil || doc.Kind != tree.KindDocument {
		return ErrNotDocument
	}
	return nil
}
