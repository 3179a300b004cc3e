package render

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"

	"github.com/alnah/go-nbdoc/internal/config"
	"github.com/alnah/go-nbdoc/internal/fileutil"
	"github.com/alnah/go-nbdoc/internal/markdown"
	"github.com/alnah/go-nbdoc/internal/mime"
	"github.com/alnah/go-nbdoc/internal/notebook"
	"github.com/alnah/go-nbdoc/internal/tree"
)

// Raw formats used on raw nodes.
const (
	FormatHTML  = "html"
	FormatLaTeX = "latex"
)

// Elements is the default ElementRenderer.
//
// Images are written to the output folder under a content hash name, or
// embedded as data URIs when no folder is configured or embedding is
// requested. Safe for concurrent use.
type Elements struct {
	cfg *config.Config
	md  markdown.Parser

	mu    sync.Mutex
	files []string
}

// Compile-time interface check.
var _ ElementRenderer = (*Elements)(nil)

// NewElements creates an Elements renderer. A nil parser uses goldmark.
func NewElements(cfg *config.Config, md markdown.Parser) *Elements {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if md == nil {
		md = markdown.NewGoldmarkParser()
	}
	return &Elements{cfg: cfg, md: md}
}

// Files returns the distinct paths written so far, in write order.
func (e *Elements) Files() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.files...)
}

// RenderStdout renders stdout text as a literal block with ANSI escapes removed.
func (e *Elements) RenderStdout(out *notebook.Stream, _ notebook.Metadata, _, line int) []*tree.Node {
	return []*tree.Node{literalBlock(ansi.Strip(out.Text), "none", line, "output", "stream")}
}

// RenderStderr renders stderr text like stdout, with the stderr class.
func (e *Elements) RenderStderr(out *notebook.Stream, _ notebook.Metadata, _, line int) []*tree.Node {
	return []*tree.Node{literalBlock(ansi.Strip(out.Text), "none", line, "output", "stderr")}
}

// RenderError renders the traceback of an error output.
// When there is no traceback, "ename: evalue" is used instead.
func (e *Elements) RenderError(out *notebook.Error, _ notebook.Metadata, _, line int) []*tree.Node {
	text := strings.Join(out.Traceback, "\n")
	if text == "" {
		text = out.Ename + ": " + out.Evalue
	}
	n := literalBlock(ansi.Strip(text), "ipythontb", line, "output", "traceback")
	n.Set("ename", out.Ename)
	return []*tree.Node{n}
}

// RenderRawCell renders a raw cell through RenderMimeType, using the MIME
// type named by the "format" or "raw_mimetype" metadata. Raw cells without
// a format produce no nodes.
func (e *Elements) RenderRawCell(content string, cellMeta notebook.Metadata, cellIndex, line int) ([]*tree.Node, error) {
	format := rawFormat(cellMeta)
	if format == "" {
		return nil, nil
	}
	return e.RenderMimeType(MimeData{
		MimeType:     format,
		Content:      content,
		CellMetadata: cellMeta,
		CellIndex:    cellIndex,
		OutputIndex:  -1,
		Line:         line,
	})
}

// rawFormat returns the MIME type of a raw cell, accepting the short names
// used by nbconvert.
func rawFormat(meta notebook.Metadata) string {
	format, _ := meta.String("format")
	if format == "" {
		format, _ = meta.String("raw_mimetype")
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "":
		return ""
	case "html":
		return mime.HTML
	case "latex", "tex":
		return mime.LaTeX
	case "markdown", "md":
		return mime.Markdown
	case "text", "plain":
		return mime.Plain
	default:
		return format
	}
}

// RenderMimeType renders one representation.
func (e *Elements) RenderMimeType(data MimeData) ([]*tree.Node, error) {
	switch data.MimeType {
	case mime.Plain:
		text, err := textPayload(data)
		if err != nil {
			return nil, err
		}
		return []*tree.Node{literalBlock(ansi.Strip(text), "none", data.Line, "output", mimeClass(data.MimeType))}, nil
	case mime.HTML:
		text, err := textPayload(data)
		if err != nil {
			return nil, err
		}
		return []*tree.Node{rawNode(FormatHTML, text, data.Line, "output", mimeClass(data.MimeType))}, nil
	case mime.LaTeX:
		text, err := textPayload(data)
		if err != nil {
			return nil, err
		}
		n := tree.New(tree.KindMathBlock, "output", mimeClass(data.MimeType))
		n.Text = strings.Trim(strings.TrimSpace(text), "$")
		n.Line = data.Line
		return []*tree.Node{n}, nil
	case mime.Markdown:
		text, err := textPayload(data)
		if err != nil {
			return nil, err
		}
		n := tree.New(tree.KindContainer, "output", mimeClass(data.MimeType))
		n.Line = data.Line
		n.Append(e.md.Parse(text, data.Line)...)
		return []*tree.Node{n}, nil
	case mime.JavaScript:
		text, err := textPayload(data)
		if err != nil {
			return nil, err
		}
		script := `<script type="text/javascript">` + text + `</script>`
		return []*tree.Node{rawNode(FormatHTML, script, data.Line, "output", mimeClass(data.MimeType))}, nil
	case mime.WidgetView:
		payload, err := json.Marshal(data.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, data.MimeType, err)
		}
		script := `<script type="` + mime.WidgetView + `">` + string(payload) + `</script>`
		return []*tree.Node{rawNode(FormatHTML, script, data.Line, "output", mimeClass(data.MimeType))}, nil
	case mime.PNG, mime.JPEG, mime.GIF:
		text, err := textPayload(data)
		if err != nil {
			return nil, err
		}
		raw, err := decodeBase64(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, data.MimeType, err)
		}
		return e.renderImage(data, raw)
	case mime.SVG:
		text, err := textPayload(data)
		if err != nil {
			return nil, err
		}
		return e.renderImage(data, []byte(text))
	case mime.PDF:
		text, err := textPayload(data)
		if err != nil {
			return nil, err
		}
		raw, err := decodeBase64(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPayload, data.MimeType, err)
		}
		path, err := e.WriteFile([]string{contentName(raw, extension(data.MimeType))}, raw, false)
		if err != nil {
			return nil, err
		}
		n := tree.New(tree.KindImage, "output", mimeClass(data.MimeType))
		n.Set("uri", path)
		n.Line = data.Line
		return []*tree.Node{n}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMimeType, data.MimeType)
	}
}

func (e *Elements) renderImage(data MimeData, raw []byte) ([]*tree.Node, error) {
	uri, err := e.imageURI(data.MimeType, raw)
	if err != nil {
		return nil, err
	}

	n := tree.New(tree.KindImage, "output", mimeClass(data.MimeType))
	n.Line = data.Line
	n.Set("uri", uri)
	n.Set("alt", fmt.Sprintf("output %d of cell %d", data.OutputIndex, data.CellIndex))
	if sizes, ok := data.OutputMetadata.Map(data.MimeType); ok {
		for _, key := range []string{"width", "height"} {
			if v, found := sizes[key]; found {
				n.Set(key, v)
			}
		}
	}
	return []*tree.Node{n}, nil
}

func (e *Elements) imageURI(mimeType string, raw []byte) (string, error) {
	if e.cfg.EmbedImages || e.cfg.OutputFolder == "" {
		return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
	}
	return e.WriteFile([]string{contentName(raw, extension(mimeType))}, raw, false)
}

// WriteFile writes content under the configured output folder.
func (e *Elements) WriteFile(parts []string, content []byte, overwrite bool) (string, error) {
	if e.cfg.OutputFolder == "" {
		return "", ErrNoOutputFolder
	}
	path, err := fileutil.WriteOutputFile(e.cfg.OutputFolder, parts, content, overwrite)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	if !slices.Contains(e.files, path) {
		e.files = append(e.files, path)
	}
	e.mu.Unlock()
	return path, nil
}

// RenderNotebookMetadata drops the notebook-level render configuration,
// which configures the renderer and is not document content.
func (e *Elements) RenderNotebookMetadata(meta notebook.Metadata) notebook.Metadata {
	out := meta.Clone()
	delete(out, e.cfg.MetadataKey)
	return out
}

func textPayload(data MimeData) (string, error) {
	text, ok := data.Text()
	if !ok {
		return "", fmt.Errorf("%w: %s payload is %T, want text", ErrInvalidPayload, data.MimeType, data.Content)
	}
	return text, nil
}

func literalBlock(text, language string, line int, classes ...string) *tree.Node {
	n := tree.New(tree.KindLiteralBlock, classes...)
	n.Text = text
	n.Line = line
	n.Set("language", language)
	return n
}

func rawNode(format, text string, line int, classes ...string) *tree.Node {
	n := tree.New(tree.KindRaw, classes...)
	n.Text = text
	n.Line = line
	n.Set("format", format)
	return n
}

var mimeClassReplacer = strings.NewReplacer("/", "_", "+", "_", ".", "_", "-", "_")

// mimeClass turns a MIME type into a CSS-friendly class: text/html -> text_html.
func mimeClass(mimeType string) string {
	return mimeClassReplacer.Replace(mimeType)
}

// decodeBase64 decodes standard base64, ignoring embedded whitespace.
func decodeBase64(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)
	return base64.StdEncoding.DecodeString(clean)
}

// contentName returns a stable file name derived from the content.
func contentName(content []byte, ext string) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:8]) + ext
}

func extension(mimeType string) string {
	switch mimeType {
	case mime.PNG:
		return ".png"
	case mime.JPEG:
		return ".jpg"
	case mime.GIF:
		return ".gif"
	case mime.SVG:
		return ".svg"
	case mime.PDF:
		return ".pdf"
	default:
		return ".bin"
	}
}

