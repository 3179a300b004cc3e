// Package markdown converts Markdown source into document tree nodes using
// goldmark's parser. Only the AST is used; goldmark's HTML renderer is not
// involved, so the same nodes can be serialized to any output format.
package markdown

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-nbdoc/internal/tree"
)

// Parser defines the contract for turning Markdown into tree nodes.
// firstLine is the 1-based line of the first source line in the enclosing
// document; nodes are stamped with lines relative to it.
type Parser interface {
	Parse(source string, firstLine int) []*tree.Node
}

// GoldmarkParser parses CommonMark with GFM extensions.
type GoldmarkParser struct {
	md goldmark.Markdown
}

// NewGoldmarkParser creates a GoldmarkParser with GFM and footnote support.
func NewGoldmarkParser() *GoldmarkParser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings (cross-references)
		),
	)
	return &GoldmarkParser{md: md}
}

// Parse converts source into a list of block-level nodes.
func (p *GoldmarkParser) Parse(source string, firstLine int) []*tree.Node {
	src := []byte(source)
	doc := p.md.Parser().Parse(text.NewReader(src))

	c := &converter{source: src, firstLine: firstLine, newlines: newlineOffsets(src)}
	return c.children(doc)
}

// ParseInline parses source and returns the inline content of its first
// paragraph, or nil when source does not start with a paragraph.
func ParseInline(p Parser, source string, line int) []*tree.Node {
	blocks := p.Parse(source, line)
	if len(blocks) == 0 || blocks[0].Kind != tree.KindParagraph {
		return nil
	}
	return blocks[0].Children
}

type converter struct {
	source    []byte
	firstLine int
	newlines  []int
}

func newlineOffsets(src []byte) []int {
	var offsets []int
	for i, b := range src {
		if b == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// lineAt maps a byte offset to a document line.
func (c *converter) lineAt(offset int) int {
	return c.firstLine + sort.SearchInts(c.newlines, offset)
}

// blockLine finds the first line of a block, descending into children for
// containers (lists, quotes) that carry no lines themselves.
func (c *converter) blockLine(n ast.Node) int {
	for cur := n; cur != nil; cur = cur.FirstChild() {
		if cur.Type() != ast.TypeBlock {
			break
		}
		if lines := cur.Lines(); lines != nil && lines.Len() > 0 {
			return c.lineAt(lines.At(0).Start)
		}
	}
	return 0
}

func (c *converter) children(n ast.Node) []*tree.Node {
	var out []*tree.Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, c.convert(child)...)
	}
	return out
}

func (c *converter) convert(n ast.Node) []*tree.Node {
	node := c.convertNode(n)
	if node == nil {
		return c.children(n)
	}
	if node.Line == 0 && n.Type() == ast.TypeBlock {
		node.Line = c.blockLine(n)
	}
	if t, ok := n.(*ast.Text); ok && t.HardLineBreak() {
		return []*tree.Node{node, tree.New(tree.KindLineBreak)}
	}
	return []*tree.Node{node}
}

func (c *converter) convertNode(n ast.Node) *tree.Node {
	switch v := n.(type) {
	case *ast.Heading:
		node := tree.New(tree.KindHeading).Set("level", v.Level)
		if id, ok := v.AttributeString("id"); ok {
			if b, isBytes := id.([]byte); isBytes {
				node.Set("id", string(b))
			}
		}
		return node.Append(c.children(v)...)
	case *ast.Paragraph, *ast.TextBlock:
		return tree.New(tree.KindParagraph).Append(c.children(v)...)
	case *ast.ThematicBreak:
		return tree.New(tree.KindTransition)
	case *ast.Blockquote:
		return tree.New(tree.KindBlockQuote).Append(c.children(v)...)
	case *ast.List:
		if v.IsOrdered() {
			return tree.New(tree.KindEnumeratedList).Set("start", v.Start).Append(c.children(v)...)
		}
		return tree.New(tree.KindBulletList).Append(c.children(v)...)
	case *ast.ListItem:
		return tree.New(tree.KindListItem).Append(c.children(v)...)
	case *ast.FencedCodeBlock:
		node := tree.New(tree.KindLiteralBlock, "code")
		node.Text = c.lines(v)
		if lang := v.Language(c.source); lang != nil {
			node.Set("language", string(lang))
		}
		return node
	case *ast.CodeBlock:
		node := tree.New(tree.KindLiteralBlock, "code")
		node.Text = c.lines(v)
		return node
	case *ast.HTMLBlock:
		raw := c.lines(v)
		if v.HasClosure() {
			seg := v.ClosureLine
			raw += string(seg.Value(c.source))
		}
		node := tree.New(tree.KindRaw).Set("format", "html")
		node.Text = raw
		return node
	case *ast.Text:
		value := string(v.Segment.Value(c.source))
		if v.SoftLineBreak() {
			value += "\n"
		}
		return tree.NewText(value)
	case *ast.String:
		return tree.NewText(string(v.Value))
	case *ast.Emphasis:
		if v.Level >= 2 {
			return tree.New(tree.KindStrong).Append(c.children(v)...)
		}
		return tree.New(tree.KindEmphasis).Append(c.children(v)...)
	case *ast.CodeSpan:
		node := tree.New(tree.KindLiteral)
		node.Text = c.inlineText(v)
		return node
	case *ast.Link:
		node := tree.New(tree.KindReference).Set("refuri", string(v.Destination))
		if len(v.Title) > 0 {
			node.Set("title", string(v.Title))
		}
		return node.Append(c.children(v)...)
	case *ast.AutoLink:
		url := string(v.URL(c.source))
		if v.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
			url = "mailto:" + url
		}
		return tree.New(tree.KindReference).Set("refuri", url).Append(tree.NewText(string(v.Label(c.source))))
	case *ast.Image:
		node := tree.New(tree.KindImage).Set("uri", string(v.Destination)).Set("alt", c.inlineText(v))
		if len(v.Title) > 0 {
			node.Set("title", string(v.Title))
		}
		return node
	case *ast.RawHTML:
		var buf bytes.Buffer
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			buf.Write(seg.Value(c.source))
		}
		node := tree.New(tree.KindRaw, "inline").Set("format", "html")
		node.Text = buf.String()
		return node
	case *east.Strikethrough:
		return tree.New(tree.KindStrikethrough).Append(c.children(v)...)
	case *east.TaskCheckBox:
		mark := "[ ] "
		if v.IsChecked {
			mark = "[x] "
		}
		return tree.NewText(mark)
	case *east.Table:
		return tree.New(tree.KindTable).Append(c.children(v)...)
	case *east.TableHeader:
		row := tree.New(tree.KindTableRow, "header")
		return row.Append(c.children(v)...)
	case *east.TableRow:
		return tree.New(tree.KindTableRow).Append(c.children(v)...)
	case *east.TableCell:
		node := tree.New(tree.KindTableEntry).Append(c.children(v)...)
		if v.Alignment != east.AlignNone {
			node.Set("align", v.Alignment.String())
		}
		return node
	case *east.FootnoteLink:
		node := tree.New(tree.KindFootnoteReference).
			Set("refid", footnoteID(v.Index)).
			Set("id", footnoteRefID(v.Index, v.RefIndex))
		return node.Append(tree.NewText(strconv.Itoa(v.Index)))
	case *east.FootnoteBacklink:
		return tree.New(tree.KindReference, "footnote-backref").
			Set("refuri", "#"+footnoteRefID(v.Index, v.RefIndex)).
			Append(tree.NewText("\u21a9"))
	case *east.FootnoteList:
		return tree.New(tree.KindContainer, "footnotes").Append(c.children(v)...)
	case *east.Footnote:
		label := tree.New(tree.KindLabel).Append(tree.NewText(strconv.Itoa(v.Index)))
		node := tree.New(tree.KindFootnote).Set("id", footnoteID(v.Index)).Append(label)
		return node.Append(c.children(v)...)
	default:
		return nil
	}
}

func footnoteID(index int) string {
	return "fn-" + strconv.Itoa(index)
}

// footnoteRefID identifies one reference to a footnote; later references to
// the same footnote get a suffix.
func footnoteRefID(index, refIndex int) string {
	id := "fnref-" + strconv.Itoa(index)
	if refIndex > 0 {
		id += "-" + strconv.Itoa(refIndex)
	}
	return id
}

// lines concatenates the raw lines of a block.
func (c *converter) lines(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.source))
	}
	return buf.String()
}

// inlineText flattens the text of inline children.
func (c *converter) inlineText(n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(c.source))
		case *ast.String:
			sb.Write(v.Value)
		default:
			sb.WriteString(c.inlineText(child))
		}
	}
	return sb.String()
}
