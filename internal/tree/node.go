package tree

import "slices"

// Kind classifies a node.
type Kind string

// Node kinds. The set mirrors what the renderer and writers need and is not
// meant to be exhaustive.
const (
	KindDocument       Kind = "document"
	KindContainer      Kind = "container"
	KindSection        Kind = "section"
	KindHeading        Kind = "heading"
	KindParagraph      Kind = "paragraph"
	KindText           Kind = "text"
	KindEmphasis       Kind = "emphasis"
	KindStrong         Kind = "strong"
	KindStrikethrough  Kind = "strikethrough"
	KindLiteral        Kind = "literal"
	KindLiteralBlock   Kind = "literal_block"
	KindReference      Kind = "reference"
	KindImage          Kind = "image"
	KindRaw            Kind = "raw"
	KindMathBlock      Kind = "math_block"
	KindBulletList     Kind = "bullet_list"
	KindEnumeratedList Kind = "enumerated_list"
	KindListItem       Kind = "list_item"
	KindBlockQuote     Kind = "block_quote"
	KindTransition     Kind = "transition"
	KindLineBreak      Kind = "line_break"
	KindTable          Kind = "table"
	KindTableRow       Kind = "row"
	KindTableEntry     Kind = "entry"
	KindFigure         Kind = "figure"
	KindCaption        Kind = "caption"
	KindDocinfo        Kind = "docinfo"
	KindField          Kind = "field"
	KindFieldName      Kind = "field_name"
	KindFieldBody      Kind = "field_body"
	KindSystemMessage  Kind = "system_message"

	KindFootnote          Kind = "footnote"
	KindFootnoteReference Kind = "footnote_reference"
	KindLabel             Kind = "label"
)

// Node is one element of the document tree.
type Node struct {
	Kind     Kind
	Classes  []string
	Attrs    map[string]any
	Text     string
	Line     int    // 1-based source line, 0 when unknown
	Source   string // source document path, empty when unknown
	Children []*Node
}

// New creates a node of the given kind with optional classes.
func New(kind Kind, classes ...string) *Node {
	return &Node{Kind: kind, Classes: classes}
}

// NewText creates a text leaf.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// NewDocument creates the root node for a document read from source.
func NewDocument(source string) *Node {
	return &Node{Kind: KindDocument, Source: source, Attrs: map[string]any{"source": source}}
}

// Append adds children in order. Nil children are skipped.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Set stores an attribute and returns the node for chaining.
func (n *Node) Set(key string, value any) *Node {
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[key] = value
	return n
}

// Attr returns an attribute value.
func (n *Node) Attr(key string) (any, bool) {
	v, ok := n.Attrs[key]
	return v, ok
}

// AttrString returns a string attribute, or "" when absent or not a string.
func (n *Node) AttrString(key string) string {
	s, _ := n.Attrs[key].(string)
	return s
}

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// AddClass appends classes that are not already present.
func (n *Node) AddClass(classes ...string) {
	for _, c := range classes {
		if c != "" && !n.HasClass(c) {
			n.Classes = append(n.Classes, c)
		}
	}
}

// Walk visits n and its descendants depth-first, pre-order.
// Returning false from fn skips the children of that node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns every descendant (including n) of the given kind, in document order.
func (n *Node) Find(kind Kind) []*Node {
	var found []*Node
	n.Walk(func(x *Node) bool {
		if x.Kind == kind {
			found = append(found, x)
		}
		return true
	})
	return found
}

// PlainText concatenates the text of all descendant leaves.
func (n *Node) PlainText() string {
	var out []byte
	n.Walk(func(x *Node) bool {
		out = append(out, x.Text...)
		return true
	})
	return string(out)
}
