package writer

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-nbdoc/internal/tree"
)

// HTMLOptions configures the HTML page around the document body.
type HTMLOptions struct {
	Title       string   // defaults to the first heading, then the source file name
	StyleSheets []string // linked in order
	CSS         string   // inlined in a <style> block after the links
}

// HTML writes a standalone HTML5 page.
type HTML struct {
	opts HTMLOptions
}

// NewHTML creates an HTML writer.
func NewHTML(opts HTMLOptions) *HTML {
	return &HTML{opts: opts}
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// Write renders doc as an HTML page.
func (w *HTML) Write(doc *tree.Node) ([]byte, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	page := element(atom.Html, attr("lang", "en"))
	head := element(atom.Head)
	body := element(atom.Body)
	root.AppendChild(page)
	page.AppendChild(head)
	page.AppendChild(body)

	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(element(atom.Meta, attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1")))
	title := element(atom.Title)
	title.AppendChild(text(w.title(doc)))
	head.AppendChild(title)
	for _, href := range w.opts.StyleSheets {
		head.AppendChild(element(atom.Link, attr("rel", "stylesheet"), attr("href", href)))
	}
	if w.opts.CSS != "" {
		style := element(atom.Style)
		style.AppendChild(text(sanitizeCSS(w.opts.CSS)))
		head.AppendChild(style)
	}

	content := element(atom.Main, attr("class", "document"))
	body.AppendChild(content)
	for _, child := range doc.Children {
		if err := w.convert(content, child); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (w *HTML) title(doc *tree.Node) string {
	if w.opts.Title != "" {
		return w.opts.Title
	}
	if headings := doc.Find(tree.KindHeading); len(headings) > 0 {
		if t := strings.TrimSpace(headings[0].PlainText()); t != "" {
			return t
		}
	}
	if src := doc.AttrString("source"); src != "" {
		return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}
	return "Notebook"
}

// convert appends the HTML for n to parent.
func (w *HTML) convert(parent *html.Node, n *tree.Node) error {
	switch n.Kind {
	case tree.KindText:
		parent.AppendChild(text(n.Text))
		return nil
	case tree.KindRaw:
		return w.convertRaw(parent, n)
	case tree.KindLiteralBlock:
		return w.convertCode(parent, n)
	case tree.KindField:
		// field name and body go straight into the enclosing <dl>
		return w.children(parent, n)
	case tree.KindFootnoteReference:
		link := element(atom.A,
			attr("class", "footnote-reference"),
			attr("href", "#"+n.AttrString("refid")),
			attr("id", n.AttrString("id")),
		)
		sup := element(atom.Sup)
		sup.AppendChild(link)
		parent.AppendChild(sup)
		return w.children(link, n)
	}

	el := w.element(n)
	parent.AppendChild(el)

	switch n.Kind {
	case tree.KindLiteral, tree.KindMathBlock:
		el.AppendChild(text(w.leafText(n)))
		return nil
	case tree.KindSystemMessage:
		heading := element(atom.P, attr("class", "system-message-title"))
		heading.AppendChild(text(fmt.Sprintf("%s/%s (%s)", n.AttrString("level"), n.AttrString("type"), n.AttrString("subtype"))))
		el.AppendChild(heading)
	case tree.KindTableRow:
		header := n.HasClass("header")
		for _, entry := range n.Children {
			cell := element(atom.Td)
			if header {
				cell = element(atom.Th)
			}
			if align := entry.AttrString("align"); align != "" {
				cell.Attr = append(cell.Attr, attr("style", "text-align: "+align))
			}
			el.AppendChild(cell)
			if err := w.children(cell, entry); err != nil {
				return err
			}
		}
		return nil
	}
	return w.children(el, n)
}

func (w *HTML) children(parent *html.Node, n *tree.Node) error {
	for _, c := range n.Children {
		if err := w.convert(parent, c); err != nil {
			return err
		}
	}
	return nil
}

// element creates the HTML element for a structural node.
func (w *HTML) element(n *tree.Node) *html.Node {
	var el *html.Node
	switch n.Kind {
	case tree.KindSection:
		el = element(atom.Section)
	case tree.KindHeading:
		level, _ := n.Attrs["level"].(int)
		level = min(max(level, 1), len(headingAtoms))
		el = element(headingAtoms[level-1])
	case tree.KindParagraph:
		el = element(atom.P)
	case tree.KindEmphasis:
		el = element(atom.Em)
	case tree.KindStrong:
		el = element(atom.Strong)
	case tree.KindStrikethrough:
		el = element(atom.Del)
	case tree.KindLiteral:
		el = element(atom.Code)
	case tree.KindReference:
		el = element(atom.A, attr("href", n.AttrString("refuri")))
		if t := n.AttrString("title"); t != "" {
			el.Attr = append(el.Attr, attr("title", t))
		}
	case tree.KindImage:
		el = element(atom.Img, attr("src", n.AttrString("uri")), attr("alt", n.AttrString("alt")))
		for _, key := range []string{"width", "height"} {
			if v, ok := n.Attr(key); ok {
				el.Attr = append(el.Attr, attr(key, fmt.Sprint(v)))
			}
		}
	case tree.KindMathBlock:
		el = element(atom.Div)
		n = withClasses(n, "math", "notranslate", "nohighlight")
	case tree.KindBulletList:
		el = element(atom.Ul)
	case tree.KindEnumeratedList:
		el = element(atom.Ol)
		if start, ok := n.Attrs["start"].(int); ok && start != 1 {
			el.Attr = append(el.Attr, attr("start", strconv.Itoa(start)))
		}
	case tree.KindListItem:
		el = element(atom.Li)
	case tree.KindBlockQuote:
		el = element(atom.Blockquote)
	case tree.KindTransition:
		el = element(atom.Hr)
	case tree.KindLineBreak:
		el = element(atom.Br)
	case tree.KindTable:
		el = element(atom.Table)
	case tree.KindTableRow:
		el = element(atom.Tr)
	case tree.KindTableEntry:
		el = element(atom.Td)
	case tree.KindFigure:
		el = element(atom.Figure)
		if align := n.AttrString("align"); align != "" {
			n = withClasses(n, "align-"+align)
		}
	case tree.KindCaption:
		el = element(atom.Figcaption)
	case tree.KindDocinfo:
		el = element(atom.Dl)
		n = withClasses(n, "docinfo")
	case tree.KindFieldName:
		el = element(atom.Dt)
	case tree.KindFieldBody:
		el = element(atom.Dd)
	case tree.KindSystemMessage:
		el = element(atom.Div)
		n = withClasses(n, "system-message")
	case tree.KindFootnote:
		el = element(atom.Div)
		n = withClasses(n, "footnote")
	case tree.KindLabel:
		el = element(atom.Span)
		n = withClasses(n, "label")
	default:
		el = element(atom.Div)
	}

	if id := n.AttrString("id"); id != "" {
		el.Attr = append(el.Attr, attr("id", id))
	}
	if len(n.Classes) > 0 {
		el.Attr = append(el.Attr, attr("class", strings.Join(n.Classes, " ")))
	}
	return el
}

func (w *HTML) leafText(n *tree.Node) string {
	if n.Kind == tree.KindMathBlock {
		return `\[` + n.Text + `\]`
	}
	return n.Text
}

// convertRaw inlines HTML raw nodes and drops other formats.
func (w *HTML) convertRaw(parent *html.Node, n *tree.Node) error {
	if n.AttrString("format") != "html" {
		parent.AppendChild(&html.Node{Type: html.CommentNode, Data: " raw " + n.AttrString("format") + " omitted "})
		return nil
	}

	target := parent
	if !n.HasClass("inline") && len(n.Classes) > 0 {
		target = element(atom.Div, attr("class", strings.Join(n.Classes, " ")))
		parent.AppendChild(target)
	}

	nodes, err := html.ParseFragment(strings.NewReader(n.Text), fragmentContext(parent))
	if err != nil {
		return fmt.Errorf("%w: raw html: %v", ErrWrite, err)
	}
	for _, child := range nodes {
		target.AppendChild(child)
	}
	return nil
}

// convertCode renders a literal block, highlighted when its language is
// known to chroma.
func (w *HTML) convertCode(parent *html.Node, n *tree.Node) error {
	language := n.AttrString("language")
	classes := append([]string{"highlight-" + languageClass(language), "notranslate"}, n.Classes...)
	wrapper := element(atom.Div, attr("class", strings.Join(classes, " ")))
	parent.AppendChild(wrapper)

	linenos, _ := n.Attrs["linenos"].(bool)
	lexer := lexerFor(language)
	if lexer == nil && !linenos {
		pre := element(atom.Pre)
		pre.AppendChild(text(n.Text))
		wrapper.AppendChild(pre)
		return nil
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	highlighted, err := highlight(lexer, n.Text, linenos)
	if err != nil {
		return err
	}
	nodes, err := html.ParseFragment(strings.NewReader(highlighted), element(atom.Div))
	if err != nil {
		return fmt.Errorf("%w: highlighted code: %v", ErrWrite, err)
	}
	for _, child := range nodes {
		wrapper.AppendChild(child)
	}
	return nil
}

func highlight(lexer chroma.Lexer, code string, linenos bool) (string, error) {
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("%w: tokenise: %v", ErrWrite, err)
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.WithLineNumbers(linenos))
	var buf bytes.Buffer
	if err := formatter.Format(&buf, styles.Fallback, iterator); err != nil {
		return "", fmt.Errorf("%w: highlight: %v", ErrWrite, err)
	}
	return buf.String(), nil
}

// lexerFor returns the chroma lexer for a language, or nil for plain text.
func lexerFor(language string) chroma.Lexer {
	switch language {
	case "", "none", "text", "plain":
		return nil
	}
	return lexers.Get(language)
}

func languageClass(language string) string {
	if language == "" {
		return "none"
	}
	return language
}

func fragmentContext(parent *html.Node) *html.Node {
	if parent.Type == html.ElementNode {
		return element(parent.DataAtom)
	}
	return element(atom.Body)
}

// withClasses returns a shallow copy of n with extra leading classes.
func withClasses(n *tree.Node, classes ...string) *tree.Node {
	c := *n
	c.Classes = append(append([]string(nil), classes...), n.Classes...)
	return &c
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, value string) html.Attribute {
	return html.Attribute{Key: key, Val: value}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
