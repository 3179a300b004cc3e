package writer

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-nbdoc/internal/tree"
)

// sampleDoc builds a small document covering the common node kinds.
func sampleDoc() *tree.Node {
	doc := tree.NewDocument("notebooks/demo.ipynb")

	heading := tree.New(tree.KindHeading).Set("level", 1).Set("id", "demo")
	heading.Append(tree.NewText("Demo"))

	para := tree.New(tree.KindParagraph).Append(
		tree.NewText("Some "),
		tree.New(tree.KindStrong).Append(tree.NewText("bold")),
		tree.NewText(" & <text>"),
	)

	code := tree.New(tree.KindLiteralBlock).Set("language", "python").Set("linenos", false)
	code.Text = "print('hi')"
	input := tree.New(tree.KindContainer, "cell_input").Set("nb_element", "cell_code_source").Append(code)

	stdout := tree.New(tree.KindLiteralBlock, "output", "stream").Set("language", "none")
	stdout.Text = "hi\n"
	raw := tree.New(tree.KindRaw, "output", "text_html").Set("format", "html")
	raw.Text = "<table><tr><td>1</td></tr></table>"
	img := tree.New(tree.KindImage, "output", "image_png").Set("uri", "data:image/png;base64,AAAA").Set("alt", "plot").Set("width", 100.0)
	output := tree.New(tree.KindContainer, "cell_output").Set("nb_element", "cell_code_output").Append(stdout, raw, img)

	cell := tree.New(tree.KindContainer, "cell", "tag_x").
		Set("nb_element", "cell_code").
		Set("cell_index", 0).
		Set("exec_count", nil).
		Set("cell_metadata", map[string]any{"tags": []any{"x"}}).
		Append(input, output)

	warning := tree.NewWarning("Unsupported output type: weird", "output_type", tree.Location{CellIndex: 0, OutputIndex: 1})

	return doc.Append(heading, para, cell, warning)
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range Formats() {
		w, err := New(format, HTMLOptions{})
		if err != nil || w == nil {
			t.Errorf("New(%q) = %v, %v", format, w, err)
		}
	}
	if _, err := New("docx", HTMLOptions{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}

func TestExtension(t *testing.T) {
	t.Parallel()

	if Extension(FormatHTML) != ".html" || Extension(FormatPseudoXML) != ".xml" {
		t.Errorf("extensions = %s, %s", Extension(FormatHTML), Extension(FormatPseudoXML))
	}
}

func TestWriters_RejectNonDocument(t *testing.T) {
	t.Parallel()

	for _, w := range []Writer{NewHTML(HTMLOptions{}), &PseudoXML{}} {
		if _, err := w.Write(tree.New(tree.KindParagraph)); !errors.Is(err, ErrNotDocument) {
			t.Errorf("%T: error = %v, want ErrNotDocument", w, err)
		}
		if _, err := w.Write(nil); !errors.Is(err, ErrNotDocument) {
			t.Errorf("%T: nil error = %v, want ErrNotDocument", w, err)
		}
	}
}

func TestHTML_Write(t *testing.T) {
	t.Parallel()

	out, err := NewHTML(HTMLOptions{StyleSheets: []string{"_static/nbdoc.css"}, CSS: "body{}</style><script>"}).Write(sampleDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)

	wants := []string{
		"<!DOCTYPE html>",
		"<title>Demo</title>",
		`<link rel="stylesheet" href="_static/nbdoc.css"/>`,
		`<h1 id="demo">Demo</h1>`,
		"<strong>bold</strong>",
		"&amp; &lt;text&gt;",
		`class="cell tag_x"`,
		`class="highlight-python notranslate"`,
		`class="chroma"`,
		`class="highlight-none notranslate output stream"`,
		"<pre>hi\n</pre>",
		`<div class="output text_html"><table>`,
		`src="data:image/png;base64,AAAA"`,
		`width="100"`,
		`class="system-message warning"`,
		"WARNING/nbdoc (output_type)",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(got, "</style><script>") {
		t.Error("inline CSS was not sanitized")
	}
}

func TestHTML_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts HTMLOptions
		doc  *tree.Node
		want string
	}{
		{name: "explicit", opts: HTMLOptions{Title: "Given"}, doc: sampleDoc(), want: "Given"},
		{name: "first heading", doc: sampleDoc(), want: "Demo"},
		{name: "source name", doc: tree.NewDocument("dir/analysis.ipynb"), want: "analysis"},
		{name: "fallback", doc: tree.NewDocument(""), want: "Notebook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NewHTML(tt.opts).title(tt.doc); got != tt.want {
				t.Errorf("title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTML_LineNumbersAndMath(t *testing.T) {
	t.Parallel()

	doc := tree.NewDocument("x.ipynb")
	code := tree.New(tree.KindLiteralBlock).Set("language", "python").Set("linenos", true)
	code.Text = "a = 1\nb = 2\n"
	math := tree.New(tree.KindMathBlock, "output")
	math.Text = "x^2"
	rawTex := tree.New(tree.KindRaw).Set("format", "latex")
	rawTex.Text = `\newpage`
	doc.Append(code, math, rawTex)

	out, err := NewHTML(HTMLOptions{}).Write(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, `class="ln"`) {
		t.Error("line numbers missing")
	}
	if !strings.Contains(got, `<div class="math notranslate nohighlight output">\[x^2\]</div>`) {
		t.Error("math block missing")
	}
	if strings.Contains(got, `\newpage`) {
		t.Error("raw latex leaked into HTML")
	}
}

func TestHTML_WidgetStateScript(t *testing.T) {
	t.Parallel()

	doc := tree.NewDocument("w.ipynb")
	state := tree.New(tree.KindRaw, "jupyter_widget_state").Set("format", "html")
	state.Text = `<script type="application/vnd.jupyter.widget-state+json">{"state":{"abc":{"label":"\u003cb\u003e"}}}</script>`
	view := tree.New(tree.KindRaw, "output", "application_vnd_jupyter_widget_view_json").Set("format", "html")
	view.Text = `<script type="application/vnd.jupyter.widget-view+json">{"model_id":"abc"}</script>`
	doc.Append(state, view)

	out, err := NewHTML(HTMLOptions{}).Write(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)

	stateScript := `<script type="application/vnd.jupyter.widget-state+json">{"state":{"abc":{"label":"\u003cb\u003e"}}}</script>`
	viewScript := `<script type="application/vnd.jupyter.widget-view+json">{"model_id":"abc"}</script>`
	if strings.Count(got, stateScript) != 1 {
		t.Errorf("output should contain the widget state script once\n%s", got)
	}
	if !strings.Contains(got, viewScript) {
		t.Errorf("output missing widget view script\n%s", got)
	}
	if strings.Index(got, stateScript) > strings.Index(got, viewScript) {
		t.Error("widget state must precede widget views")
	}
}

func TestHTML_Footnotes(t *testing.T) {
	t.Parallel()

	doc := tree.NewDocument("f.ipynb")
	ref := tree.New(tree.KindFootnoteReference).Set("refid", "fn-1").Set("id", "fnref-1").Append(tree.NewText("1"))
	para := tree.New(tree.KindParagraph).Append(tree.NewText("See"), ref)
	note := tree.New(tree.KindFootnote).Set("id", "fn-1").Append(
		tree.New(tree.KindLabel).Append(tree.NewText("1")),
		tree.New(tree.KindParagraph).Append(tree.NewText("Detail")),
	)
	doc.Append(para, tree.New(tree.KindContainer, "footnotes").Append(note))

	out, err := NewHTML(HTMLOptions{}).Write(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)

	wants := []string{
		`<sup><a class="footnote-reference" href="#fn-1" id="fnref-1">1</a></sup>`,
		`<div id="fn-1" class="footnote"><span class="label">1</span><p>Detail</p></div>`,
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestPseudoXML_Write(t *testing.T) {
	t.Parallel()

	out, err := (&PseudoXML{}).Write(sampleDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(out)

	wants := []string{
		`<document source="notebooks/demo.ipynb">` + "\n",
		`    <heading id="demo" level="1">` + "\n        Demo\n",
		`    <container cell_index="0" cell_metadata=`,
		`classes="cell tag_x" nb_element="cell_code">`,
		"            <literal_block language=\"python\" linenos=\"false\">\n                print('hi')\n",
		`<system_message cell_index="0" classes="warning" level="WARNING" output_index="1" subtype="output_type" type="nbdoc">`,
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if strings.Contains(got, "exec_count") {
		t.Error("nil attribute was written")
	}
}

func TestPseudoXML_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := (&PseudoXML{}).Write(sampleDoc())
	if err != nil {
		t.Fatal(err)
	}
	for range 5 {
		again, err := (&PseudoXML{}).Write(sampleDoc())
		if err != nil {
			t.Fatal(err)
		}
		if string(again) != string(first) {
			t.Fatal("output differs between runs")
		}
	}
}

func TestChromaCSS(t *testing.T) {
	t.Parallel()

	css, err := ChromaCSS("github")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("css missing .chroma selector: %q", css[:min(len(css), 80)])
	}

	fallback, err := ChromaCSS("no-such-style")
	if err != nil || fallback == "" {
		t.Errorf("fallback style = %q, %v", fallback, err)
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	if got := sanitizeCSS("a</style>b"); got != `a<\/style>b` {
		t.Errorf("sanitizeCSS() = %q", got)
	}
}
