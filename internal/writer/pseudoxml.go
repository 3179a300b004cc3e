package writer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-nbdoc/internal/tree"
	"github.com/alnah/go-nbdoc/internal/yamlutil"
)

const indentUnit = "    "

// PseudoXML writes the tree as indented pseudo-XML: one element per line,
// attributes sorted by name, text content on its own lines.
type PseudoXML struct{}

// Write renders doc.
func (p *PseudoXML) Write(doc *tree.Node) ([]byte, error) {
	if err := checkDocument(doc); err != nil {
		return nil, err
	}
	var sb strings.Builder
	if err := p.write(&sb, doc, 0); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func (p *PseudoXML) write(sb *strings.Builder, n *tree.Node, depth int) error {
	indent := strings.Repeat(indentUnit, depth)

	if n.Kind == tree.KindText {
		writeLines(sb, indent, n.Text)
		return nil
	}

	attrs, err := formatAttrs(n)
	if err != nil {
		return err
	}
	sb.WriteString(indent)
	sb.WriteString("<")
	sb.WriteString(string(n.Kind))
	sb.WriteString(attrs)
	sb.WriteString(">\n")

	if n.Text != "" {
		writeLines(sb, indent+indentUnit, n.Text)
	}
	for _, c := range n.Children {
		if err := p.write(sb, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func writeLines(sb *strings.Builder, indent, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		sb.WriteString(indent)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

// formatAttrs renders classes and attributes as ` key="value"` pairs.
// Nil values are omitted; composite values are written as flow YAML.
func formatAttrs(n *tree.Node) (string, error) {
	values := make(map[string]string, len(n.Attrs)+1)
	if len(n.Classes) > 0 {
		values["classes"] = strings.Join(n.Classes, " ")
	}
	for k, v := range n.Attrs {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			values[k] = val
		case bool, int, int64, float64:
			values[k] = fmt.Sprint(val)
		default:
			encoded, err := yamlutil.MarshalFlow(val)
			if err != nil {
				return "", fmt.Errorf("%w: attribute %s: %v", ErrWrite, k, err)
			}
			values[k] = encoded
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%q", k, values[k])
	}
	return sb.String(), nil
}
