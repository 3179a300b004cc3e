package notebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Write serializes nb as nbformat JSON: keys sorted, one-space indent,
// multi-line strings split into line lists, non-ASCII kept as UTF-8.
func Write(nb *Notebook) ([]byte, error) {
	cells := make([]map[string]any, 0, len(nb.Cells))
	for _, c := range nb.Cells {
		cells = append(cells, cellJSON(c))
	}

	metadata := nb.Metadata
	if metadata == nil {
		metadata = Metadata{}
	}
	doc := map[string]any{
		"cells":          cells,
		"metadata":       metadata,
		"nbformat":       nb.Major,
		"nbformat_minor": nb.Minor,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotebookWrite, err)
	}
	return buf.Bytes(), nil
}

func cellJSON(c *Cell) map[string]any {
	metadata := c.Metadata
	if metadata == nil {
		metadata = Metadata{}
	}
	out := map[string]any{
		"cell_type": c.Kind.String(),
		"metadata":  metadata,
		"source":    splitLines(c.Source),
	}
	if c.ID != "" {
		out["id"] = c.ID
	}
	if len(c.Attachments) > 0 {
		out["attachments"] = c.Attachments
	}
	if c.Kind == Code {
		out["execution_count"] = c.ExecutionCount
		outputs := make([]map[string]any, 0, len(c.Outputs))
		for _, o := range c.Outputs {
			outputs = append(outputs, outputJSON(o))
		}
		out["outputs"] = outputs
	}
	return out
}

func outputJSON(o Output) map[string]any {
	switch v := o.(type) {
	case *Stream:
		return map[string]any{
			"output_type": TypeStream,
			"name":        v.Name,
			"text":        splitLines(v.Text),
		}
	case *Error:
		traceback := v.Traceback
		if traceback == nil {
			traceback = []string{}
		}
		return map[string]any{
			"output_type": TypeError,
			"ename":       v.Ename,
			"evalue":      v.Evalue,
			"traceback":   traceback,
		}
	case *DisplayData:
		data := make(map[string]any, len(v.Data))
		for mimeType, payload := range v.Data {
			if s, ok := payload.(string); ok && !strings.HasSuffix(mimeType, "json") {
				data[mimeType] = splitLines(s)
				continue
			}
			data[mimeType] = payload
		}
		metadata := v.Metadata
		if metadata == nil {
			metadata = Metadata{}
		}
		out := map[string]any{
			"output_type": v.Type,
			"data":        data,
			"metadata":    metadata,
		}
		if v.Type == TypeExecuteResult {
			out["execution_count"] = v.ExecutionCount
		}
		return out
	case *Unsupported:
		if v.Raw != nil {
			return v.Raw
		}
		return map[string]any{"output_type": v.Type}
	default:
		return map[string]any{"output_type": o.OutputType()}
	}
}

// splitLines splits s after each newline, keeping the newlines.
func splitLines(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
