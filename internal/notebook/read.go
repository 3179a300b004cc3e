package notebook

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// SupportedMajor is the only nbformat major version Read accepts.
const SupportedMajor = 4

// Read parses nbformat v4 JSON into a Notebook.
// Multi-line text fields may be strings or lists of strings; both are
// accepted and joined. Unknown output types are kept as *Unsupported.
func Read(data []byte) (*Notebook, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyNotebook
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidNotebook)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidNotebook)
	}

	major := root.Get("nbformat")
	if !major.Exists() {
		return nil, fmt.Errorf("%w: missing nbformat", ErrInvalidNotebook)
	}
	if major.Int() != SupportedMajor {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrUnsupportedFormat, major.Int(), SupportedMajor)
	}

	nb := &Notebook{
		Major:    int(major.Int()),
		Minor:    int(root.Get("nbformat_minor").Int()),
		Metadata: readMetadata(root.Get("metadata")),
	}

	cells := root.Get("cells")
	if cells.Exists() && !cells.IsArray() {
		return nil, fmt.Errorf("%w: cells must be an array", ErrInvalidNotebook)
	}
	for i, raw := range cells.Array() {
		cell, err := readCell(i, raw)
		if err != nil {
			return nil, err
		}
		nb.Cells = append(nb.Cells, cell)
	}

	return nb, nil
}

func readCell(index int, raw gjson.Result) (*Cell, error) {
	if !raw.IsObject() {
		return nil, fmt.Errorf("%w: cell %d is not an object", ErrInvalidNotebook, index)
	}

	cell := &Cell{
		Index:    index,
		ID:       raw.Get("id").String(),
		Source:   joinText(raw.Get("source")),
		Metadata: readMetadata(raw.Get("metadata")),
	}
	if att := raw.Get("attachments"); att.IsObject() {
		cell.Attachments, _ = att.Value().(map[string]any)
	}

	switch cellType := raw.Get("cell_type").String(); cellType {
	case "markdown":
		cell.Kind = Markdown
	case "raw":
		cell.Kind = Raw
	case "code":
		cell.Kind = Code
		cell.ExecutionCount = readCount(raw.Get("execution_count"))
		for j, out := range raw.Get("outputs").Array() {
			output, err := readOutput(out)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %d, output %d: %v", ErrInvalidNotebook, index, j, err)
			}
			cell.Outputs = append(cell.Outputs, output)
		}
	default:
		return nil, fmt.Errorf("%w: cell %d has unknown cell_type %q", ErrInvalidNotebook, index, cellType)
	}

	return cell, nil
}

func readOutput(raw gjson.Result) (Output, error) {
	if !raw.IsObject() {
		return nil, fmt.Errorf("output is not an object")
	}

	outputType := raw.Get("output_type").String()
	switch outputType {
	case TypeStream:
		return &Stream{
			Name: raw.Get("name").String(),
			Text: joinText(raw.Get("text")),
		}, nil
	case TypeError:
		e := &Error{
			Ename:  raw.Get("ename").String(),
			Evalue: raw.Get("evalue").String(),
		}
		for _, line := range raw.Get("traceback").Array() {
			e.Traceback = append(e.Traceback, line.String())
		}
		return e, nil
	case TypeDisplayData, TypeExecuteResult:
		d := &DisplayData{
			Type:     outputType,
			Data:     MimeBundle{},
			Metadata: readMetadata(raw.Get("metadata")),
		}
		raw.Get("data").ForEach(func(key, value gjson.Result) bool {
			d.Data[key.String()] = readPayload(key.String(), value)
			return true
		})
		if outputType == TypeExecuteResult {
			d.ExecutionCount = readCount(raw.Get("execution_count"))
		}
		return d, nil
	default:
		u := &Unsupported{Type: outputType}
		u.Raw, _ = raw.Value().(map[string]any)
		return u, nil
	}
}

// readPayload joins text payloads and keeps JSON payloads structured.
func readPayload(mimeType string, value gjson.Result) any {
	if strings.HasSuffix(mimeType, "json") {
		return value.Value()
	}
	if value.Type == gjson.String || value.IsArray() {
		return joinText(value)
	}
	return value.Value()
}

func readMetadata(raw gjson.Result) Metadata {
	m, ok := raw.Value().(map[string]any)
	if !ok {
		return Metadata{}
	}
	return Metadata(m)
}

func readCount(raw gjson.Result) *int {
	if raw.Type != gjson.Number {
		return nil
	}
	n := int(raw.Int())
	return &n
}

// joinText accepts a string or an array of strings.
func joinText(raw gjson.Result) string {
	if raw.Type == gjson.String {
		return raw.String()
	}
	if !raw.IsArray() {
		return ""
	}
	var sb strings.Builder
	for _, part := range raw.Array() {
		sb.WriteString(part.String())
	}
	return sb.String()
}
