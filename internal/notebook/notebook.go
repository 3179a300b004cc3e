// Package notebook holds the in-memory model of a Jupyter notebook and reads
// and writes the nbformat v4 JSON representation.
//
// Cells are a tagged variant (CellKind); outputs are a closed sum type
// implemented by *Stream, *Error, *DisplayData and *Unsupported. Renderers
// switch on the concrete output type; *Unsupported is the designed fallback
// for output types this package does not understand.
package notebook

import (
	"fmt"
	"sort"
	"strings"
)

// Reserved metadata keys.
const (
	KeyTags         = "tags"
	KeyKernelspec   = "kernelspec"
	KeyLanguageInfo = "language_info"
	KeySourceMap    = "source_map"
)

// pseudoLineBase spaces cells apart when no source map is available.
const pseudoLineBase = 10000

// Metadata is an open-ended metadata map. Keys other than the reserved ones
// are passed through untouched.
type Metadata map[string]any

// Tags returns the cell tags in their original order.
// Non-string entries are ignored.
func (m Metadata) Tags() []string {
	switch raw := m[KeyTags].(type) {
	case []string:
		return raw
	case []any:
		tags := make([]string, 0, len(raw))
		for _, t := range raw {
			if s, ok := t.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags
	default:
		return nil
	}
}

// HasTag reports whether any of the given tags is present.
func (m Metadata) HasTag(names ...string) bool {
	for _, tag := range m.Tags() {
		for _, name := range names {
			if tag == name {
				return true
			}
		}
	}
	return false
}

// Map returns the value under key as a map, if it is one.
func (m Metadata) Map(key string) (map[string]any, bool) {
	switch sub := m[key].(type) {
	case map[string]any:
		return sub, true
	case Metadata:
		return sub, true
	default:
		return nil, false
	}
}

// String returns the value under key as a string, if it is one.
func (m Metadata) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

// Keys returns the metadata keys in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy.
func (m Metadata) Clone() Metadata {
	c := make(Metadata, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// CellKind identifies the type of a cell.
type CellKind int

// Cell kinds.
const (
	Markdown CellKind = iota
	Code
	Raw
)

// String returns the nbformat cell_type name.
func (k CellKind) String() string {
	switch k {
	case Markdown:
		return "markdown"
	case Code:
		return "code"
	case Raw:
		return "raw"
	default:
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
}

// Cell is one unit of a notebook.
type Cell struct {
	Kind           CellKind
	Index          int // position in the notebook, 0-based
	ID             string
	Source         string
	Metadata       Metadata
	Outputs        []Output // code cells only
	ExecutionCount *int     // code cells only, nil when never executed
	Attachments    map[string]any
}

// Notebook is an ordered sequence of cells with notebook-level metadata.
type Notebook struct {
	Major    int
	Minor    int
	Metadata Metadata
	Cells    []*Cell
}

// CellLine returns the 1-based line where cell i starts.
// Text-based notebooks carry a source_map with the 0-based start line of
// each cell; for JSON notebooks a pseudo line (i+1)*10000+1 is used so that
// diagnostics still point at a distinct cell.
func (nb *Notebook) CellLine(i int) int {
	if starts := nb.sourceMap(); i < len(starts) {
		return starts[i] + 1
	}
	return (i+1)*pseudoLineBase + 1
}

func (nb *Notebook) sourceMap() []int {
	raw, ok := nb.Metadata[KeySourceMap].([]any)
	if !ok {
		if ints, isInts := nb.Metadata[KeySourceMap].([]int); isInts {
			return ints
		}
		return nil
	}
	starts := make([]int, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case float64:
			starts = append(starts, int(n))
		case int:
			starts = append(starts, n)
		case int64:
			starts = append(starts, int(n))
		default:
			return nil
		}
	}
	return starts
}

// Language returns the lexer name recorded in the notebook metadata:
// language_info.pygments_lexer, then language_info.name, then
// kernelspec.language. Empty when none is set.
func (nb *Notebook) Language() string {
	if info, ok := nb.Metadata.Map(KeyLanguageInfo); ok {
		for _, key := range []string{"pygments_lexer", "name"} {
			if s, ok := info[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if spec, ok := nb.Metadata.Map(KeyKernelspec); ok {
		if s, ok := spec["language"].(string); ok {
			return s
		}
	}
	return ""
}

// Output is one result attached to a code cell.
type Output interface {
	// OutputType returns the nbformat output_type string.
	OutputType() string
	isOutput()
}

// Stream is text written to stdout or stderr.
type Stream struct {
	Name string
	Text string
}

// Error is an uncaught exception raised while executing a cell.
type Error struct {
	Ename     string
	Evalue    string
	Traceback []string
}

// DisplayData is a rich output: display_data or execute_result.
type DisplayData struct {
	Type           string // "display_data" or "execute_result"
	Data           MimeBundle
	Metadata       Metadata
	ExecutionCount *int // execute_result only
}

// Unsupported is an output whose output_type is not recognized.
type Unsupported struct {
	Type string
	Raw  map[string]any
}

// Output type names.
const (
	TypeStream        = "stream"
	TypeError         = "error"
	TypeDisplayData   = "display_data"
	TypeExecuteResult = "execute_result"
)

func (*Stream) OutputType() string        { return TypeStream }
func (*Error) OutputType() string         { return TypeError }
func (d *DisplayData) OutputType() string { return d.Type }
func (u *Unsupported) OutputType() string { return u.Type }

func (*Stream) isOutput()      {}
func (*Error) isOutput()       {}
func (*DisplayData) isOutput() {}
func (*Unsupported) isOutput() {}

// MimeBundle maps MIME types to payloads. Text payloads are strings
// (multi-line nbformat arrays are joined on read); JSON payloads keep their
// decoded structure.
type MimeBundle map[string]any

// Types returns the MIME types in the bundle, sorted.
func (b MimeBundle) Types() []string {
	types := make([]string, 0, len(b))
	for k := range b {
		types = append(types, k)
	}
	sort.Strings(types)
	return types
}

// Text returns the payload for mimeType as a string.
// String payloads are returned as-is; lists of strings are joined.
func (b MimeBundle) Text(mimeType string) (string, bool) {
	return PayloadText(b[mimeType])
}

// PayloadText converts a text payload to a string.
func PayloadText(v any) (string, bool) {
	switch p := v.(type) {
	case string:
		return p, true
	case []string:
		return strings.Join(p, ""), true
	case []any:
		var sb strings.Builder
		for _, part := range p {
			s, ok := part.(string)
			if !ok {
				return "", false
			}
			sb.WriteString(s)
		}
		return sb.String(), true
	default:
		return "", false
	}
}
