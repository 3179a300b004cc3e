package render

import (
	"fmt"
	"strings"

	"github.com/alnah/go-nbdoc/internal/notebook"
	"github.com/alnah/go-nbdoc/internal/tree"
)

// Node attribute values identifying notebook elements.
const (
	ElementCellCode       = "cell_code"
	ElementCellCodeSource = "cell_code_source"
	ElementCellCodeOutput = "cell_code_output"
)

func (s *state) renderCell(cell *notebook.Cell) error {
	line := s.nb.CellLine(cell.Index)

	switch cell.Kind {
	case notebook.Markdown:
		s.emit(s.md.Parse(cell.Source, line), line)
		return nil
	case notebook.Raw:
		nodes, err := s.elements.RenderRawCell(cell.Source, cell.Metadata, cell.Index, line)
		if err != nil {
			s.warn(fmt.Sprintf("Failed to render raw cell: %v", err), SubtypeMimeRender,
				tree.Location{CellIndex: cell.Index, OutputIndex: -1, Line: line})
			return nil
		}
		s.emit(nodes, line)
		return nil
	case notebook.Code:
		return s.renderCodeCell(cell, line)
	default:
		return nil
	}
}

func (s *state) renderCodeCell(cell *notebook.Cell, line int) error {
	loc := tree.Location{CellIndex: cell.Index, OutputIndex: -1, Line: line}
	if err := s.resolver.CheckCell(cell.Metadata); err != nil {
		s.warn(err.Error(), SubtypeConfig, loc)
	}

	removeSource, err := s.flag(cell.Metadata, "remove_code_source", loc)
	if err != nil {
		return err
	}
	removeOutputs, err := s.flag(cell.Metadata, "remove_code_outputs", loc)
	if err != nil {
		return err
	}
	removeInput := removeSource || cell.Metadata.HasTag("remove_input", "remove-input")
	removeOutput := removeOutputs || cell.Metadata.HasTag("remove_output", "remove-output")

	if removeInput && removeOutput {
		return nil
	}

	tags := cell.Metadata.Tags()
	classes := make([]string, 0, len(tags)+1)
	classes = append(classes, "cell")
	for _, tag := range tags {
		classes = append(classes, "tag_"+strings.ReplaceAll(tag, " ", "_"))
	}

	container := tree.New(tree.KindContainer, classes...)
	container.Set("nb_element", ElementCellCode)
	container.Set("cell_index", cell.Index)
	container.Set("exec_count", execCount(cell.ExecutionCount))
	container.Set("cell_metadata", map[string]any(cell.Metadata))
	tree.Stamp(container, line, s.source)

	return s.builder.Within(container, func() error {
		if !removeInput {
			if err := s.renderCodeSource(cell, line, loc); err != nil {
				return err
			}
		}
		if removeOutput || len(cell.Outputs) == 0 {
			return nil
		}

		outputs := tree.New(tree.KindContainer, "cell_output")
		outputs.Set("nb_element", ElementCellCodeOutput)
		tree.Stamp(outputs, line, s.source)
		return s.builder.Within(outputs, func() error {
			return s.renderOutputs(cell, line)
		})
	})
}

func (s *state) renderCodeSource(cell *notebook.Cell, line int, loc tree.Location) error {
	numbered, err := s.flag(cell.Metadata, "number_source_lines", loc)
	if err != nil {
		return err
	}

	input := tree.New(tree.KindContainer, "cell_input")
	input.Set("nb_element", ElementCellCodeSource)
	tree.Stamp(input, line, s.source)

	code := literalBlock(cell.Source, s.language, line)
	code.Set("linenos", numbered)
	code.Source = s.source

	return s.builder.Within(input, func() error {
		s.builder.Append(code)
		return nil
	})
}

// flag resolves a boolean option. A non-boolean cell value is reported and
// the global value is used instead.
func (s *state) flag(meta notebook.Metadata, key string, loc tree.Location) (bool, error) {
	v, err := s.resolver.Resolve(meta, key)
	if err != nil {
		return false, err
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}

	s.warn(fmt.Sprintf("Cell config %q must be a boolean, got %T", key, v), SubtypeConfig, loc)
	global, err := s.resolver.Global(key)
	if err != nil {
		return false, err
	}
	b, _ := global.(bool)
	return b, nil
}

func execCount(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
