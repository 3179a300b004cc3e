package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-nbdoc/internal/config"
	"github.com/alnah/go-nbdoc/internal/mime"
	"github.com/alnah/go-nbdoc/internal/notebook"
	"github.com/alnah/go-nbdoc/internal/tree"
)

func (s *state) renderOutputs(cell *notebook.Cell, line int) error {
	for i, out := range cell.Outputs {
		if err := s.renderOutput(cell, i, out, line); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) renderOutput(cell *notebook.Cell, index int, out notebook.Output, line int) error {
	loc := tree.Location{CellIndex: cell.Index, OutputIndex: index, Line: line}

	switch o := out.(type) {
	case *notebook.Stream:
		switch o.Name {
		case "stdout":
			s.emit(s.elements.RenderStdout(o, cell.Metadata, cell.Index, line), line)
		case "stderr":
			s.emit(s.elements.RenderStderr(o, cell.Metadata, cell.Index, line), line)
		default:
			if s.cfg.UnknownStream == config.StreamWarn {
				s.warn(fmt.Sprintf("Unknown stream name: %s", o.Name), SubtypeStream, loc)
			}
		}
	case *notebook.Error:
		s.emit(s.elements.RenderError(o, cell.Metadata, cell.Index, line), line)
	case *notebook.DisplayData:
		return s.renderDisplayData(cell, index, o, loc)
	case *notebook.Unsupported:
		s.warn(fmt.Sprintf("Unsupported output type: %s", o.Type), SubtypeOutputType, loc)
	default:
		s.warn(fmt.Sprintf("Unsupported output type: %s", out.OutputType()), SubtypeOutputType, loc)
	}
	return nil
}

func (s *state) renderDisplayData(cell *notebook.Cell, index int, out *notebook.DisplayData, loc tree.Location) error {
	available := out.Data.Types()
	mimeType, err := mime.Select(available, s.priority)
	if err != nil {
		w := s.warn(fmt.Sprintf("No output mime type found from render priority (available: %s)", strings.Join(available, ", ")),
			SubtypeMimeType, loc)
		w.Set("mime_types", available)
		return nil
	}

	render := func() error {
		nodes, err := s.elements.RenderMimeType(MimeData{
			MimeType:       mimeType,
			Content:        out.Data[mimeType],
			CellMetadata:   cell.Metadata,
			OutputMetadata: out.Metadata,
			CellIndex:      cell.Index,
			OutputIndex:    index,
			Line:           loc.Line,
		})
		if err != nil {
			s.warn(fmt.Sprintf("Failed to render %s output: %v", mimeType, err), SubtypeMimeRender, loc)
			return nil
		}
		if err := s.applyImageOptions(nodes, cell.Metadata, loc); err != nil {
			return err
		}
		s.emit(nodes, loc.Line)
		return nil
	}

	figure, err := s.resolver.Resolve(cell.Metadata, "figure", CellOnly())
	if errors.Is(err, ErrMissingCellConfig) {
		return render()
	}
	if err != nil {
		return err
	}
	if m, isMap := figure.(map[string]any); figure == nil || (isMap && len(m) == 0) {
		return render()
	}

	opts, err := parseFigureOptions(figure)
	if err != nil {
		s.warn(err.Error(), SubtypeConfig, loc)
		return render()
	}
	return s.withFigure(opts, loc.Line, render)
}
