package render

import (
	"fmt"
	"strings"

	"github.com/alnah/go-nbdoc/internal/markdown"
	"github.com/alnah/go-nbdoc/internal/tree"
)

// figureOptions configures the figure wrapped around a rich output.
type figureOptions struct {
	Caption string
	Align   string
	Name    string
	Classes []string
}

// parseFigureOptions reads the "figure" cell option.
func parseFigureOptions(v any) (figureOptions, error) {
	var opts figureOptions

	m, ok := v.(map[string]any)
	if !ok {
		return opts, fmt.Errorf("%w: figure must be a mapping, got %T", ErrInvalidCellConfig, v)
	}

	for key, value := range m {
		switch key {
		case "caption", "align", "name":
			s, isString := value.(string)
			if !isString {
				return opts, fmt.Errorf("%w: figure.%s must be a string, got %T", ErrInvalidCellConfig, key, value)
			}
			switch key {
			case "caption":
				opts.Caption = s
			case "align":
				opts.Align = s
			case "name":
				opts.Name = s
			}
		case "classes":
			classes, err := stringList(value)
			if err != nil {
				return opts, fmt.Errorf("%w: figure.classes: %v", ErrInvalidCellConfig, err)
			}
			opts.Classes = classes
		default:
			return opts, fmt.Errorf("%w: unknown figure option %q", ErrInvalidCellConfig, key)
		}
	}

	switch opts.Align {
	case "", "left", "center", "right":
	default:
		return opts, fmt.Errorf("%w: figure.align %q (must be left, center or right)", ErrInvalidCellConfig, opts.Align)
	}
	return opts, nil
}

// stringList accepts a space-separated string or a list of strings.
func stringList(v any) ([]string, error) {
	switch list := v.(type) {
	case string:
		return strings.Fields(list), nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entry %v is %T, want string", item, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("got %T, want string or list", v)
	}
}

// withFigure renders fn inside a figure node and appends the caption after
// the figure content.
func (s *state) withFigure(opts figureOptions, line int, fn func() error) error {
	fig := tree.New(tree.KindFigure, opts.Classes...)
	fig.Line = line
	fig.Source = s.source
	if opts.Align != "" {
		fig.Set("align", opts.Align)
	}
	if opts.Name != "" {
		fig.Set("name", opts.Name)
		fig.Set("id", nodeID(opts.Name))
	}

	return s.builder.Within(fig, func() error {
		if err := fn(); err != nil {
			return err
		}
		if opts.Caption == "" {
			return nil
		}
		caption := tree.New(tree.KindCaption)
		caption.Append(markdown.ParseInline(s.md, opts.Caption, line)...)
		tree.Stamp(caption, line, s.source)
		s.builder.Append(caption)
		return nil
	})
}

// nodeID lowercases a name and replaces runs of other characters with "-".
func nodeID(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if !dash && sb.Len() > 0 {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
