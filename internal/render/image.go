package render

import (
	"fmt"
	"strconv"

	"github.com/alnah/go-nbdoc/internal/notebook"
	"github.com/alnah/go-nbdoc/internal/tree"
)

// Image option keys: the cell-level key and the global key it falls back to.
const (
	imageOptionsKey       = "image"
	globalImageOptionsKey = "render_image_options"
)

// imageOptions are applied to every image node of a rich output.
type imageOptions struct {
	Width   string
	Height  string
	Alt     string
	Classes []string
}

func parseImageOptions(v any) (imageOptions, error) {
	var opts imageOptions
	if v == nil {
		return opts, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return opts, fmt.Errorf("%w: image must be a mapping, got %T", ErrInvalidCellConfig, v)
	}

	for key, value := range m {
		switch key {
		case "width", "height":
			d, err := dimension(value)
			if err != nil {
				return opts, fmt.Errorf("%w: image.%s: %v", ErrInvalidCellConfig, key, err)
			}
			if key == "width" {
				opts.Width = d
			} else {
				opts.Height = d
			}
		case "alt":
			s, isString := value.(string)
			if !isString {
				return opts, fmt.Errorf("%w: image.alt must be a string, got %T", ErrInvalidCellConfig, value)
			}
			opts.Alt = s
		case "classes":
			classes, err := stringList(value)
			if err != nil {
				return opts, fmt.Errorf("%w: image.classes: %v", ErrInvalidCellConfig, err)
			}
			opts.Classes = classes
		default:
			return opts, fmt.Errorf("%w: unknown image option %q", ErrInvalidCellConfig, key)
		}
	}
	return opts, nil
}

// dimension accepts a CSS length ("50%", "10em") or a bare number of pixels.
func dimension(v any) (string, error) {
	switch d := v.(type) {
	case string:
		return d, nil
	case int:
		return strconv.Itoa(d), nil
	case int64:
		return strconv.FormatInt(d, 10), nil
	case uint64:
		return strconv.FormatUint(d, 10), nil
	case float64:
		return strconv.FormatFloat(d, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("got %T, want string or number", v)
	}
}

// applyImageOptions resolves the cell "image" option, falling back to the
// global render_image_options, and applies it to the image nodes in nodes.
// Malformed options are reported and leave the images unchanged.
func (s *state) applyImageOptions(nodes []*tree.Node, meta notebook.Metadata, loc tree.Location) error {
	var images []*tree.Node
	for _, n := range nodes {
		images = append(images, n.Find(tree.KindImage)...)
	}
	if len(images) == 0 {
		return nil
	}

	v, err := s.resolver.Resolve(meta, imageOptionsKey, WithNotebookKey(globalImageOptionsKey))
	if err != nil {
		return err
	}
	opts, err := parseImageOptions(v)
	if err != nil {
		s.warn(err.Error(), SubtypeConfig, loc)
		return nil
	}

	for _, img := range images {
		if opts.Width != "" {
			img.Set("width", opts.Width)
		}
		if opts.Height != "" {
			img.Set("height", opts.Height)
		}
		if opts.Alt != "" {
			img.Set("alt", opts.Alt)
		}
		img.Classes = append(img.Classes, opts.Classes...)
	}
	return nil
}
