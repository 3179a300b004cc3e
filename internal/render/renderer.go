package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-nbdoc/internal/config"
	"github.com/alnah/go-nbdoc/internal/markdown"
	"github.com/alnah/go-nbdoc/internal/notebook"
	"github.com/alnah/go-nbdoc/internal/tree"
)

// Renderer converts notebooks into document trees.
// It holds only immutable configuration and may be shared between goroutines.
type Renderer struct {
	cfg      *config.Config
	logger   *log.Logger
	md       markdown.Parser
	elements ElementRenderer // nil = a new Elements per render
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for warnings. Defaults to discarding.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// WithMarkdownParser sets the parser for markdown cells and outputs.
func WithMarkdownParser(p markdown.Parser) Option {
	return func(r *Renderer) {
		r.md = p
	}
}

// WithElementRenderer replaces the default Elements renderer.
func WithElementRenderer(e ElementRenderer) Option {
	return func(r *Renderer) {
		r.elements = e
	}
}

// New creates a Renderer. A nil cfg uses config.DefaultConfig.
func New(cfg *config.Config, opts ...Option) (*Renderer, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	if r.md == nil {
		r.md = markdown.NewGoldmarkParser()
	}
	return r, nil
}

// NotebookConfig applies the overrides stored under cfg.MetadataKey in the
// notebook metadata. Without overrides cfg itself is returned.
func NotebookConfig(cfg *config.Config, meta notebook.Metadata) (*config.Config, error) {
	raw, present := meta[cfg.MetadataKey]
	if !present {
		return cfg, nil
	}
	overrides, ok := meta.Map(cfg.MetadataKey)
	if !ok {
		return cfg, fmt.Errorf("%w: notebook metadata %q must be a mapping, got %T", config.ErrInvalidValue, cfg.MetadataKey, raw)
	}
	merged, err := cfg.Override(overrides)
	if err != nil {
		return cfg, err
	}
	return merged, nil
}

// state is the per-render working set.
type state struct {
	cfg      *config.Config
	logger   *log.Logger
	md       markdown.Parser
	elements ElementRenderer
	resolver *Resolver
	priority []string

	nb       *notebook.Notebook
	doc      *tree.Node
	builder  *tree.Builder
	source   string
	language string
}

// Render appends the nodes for nb to doc.
// Problems local to a cell or output become warning nodes; the returned
// error is non-nil only when rendering cannot continue.
func (r *Renderer) Render(nb *notebook.Notebook, doc *tree.Node) error {
	if nb == nil {
		return notebook.ErrEmptyNotebook
	}
	if doc == nil {
		return ErrNilDocument
	}

	cfg, overrideErr := NotebookConfig(r.cfg, nb.Metadata)

	values, err := cfg.Values()
	if err != nil {
		return err
	}

	elements := r.elements
	if elements == nil {
		elements = NewElements(cfg, r.md)
	}

	s := &state{
		cfg:      cfg,
		logger:   r.logger,
		md:       r.md,
		elements: elements,
		resolver: NewResolver(cfg.CellRenderKey, values),
		priority: cfg.MimePriority(),
		nb:       nb,
		doc:      doc,
		builder:  tree.NewBuilder(doc),
		source:   doc.AttrString("source"),
		language: LexerName(nb.Language()),
	}

	if overrideErr != nil {
		s.warn(fmt.Sprintf("Invalid notebook render config %q: %v", r.cfg.MetadataKey, overrideErr),
			SubtypeConfig, tree.Location{CellIndex: -1, OutputIndex: -1})
	}

	s.renderMetadata()
	s.renderWidgetState()

	for _, cell := range nb.Cells {
		if err := s.renderCell(cell); err != nil {
			return fmt.Errorf("cell %d: %w", cell.Index, err)
		}
	}
	return nil
}

// warn appends a warning node at the cursor and logs it.
func (s *state) warn(msg, subtype string, loc tree.Location) *tree.Node {
	n := tree.NewWarning(msg, subtype, loc)
	tree.Stamp(n, loc.Line, s.source)
	s.builder.Append(n)

	kv := []any{"subtype", subtype}
	if loc.CellIndex >= 0 {
		kv = append(kv, "cell", loc.CellIndex)
	}
	if loc.OutputIndex >= 0 {
		kv = append(kv, "output", loc.OutputIndex)
	}
	if s.source != "" {
		kv = append(kv, "source", s.source)
	}
	s.logger.Warn(msg, kv...)
	return n
}

// emit stamps nodes with the cell location and appends them at the cursor.
func (s *state) emit(nodes []*tree.Node, line int) {
	tree.StampAll(nodes, line, s.source)
	s.builder.Append(nodes...)
}

// IsFatal reports whether err aborts a render.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMissingGlobalConfig)
}
