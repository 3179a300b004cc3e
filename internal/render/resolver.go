package render

import (
	"fmt"

	"github.com/alnah/go-nbdoc/internal/notebook"
)

// Resolver looks up render configuration for a cell.
// A value in the cell's render-config sub-map wins over the global value.
type Resolver struct {
	cellKey string
	global  map[string]any
}

// NewResolver creates a Resolver reading cell values under cellKey and
// falling back to global.
func NewResolver(cellKey string, global map[string]any) *Resolver {
	return &Resolver{cellKey: cellKey, global: global}
}

type resolveOptions struct {
	notebookKey string
	cellOnly    bool
}

// ResolveOption customizes a single lookup.
type ResolveOption func(*resolveOptions)

// WithNotebookKey reads the global value under k instead of the cell key.
func WithNotebookKey(k string) ResolveOption {
	return func(o *resolveOptions) {
		o.notebookKey = k
	}
}

// CellOnly disables the global fallback. A miss returns ErrMissingCellConfig.
func CellOnly() ResolveOption {
	return func(o *resolveOptions) {
		o.cellOnly = true
	}
}

// Resolve returns the effective value of key for a cell with metadata meta.
// A cell sub-map that is not a mapping is ignored here; use CheckCell to
// report it.
func (r *Resolver) Resolve(meta notebook.Metadata, key string, opts ...ResolveOption) (any, error) {
	o := resolveOptions{notebookKey: key}
	for _, opt := range opts {
		opt(&o)
	}

	if sub, ok := meta.Map(r.cellKey); ok {
		if v, found := sub[key]; found {
			return v, nil
		}
	}

	if o.cellOnly {
		return nil, fmt.Errorf("%w: %s", ErrMissingCellConfig, key)
	}
	return r.Global(o.notebookKey)
}

// Global returns the global value of key.
func (r *Resolver) Global(key string) (any, error) {
	v, ok := r.global[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingGlobalConfig, key)
	}
	return v, nil
}

// CheckCell reports a cell render-config value that is present but is not
// a mapping.
func (r *Resolver) CheckCell(meta notebook.Metadata) error {
	v, present := meta[r.cellKey]
	if !present {
		return nil
	}
	if _, ok := meta.Map(r.cellKey); !ok {
		return fmt.Errorf("%w: %s must be a mapping, got %T", ErrInvalidCellConfig, r.cellKey, v)
	}
	return nil
}
