package render

import "errors"

// Sentinel errors for rendering.
var (
	// ErrMissingCellConfig means a cell-only lookup found no cell value.
	ErrMissingCellConfig = errors.New("cell render config not found")
	// ErrMissingGlobalConfig means a key has no global value. It aborts the render.
	ErrMissingGlobalConfig = errors.New("global render config not found")
	// ErrInvalidCellConfig means a cell value has the wrong shape or type.
	ErrInvalidCellConfig = errors.New("invalid cell render config")
	// ErrUnsupportedMimeType means the element renderer cannot render a MIME type.
	ErrUnsupportedMimeType = errors.New("unsupported mime type")
	// ErrInvalidPayload means a MIME payload could not be decoded.
	ErrInvalidPayload = errors.New("invalid mime payload")
	// ErrNoOutputFolder means a file had to be written but no folder is configured.
	ErrNoOutputFolder = errors.New("no output folder configured")
	// ErrNilDocument means Render was called without a document to append to.
	ErrNilDocument = errors.New("nil document")
)

// Warning subtypes attached to warning nodes.
const (
	SubtypeMimeType   = "mime_type"   // no renderable MIME type in a bundle
	SubtypeMimeRender = "mime_render" // element renderer failed on the chosen type
	SubtypeOutputType = "output_type" // output type not recognized
	SubtypeStream     = "stream"      // stream name other than stdout/stderr
	SubtypeConfig     = "config"      // malformed notebook or cell configuration
)
