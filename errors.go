package nbdoc

import (
	"errors"

	"github.com/alnah/go-nbdoc/internal/assets"
	"github.com/alnah/go-nbdoc/internal/config"
	"github.com/alnah/go-nbdoc/internal/notebook"
	"github.com/alnah/go-nbdoc/internal/render"
	"github.com/alnah/go-nbdoc/internal/writer"
)

// Sentinel errors for library operations.
// Internal sentinels are re-exported so callers can match them with errors.Is.
var (
	ErrEmptyNotebook     = notebook.ErrEmptyNotebook
	ErrInvalidNotebook   = notebook.ErrInvalidNotebook
	ErrUnsupportedFormat = notebook.ErrUnsupportedFormat

	// Configuration errors.
	ErrConfigNotFound      = config.ErrConfigNotFound
	ErrConfigParse         = config.ErrConfigParse
	ErrInvalidConfig       = config.ErrInvalidValue
	ErrMissingGlobalConfig = render.ErrMissingGlobalConfig

	// Output errors.
	ErrUnknownFormat = writer.ErrUnknownFormat
	ErrStyleNotFound = assets.ErrStyleNotFound
	ErrWriteOutput   = errors.New("failed to write output files")
)
