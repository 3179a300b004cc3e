package main

import (
	"errors"
	"os"

	"github.com/alnah/go-nbdoc"
	"github.com/alnah/go-nbdoc/internal/assets"
	"github.com/alnah/go-nbdoc/internal/config"
	"github.com/alnah/go-nbdoc/internal/fileutil"
	"github.com/alnah/go-nbdoc/internal/hints"
	"github.com/alnah/go-nbdoc/internal/render"
)

// Exit codes for the nb2doc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, notebook or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadNotebook) ||
		errors.Is(err, ErrWriteDocument) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoNotebooks) ||
		errors.Is(err, nbdoc.ErrWriteOutput) ||
		errors.Is(err, fileutil.ErrWriteOutputFile) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidMimePriority) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, nbdoc.ErrConfigNotFound) ||
		errors.Is(err, nbdoc.ErrConfigParse) ||
		errors.Is(err, nbdoc.ErrInvalidConfig) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, nbdoc.ErrUnknownFormat) ||
		errors.Is(err, nbdoc.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, nbdoc.ErrEmptyNotebook) ||
		errors.Is(err, nbdoc.ErrInvalidNotebook) ||
		errors.Is(err, nbdoc.ErrUnsupportedFormat) ||
		render.IsFatal(err) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, f *cliFlags) string {
	switch {
	case errors.Is(err, nbdoc.ErrConfigNotFound):
		var searched []string
		if !fileutil.IsFilePath(f.config) {
			searched = config.SearchPaths(f.config)
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, nbdoc.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().Styles())
	case errors.Is(err, nbdoc.ErrInvalidNotebook), errors.Is(err, nbdoc.ErrUnsupportedFormat):
		return hints.ForInvalidNotebook()
	case errors.Is(err, ErrWriteDocument), errors.Is(err, nbdoc.ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
