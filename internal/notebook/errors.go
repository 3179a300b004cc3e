package notebook

import "errors"

// Sentinel errors for reading notebooks.
var (
	ErrEmptyNotebook     = errors.New("notebook content cannot be empty")
	ErrInvalidNotebook   = errors.New("invalid notebook")
	ErrUnsupportedFormat = errors.New("unsupported nbformat version")
	ErrNotebookWrite     = errors.New("failed to serialize notebook")
)
