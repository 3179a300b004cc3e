package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the CLI, the library and
//   config, plus wrapped errors to verify the errors.Is() chain.
// - hintFor: we test which errors carry a hint; hint wording is covered in
//   internal/hints.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-nbdoc"
	"github.com/alnah/go-nbdoc/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read notebook", ErrReadNotebook, ExitIO},
		{"write document", ErrWriteDocument, ExitIO},
		{"write side file", nbdoc.ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no notebooks", ErrNoNotebooks, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"mime priority", ErrInvalidMimePriority, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"config not found", nbdoc.ErrConfigNotFound, ExitUsage},
		{"config parse", nbdoc.ErrConfigParse, ExitUsage},
		{"invalid config", nbdoc.ErrInvalidConfig, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"unknown format", nbdoc.ErrUnknownFormat, ExitUsage},
		{"style not found", nbdoc.ErrStyleNotFound, ExitUsage},
		{"invalid notebook", nbdoc.ErrInvalidNotebook, ExitUsage},
		{"unsupported nbformat", nbdoc.ErrUnsupportedFormat, ExitUsage},
		{"wrapped invalid notebook", fmt.Errorf("a.ipynb: %w", nbdoc.ErrInvalidNotebook), ExitUsage},

		{"missing global config", fmt.Errorf("cell 0: %w", nbdoc.ErrMissingGlobalConfig), ExitUsage},

		// General errors (exit 1)
		{"canceled", context.Canceled, ExitGeneral},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}
	if ExitIO >= 126 {
		t.Errorf("ExitIO = %d, custom codes must be below 126", ExitIO)
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Hints attached to errors
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		config   string
		wantHint string // substring; "" means no hint
	}{
		{"config name", nbdoc.ErrConfigNotFound, "nbdoc", "--config"},
		{"config path", nbdoc.ErrConfigNotFound, "./x.yaml", "--config"},
		{"style", fmt.Errorf("loading style: %w", nbdoc.ErrStyleNotFound), "", "default"},
		{"notebook", nbdoc.ErrInvalidNotebook, "", "nbformat 4"},
		{"write", ErrWriteDocument, "", "writable"},
		{"other", errors.New("boom"), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err, &cliFlags{config: tt.config})
			if tt.wantHint == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.wantHint) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.wantHint)
			}
		})
	}
}
