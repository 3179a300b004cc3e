package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-nbdoc"
)

// ---------------------------------------------------------------------------
// TestParseFlags - Flag parsing and explicit-set tracking
// ---------------------------------------------------------------------------

func TestParseFlags(t *testing.T) {
	t.Parallel()

	f, positional, err := parseFlags([]string{"-o", "out", "--to", "pseudoxml", "-m", "html:text/plain=1", "-m", "*:image/png=", "nb.ipynb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.output != "out" || f.to != nbdoc.FormatPseudoXML {
		t.Errorf("output, to = %q, %q", f.output, f.to)
	}
	if len(f.mimePriority) != 2 {
		t.Errorf("mimePriority = %v, want 2 entries", f.mimePriority)
	}
	if len(positional) != 1 || positional[0] != "nb.ipynb" {
		t.Errorf("positional = %v", positional)
	}
	if !f.set["output"] || f.set["builder"] {
		t.Errorf("set = %v, want output only among output/builder", f.set)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--no-such-flag"}},
		{"quiet and verbose", []string{"-q", "-v"}},
		{"bad int", []string{"--workers", "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := parseFlags(tt.args); !errors.Is(err, ErrUsage) {
				t.Errorf("error = %v, want ErrUsage", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestParseMimePriority - builder:mime=weight values
// ---------------------------------------------------------------------------

func TestParseMimePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		value       string
		wantBuilder string
		wantMime    string
		wantWeight  *int
		wantErr     bool
	}{
		{"weight", "html:text/plain=5", "html", "text/plain", intPtr(5), false},
		{"negative weight", "latex:image/png=-1", "latex", "image/png", intPtr(-1), false},
		{"removal", "html:text/html=", "html", "text/html", nil, false},
		{"wildcard", "*:application/pdf=", "*", "application/pdf", nil, false},
		{"missing builder", ":text/plain=1", "", "", nil, true},
		{"missing colon", "text/plain=1", "", "", nil, true},
		{"missing equals", "html:text/plain", "", "", nil, true},
		{"missing mime", "html:=1", "", "", nil, true},
		{"bad weight", "html:text/plain=high", "", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o, err := parseMimePriority(tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMimePriority) {
					t.Errorf("error = %v, want ErrInvalidMimePriority", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if o.Builder != tt.wantBuilder || o.MimeType != tt.wantMime {
				t.Errorf("override = %s/%s, want %s/%s", o.Builder, o.MimeType, tt.wantBuilder, tt.wantMime)
			}
			switch {
			case tt.wantWeight == nil && o.Priority != nil:
				t.Errorf("priority = %d, want removal", *o.Priority)
			case tt.wantWeight != nil && (o.Priority == nil || *o.Priority != *tt.wantWeight):
				t.Errorf("priority = %v, want %d", o.Priority, *tt.wantWeight)
			}
		})
	}
}

func intPtr(n int) *int { return &n }

// ---------------------------------------------------------------------------
// TestBuildConfig - Config file and flag merging
// ---------------------------------------------------------------------------

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults without config", func(t *testing.T) {
		t.Parallel()

		f, _, err := parseFlags(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, err := buildConfig(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BuilderName != nbdoc.DefaultConfig().BuilderName {
			t.Errorf("BuilderName = %q", cfg.BuilderName)
		}
	})

	t.Run("flags override file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nbdoc.yaml")
		content := "builder_name: latex\nnumber_source_lines: true\nremove_code_source: true\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		f, _, err := parseFlags([]string{"--config", path, "--builder", "html", "-m", "html:text/plain=1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, err := buildConfig(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.BuilderName != "html" {
			t.Errorf("BuilderName = %q, want flag value html", cfg.BuilderName)
		}
		if !cfg.NumberSourceLines || !cfg.RemoveCodeSource {
			t.Error("file values not given as flags should be kept")
		}
		if len(cfg.MimePriorityOverrides) != 1 {
			t.Errorf("overrides = %v, want 1", cfg.MimePriorityOverrides)
		}
	})

	t.Run("explicit false flag wins", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nbdoc.yaml")
		if err := os.WriteFile(path, []byte("remove_code_outputs: true\n"), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}

		f, _, err := parseFlags([]string{"--config", path, "--remove-outputs=false"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, err := buildConfig(f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.RemoveCodeOutputs {
			t.Error("RemoveCodeOutputs = true, want false from the flag")
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		f, _, err := parseFlags([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := buildConfig(f); !errors.Is(err, nbdoc.ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid mime priority", func(t *testing.T) {
		t.Parallel()

		f, _, err := parseFlags([]string{"-m", "nonsense"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := buildConfig(f); !errors.Is(err, ErrInvalidMimePriority) {
			t.Errorf("error = %v, want ErrInvalidMimePriority", err)
		}
	})
}
