package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-nbdoc"
	"github.com/alnah/go-nbdoc/internal/mime"
)

// ErrInvalidMimePriority indicates a malformed --mime-priority value.
var ErrInvalidMimePriority = errors.New("invalid mime priority")

// buildConfig loads the config file, if any, and merges the flags into it.
// Flags given explicitly always win over file values.
func buildConfig(f *cliFlags) (*nbdoc.Config, error) {
	cfg := nbdoc.DefaultConfig()
	if f.config != "" {
		var err error
		cfg, err = nbdoc.LoadConfig(f.config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if f.set["builder"] {
		cfg.BuilderName = f.builder
	}
	if f.set["output-folder"] {
		cfg.OutputFolder = f.outputFolder
	}
	if f.set["number-lines"] {
		cfg.NumberSourceLines = f.numberLines
	}
	if f.set["remove-source"] {
		cfg.RemoveCodeSource = f.removeSource
	}
	if f.set["remove-outputs"] {
		cfg.RemoveCodeOutputs = f.removeOutputs
	}
	if f.set["embed-images"] {
		cfg.EmbedImages = f.embedImages
	}
	if f.set["style"] {
		cfg.Style = f.style
	}
	if f.set["highlight-style"] {
		cfg.HighlightStyle = f.highlightStyle
	}

	for _, value := range f.mimePriority {
		o, err := parseMimePriority(value)
		if err != nil {
			return nil, err
		}
		cfg.MimePriorityOverrides = append(cfg.MimePriorityOverrides, o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseMimePriority parses "builder:mime/type=weight". An empty weight
// removes the type from the builder's list; "*" as builder matches all.
func parseMimePriority(value string) (mime.Override, error) {
	builder, rest, ok := strings.Cut(value, ":")
	if !ok || builder == "" {
		return mime.Override{}, fmt.Errorf("%w: %q (want builder:mime/type=weight)", ErrInvalidMimePriority, value)
	}
	i := strings.LastIndex(rest, "=")
	if i <= 0 {
		return mime.Override{}, fmt.Errorf("%w: %q (want builder:mime/type=weight)", ErrInvalidMimePriority, value)
	}

	o := mime.Override{Builder: builder, MimeType: rest[:i]}
	if weight := rest[i+1:]; weight != "" {
		n, err := strconv.Atoi(weight)
		if err != nil {
			return mime.Override{}, fmt.Errorf("%w: weight %q is not an integer", ErrInvalidMimePriority, weight)
		}
		o.Priority = &n
	}
	return o, nil
}
