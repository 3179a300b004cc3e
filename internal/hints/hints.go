// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config location that was searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-nbdoc") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownBuilder lists the builders that have a MIME priority table.
func ForUnknownBuilder(builders []string) string {
	if len(builders) == 0 {
		return ""
	}
	return format("builders with a mime priority: " + strings.Join(builders, ", "))
}

// ForNoRenderableOutput explains how to make skipped outputs render.
func ForNoRenderableOutput() string {
	return format("add the output's mime type with --mime-priority builder:mime/type=weight")
}

// ForInvalidNotebook returns hints for notebooks that fail to parse.
func ForInvalidNotebook() string {
	return format("only nbformat 4 JSON notebooks are supported; upgrade older files with `jupyter nbconvert --to notebook`")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
