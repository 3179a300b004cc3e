// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPathPart   = errors.New("path part cannot be empty")
	ErrUnsafePathPart  = errors.New("path part contains separator, traversal or null byte")
	ErrEmptyOutputDir  = errors.New("output directory cannot be empty")
	ErrWriteOutputFile = errors.New("failed to write output file")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ValidatePathPart checks that part is a single, safe path element.
func ValidatePathPart(part string) error {
	if part == "" {
		return ErrEmptyPathPart
	}
	if part == "." || part == ".." || strings.ContainsAny(part, "/\\\x00") {
		return fmt.Errorf("%w: %q", ErrUnsafePathPart, part)
	}
	return nil
}

// WriteOutputFile writes content to dir/parts..., creating directories as
// needed. Every part must pass ValidatePathPart, so the result always stays
// inside dir. When overwrite is false and the file exists, it is left
// untouched. Returns the written path.
func WriteOutputFile(dir string, parts []string, content []byte, overwrite bool) (string, error) {
	if dir == "" {
		return "", ErrEmptyOutputDir
	}
	if len(parts) == 0 {
		return "", ErrEmptyPathPart
	}
	for _, p := range parts {
		if err := ValidatePathPart(p); err != nil {
			return "", err
		}
	}

	path := filepath.Join(append([]string{dir}, parts...)...)
	if !overwrite && FileExists(path) {
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return "", fmt.Errorf("%w: creating directory: %v", ErrWriteOutputFile, err)
	}
	if err := os.WriteFile(path, content, filePermissions); err != nil { // #nosec G306 -- output files are meant to be readable
		return "", fmt.Errorf("%w: %v", ErrWriteOutputFile, err)
	}
	return path, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// HasExtension reports whether path ends with one of exts (case-insensitive).
// Extensions include the leading dot.
func HasExtension(path string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ReplaceExtension swaps the extension of path for ext (with leading dot).
func ReplaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
