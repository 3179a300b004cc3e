package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-nbdoc/internal/fileutil"
)

// MaxWorkers caps --workers.
const MaxWorkers = 64

const notebookExt = ".ipynb"

// Sentinel errors for file discovery.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoNotebooks        = errors.New("no notebooks found")
	ErrInvalidExtension   = errors.New("file must have .ipynb extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single notebook to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the notebooks to convert. A directory is walked
// recursively; hidden directories such as .ipynb_checkpoints are skipped.
// ext is the output extension, with the leading dot.
func discoverFiles(inputPath, output, ext string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.HasExtension(inputPath, notebookExt) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []FileToConvert{{InputPath: inputPath, OutputPath: resolveOutputPath(inputPath, output, "", ext)}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !fileutil.HasExtension(path, notebookExt) {
			return nil
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: resolveOutputPath(path, output, inputPath, ext)})
		return nil
	})
	return files, err
}

// resolveOutputPath determines the output path for a notebook.
// Without output the document goes next to the notebook; an output ending
// in ext is a file; anything else is a directory mirroring baseInputDir.
func resolveOutputPath(inputPath, output, baseInputDir, ext string) string {
	name := filepath.Base(fileutil.ReplaceExtension(inputPath, ext))

	if output == "" {
		return fileutil.ReplaceExtension(inputPath, ext)
	}
	if fileutil.HasExtension(output, ext) {
		return output
	}
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(output, filepath.Dir(rel), name)
		}
	}
	return filepath.Join(output, name)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}

// resolveWorkers returns the worker count for n files.
func resolveWorkers(requested, n int) int {
	workers := requested
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return max(1, min(workers, n))
}
