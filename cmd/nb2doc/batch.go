package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-nbdoc"
	"github.com/alnah/go-nbdoc/internal/fileutil"
	"github.com/alnah/go-nbdoc/internal/render"
	"github.com/alnah/go-nbdoc/internal/tree"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrReadNotebook  = errors.New("failed to read notebook")
	ErrWriteDocument = errors.New("failed to write document")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input nbdoc.Input) (*nbdoc.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*nbdoc.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath    string
	OutputPath   string
	Warnings     int // warning nodes in the document
	SkippedMimes int // outputs with no renderable mime type
	Err          error
	Duration     time.Duration
}

// batch holds what every conversion of one run shares.
type batch struct {
	cfg          *nbdoc.Config
	format       string
	logger       *log.Logger
	newConverter converterFactory
	workers      int
}

// convert processes files concurrently, at most b.workers at a time.
// A failed notebook never stops the others; results keep the input order.
func (b *batch) convert(ctx context.Context, files []FileToConvert) []ConversionResult {
	results := make([]ConversionResult, len(files))

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath, Err: err}
				return nil
			}
			results[i] = b.convertFile(ctx, f, len(files) > 1)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// convertFile converts one notebook and writes the document.
// In a batch each notebook gets its own subfolder of the output folder so
// that processed.ipynb files do not collide.
func (b *batch) convertFile(ctx context.Context, f FileToConvert, shared bool) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrReadNotebook, err))
	}

	cfg := b.cfg
	if shared && cfg.OutputFolder != "" {
		perFile := *cfg
		perFile.OutputFolder = filepath.Join(cfg.OutputFolder, fileutil.ReplaceExtension(filepath.Base(f.InputPath), ""))
		cfg = &perFile
	}

	conv, err := b.newConverter(cfg, b.format, b.logger)
	if err != nil {
		return fail(err)
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %v", ErrWriteDocument, err))
	}

	res, err := conv.Convert(ctx, nbdoc.Input{
		Notebook:   content,
		SourcePath: f.InputPath,
		OutputDir:  outDir,
	})
	if err != nil {
		return fail(err)
	}

	// #nosec G306 -- documents are meant to be readable
	if err := os.WriteFile(f.OutputPath, res.Output, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrWriteDocument, err))
	}

	result.Warnings = res.Warnings
	result.SkippedMimes = countSkippedMimes(res.Tree)
	result.Duration = time.Since(start)
	return result
}

// countSkippedMimes counts warnings for outputs whose bundle had no type
// in the priority list.
func countSkippedMimes(doc *tree.Node) int {
	if doc == nil {
		return 0
	}
	n := 0
	for _, msg := range doc.Find(tree.KindSystemMessage) {
		if msg.AttrString("subtype") == render.SubtypeMimeType {
			n++
		}
	}
	return n
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded    int
	Failed       int
	Warnings     int
	SkippedMimes int
}

// countResults tallies the batch.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Warnings += r.Warnings
		summary.SkippedMimes += r.SkippedMimes
	}
	return summary
}
