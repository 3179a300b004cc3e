package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-nbdoc"
	"github.com/alnah/go-nbdoc/internal/fileutil"
	"github.com/alnah/go-nbdoc/internal/hints"
	"github.com/alnah/go-nbdoc/internal/mime"
	"github.com/alnah/go-nbdoc/internal/writer"
)

// run parses args (without the program name) and converts. Returns the exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		printUsage(env.Stderr)
		return ExitUsage
	}
	return execute(ctx, flags, positional, env, newLogger(env.Stderr, flags.logLevel()))
}

// execute runs the command selected by the parsed flags.
func execute(ctx context.Context, f *cliFlags, positional []string, env *Environment, logger *log.Logger) int {
	if f.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if f.version {
		fmt.Fprintf(env.Stdout, "nb2doc %s\n", Version)
		return ExitSuccess
	}

	if err := runConvert(ctx, f, positional, env, logger); err != nil {
		fmt.Fprintf(env.Stderr, "nb2doc: %v%s\n", err, hintFor(err, f))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, f *cliFlags, positional []string, env *Environment, logger *log.Logger) error {
	if err := validateWorkers(f.workers); err != nil {
		return err
	}
	switch len(positional) {
	case 0:
		return ErrNoInput
	case 1:
	default:
		return fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}
	if f.to != nbdoc.FormatHTML && f.to != nbdoc.FormatPseudoXML {
		return fmt.Errorf("%w: %q (must be %s or %s)", nbdoc.ErrUnknownFormat, f.to, nbdoc.FormatHTML, nbdoc.FormatPseudoXML)
	}

	cfg, err := buildConfig(f)
	if err != nil {
		return err
	}
	if !mime.KnownBuilder(cfg.BuilderName) {
		logger.Warn(fmt.Sprintf("builder %q has no base mime priority; only --mime-priority entries apply%s",
			cfg.BuilderName, strings.TrimPrefix(hints.ForUnknownBuilder(mime.Builders()), "\n")))
	}

	ext := writer.Extension(f.to)
	files, err := discoverFiles(positional[0], f.output, ext)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoNotebooks, positional[0])
	}
	if len(files) > 1 && fileutil.HasExtension(f.output, ext) {
		return fmt.Errorf("%w: --output must be a directory when converting %d notebooks", ErrUsage, len(files))
	}

	b := &batch{
		cfg:          cfg,
		format:       f.to,
		logger:       logger,
		newConverter: env.NewConverter,
		workers:      resolveWorkers(f.workers, len(files)),
	}
	logger.Debug("starting conversion", "notebooks", len(files), "workers", b.workers, "builder", cfg.BuilderName)

	start := time.Now()
	results := b.convert(ctx, files)

	var firstErr error
	for _, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", r.InputPath, r.Err)
			}
			if len(files) > 1 {
				logger.Error("conversion failed", "input", r.InputPath, "err", r.Err)
			}
			continue
		}
		logger.Info("converted", "input", r.InputPath, "output", r.OutputPath,
			"warnings", r.Warnings, "duration", r.Duration.Round(time.Millisecond))
	}

	summary := countResults(results)
	if summary.SkippedMimes > 0 {
		logger.Warn(fmt.Sprintf("%d outputs had no renderable mime type%s",
			summary.SkippedMimes, strings.TrimPrefix(hints.ForNoRenderableOutput(), "\n")))
	}
	if len(files) > 1 {
		logger.Infof("Converted %d/%d notebooks (%s)", summary.Succeeded, len(files), time.Since(start).Round(time.Millisecond))
	}
	return firstErr
}
