package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-nbdoc"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// cliFlags holds every command-line flag.
type cliFlags struct {
	config         string
	to             string
	builder        string
	output         string
	outputFolder   string
	numberLines    bool
	removeSource   bool
	removeOutputs  bool
	embedImages    bool
	style          string
	highlightStyle string
	mimePriority   []string
	workers        int
	quiet          bool
	verbose        bool
	version        bool
	help           bool

	set map[string]bool // flags given explicitly
}

// parseFlags parses args (without the program name).
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("nb2doc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.to, "to", "t", nbdoc.FormatHTML, "output format: html, pseudoxml")
	fs.StringVarP(&f.builder, "builder", "b", "", "builder selecting the mime priority list")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.outputFolder, "output-folder", "", "folder for images, stylesheets and processed.ipynb")
	fs.BoolVarP(&f.numberLines, "number-lines", "n", false, "number code source lines")
	fs.BoolVar(&f.removeSource, "remove-source", false, "drop code cell sources")
	fs.BoolVar(&f.removeOutputs, "remove-outputs", false, "drop code cell outputs")
	fs.BoolVar(&f.embedImages, "embed-images", false, "embed images as data URIs")
	fs.StringVar(&f.style, "style", "", "page style name")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code")
	fs.StringArrayVarP(&f.mimePriority, "mime-priority", "m", nil, "builder:mime/type=weight (empty weight removes the type)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel conversions (0 = auto)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if f.quiet && f.verbose {
		return nil, nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}

	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})
	return f, fs.Args(), nil
}

// logLevel maps --quiet and --verbose to a log level.
func (f *cliFlags) logLevel() log.Level {
	switch {
	case f.quiet:
		return log.ErrorLevel
	case f.verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}
