package nbdoc

import (
	"github.com/charmbracelet/log"

	"github.com/alnah/go-nbdoc/internal/config"
	"github.com/alnah/go-nbdoc/internal/render"
	"github.com/alnah/go-nbdoc/internal/tree"
	"github.com/alnah/go-nbdoc/internal/writer"
)

// Output formats.
const (
	FormatHTML      = writer.FormatHTML
	FormatPseudoXML = writer.FormatPseudoXML
)

// Config holds the rendering options. See DefaultConfig for the defaults.
type Config = config.Config

// ElementRenderer builds the nodes for streams, errors, raw cells and MIME
// payloads, and owns all file output.
type ElementRenderer = render.ElementRenderer

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig loads a configuration from a file path or config name.
// Names are searched as name.yaml then name.yml, in the working directory
// and then in the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	return config.LoadConfig(nameOrPath)
}

// Input is one notebook to convert.
type Input struct {
	Notebook   []byte // nbformat 4 JSON
	SourcePath string // recorded on the document and used in warnings
	OutputDir  string // directory the output will be written to; links to side files are made relative to it
}

// Result is the outcome of one conversion.
type Result struct {
	Tree     *tree.Node // document node
	Output   []byte     // serialized document in the converter's format
	Files    []string   // side files written to the output folder
	Warnings int        // warning nodes in Tree
}

// Option configures a Converter.
type Option func(*Converter)

// WithConfig sets the rendering configuration. A nil cfg keeps the default.
func WithConfig(cfg *Config) Option {
	return func(c *Converter) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithLogger sets the logger receiving one entry per warning node.
// Conversions are silent by default.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithElementRenderer replaces the default element renderer.
// Result.Files is filled only if e also has a Files() []string method.
func WithElementRenderer(e ElementRenderer) Option {
	return func(c *Converter) {
		c.elements = e
	}
}

// WithFormat sets the output format, FormatHTML (default) or FormatPseudoXML.
func WithFormat(format string) Option {
	return func(c *Converter) {
		c.format = format
	}
}
