// Package config loads and validates the rendering configuration.
//
// The same YAML key names are used in three places: configuration files,
// notebook-level overrides stored under Config.MetadataKey in the notebook
// metadata, and cell-level overrides stored under Config.CellRenderKey in a
// cell's metadata. Values exposes the effective configuration by those keys.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-nbdoc/internal/fileutil"
	"github.com/alnah/go-nbdoc/internal/mime"
	"github.com/alnah/go-nbdoc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxKeyLength  = 64   // metadata keys
	MaxNameLength = 64   // builder, style and highlight style names
	MaxPathLength = 4096 // output folder, assets path
	MaxMimeLength = 255  // RFC 6838 type/subtype
	MaxOverrides  = 256  // mime priority overrides
)

const (
	configDirName  = "go-nbdoc"
	defaultMetaKey = "mystnb"
)

// Unknown stream policies.
const (
	StreamDrop = "drop"
	StreamWarn = "warn"
)

// Config holds all options that influence how a notebook is rendered.
type Config struct {
	BuilderName           string          `yaml:"builder_name"`            // selects the MIME priority list
	MimePriorityOverrides []mime.Override `yaml:"mime_priority_overrides"` // per-type edits of the priority list
	RemoveCodeSource      bool            `yaml:"remove_code_source"`
	RemoveCodeOutputs     bool            `yaml:"remove_code_outputs"`
	NumberSourceLines     bool            `yaml:"number_source_lines"`
	MetadataToFrontMatter bool            `yaml:"metadata_to_fm"`  // render notebook metadata as front matter
	CellRenderKey         string          `yaml:"cell_render_key"` // cell metadata key holding overrides
	MetadataKey           string          `yaml:"metadata_key"`    // notebook metadata key holding overrides
	OutputFolder          string          `yaml:"output_folder"`   // empty = write nothing
	UnknownStream         string          `yaml:"unknown_stream"`  // "drop" or "warn"
	EmbedImages           bool            `yaml:"embed_images"`    // data URIs even with an output folder
	AppendCSS             bool            `yaml:"append_css"`
	HighlightStyle        string          `yaml:"highlight_style"`      // chroma style name
	Style                 string          `yaml:"style"`                // page CSS asset name
	AssetsPath            string          `yaml:"assets_path"`          // empty = embedded assets only
	RenderImageOptions    ImageOptions    `yaml:"render_image_options"` // cells override with "image"
}

// ImageOptions are applied to every image output. Width and height are CSS
// lengths or pixel counts.
type ImageOptions struct {
	Width   string   `yaml:"width,omitempty"`
	Height  string   `yaml:"height,omitempty"`
	Alt     string   `yaml:"alt,omitempty"`
	Classes []string `yaml:"classes,omitempty"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		BuilderName:    "html",
		CellRenderKey:  defaultMetaKey,
		MetadataKey:    defaultMetaKey,
		UnknownStream:  StreamDrop,
		AppendCSS:      true,
		HighlightStyle: "github",
		Style:          "default",
	}
}

// Validate checks names, paths and enumerations.
// Called automatically by LoadConfig and Override.
func (c *Config) Validate() error {
	if c.BuilderName == "" {
		return fmt.Errorf("%w: builder_name is required", ErrInvalidValue)
	}
	if err := validateFieldLength("builder_name", c.BuilderName, MaxNameLength); err != nil {
		return err
	}
	if c.CellRenderKey == "" {
		return fmt.Errorf("%w: cell_render_key is required", ErrInvalidValue)
	}
	if err := validateFieldLength("cell_render_key", c.CellRenderKey, MaxKeyLength); err != nil {
		return err
	}
	if c.MetadataKey == "" {
		return fmt.Errorf("%w: metadata_key is required", ErrInvalidValue)
	}
	if err := validateFieldLength("metadata_key", c.MetadataKey, MaxKeyLength); err != nil {
		return err
	}
	if err := validateFieldLength("output_folder", c.OutputFolder, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets_path", c.AssetsPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight_style", c.HighlightStyle, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("style", c.Style, MaxNameLength); err != nil {
		return err
	}

	for key, value := range map[string]string{
		"render_image_options.width":  c.RenderImageOptions.Width,
		"render_image_options.height": c.RenderImageOptions.Height,
	} {
		if err := validateFieldLength(key, value, MaxNameLength); err != nil {
			return err
		}
	}

	switch c.UnknownStream {
	case "", StreamDrop, StreamWarn:
	default:
		return fmt.Errorf("%w: unknown_stream %q (must be %s or %s)", ErrInvalidValue, c.UnknownStream, StreamDrop, StreamWarn)
	}

	if len(c.MimePriorityOverrides) > MaxOverrides {
		return fmt.Errorf("%w: %d mime_priority_overrides (max %d)", ErrInvalidValue, len(c.MimePriorityOverrides), MaxOverrides)
	}
	for i, o := range c.MimePriorityOverrides {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("%w: mime_priority_overrides[%d]: %v", ErrInvalidValue, i, err)
		}
		if err := validateFieldLength(fmt.Sprintf("mime_priority_overrides[%d].mime_type", i), o.MimeType, MaxMimeLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// MimePriority returns the resolved MIME priority list for the configured builder.
func (c *Config) MimePriority() []string {
	return mime.Priority(c.BuilderName, c.MimePriorityOverrides)
}

// Values returns the configuration as a map keyed by YAML field name.
func (c *Config) Values() (map[string]any, error) {
	m, err := yamlutil.ToMap(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return m, nil
}

// Override returns a copy of c with the given keys replaced.
// Unknown keys and invalid values are rejected; c is never modified.
func (c *Config) Override(overrides map[string]any) (*Config, error) {
	merged, err := c.Values()
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		merged[k] = v
	}

	var out Config
	if err := yamlutil.Convert(merged, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fromFile map[string]any
	if err := yamlutil.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return DefaultConfig().Override(fromFile)
}

// SearchPaths returns the candidate files for a config name, in search order:
// name.yaml and name.yml in the working directory, then in the user config
// directory (~/.config/go-nbdoc/ on Linux).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, path := range triedPaths {
		if fileutil.FileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
