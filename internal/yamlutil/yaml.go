// Package yamlutil wraps YAML encoding so callers never import the YAML
// library directly. It also converts loosely typed values (notebook metadata
// decoded from JSON) into typed structs by going through YAML.
package yamlutil

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// MarshalFlow encodes v on a single line in YAML flow style.
func MarshalFlow(v any) (string, error) {
	result, err := yaml.MarshalWithOptions(v, yaml.Flow(true))
	if err != nil {
		return "", fmt.Errorf("yamlutil: %w", err)
	}
	return strings.TrimRight(string(result), "\n"), nil
}

// ToMap encodes v and decodes it back as a generic map keyed by YAML field name.
func ToMap(v any) (map[string]any, error) {
	data, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Convert decodes the generic value src into dst with strict field checking.
// Whole float64 numbers (as produced by JSON decoders) are turned into
// integers first so they can populate int fields.
func Convert(src, dst any) error {
	data, err := Marshal(normalizeNumbers(src))
	if err != nil {
		return err
	}
	return UnmarshalStrict(data, dst)
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1<<53 {
			return int64(val)
		}
		return val
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeNumbers(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeNumbers(item)
		}
		return out
	default:
		return v
	}
}
