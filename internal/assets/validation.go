package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that a style name is a bare file name stem.
// Dots are rejected too, so a name cannot change the extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
