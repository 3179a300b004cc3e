package assets

// DefaultStyleName is the name of the built-in page style.
const DefaultStyleName = "default"

// StyleLoader loads a CSS style by name, without the .css extension.
// Implementations return ErrStyleNotFound for unknown names and
// ErrInvalidAssetName for names with path components.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in style by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}
