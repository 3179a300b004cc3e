package assets

import "errors"

// StyleResolver tries a custom loader first and falls back to the embedded
// styles when the custom location does not have the requested name.
type StyleResolver struct {
	custom   StyleLoader // nil without an assets path
	embedded StyleLoader
}

// NewStyleResolver creates a StyleResolver. An empty customBasePath uses
// embedded styles only; an invalid one is an error.
func NewStyleResolver(customBasePath string) (*StyleResolver, error) {
	r := &StyleResolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadStyle loads a style, custom location first.
// Only ErrStyleNotFound triggers the fallback; validation and I/O errors
// from the custom loader are returned as-is.
func (r *StyleResolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}

	content, err := r.custom.LoadStyle(name)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// HasCustomLoader reports whether an assets path is configured.
func (r *StyleResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ StyleLoader = (*StyleResolver)(nil)
