// Package assets provides the page stylesheets written next to HTML output.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - styles compiled into the binary
//	    ├── FilesystemLoader  - styles from {basePath}/styles/{name}.css
//	    └── StyleResolver     - custom first, embedded as fallback
//
// StyleResolver is what the converter uses: a configured assets path can
// override a single style while every other name still resolves to the
// built-in copy.
//
// # Security
//
// Style names are validated so they cannot carry path components.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
