// Package writer serializes document trees.
//
// Two formats are supported: a standalone HTML page built with
// golang.org/x/net/html, with code highlighted by chroma, and an indented
// pseudo-XML dump of the tree that is useful for debugging and tests.
package writer
