// Package render turns a parsed notebook into document tree nodes.
//
// A Renderer walks the cells of a notebook in order and appends nodes to a
// document through a tree.Builder. Cell outputs are turned into nodes by an
// ElementRenderer; rich outputs first go through MIME selection so that
// exactly one representation of each bundle is rendered.
//
// Rendering problems that only affect part of the document (no renderable
// MIME type, unsupported output, malformed cell options) become warning
// nodes in the tree and rendering continues. Only a missing global
// configuration value aborts a render.
package render
