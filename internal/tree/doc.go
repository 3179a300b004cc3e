// Package tree implements the generic document tree produced by the notebook
// renderer and consumed by the writers.
//
// A tree is made of *Node values. Each node has a Kind (container, paragraph,
// literal_block, image, ...), a list of style classes, free-form attributes,
// optional text, and the source location (line and path) it was generated
// from. Writers walk the tree; nothing in this package knows about HTML or
// notebooks.
//
// Builder maintains the insertion cursor. Use Within to descend into a child
// node: the cursor is restored when the callback returns, on every path.
package tree
