package tree

// Stamp records line and source on node and its descendants. Values that are
// already set are kept, so nodes created with a more precise location keep it.
func Stamp(node *Node, line int, source string) {
	node.Walk(func(n *Node) bool {
		if n.Line == 0 && line > 0 {
			n.Line = line
		}
		if n.Source == "" {
			n.Source = source
		}
		return true
	})
}

// StampAll applies Stamp to every node in nodes.
func StampAll(nodes []*Node, line int, source string) {
	for _, n := range nodes {
		if n != nil {
			Stamp(n, line, source)
		}
	}
}
