package tree

// Builder appends nodes at a cursor that moves in stack discipline.
// A Builder is not safe for concurrent use; create one per render.
type Builder struct {
	stack []*Node
}

// NewBuilder creates a Builder whose cursor starts at root.
func NewBuilder(root *Node) *Builder {
	return &Builder{stack: []*Node{root}}
}

// Current returns the node new content is appended to.
func (b *Builder) Current() *Node {
	return b.stack[len(b.stack)-1]
}

// Depth returns the number of nodes on the cursor stack, root included.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Append adds nodes to the current node.
func (b *Builder) Append(nodes ...*Node) {
	b.Current().Append(nodes...)
}

// Within appends node to the current node, makes it the cursor while fn runs,
// and restores the previous cursor afterwards, including when fn returns an
// error or panics.
func (b *Builder) Within(node *Node, fn func() error) error {
	b.Current().Append(node)
	b.stack = append(b.stack, node)
	depth := len(b.stack)
	defer func() {
		b.stack = b.stack[:depth-1]
	}()
	return fn()
}
