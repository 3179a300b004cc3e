package tree

import "fmt"

// Warning levels for system messages.
const (
	LevelWarning = "WARNING"
	LevelError   = "ERROR"
)

// Location identifies where in a notebook a diagnostic originates.
// Negative indices mean "not applicable".
type Location struct {
	CellIndex   int
	OutputIndex int
	Line        int
}

// NewWarning creates a system_message node styled as a warning.
// The node records the subtype and the cell/output indices so writers and
// tests can locate the offending cell.
func NewWarning(msg, subtype string, loc Location) *Node {
	n := New(KindSystemMessage, "warning")
	n.Line = loc.Line
	n.Set("level", LevelWarning)
	n.Set("type", "nbdoc")
	n.Set("subtype", subtype)
	if loc.CellIndex >= 0 {
		n.Set("cell_index", loc.CellIndex)
	}
	if loc.OutputIndex >= 0 {
		n.Set("output_index", loc.OutputIndex)
	}
	n.Append(New(KindParagraph).Append(NewText(formatMessage(msg, loc))))
	return n
}

func formatMessage(msg string, loc Location) string {
	switch {
	case loc.CellIndex >= 0 && loc.OutputIndex >= 0:
		return fmt.Sprintf("%s [cell %d, output %d]", msg, loc.CellIndex, loc.OutputIndex)
	case loc.CellIndex >= 0:
		return fmt.Sprintf("%s [cell %d]", msg, loc.CellIndex)
	default:
		return msg
	}
}

// IsWarning reports whether n is a warning system message.
func IsWarning(n *Node) bool {
	return n != nil && n.Kind == KindSystemMessage && n.AttrString("level") == LevelWarning
}

// CountWarnings counts warning nodes in the subtree rooted at n.
func CountWarnings(n *Node) int {
	count := 0
	n.Walk(func(x *Node) bool {
		if IsWarning(x) {
			count++
		}
		return true
	})
	return count
}
