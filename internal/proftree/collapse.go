package proftree

// Collapse skips chains of single-child nodes and returns the first
// structurally interesting node: a leaf, or the first node with two or
// more children.
//
// A freshly focused subtree is frequently a long chain of wrapper calls
// each with exactly one child; presenting every link is noise, so the
// engine always lands on the deepest point before branching. Terminates
// because depth strictly decreases each step and the tree is finite.
func Collapse(n *Node) *Node {
	if n == nil {
		return nil
	}
	for len(n.Children) == 1 {
		n = n.Children[0]
	}
	return n
}
