package proftree

import "testing"

// TestCollapseChain verifies that a single-child chain collapses to the
// first branching node: A(B), B(C), C(D,E) collapses to C.
func TestCollapseChain(t *testing.T) {
	d := &Node{Label: "D"}
	e := &Node{Label: "E"}
	c := &Node{Label: "C", Children: []*Node{d, e}}
	b := &Node{Label: "B", Children: []*Node{c}}
	a := &Node{Label: "A", Children: []*Node{b}}

	if got := Collapse(a); got != c {
		t.Errorf("expected chain to collapse to C, got %q", got.Label)
	}
}

func TestCollapseToLeaf(t *testing.T) {
	leaf := &Node{Label: "leaf"}
	wrap := &Node{Label: "wrap", Children: []*Node{leaf}}

	if got := Collapse(wrap); got != leaf {
		t.Errorf("expected collapse to reach the leaf, got %q", got.Label)
	}
}

func TestCollapseNoopOnBranch(t *testing.T) {
	root := &Node{Label: "root", Children: []*Node{{Label: "x"}, {Label: "y"}}}
	if got := Collapse(root); got != root {
		t.Errorf("expected branching root to stay put, got %q", got.Label)
	}
}

func TestCollapseNil(t *testing.T) {
	if got := Collapse(nil); got != nil {
		t.Errorf("expected nil in, nil out")
	}
}
