package proftree

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr/vm"
)

// ────────────────────────────────────────────────────────────
// Selectors
// ────────────────────────────────────────────────────────────

// Selector picks a node out of a tree. The set of selectors is closed:
// navigation requests are built from these constructors, never from
// free-form code supplied by the client.
type Selector interface {
	// Matches reports whether the node satisfies the selector.
	Matches(*Node) bool
	// String describes the selector for diagnostics.
	String() string
}

// sourceRefSelector matches a node whose source reference equals ref.
type sourceRefSelector struct {
	ref SourceRef
}

func (s sourceRefSelector) Matches(n *Node) bool {
	return n.Source != nil && *n.Source == s.ref
}

func (s sourceRefSelector) String() string {
	return fmt.Sprintf("source-ref(%s)", s.ref)
}

// BySourceRef selects the first node with exactly the given source
// reference.
func BySourceRef(ref SourceRef) Selector {
	return sourceRefSelector{ref: ref}
}

// labelSelector matches a node whose label contains a substring.
type labelSelector struct {
	substr string
}

func (s labelSelector) Matches(n *Node) bool {
	return s.substr != "" && containsFold(n.Label, s.substr)
}

func (s labelSelector) String() string {
	return fmt.Sprintf("label-contains(%q)", s.substr)
}

// ByLabelContains selects the first node whose label contains substr,
// case-insensitively.
func ByLabelContains(substr string) Selector {
	return labelSelector{substr: substr}
}

// minTimeSelector matches a node whose attributed time meets a threshold.
type minTimeSelector struct {
	seconds float64
}

func (s minTimeSelector) Matches(n *Node) bool {
	return n.Time >= s.seconds
}

func (s minTimeSelector) String() string {
	return fmt.Sprintf("min-time(%gs)", s.seconds)
}

// ByMinTime selects the first node with at least the given attributed time
// in seconds.
func ByMinTime(seconds float64) Selector {
	return minTimeSelector{seconds: seconds}
}

// pathSelector matches the node at a structural child-index path. It only
// matches against the tree root it is resolved on, so Matches is evaluated
// by Focus specially.
type pathSelector struct {
	path []int
}

func (s pathSelector) Matches(*Node) bool { return false }

func (s pathSelector) String() string {
	return fmt.Sprintf("path(%s)", PathString(s.path))
}

// ByPath selects the node addressed by a chain of child indexes from the
// focused root. Projection rows carry these paths as navigation handles.
func ByPath(path []int) Selector {
	p := make([]int, len(path))
	copy(p, path)
	return pathSelector{path: p}
}

// exprSelector evaluates a compiled constrained expression against a node.
// Programs are compiled by internal/query against a fixed environment of
// node fields; arbitrary code never reaches this point.
type exprSelector struct {
	source  string
	program *vm.Program
}

func (s exprSelector) Matches(n *Node) bool {
	result, err := vm.Run(s.program, ExprEnv(n))
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

func (s exprSelector) String() string {
	return fmt.Sprintf("expr(%s)", s.source)
}

// ByExpr wraps a compiled expression program as a selector. The source
// string is kept for diagnostics only.
func ByExpr(source string, program *vm.Program) Selector {
	return exprSelector{source: source, program: program}
}

// ExprEnv builds the evaluation environment a compiled expression sees for
// one node. The field set here is the entire surface the constrained
// language can touch.
func ExprEnv(n *Node) map[string]any {
	file := ""
	line := 0
	if n.Source != nil {
		file = n.Source.File
		line = n.Source.StartLine
	}
	return map[string]any{
		"label":     n.Label,
		"time":      n.Time,
		"allocated": n.MemAllocated,
		"released":  n.MemReleased,
		"dups":      n.Duplications,
		"file":      file,
		"line":      line,
	}
}

// ────────────────────────────────────────────────────────────
// Focus
// ────────────────────────────────────────────────────────────

// Focus returns the first subtree in pre-order that the selector matches.
//
// Focus fails open: when nothing matches (or a structural path no longer
// resolves), the input tree is returned unchanged, so a stale or foreign
// selector results in "no navigation" rather than an error. The tree may
// legitimately not contain a reference, e.g. for library code without
// source refs.
func Focus(tree *Node, sel Selector) *Node {
	if tree == nil || sel == nil {
		return tree
	}

	if p, ok := sel.(pathSelector); ok {
		if target := tree.At(p.path); target != nil {
			return target
		}
		return tree
	}

	var match *Node
	tree.Walk(func(n *Node) bool {
		if sel.Matches(n) {
			match = n
			return false
		}
		return true
	})
	if match == nil {
		return tree
	}
	return match
}

// containsFold reports whether s contains substr, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
