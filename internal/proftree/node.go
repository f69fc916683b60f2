// Package proftree defines the call-tree data model at the heart of focal,
// together with the focus and auto-collapse operations that power
// drill-down navigation.
//
// A tree is produced once by an external profiler, loaded via the ingest
// layer, and treated as immutable for the lifetime of a session. Every
// navigation operation works on pointers into the loaded tree; a "focus"
// is a handle to a subtree, never a copy.
package proftree

import (
	"fmt"
	"strings"
)

// SourceRef ties a node to a file and line range in the profiled program.
// A nil SourceRef means the node has no known source location (external or
// library code).
type SourceRef struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// String renders the reference as "file:10" or "file:10-14".
func (r SourceRef) String() string {
	if r.EndLine > r.StartLine {
		return fmt.Sprintf("%s:%d-%d", r.File, r.StartLine, r.EndLine)
	}
	return fmt.Sprintf("%s:%d", r.File, r.StartLine)
}

// Node is one call (or source line) in a profiling tree.
//
// Metric fields are aggregates attributed by the profiler; focal consumes
// them as-is and never recomputes rollups.
type Node struct {
	// Label is the source line text when a source reference is available,
	// otherwise the called function's name.
	Label string `json:"label"`

	// Source is the node's source location, nil when unknown.
	Source *SourceRef `json:"source,omitempty"`

	// Time is the time attributed to this node, in seconds.
	Time float64 `json:"time"`

	// MemReleased and MemAllocated are in megabytes.
	MemReleased  float64 `json:"mem_released"`
	MemAllocated float64 `json:"mem_allocated"`

	// Duplications counts repeated identical calls folded into this node.
	Duplications int `json:"duplications"`

	// Children are ordered sub-calls, empty for leaves.
	Children []*Node `json:"children,omitempty"`
}

// Walk visits n and its descendants in pre-order (node before children,
// children left to right). Returning false from visit stops the walk.
//
// Pre-order is part of the navigation contract: when several nodes match a
// selector, the first one in this order wins, so the tie-break is
// deterministic across sessions.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(visit) {
			return false
		}
	}
	return true
}

// CountNodes returns the number of nodes in the subtree rooted at n.
func (n *Node) CountNodes() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// SourceFiles returns the distinct source files referenced anywhere in the
// subtree, in first-seen (pre-order) order.
func (n *Node) SourceFiles() []string {
	seen := make(map[string]bool)
	var files []string
	n.Walk(func(node *Node) bool {
		if node.Source != nil && node.Source.File != "" && !seen[node.Source.File] {
			seen[node.Source.File] = true
			files = append(files, node.Source.File)
		}
		return true
	})
	return files
}

// At resolves a structural path (a chain of child indexes from n) to the
// node it addresses. Returns nil if any index is out of range.
func (n *Node) At(path []int) *Node {
	cur := n
	for _, i := range path {
		if cur == nil || i < 0 || i >= len(cur.Children) {
			return nil
		}
		cur = cur.Children[i]
	}
	return cur
}

// PathString renders a structural path as "0/2/1" for display and logging.
func PathString(path []int) string {
	if len(path) == 0 {
		return "."
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, "/")
}

// Validate checks the structural invariants the rest of focal relies on:
// non-negative metrics and a non-empty label on every node.
func (n *Node) Validate() error {
	var err error
	n.Walk(func(node *Node) bool {
		switch {
		case node.Label == "":
			err = fmt.Errorf("node with empty label")
		case node.Time < 0:
			err = fmt.Errorf("node %q: negative time %v", node.Label, node.Time)
		case node.MemReleased < 0 || node.MemAllocated < 0:
			err = fmt.Errorf("node %q: negative memory metric", node.Label)
		case node.Duplications < 0:
			err = fmt.Errorf("node %q: negative duplication count", node.Label)
		}
		return err == nil
	})
	return err
}
