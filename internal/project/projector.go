package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/focal-dev/focal/internal/proftree"
)

// DefaultMaxDepth is the nesting cutoff for depth-reduced tables: the
// focused root plus two levels of calls.
const DefaultMaxDepth = 2

// Projector turns focused subtrees into tables. One projector serves a
// whole session; its caches are keyed by file path, not by tree, because
// source files do not change while a session is open.
type Projector struct {
	roots    []string
	maxDepth int

	// lines caches resolved file contents; missing caches unresolvable
	// paths so a broken reference is never retried within a session.
	lines   map[string][]string
	missing map[string]bool
}

// NewProjector creates a projector that resolves relative source
// references against the given root directories, in order.
func NewProjector(sourceRoots []string) *Projector {
	return &Projector{
		roots:    sourceRoots,
		maxDepth: DefaultMaxDepth,
		lines:    make(map[string][]string),
		missing:  make(map[string]bool),
	}
}

// SetMaxDepth overrides the depth cutoff for depth-reduced tables.
// Values below 1 are ignored.
func (p *Projector) SetMaxDepth(depth int) {
	if depth >= 1 {
		p.maxDepth = depth
	}
}

// Project renders the subtree as a table.
//
// The mode is decided once here: source-aligned when the subtree
// references exactly one distinct file and that file is readable,
// depth-reduced otherwise (multiple files, no files, or an unreadable
// path — an unreadable path is an expected condition, not an error).
func (p *Projector) Project(tree *proftree.Node) Table {
	if tree == nil {
		return Table{Mode: ModeDepthReduced}
	}

	files := tree.SourceFiles()
	if len(files) == 1 {
		if lines, ok := p.sourceLines(files[0]); ok {
			return p.alignToSource(tree, files[0], lines)
		}
	}
	return p.reduceByDepth(tree)
}

// ────────────────────────────────────────────────────────────
// Source-aligned mode
// ────────────────────────────────────────────────────────────

// alignToSource produces one row per line of the file. Each row aggregates
// the metrics of every node whose reference starts on that line; lines
// with no nodes appear with zero metrics so the listing reads like the
// original source.
func (p *Projector) alignToSource(tree *proftree.Node, file string, lines []string) Table {
	type lineAgg struct {
		time, released, allocated float64
		dups                      int
		ref                       *proftree.SourceRef
	}
	agg := make(map[int]*lineAgg)

	tree.Walk(func(n *proftree.Node) bool {
		if n.Source == nil || n.Source.File != file {
			return true
		}
		line := n.Source.StartLine
		a := agg[line]
		if a == nil {
			a = &lineAgg{ref: n.Source}
			agg[line] = a
		}
		a.time += n.Time
		a.released += n.MemReleased
		a.allocated += n.MemAllocated
		a.dups += n.Duplications
		return true
	})

	t := Table{Mode: ModeSourceAligned, File: file}
	for i, text := range lines {
		lineNo := i + 1
		row := Row{
			Position: lineNo,
			Label:    strings.TrimRight(text, "\r\n"),
		}
		if a := agg[lineNo]; a != nil {
			row.Time = a.time
			row.MemReleased = a.released
			row.MemAllocated = a.allocated
			row.Duplications = a.dups
			row.Handle = Handle{Source: a.ref}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ────────────────────────────────────────────────────────────
// Depth-reduced mode
// ────────────────────────────────────────────────────────────

// reduceByDepth flattens the tree to rows, truncating below maxDepth.
// A truncated row keeps the node's aggregate metrics, which already cover
// the hidden calls below the cutoff.
func (p *Projector) reduceByDepth(tree *proftree.Node) Table {
	t := Table{Mode: ModeDepthReduced}
	pos := 0

	var walk func(n *proftree.Node, depth int, path []int)
	walk = func(n *proftree.Node, depth int, path []int) {
		pos++
		row := Row{
			Position:     pos,
			Depth:        depth,
			Label:        n.Label,
			Time:         n.Time,
			MemReleased:  n.MemReleased,
			MemAllocated: n.MemAllocated,
			Duplications: n.Duplications,
		}
		if n.Source != nil {
			row.Handle = Handle{Source: n.Source}
		} else if depth > 0 {
			row.Handle = Handle{Path: append([]int(nil), path...)}
		}
		if depth == p.maxDepth && len(n.Children) > 0 {
			row.Truncated = true
		}
		t.Rows = append(t.Rows, row)

		if depth < p.maxDepth {
			for i, c := range n.Children {
				walk(c, depth+1, append(path, i))
			}
		}
	}

	walk(tree, 0, nil)
	return t
}

// ────────────────────────────────────────────────────────────
// Source resolution
// ────────────────────────────────────────────────────────────

// sourceLines resolves file against the source roots and returns its
// lines. Both hits and misses are cached; a miss is final for the session.
func (p *Projector) sourceLines(file string) ([]string, bool) {
	if lines, ok := p.lines[file]; ok {
		return lines, true
	}
	if p.missing[file] {
		return nil, false
	}

	data, ok := p.readFirst(file)
	if !ok {
		p.missing[file] = true
		return nil, false
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	p.lines[file] = lines
	return lines, true
}

// readFirst tries the path as given, then against each source root.
func (p *Projector) readFirst(file string) ([]byte, bool) {
	candidates := []string{file}
	if !filepath.IsAbs(file) {
		for _, root := range p.roots {
			candidates = append(candidates, filepath.Join(root, file))
		}
	}
	for _, path := range candidates {
		if data, err := os.ReadFile(path); err == nil {
			return data, true
		}
	}
	return nil, false
}
