// Package project renders a focused subtree into the tabular model the
// display layer consumes.
//
// Projection has exactly two modes, decided once per call: when every
// source reference in the subtree points at a single resolvable file the
// table is aligned to that file's lines, otherwise the call tree is
// flattened to a bounded depth. Projection is a pure read of the tree; it
// never mutates the tree or the navigation stack.
package project

import "github.com/focal-dev/focal/internal/proftree"

// Mode identifies how a table was produced.
type Mode int

const (
	// ModeSourceAligned means one row per line of a single source file.
	ModeSourceAligned Mode = iota
	// ModeDepthReduced means one row per call, truncated at a fixed depth.
	ModeDepthReduced
)

// String returns the mode name for logs and JSON output.
func (m Mode) String() string {
	switch m {
	case ModeSourceAligned:
		return "source-aligned"
	case ModeDepthReduced:
		return "depth-reduced"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the mode as its string name.
func (m Mode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// Handle is an opaque per-row navigation target: a source reference when
// the row maps cleanly to source, otherwise a structural path from the
// focused root. A nil-Source, nil-Path handle is not navigable.
type Handle struct {
	Source *proftree.SourceRef `json:"source,omitempty"`
	Path   []int               `json:"path,omitempty"`
}

// Navigable reports whether the handle can be turned into a selector.
func (h Handle) Navigable() bool {
	return h.Source != nil || h.Path != nil
}

// Selector converts the handle into a tree selector for a future Navigate.
// Returns nil for non-navigable handles.
func (h Handle) Selector() proftree.Selector {
	switch {
	case h.Source != nil:
		return proftree.BySourceRef(*h.Source)
	case h.Path != nil:
		return proftree.ByPath(h.Path)
	default:
		return nil
	}
}

// Row is one display row of a projected table.
type Row struct {
	// Position is the source line number in aligned mode, or the
	// pre-order visit index in depth-reduced mode.
	Position int `json:"position"`

	// Depth is the nesting level below the focused root (depth-reduced
	// mode only; always 0 in aligned mode).
	Depth int `json:"depth,omitempty"`

	Label        string  `json:"label"`
	Time         float64 `json:"time"`
	MemReleased  float64 `json:"mem_released"`
	MemAllocated float64 `json:"mem_allocated"`
	Duplications int     `json:"duplications"`

	// Truncated marks a depth-reduced row whose subtree continues below
	// the cutoff; the row's metrics already aggregate the hidden calls.
	Truncated bool `json:"truncated,omitempty"`

	Handle Handle `json:"handle"`
}

// Table is an ordered sequence of rows plus the mode that produced it.
type Table struct {
	Mode Mode `json:"mode"`

	// File is the aligned source file, empty in depth-reduced mode.
	File string `json:"file,omitempty"`

	Rows []Row `json:"rows"`
}
