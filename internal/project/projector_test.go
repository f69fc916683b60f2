package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/focal-dev/focal/internal/proftree"
)

// writeSource drops a small source file into a temp dir and returns the dir.
func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing source fixture: %v", err)
	}
	return dir
}

func TestProjectSourceAligned(t *testing.T) {
	dir := writeSource(t, "grid.R", "f <- function(x) {\n  resize(x)\n  shrink(x)\n}\n")

	tree := &proftree.Node{
		Label:  "f",
		Source: &proftree.SourceRef{File: "grid.R", StartLine: 1, EndLine: 4},
		Time:   2.0,
		Children: []*proftree.Node{
			{Label: "resize(x)", Source: &proftree.SourceRef{File: "grid.R", StartLine: 2, EndLine: 2}, Time: 1.2, MemAllocated: 4.0},
			{Label: "resize(x) again", Source: &proftree.SourceRef{File: "grid.R", StartLine: 2, EndLine: 2}, Time: 0.3, MemAllocated: 1.0},
			{Label: "shrink(x)", Source: &proftree.SourceRef{File: "grid.R", StartLine: 3, EndLine: 3}, Time: 0.5, MemReleased: 2.0},
		},
	}

	p := NewProjector([]string{dir})
	table := p.Project(tree)

	if table.Mode != ModeSourceAligned {
		t.Fatalf("expected source-aligned mode, got %s", table.Mode)
	}
	if table.File != "grid.R" {
		t.Errorf("expected aligned file grid.R, got %s", table.File)
	}
	// One row per source line.
	if len(table.Rows) != 4 {
		t.Fatalf("expected 4 rows (one per line), got %d", len(table.Rows))
	}

	// Line 2 aggregates both nodes mapping to it.
	line2 := table.Rows[1]
	if line2.Position != 2 {
		t.Errorf("expected row position 2, got %d", line2.Position)
	}
	if line2.Time != 1.5 {
		t.Errorf("expected line 2 time 1.5, got %v", line2.Time)
	}
	if line2.MemAllocated != 5.0 {
		t.Errorf("expected line 2 allocated 5.0, got %v", line2.MemAllocated)
	}
	if !line2.Handle.Navigable() {
		t.Errorf("expected line 2 to carry a navigation handle")
	}

	// Line 4 ("}") has no nodes: zero metrics, not navigable.
	line4 := table.Rows[3]
	if line4.Time != 0 || line4.Handle.Navigable() {
		t.Errorf("expected bare source line with zero metrics and no handle")
	}
	if line4.Label != "}" {
		t.Errorf("expected label to be the source text, got %q", line4.Label)
	}
}

func TestProjectDepthReducedOnMultipleFiles(t *testing.T) {
	tree := &proftree.Node{Label: "top", Children: []*proftree.Node{
		{Label: "a", Source: &proftree.SourceRef{File: "a.R", StartLine: 1}},
		{Label: "b", Source: &proftree.SourceRef{File: "b.R", StartLine: 1}},
	}}

	table := NewProjector(nil).Project(tree)
	if table.Mode != ModeDepthReduced {
		t.Errorf("expected depth-reduced mode for multi-file tree, got %s", table.Mode)
	}
}

func TestProjectDepthReducedOnUnreadablePath(t *testing.T) {
	tree := &proftree.Node{
		Label:  "f",
		Source: &proftree.SourceRef{File: "definitely/not/here.R", StartLine: 1},
	}

	p := NewProjector(nil)
	table := p.Project(tree)
	if table.Mode != ModeDepthReduced {
		t.Errorf("expected fallback to depth-reduced, got %s", table.Mode)
	}
	// The failed path is cached; a second projection must not retry.
	if !p.missing["definitely/not/here.R"] {
		t.Errorf("expected unresolvable path to be cached as missing")
	}
}

func TestProjectDepthCutoff(t *testing.T) {
	// Four levels deep; default cutoff is 2 below the focused root.
	tree := &proftree.Node{Label: "d0", Children: []*proftree.Node{
		{Label: "d1", Children: []*proftree.Node{
			{Label: "d2", Time: 0.7, Children: []*proftree.Node{
				{Label: "d3"},
			}},
		}},
		{Label: "d1b"},
	}}

	table := NewProjector(nil).Project(tree)
	if table.Mode != ModeDepthReduced {
		t.Fatalf("expected depth-reduced mode")
	}

	labels := make([]string, len(table.Rows))
	for i, r := range table.Rows {
		labels[i] = r.Label
	}
	want := []string{"d0", "d1", "d2", "d1b"}
	if len(labels) != len(want) {
		t.Fatalf("expected rows %v, got %v", want, labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("expected rows %v, got %v", want, labels)
		}
	}

	// The cutoff row is marked truncated and keeps its aggregate metrics.
	d2 := table.Rows[2]
	if !d2.Truncated {
		t.Errorf("expected d2 to be marked truncated")
	}
	if d2.Time != 0.7 {
		t.Errorf("expected d2 to keep its aggregate time, got %v", d2.Time)
	}
	// Rows without source carry structural paths usable as selectors.
	if got := proftree.Focus(tree, d2.Handle.Selector()); got.Label != "d2" {
		t.Errorf("expected d2's handle to navigate back to d2, got %q", got.Label)
	}
}

func TestProjectRowPositionsSequential(t *testing.T) {
	tree := &proftree.Node{Label: "r", Children: []*proftree.Node{
		{Label: "x"}, {Label: "y"},
	}}
	table := NewProjector(nil).Project(tree)
	for i, row := range table.Rows {
		if row.Position != i+1 {
			t.Errorf("row %d: expected position %d, got %d", i, i+1, row.Position)
		}
	}
}
