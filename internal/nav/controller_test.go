package nav

import (
	"reflect"
	"testing"

	"github.com/focal-dev/focal/internal/proftree"
	"github.com/focal-dev/focal/internal/project"
)

// sessionTree builds R -> foo(2.0) -> bar(1.5, x.R:5) -> {baz, qux}, small
// enough to reason about and deep enough to exercise collapse.
func sessionTree() *proftree.Node {
	return &proftree.Node{Label: "R", Time: 3.0, Children: []*proftree.Node{
		{Label: "foo", Time: 2.0, Children: []*proftree.Node{
			{
				Label:  "bar",
				Time:   1.5,
				Source: &proftree.SourceRef{File: "x.R", StartLine: 5, EndLine: 5},
				Children: []*proftree.Node{
					{Label: "baz", Time: 0.9},
					{Label: "qux", Time: 0.4},
				},
			},
		}},
		{Label: "other", Time: 1.0},
	}}
}

func newTestController(root *proftree.Node) *Controller {
	return NewController(root, project.NewProjector(nil), nil)
}

// TestNavigateThenBackRestoresView is the end-to-end scenario: the table
// after Navigate+Back must equal, by value, the table before Navigate.
func TestNavigateThenBackRestoresView(t *testing.T) {
	c := newTestController(sessionTree())

	before := c.Current()
	c.Navigate(proftree.BySourceRef(proftree.SourceRef{File: "x.R", StartLine: 5, EndLine: 5}))
	after := c.Back()

	if !reflect.DeepEqual(before, after) {
		t.Errorf("expected identical tables before navigate and after back\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestNavigateFocusesAndCollapses(t *testing.T) {
	c := newTestController(sessionTree())

	table := c.Navigate(proftree.ByLabelContains("foo"))

	// foo has a single child bar, so collapse lands on bar.
	if c.Depth() != 2 {
		t.Fatalf("expected depth 2 after navigate, got %d", c.Depth())
	}
	if len(table.Rows) == 0 || table.Rows[0].Label != "bar" {
		t.Errorf("expected projection rooted at bar, got %+v", table.Rows)
	}
}

func TestNavigateNoMatchPushesUnchangedView(t *testing.T) {
	c := newTestController(sessionTree())
	before := c.Current()

	table := c.Navigate(proftree.ByLabelContains("no-such-call"))

	// Observable as "nothing happens": same table, but the frame is real
	// and Back pops it.
	if !reflect.DeepEqual(before, table) {
		t.Errorf("expected unchanged view on no-match navigate")
	}
	if c.Depth() != 2 {
		t.Errorf("expected the unchanged frame to be pushed, depth=%d", c.Depth())
	}
	c.Back()
	if c.Depth() != 1 {
		t.Errorf("expected back to pop the no-match frame")
	}
}

func TestBackAtRootIsSelfLoop(t *testing.T) {
	c := newTestController(sessionTree())
	before := c.Current()

	for i := 0; i < 3; i++ {
		if got := c.Back(); !reflect.DeepEqual(before, got) {
			t.Fatalf("expected back at root to keep the root view")
		}
	}
	if c.Depth() != 1 {
		t.Errorf("expected depth to stay 1, got %d", c.Depth())
	}
}

func TestBreadcrumb(t *testing.T) {
	c := newTestController(sessionTree())
	c.Navigate(proftree.ByLabelContains("foo"))

	crumbs := c.Breadcrumb()
	if len(crumbs) != 2 || crumbs[0] != "R" || crumbs[1] != "bar" {
		t.Errorf("expected breadcrumb [R bar], got %v", crumbs)
	}
}
