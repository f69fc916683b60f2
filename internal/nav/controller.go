package nav

import (
	"log/slog"

	"github.com/focal-dev/focal/internal/proftree"
	"github.com/focal-dev/focal/internal/project"
)

// Controller orchestrates drill-down navigation for one session. It is
// the only stateful component of the core: focus, collapse, and
// projection are all pure, and the controller sequences them against its
// owned stack.
type Controller struct {
	stack     *Stack
	projector *project.Projector
	log       *slog.Logger
}

// NewController creates a session controller viewing the root tree.
// A nil logger disables diagnostics.
func NewController(root *proftree.Node, projector *project.Projector, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		stack:     NewStack(root),
		projector: projector,
		log:       log,
	}
}

// Current projects the top of the stack without changing any state.
func (c *Controller) Current() project.Table {
	return c.projector.Project(c.stack.Top())
}

// Navigate focuses the current view with the selector, auto-collapses the
// result, pushes it, and returns the projection of the new top.
//
// Navigate never rejects: a selector that matches nothing fails open to
// the current view, so the user observes "nothing happens" rather than an
// error, and a subsequent Back undoes the (unchanged) frame.
func (c *Controller) Navigate(sel proftree.Selector) project.Table {
	top := c.stack.Top()
	focused := proftree.Focus(top, sel)
	if focused == top {
		c.log.Info("navigate: no match", "selector", sel.String())
	} else {
		c.log.Info("navigate", "selector", sel.String(), "target", focused.Label)
	}

	zoomed := proftree.Collapse(focused)
	c.stack.Push(zoomed)
	return c.projector.Project(zoomed)
}

// Back pops the top frame and returns the projection of the frame below.
// At the root this is a no-op self-loop.
func (c *Controller) Back() project.Table {
	if _, ok := c.stack.Pop(); ok {
		c.log.Info("back", "depth", c.stack.Depth())
	} else {
		c.log.Info("back: already at root")
	}
	return c.Current()
}

// Depth exposes the stack depth for breadcrumb display.
func (c *Controller) Depth() int {
	return c.stack.Depth()
}

// Breadcrumb returns the labels of all frames bottom-up.
func (c *Controller) Breadcrumb() []string {
	frames := c.stack.Frames()
	labels := make([]string, len(frames))
	for i, f := range frames {
		labels[i] = f.Label
	}
	return labels
}
