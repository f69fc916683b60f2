// Package nav holds the session-scoped navigation state: the stack of
// focused snapshots and the controller that drives it.
//
// One Controller (and therefore one Stack) is created per session, with
// the root tree as its only frame, and discarded when the session ends.
// Nothing in this package is shared across sessions and nothing performs
// I/O; each user action is handled to completion before the next.
package nav

import "github.com/focal-dev/focal/internal/proftree"

// Stack is the ordered history of focused snapshots. The bottom frame is
// always the full root tree and is never popped; the top frame is the
// currently displayed view. Frames are pointers into the immutable loaded
// tree, never copies.
type Stack struct {
	frames []*proftree.Node
}

// NewStack creates a stack holding the root tree as its sole frame.
func NewStack(root *proftree.Node) *Stack {
	return &Stack{frames: []*proftree.Node{root}}
}

// Top returns the current frame.
//
// An empty stack is unreachable by construction (the bottom frame cannot
// be popped); if it ever happens the stack has been corrupted and
// downstream behavior would be undefined, so Top fails loudly instead of
// recovering.
func (s *Stack) Top() *proftree.Node {
	if len(s.frames) == 0 {
		panic("nav: navigation stack is empty; invariant violated")
	}
	return s.frames[len(s.frames)-1]
}

// Push appends a new focused snapshot. Always succeeds.
func (s *Stack) Push(tree *proftree.Node) {
	s.frames = append(s.frames, tree)
}

// Pop removes and returns the top frame. Popping the sole remaining frame
// is a deliberate no-op returning (nil, false): back at the root does
// nothing, and is not an error.
func (s *Stack) Pop() (*proftree.Node, bool) {
	if len(s.frames) <= 1 {
		return nil, false
	}
	top := s.frames[len(s.frames)-1]
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return top, true
}

// Depth returns the number of frames, root included.
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Frames returns the stack bottom-up, for breadcrumb rendering. The
// returned slice is a copy; mutating it does not affect the stack.
func (s *Stack) Frames() []*proftree.Node {
	out := make([]*proftree.Node, len(s.frames))
	copy(out, s.frames)
	return out
}
