package nav

import (
	"testing"

	"github.com/focal-dev/focal/internal/proftree"
)

func TestStackStartsAtRoot(t *testing.T) {
	root := &proftree.Node{Label: "root"}
	s := NewStack(root)

	if s.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", s.Depth())
	}
	if s.Top() != root {
		t.Errorf("expected top to be the root")
	}
}

func TestStackPushPopRoundTrip(t *testing.T) {
	root := &proftree.Node{Label: "root"}
	sub := &proftree.Node{Label: "sub"}
	s := NewStack(root)

	before := s.Top()
	s.Push(sub)
	if s.Top() != sub {
		t.Fatalf("expected pushed frame on top")
	}

	popped, ok := s.Pop()
	if !ok || popped != sub {
		t.Fatalf("expected Pop to return the pushed frame")
	}
	if s.Top() != before {
		t.Errorf("expected pre-push top after round trip")
	}
}

// TestStackBottomFrameNeverPopped verifies the no-op policy: any number
// of pops leaves the root in place, and further pops report nothing done.
func TestStackBottomFrameNeverPopped(t *testing.T) {
	root := &proftree.Node{Label: "root"}
	s := NewStack(root)
	s.Push(&proftree.Node{Label: "a"})
	s.Push(&proftree.Node{Label: "b"})

	for i := 0; i < 10; i++ {
		s.Pop()
	}

	if s.Depth() != 1 {
		t.Fatalf("expected depth 1 after draining, got %d", s.Depth())
	}
	if s.Top() != root {
		t.Errorf("expected root on top after draining")
	}
	if _, ok := s.Pop(); ok {
		t.Errorf("expected pop at the bottom to be a no-op")
	}
}

func TestStackTopPanicsWhenEmptied(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected Top on a corrupted stack to panic")
		}
	}()

	s := &Stack{} // bypasses NewStack; unreachable in normal use
	s.Top()
}
