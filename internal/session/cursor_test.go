package session

import (
	"testing"
)

func newTestCursor() *Cursor {
	return New([]string{"a.png", "b.jpg", "c.png"})
}

func TestNextPrevClamping(t *testing.T) {
	c := newTestCursor()

	if c.Index() != 0 {
		t.Fatalf("Index() = %d, want 0", c.Index())
	}

	// Prev at 0 is a no-op.
	c.Prev()
	if c.Index() != 0 {
		t.Errorf("Prev at 0: Index() = %d, want 0", c.Index())
	}

	c.Next()
	c.Next()
	if c.Index() != 2 || c.Name() != "c.png" {
		t.Errorf("after two Next: got (%d, %q), want (2, \"c.png\")", c.Index(), c.Name())
	}

	// Next at the last index is a no-op.
	c.Next()
	if c.Index() != 2 {
		t.Errorf("Next at end: Index() = %d, want 2", c.Index())
	}
}

func TestPrevNextRoundTrip(t *testing.T) {
	// Away from the bounds, Prev then Next (and vice versa) returns to the
	// starting index.
	c := newTestCursor()
	c.Next() // index 1

	c.Prev()
	c.Next()
	if c.Index() != 1 {
		t.Errorf("Prev+Next from 1: Index() = %d, want 1", c.Index())
	}

	c.Next()
	c.Prev()
	if c.Index() != 1 {
		t.Errorf("Next+Prev from 1: Index() = %d, want 1", c.Index())
	}
}

func TestJumpTo(t *testing.T) {
	tests := []struct {
		name      string
		wantFound bool
		wantIndex int
	}{
		{"b.jpg", true, 1},
		{"a.png", true, 0},
		{"c.png", true, 2},
		{"missing.png", false, 0},
		{"", false, 0},
	}
	for _, tt := range tests {
		c := newTestCursor()
		found := c.JumpTo(tt.name)
		if found != tt.wantFound {
			t.Errorf("JumpTo(%q) = %v, want %v", tt.name, found, tt.wantFound)
		}
		if c.Index() != tt.wantIndex {
			t.Errorf("JumpTo(%q): Index() = %d, want %d", tt.name, c.Index(), tt.wantIndex)
		}
	}
}

func TestJumpToUnknownKeepsCursor(t *testing.T) {
	c := newTestCursor()
	c.Next()
	c.Next()

	if c.JumpTo("nope.bmp") {
		t.Error("JumpTo(unknown) = true, want false")
	}
	if c.Index() != 2 {
		t.Errorf("cursor moved on unknown jump: Index() = %d, want 2", c.Index())
	}
}
