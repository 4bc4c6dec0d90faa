package carousel

import (
	"errors"
	"testing"
)

func TestAdvanceWraps(t *testing.T) {
	c := New(3)

	c = c.Advance(1)
	if c.Current != 1 {
		t.Errorf("expected 1, got %d", c.Current)
	}
	c = c.Advance(1)
	c = c.Advance(1)
	if c.Current != 0 {
		t.Errorf("expected wrap to 0, got %d", c.Current)
	}

	c = c.Advance(-1)
	if c.Current != 2 {
		t.Errorf("expected wrap back to 2, got %d", c.Current)
	}

	// large deltas stay in range
	c = c.Advance(-7)
	if c.Current < 0 || c.Current >= c.Count {
		t.Errorf("index %d out of range", c.Current)
	}
}

func TestAdvanceEmpty(t *testing.T) {
	c := New(0)
	c = c.Advance(1)
	if c.Current != 0 {
		t.Errorf("empty gallery must stay at 0, got %d", c.Current)
	}
	c = c.Advance(-5)
	if c.Current != 0 {
		t.Errorf("empty gallery must stay at 0, got %d", c.Current)
	}
}

// n forward steps then n backward steps land on the start.
func TestAdvanceRoundTrip(t *testing.T) {
	for _, count := range []int{1, 2, 5, 11} {
		c := New(count)
		for i := 0; i < count; i++ {
			c = c.Advance(1)
		}
		for i := 0; i < count; i++ {
			c = c.Advance(-1)
		}
		if c.Current != 0 {
			t.Errorf("count %d: expected 0 after round trip, got %d", count, c.Current)
		}
	}
}

func TestJumpTo(t *testing.T) {
	c := New(4)

	c, err := c.JumpTo(2)
	if err != nil {
		t.Fatalf("jump failed: %v", err)
	}
	if c.Current != 2 {
		t.Errorf("expected 2, got %d", c.Current)
	}

	if _, err := c.JumpTo(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := c.JumpTo(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	// position unchanged after a rejected jump
	if c.Current != 2 {
		t.Errorf("rejected jump must not move, got %d", c.Current)
	}
}

func TestJumpToEmpty(t *testing.T) {
	c := New(0)
	c, err := c.JumpTo(0)
	if err != nil {
		t.Fatalf("empty gallery jump must be a no-op, got %v", err)
	}
	if c.Current != 0 {
		t.Errorf("empty gallery must stay at 0, got %d", c.Current)
	}
	if _, err := c.JumpTo(3); err != nil {
		t.Errorf("empty gallery jump must be a no-op, got %v", err)
	}
}

func TestHasControls(t *testing.T) {
	if New(0).HasControls() {
		t.Error("empty gallery must hide controls")
	}
	if New(1).HasControls() {
		t.Error("single image must hide controls")
	}
	if !New(2).HasControls() {
		t.Error("two images must show controls")
	}
}
