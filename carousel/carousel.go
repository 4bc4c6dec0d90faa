// Package carousel tracks the visible index into a campaign's image
// gallery. Pure index arithmetic; rendering happens in the views.
package carousel

import "errors"

// ErrIndexOutOfRange is returned by JumpTo for an index outside the
// gallery.
var ErrIndexOutOfRange = errors.New("carousel index out of range")

// Carousel is the position within one image gallery. The zero value is
// an empty gallery.
type Carousel struct {
	Count   int
	Current int
}

// New starts a carousel at the first image.
func New(count int) Carousel {
	if count < 0 {
		count = 0
	}
	return Carousel{Count: count}
}

// Advance moves the index by delta with wrap-around in both
// directions. An empty gallery is a no-op.
func (c Carousel) Advance(delta int) Carousel {
	if c.Count == 0 {
		return c
	}
	c.Current = ((c.Current+delta)%c.Count + c.Count) % c.Count
	return c
}

// JumpTo sets the index directly, rejecting positions outside the
// gallery. An empty gallery is a no-op, same as Advance.
func (c Carousel) JumpTo(i int) (Carousel, error) {
	if c.Count == 0 {
		return c, nil
	}
	if i < 0 || i >= c.Count {
		return c, ErrIndexOutOfRange
	}
	c.Current = i
	return c, nil
}

// HasControls reports whether navigation makes sense: single-image and
// empty galleries render without prev/next affordances.
func (c Carousel) HasControls() bool {
	return c.Count > 1
}
