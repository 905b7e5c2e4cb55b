// Package session tracks the navigation cursor over the sorted image list.
// The cursor is a single index clamped to [0, len(names)-1]; it never wraps
// and has no terminal state. Callers serialize access — the editor handles
// one user action at a time.
package session

// Cursor points at the currently displayed image within a fixed, sorted
// list of filenames.
type Cursor struct {
	names []string
	index int
}

// New creates a cursor at index 0 over the given filenames.
// The slice must be non-empty and already sorted; the cursor does not
// re-sort or copy it.
func New(names []string) *Cursor {
	return &Cursor{names: names}
}

// Index returns the current position.
func (c *Cursor) Index() int {
	return c.index
}

// Name returns the filename at the current position.
func (c *Cursor) Name() string {
	return c.names[c.index]
}

// Len returns the total number of images.
func (c *Cursor) Len() int {
	return len(c.names)
}

// Next advances the cursor, clamping at the last index.
func (c *Cursor) Next() {
	if c.index < len(c.names)-1 {
		c.index++
	}
}

// Prev moves the cursor back, clamping at 0.
func (c *Cursor) Prev() {
	if c.index > 0 {
		c.index--
	}
}

// JumpTo moves the cursor to the named image and reports whether the name
// was found. An unknown name leaves the cursor where it is; callers treat
// that as a zero-step refresh of the current image.
func (c *Cursor) JumpTo(name string) bool {
	for i, n := range c.names {
		if n == name {
			c.index = i
			return true
		}
	}
	return false
}
