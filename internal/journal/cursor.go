package journal

import (
	"time"

	"github.com/xolan/tt/internal/linebuf"
	"github.com/xolan/tt/internal/record"
)

// Cursor is a position within a line buffer.
//
// A fresh cursor sits before the first line. Position LineCount() is the
// end sentinel, one past the last line. Moves never fail: they clamp to the
// nearest boundary and Get reports false there.
type Cursor struct {
	buf   *linebuf.Buffer
	loc   *time.Location
	index int
	valid bool
}

// NewCursor returns a cursor before the first line of buf.
// Record start times are parsed in loc (time.Local if nil).
func NewCursor(buf *linebuf.Buffer, loc *time.Location) *Cursor {
	if buf == nil {
		buf = linebuf.New("")
	}
	return &Cursor{buf: buf, loc: loc}
}

// Buffer returns the buffer the cursor walks.
func (c *Cursor) Buffer() *linebuf.Buffer {
	return c.buf
}

// Position returns the current line index.
// ok is false while the cursor is before the first line.
func (c *Cursor) Position() (index int, ok bool) {
	return c.index, c.valid
}

// Forward moves n lines towards the end, stopping at the end sentinel.
// From before the first line, Forward(1) lands on line 0.
func (c *Cursor) Forward(n int) *Cursor {
	if n <= 0 {
		return c
	}
	count := c.buf.LineCount()
	target := n - 1
	if c.valid {
		// n may be close to math.MaxInt, so compare before adding
		if n > count-c.index {
			target = count
		} else {
			target = c.index + n
		}
	}
	if target > count {
		target = count
	}
	c.index, c.valid = target, true
	return c
}

// Backward moves n lines towards the start. Moving past line 0 leaves the
// cursor before the first line.
func (c *Cursor) Backward(n int) *Cursor {
	if !c.valid || n <= 0 {
		return c
	}
	if n > c.index {
		c.GoToStart()
		return c
	}
	c.index -= n
	return c
}

// GoToStart moves the cursor before the first line.
func (c *Cursor) GoToStart() {
	c.index, c.valid = 0, false
}

// GoToEnd moves the cursor to the end sentinel.
// On an empty buffer it goes back before the first line.
func (c *Cursor) GoToEnd() {
	count := c.buf.LineCount()
	if count == 0 {
		c.GoToStart()
		return
	}
	c.index, c.valid = count, true
}

// Get returns the item under the cursor.
// ok is false before the first line and at the end sentinel.
func (c *Cursor) Get() (Item, bool) {
	if !c.valid || c.index >= c.buf.LineCount() {
		return Item{}, false
	}
	line := c.buf.Line(c.index)
	r, err := record.Parse(line, c.loc)
	if err != nil {
		return OpaqueItem(line), true
	}
	return RecordItem(r), true
}

// Next moves one line forward and returns the item there.
func (c *Cursor) Next() (Item, bool) {
	return c.Forward(1).Get()
}

// Replace overwrites the current line with the item's text. At the end
// sentinel the item is appended. It returns the byte offset of the new line,
// or false if the cursor is before the first line.
func (c *Cursor) Replace(item Item) (int, bool) {
	if !c.valid {
		return 0, false
	}
	return c.buf.ReplaceLine(c.index, item.Text()), true
}

// Delete removes the current line and returns the byte offset where it
// started. It returns false if there is no current line.
func (c *Cursor) Delete() (int, bool) {
	if !c.valid || c.index >= c.buf.LineCount() {
		return 0, false
	}
	return c.buf.DeleteLine(c.index), true
}
