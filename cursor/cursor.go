// Package cursor provides the forward-only byte reader shared by the wire and
// tag-tree codecs.
//
// A Cursor is owned by exactly one decode call. It is not safe for concurrent
// use, and a partially consumed Cursor must not be handed to another decoder:
// there is no valid resumption point after a failed read.
package cursor

import (
	"fmt"
	"io"
)

// ErrUnderrun is returned (wrapped) when a read needs more bytes than remain.
// It is io.ErrUnexpectedEOF so stream-level callers can treat both alike.
var ErrUnderrun = io.ErrUnexpectedEOF

// Cursor is a byte slice plus a read position.
type Cursor struct {
	buf []byte
	pos int
}

// New creates a cursor positioned at the start of data. The cursor does not
// copy data; the caller must not modify it while decoding.
func New(data []byte) *Cursor {
	return &Cursor{buf: data}
}

// Pos returns the number of bytes consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the total length of the underlying data.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Next consumes and returns the next n bytes. The returned slice shares the
// underlying buffer.
func (c *Cursor) Next(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid read length %d", n)
	}
	if c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("need %d bytes, have %d: %w", n, len(c.buf)-c.pos, ErrUnderrun)
	}
	data := c.buf[c.pos : c.pos+n]
	c.pos += n
	return data, nil
}

// NextCopy is Next without buffer sharing.
func (c *Cursor) NextCopy(n int) ([]byte, error) {
	data, err := c.Next(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// ReadByte consumes a single byte.
func (c *Cursor) ReadByte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, fmt.Errorf("need 1 byte, have 0: %w", ErrUnderrun)
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// Peek returns the next byte without consuming it.
func (c *Cursor) Peek() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	return c.buf[c.pos], true
}

// Rest consumes everything that is left. The result is a copy.
func (c *Cursor) Rest() []byte {
	out := make([]byte, len(c.buf)-c.pos)
	copy(out, c.buf[c.pos:])
	c.pos = len(c.buf)
	return out
}

// Clone returns an independent cursor over the same bytes, positioned at the
// start. Use it to decode a payload twice instead of rewinding.
func (c *Cursor) Clone() *Cursor {
	return &Cursor{buf: c.buf}
}
