package wire

import (
	"github.com/anirudhraja/proxywire/cursor"
	"github.com/anirudhraja/proxywire/registry"
)

// Decoder reads protocol primitives from a packet payload.
//
// A Decoder owns its cursor: it must not be shared between goroutines, and
// after a failed read the remaining bytes have no defined meaning.
type Decoder struct {
	c        *cursor.Cursor
	registry *registry.Registry
}

// NewDecoder creates a new wire format decoder
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		c: cursor.New(data),
	}
}

// NewDecoderWithRegistry creates a decoder that resolves slot item ids
// through reg.
func NewDecoderWithRegistry(data []byte, reg *registry.Registry) *Decoder {
	return &Decoder{
		c:        cursor.New(data),
		registry: reg,
	}
}

// NewCursorDecoder creates a decoder over an existing cursor. reg may be nil.
func NewCursorDecoder(c *cursor.Cursor, reg *registry.Registry) *Decoder {
	return &Decoder{
		c:        c,
		registry: reg,
	}
}

// Cursor returns the underlying cursor.
func (d *Decoder) Cursor() *cursor.Cursor {
	return d.c
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return d.c.Remaining()
}

// Clone returns a decoder over the same payload, positioned at its start.
func (d *Decoder) Clone() *Decoder {
	return &Decoder{
		c:        d.c.Clone(),
		registry: d.registry,
	}
}

// DecodeRaw consumes n bytes. The result is a copy.
func (d *Decoder) DecodeRaw(n int) ([]byte, error) {
	return d.c.NextCopy(n)
}

// DecodeRest consumes every remaining byte.
func (d *Decoder) DecodeRest() []byte {
	return d.c.Rest()
}
