package wire

import (
	"github.com/anirudhraja/proxywire/registry"
)

// Encoder handles low-level protocol wire format encoding
type Encoder struct {
	buf      []byte
	registry *registry.Registry
}

// NewEncoder creates a new wire format encoder
func NewEncoder() *Encoder {
	return &Encoder{
		buf: make([]byte, 0),
	}
}

// NewEncoderWithRegistry creates an encoder with an item registry
func NewEncoderWithRegistry(reg *registry.Registry) *Encoder {
	return &Encoder{
		buf:      make([]byte, 0),
		registry: reg,
	}
}

// Bytes returns the encoded bytes
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of encoded bytes.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset clears the encoder buffer
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// EncodeRaw appends data verbatim.
func (e *Encoder) EncodeRaw(data []byte) {
	e.buf = append(e.buf, data...)
}
