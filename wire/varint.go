package wire

import (
	"errors"
	"io"
)

// MaxVarIntLen is the longest encoding of a 32-bit VarInt.
const MaxVarIntLen = 5

// Varint decoding errors
var (
	ErrVarintTooLong = errors.New("varint too long")
)

// VarintDecoder handles varint decoding operations
type VarintDecoder struct {
	decoder *Decoder
}

// VarintEncoder handles varint encoding operations
type VarintEncoder struct {
	encoder *Encoder
}

// NewVarintDecoder creates a new varint decoder
func NewVarintDecoder(d *Decoder) *VarintDecoder {
	return &VarintDecoder{decoder: d}
}

// NewVarintEncoder creates a new varint encoder
func NewVarintEncoder(e *Encoder) *VarintEncoder {
	return &VarintEncoder{encoder: e}
}

// DECODER METHODS

// DecodeVarInt decodes a VarInt. The 32-bit two's-complement value is
// restored, so an encoded 0xffffffff yields -1.
func (vd *VarintDecoder) DecodeVarInt() (int32, error) {
	return readVarInt(vd.decoder.c)
}

// ReadVarInt decodes a VarInt directly from a byte stream, e.g. a packet
// length prefix. io.EOF before the first byte is returned unchanged;
// running out mid-value is io.ErrUnexpectedEOF.
func ReadVarInt(r io.ByteReader) (int32, error) {
	return readVarInt(r)
}

func readVarInt(r io.ByteReader) (int32, error) {
	var result uint32
	var shift uint

	for i := 0; i < MaxVarIntLen; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if i > 0 && err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}

		// Bits past the 32nd are discarded.
		result |= uint32(b&0x7F) << shift

		// If MSB is not set, we're done
		if (b & 0x80) == 0 {
			return int32(result), nil
		}

		shift += 7
	}

	return 0, ErrVarintTooLong
}

// ENCODER METHODS

// EncodeVarInt encodes v as a VarInt. Negative values are written as their
// unsigned 32-bit reinterpretation and always take five bytes.
func (ve *VarintEncoder) EncodeVarInt(v int32) {
	ve.encoder.buf = AppendVarInt(ve.encoder.buf, v)
}

// AppendVarInt appends the VarInt encoding of v to buf.
func AppendVarInt(buf []byte, v int32) []byte {
	u := uint32(v)
	for u >= 0x80 {
		buf = append(buf, byte(u)|0x80)
		u >>= 7
	}
	return append(buf, byte(u))
}

// UTILITY FUNCTIONS

// VarIntSize returns the number of bytes needed to encode the given VarInt
func VarIntSize(v int32) int {
	u := uint32(v)
	switch {
	case u < 1<<7:
		return 1
	case u < 1<<14:
		return 2
	case u < 1<<21:
		return 3
	case u < 1<<28:
		return 4
	default:
		return 5
	}
}

// Convenience methods for direct access

// DecodeVarInt - convenience method for main decoder
func (d *Decoder) DecodeVarInt() (int32, error) {
	vd := NewVarintDecoder(d)
	return vd.DecodeVarInt()
}

// EncodeVarInt - convenience method for main encoder
func (e *Encoder) EncodeVarInt(v int32) {
	ve := NewVarintEncoder(e)
	ve.EncodeVarInt(v)
}
