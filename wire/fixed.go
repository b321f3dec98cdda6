package wire

import (
	"encoding/binary"
	"math"
)

// FixedDecoder handles fixed-width decoding operations. All multi-byte
// values are big-endian.
type FixedDecoder struct {
	decoder *Decoder
}

// FixedEncoder handles fixed-width encoding operations
type FixedEncoder struct {
	encoder *Encoder
}

// NewFixedDecoder creates a new fixed decoder
func NewFixedDecoder(d *Decoder) *FixedDecoder {
	return &FixedDecoder{decoder: d}
}

// NewFixedEncoder creates a new fixed encoder
func NewFixedEncoder(e *Encoder) *FixedEncoder {
	return &FixedEncoder{encoder: e}
}

// DECODER METHODS

// DecodeFixed16 decodes a 16-bit fixed-width value
func (fd *FixedDecoder) DecodeFixed16() (uint16, error) {
	b, err := fd.decoder.c.Next(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// DecodeFixed32 decodes a 32-bit fixed-width value
func (fd *FixedDecoder) DecodeFixed32() (uint32, error) {
	b, err := fd.decoder.c.Next(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// DecodeFixed64 decodes a 64-bit fixed-width value
func (fd *FixedDecoder) DecodeFixed64() (uint64, error) {
	b, err := fd.decoder.c.Next(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// ENCODER METHODS

// EncodeFixed16 encodes a 16-bit fixed-width value
func (fe *FixedEncoder) EncodeFixed16(v uint16) {
	fe.encoder.buf = binary.BigEndian.AppendUint16(fe.encoder.buf, v)
}

// EncodeFixed32 encodes a 32-bit fixed-width value
func (fe *FixedEncoder) EncodeFixed32(v uint32) {
	fe.encoder.buf = binary.BigEndian.AppendUint32(fe.encoder.buf, v)
}

// EncodeFixed64 encodes a 64-bit fixed-width value
func (fe *FixedEncoder) EncodeFixed64(v uint64) {
	fe.encoder.buf = binary.BigEndian.AppendUint64(fe.encoder.buf, v)
}

// Convenience methods for direct access

// DecodeByte decodes a signed byte.
func (d *Decoder) DecodeByte() (int8, error) {
	b, err := d.c.ReadByte()
	return int8(b), err
}

// DecodeUByte decodes an unsigned byte.
func (d *Decoder) DecodeUByte() (uint8, error) {
	return d.c.ReadByte()
}

// DecodeBoolean decodes a boolean. Any non-zero byte is true.
func (d *Decoder) DecodeBoolean() (bool, error) {
	b, err := d.c.ReadByte()
	return b != 0, err
}

func (d *Decoder) DecodeShort() (int16, error) {
	v, err := NewFixedDecoder(d).DecodeFixed16()
	return int16(v), err
}

func (d *Decoder) DecodeUShort() (uint16, error) {
	return NewFixedDecoder(d).DecodeFixed16()
}

func (d *Decoder) DecodeInt() (int32, error) {
	v, err := NewFixedDecoder(d).DecodeFixed32()
	return int32(v), err
}

func (d *Decoder) DecodeLong() (int64, error) {
	v, err := NewFixedDecoder(d).DecodeFixed64()
	return int64(v), err
}

func (d *Decoder) DecodeFloat() (float32, error) {
	v, err := NewFixedDecoder(d).DecodeFixed32()
	return math.Float32frombits(v), err
}

func (d *Decoder) DecodeDouble() (float64, error) {
	v, err := NewFixedDecoder(d).DecodeFixed64()
	return math.Float64frombits(v), err
}

// EncodeByte encodes a signed byte.
func (e *Encoder) EncodeByte(v int8) {
	e.buf = append(e.buf, byte(v))
}

// EncodeUByte encodes an unsigned byte.
func (e *Encoder) EncodeUByte(v uint8) {
	e.buf = append(e.buf, v)
}

// EncodeBoolean encodes a boolean as 0x01 or 0x00.
func (e *Encoder) EncodeBoolean(v bool) {
	if v {
		e.buf = append(e.buf, 0x01)
	} else {
		e.buf = append(e.buf, 0x00)
	}
}

func (e *Encoder) EncodeShort(v int16) {
	NewFixedEncoder(e).EncodeFixed16(uint16(v))
}

func (e *Encoder) EncodeUShort(v uint16) {
	NewFixedEncoder(e).EncodeFixed16(v)
}

func (e *Encoder) EncodeInt(v int32) {
	NewFixedEncoder(e).EncodeFixed32(uint32(v))
}

func (e *Encoder) EncodeLong(v int64) {
	NewFixedEncoder(e).EncodeFixed64(uint64(v))
}

func (e *Encoder) EncodeFloat(v float32) {
	NewFixedEncoder(e).EncodeFixed32(math.Float32bits(v))
}

func (e *Encoder) EncodeDouble(v float64) {
	NewFixedEncoder(e).EncodeFixed64(math.Float64bits(v))
}
