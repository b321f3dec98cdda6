package wire

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
)

// BytesDecoder handles length-delimited bytes decoding operations
type BytesDecoder struct {
	decoder *Decoder
}

// BytesEncoder handles length-delimited bytes encoding operations
type BytesEncoder struct {
	encoder *Encoder
}

// NewBytesDecoder creates a new bytes decoder
func NewBytesDecoder(d *Decoder) *BytesDecoder {
	return &BytesDecoder{decoder: d}
}

// NewBytesEncoder creates a new bytes encoder
func NewBytesEncoder(e *Encoder) *BytesEncoder {
	return &BytesEncoder{encoder: e}
}

// DECODER METHODS

func (bd *BytesDecoder) decodeLength() (int, error) {
	length, err := bd.decoder.DecodeVarInt()
	if err != nil {
		return 0, fmt.Errorf("failed to decode bytes length: %w", err)
	}
	if length < 0 {
		return 0, fmt.Errorf("invalid bytes length: %d", length)
	}
	return int(length), nil
}

// DecodeBytes decodes a VarInt length-prefixed byte array
func (bd *BytesDecoder) DecodeBytes() ([]byte, error) {
	length, err := bd.decodeLength()
	if err != nil {
		return nil, err
	}

	// Copy the data to avoid sharing the underlying buffer
	data, err := bd.decoder.c.NextCopy(length)
	if err != nil {
		return nil, fmt.Errorf("bytes truncated: %w", err)
	}
	return data, nil
}

// DecodeString decodes a length-prefixed UTF-8 string. The prefix counts
// bytes, not characters.
func (bd *BytesDecoder) DecodeString() (string, error) {
	length, err := bd.decodeLength()
	if err != nil {
		return "", err
	}

	data, err := bd.decoder.c.Next(length)
	if err != nil {
		return "", fmt.Errorf("string truncated: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("string is not valid UTF-8")
	}
	return string(data), nil
}

// ENCODER METHODS

// EncodeBytes encodes a byte array as length-delimited
func (be *BytesEncoder) EncodeBytes(data []byte) {
	// First encode the length as a varint
	be.encoder.EncodeVarInt(int32(len(data)))

	// Then append the data
	be.encoder.buf = append(be.encoder.buf, data...)
}

// EncodeString encodes a string as length-delimited bytes
func (be *BytesEncoder) EncodeString(s string) {
	be.encoder.EncodeVarInt(int32(len(s)))
	be.encoder.buf = append(be.encoder.buf, s...)
}

// UTILITY FUNCTIONS

// BytesSize returns the size needed to encode the given bytes
func BytesSize(data []byte) int {
	return VarIntSize(int32(len(data))) + len(data)
}

// StringSize returns the size needed to encode the given string
func StringSize(s string) int {
	return VarIntSize(int32(len(s))) + len(s)
}

// Convenience methods for direct access

// DecodeBytes - convenience method for main decoder
func (d *Decoder) DecodeBytes() ([]byte, error) {
	bd := NewBytesDecoder(d)
	return bd.DecodeBytes()
}

// DecodeString - convenience method for main decoder
func (d *Decoder) DecodeString() (string, error) {
	bd := NewBytesDecoder(d)
	return bd.DecodeString()
}

// DecodeUUID reads 16 raw bytes.
func (d *Decoder) DecodeUUID() (uuid.UUID, error) {
	b, err := d.c.Next(16)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.FromBytes(b)
}

// EncodeBytes - convenience method for main encoder
func (e *Encoder) EncodeBytes(data []byte) {
	be := NewBytesEncoder(e)
	be.EncodeBytes(data)
}

// EncodeString - convenience method for main encoder
func (e *Encoder) EncodeString(s string) {
	be := NewBytesEncoder(e)
	be.EncodeString(s)
}

// EncodeUUID writes the 16 raw bytes of id.
func (e *Encoder) EncodeUUID(id uuid.UUID) {
	e.buf = append(e.buf, id[:]...)
}
