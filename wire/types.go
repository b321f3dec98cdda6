package wire

import (
	"github.com/google/uuid"

	"github.com/anirudhraja/proxywire/chat"
	"github.com/anirudhraja/proxywire/schema"
)

// ===== PROTOCOL PRIMITIVE DESCRIPTORS =====

// DataType describes how one protocol primitive is packed and unpacked.
type DataType[T any] interface {
	// Name is the primitive's protocol name, used in error paths.
	Name() string
	Pack(e *Encoder, v T) error
	Unpack(d *Decoder) (T, error)
}

type dataType[T any] struct {
	name   string
	pack   func(*Encoder, T) error
	unpack func(*Decoder) (T, error)
}

func (t dataType[T]) Name() string { return t.name }

func (t dataType[T]) Pack(e *Encoder, v T) error {
	return wrapWithField(t.pack(e, v), t.name)
}

func (t dataType[T]) Unpack(d *Decoder) (T, error) {
	v, err := t.unpack(d)
	if err != nil {
		var zero T
		return zero, wrapWithField(err, t.name)
	}
	return v, nil
}

func infallible[T any](f func(*Encoder, T)) func(*Encoder, T) error {
	return func(e *Encoder, v T) error {
		f(e, v)
		return nil
	}
}

// Descriptor table for every primitive the protocol uses.
var (
	VarInt    DataType[int32]           = dataType[int32]{"VarInt", infallible((*Encoder).EncodeVarInt), (*Decoder).DecodeVarInt}
	Byte      DataType[int8]            = dataType[int8]{"Byte", infallible((*Encoder).EncodeByte), (*Decoder).DecodeByte}
	UByte     DataType[uint8]           = dataType[uint8]{"UnsignedByte", infallible((*Encoder).EncodeUByte), (*Decoder).DecodeUByte}
	Boolean   DataType[bool]            = dataType[bool]{"Boolean", infallible((*Encoder).EncodeBoolean), (*Decoder).DecodeBoolean}
	Short     DataType[int16]           = dataType[int16]{"Short", infallible((*Encoder).EncodeShort), (*Decoder).DecodeShort}
	UShort    DataType[uint16]          = dataType[uint16]{"UnsignedShort", infallible((*Encoder).EncodeUShort), (*Decoder).DecodeUShort}
	Int       DataType[int32]           = dataType[int32]{"Int", infallible((*Encoder).EncodeInt), (*Decoder).DecodeInt}
	Long      DataType[int64]           = dataType[int64]{"Long", infallible((*Encoder).EncodeLong), (*Decoder).DecodeLong}
	Float     DataType[float32]         = dataType[float32]{"Float", infallible((*Encoder).EncodeFloat), (*Decoder).DecodeFloat}
	Double    DataType[float64]         = dataType[float64]{"Double", infallible((*Encoder).EncodeDouble), (*Decoder).DecodeDouble}
	String    DataType[string]          = dataType[string]{"String", infallible((*Encoder).EncodeString), (*Decoder).DecodeString}
	ByteArray DataType[[]byte]          = dataType[[]byte]{"ByteArray", infallible((*Encoder).EncodeBytes), (*Decoder).DecodeBytes}
	UUID      DataType[uuid.UUID]       = dataType[uuid.UUID]{"UUID", infallible((*Encoder).EncodeUUID), (*Decoder).DecodeUUID}
	Position  DataType[schema.Pos]      = dataType[schema.Pos]{"Position", infallible((*Encoder).EncodePosition), (*Decoder).DecodePosition}
	Angle     DataType[float64]         = dataType[float64]{"Angle", infallible((*Encoder).EncodeAngle), (*Decoder).DecodeAngle}
	Slot      DataType[schema.SlotData] = dataType[schema.SlotData]{"Slot", infallible((*Encoder).EncodeSlot), (*Decoder).DecodeSlot}
	Chat      DataType[*chat.Text]      = dataType[*chat.Text]{"Chat", (*Encoder).EncodeChat, (*Decoder).DecodeChat}
)

// Pack encodes a single value of primitive t.
func Pack[T any](t DataType[T], v T) ([]byte, error) {
	e := NewEncoder()
	if err := t.Pack(e, v); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Unpack decodes the next value of primitive t from d.
func Unpack[T any](d *Decoder, t DataType[T]) (T, error) {
	return t.Unpack(d)
}
