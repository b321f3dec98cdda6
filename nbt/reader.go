package nbt

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/anirudhraja/proxywire/cursor"
)

// MaxDepth bounds compound and list nesting while reading.
const MaxDepth = 512

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func orderFor(littleEndian bool) byteOrder {
	if littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Reader decodes one uncompressed tag tree. Byte order applies to every
// multi-byte number and to every string, list and array length.
type Reader struct {
	c     *cursor.Cursor
	order byteOrder
	depth int
	tracker
}

// NewReader creates a reader over data. littleEndian selects the Bedrock
// profile; the default is big-endian.
func NewReader(data []byte, littleEndian bool) *Reader {
	return &Reader{c: cursor.New(data), order: orderFor(littleEndian)}
}

// ReadRoot reads the root tag, which must be a named compound.
func (r *Reader) ReadRoot() (Tag, error) {
	t, err := r.readType()
	if err != nil {
		return Tag{}, err
	}
	if t != TagCompound {
		return Tag{}, r.parseErr("expected %s as root, got %s", TagCompound, t)
	}
	name, err := r.readString()
	if err != nil {
		return Tag{}, err
	}
	c, err := r.readCompound()
	if err != nil {
		return Tag{}, err
	}
	return Tag{Name: name, Value: c}, nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return r.c.Remaining()
}

func (r *Reader) next(n int) ([]byte, error) {
	data, err := r.c.Next(n)
	if err != nil {
		return nil, &ParseError{Path: r.snapshot(), Err: err}
	}
	return data, nil
}

func (r *Reader) readType() (TagType, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	t := TagType(b[0])
	if !t.Valid() {
		return 0, r.parseErr("unknown tag type %d", b[0])
	}
	return t, nil
}

func (r *Reader) readInt8() (int8, error) {
	b, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (r *Reader) readInt16() (int16, error) {
	b, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return int16(r.order.Uint16(b)), nil
}

func (r *Reader) readInt32() (int32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return int32(r.order.Uint32(b)), nil
}

func (r *Reader) readInt64() (int64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return int64(r.order.Uint64(b)), nil
}

func (r *Reader) readString() (string, error) {
	length, err := r.readInt16()
	if err != nil {
		return "", err
	}
	if length < 0 {
		return "", r.parseErr("invalid string length: %d", length)
	}
	data, err := r.next(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", r.parseErr("string is not valid UTF-8")
	}
	return string(data), nil
}

// readLength reads an array or list length and checks that at least
// length*elemSize bytes remain, so a hostile length cannot force a large
// allocation.
func (r *Reader) readLength(kind TagType, elemSize int) (int, error) {
	length, err := r.readInt32()
	if err != nil {
		return 0, err
	}
	if length < 0 {
		return 0, r.parseErr("invalid %s length: %d", kind, length)
	}
	if need := int64(length) * int64(elemSize); need > int64(r.c.Remaining()) {
		return 0, r.parseErr("expected %d bytes for %s, got %d", need, kind, r.c.Remaining())
	}
	return int(length), nil
}

func (r *Reader) readTag(t TagType) (Value, error) {
	switch t {
	case TagEnd:
		return End{}, nil
	case TagByte:
		v, err := r.readInt8()
		return Byte(v), err
	case TagShort:
		v, err := r.readInt16()
		return Short(v), err
	case TagInt:
		v, err := r.readInt32()
		return Int(v), err
	case TagLong:
		v, err := r.readInt64()
		return Long(v), err
	case TagFloat:
		v, err := r.readInt32()
		return Float(math.Float32frombits(uint32(v))), err
	case TagDouble:
		v, err := r.readInt64()
		return Double(math.Float64frombits(uint64(v))), err
	case TagByteArray:
		return r.readByteArray()
	case TagString:
		v, err := r.readString()
		return String(v), err
	case TagList:
		return r.readList()
	case TagCompound:
		return r.readCompound()
	case TagIntArray:
		return r.readIntArray()
	case TagLongArray:
		return r.readLongArray()
	default:
		return nil, r.parseErr("unknown tag type %d", byte(t))
	}
}

func (r *Reader) readByteArray() (ByteArray, error) {
	n, err := r.readLength(TagByteArray, 1)
	if err != nil {
		return nil, err
	}
	data, err := r.next(n)
	if err != nil {
		return nil, err
	}
	out := make(ByteArray, n)
	for i, b := range data {
		out[i] = int8(b)
	}
	return out, nil
}

func (r *Reader) readIntArray() (IntArray, error) {
	n, err := r.readLength(TagIntArray, 4)
	if err != nil {
		return nil, err
	}
	data, err := r.next(n * 4)
	if err != nil {
		return nil, err
	}
	out := make(IntArray, n)
	for i := range out {
		out[i] = int32(r.order.Uint32(data[i*4:]))
	}
	return out, nil
}

func (r *Reader) readLongArray() (LongArray, error) {
	n, err := r.readLength(TagLongArray, 8)
	if err != nil {
		return nil, err
	}
	data, err := r.next(n * 8)
	if err != nil {
		return nil, err
	}
	out := make(LongArray, n)
	for i := range out {
		out[i] = int64(r.order.Uint64(data[i*8:]))
	}
	return out, nil
}

func (r *Reader) enter() error {
	r.depth++
	if r.depth > MaxDepth {
		return r.parseErr("nesting deeper than %d", MaxDepth)
	}
	return nil
}

func (r *Reader) readList() (*List, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer func() { r.depth-- }()

	elem, err := r.readType()
	if err != nil {
		return nil, err
	}
	// Every element except End occupies at least one byte.
	minSize := 1
	if elem == TagEnd {
		minSize = 0
	}
	n, err := r.readLength(TagList, minSize)
	if err != nil {
		return nil, err
	}
	if elem == TagEnd && n > 0 {
		return nil, r.parseErr("list of %s with %d elements", TagEnd, n)
	}

	l := &List{Elem: elem, Items: make([]Value, 0, n)}
	for i := 0; i < n; i++ {
		r.push(indexSegment(i))
		v, err := r.readTag(elem)
		r.pop()
		if err != nil {
			return nil, err
		}
		l.Items = append(l.Items, v)
	}
	return l, nil
}

func (r *Reader) readCompound() (*Compound, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer func() { r.depth-- }()

	c := NewCompound()
	for {
		t, err := r.readType()
		if err != nil {
			return nil, err
		}
		if t == TagEnd {
			return c, nil
		}
		name, err := r.readString()
		if err != nil {
			return nil, err
		}
		r.push(name)
		v, err := r.readTag(t)
		r.pop()
		if err != nil {
			return nil, err
		}
		c.Set(name, v)
	}
}
