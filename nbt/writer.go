package nbt

import (
	"math"
)

// Writer encodes one uncompressed tag tree.
type Writer struct {
	buf   []byte
	order byteOrder
	tracker
}

// NewWriter creates a writer. littleEndian selects the Bedrock profile.
func NewWriter(littleEndian bool) *Writer {
	return &Writer{order: orderFor(littleEndian)}
}

// Bytes returns the encoded bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reset clears the writer buffer
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.path = w.path[:0]
}

// WriteRoot writes root as a named compound.
func (w *Writer) WriteRoot(root Tag) error {
	c, ok := root.Value.(*Compound)
	if !ok || c == nil {
		return w.writeErr("root must be %s, got %T", TagCompound, root.Value)
	}
	if err := w.writeHeader(TagCompound, root.Name); err != nil {
		return err
	}
	return w.writeCompound(c)
}

func (w *Writer) writeHeader(t TagType, name string) error {
	w.buf = append(w.buf, byte(t))
	return w.writeString(name)
}

func (w *Writer) writeString(s string) error {
	if len(s) > math.MaxInt16 {
		return w.writeErr("string of %d bytes exceeds %d", len(s), math.MaxInt16)
	}
	w.buf = w.order.AppendUint16(w.buf, uint16(len(s)))
	w.buf = append(w.buf, s...)
	return nil
}

func (w *Writer) writeLength(n int) error {
	if n > math.MaxInt32 {
		return w.writeErr("length %d exceeds %d", n, math.MaxInt32)
	}
	w.buf = w.order.AppendUint32(w.buf, uint32(n))
	return nil
}

// writePayload writes v without a discriminant or name.
func (w *Writer) writePayload(v Value) error {
	switch x := v.(type) {
	case End:
	case Byte:
		w.buf = append(w.buf, byte(x))
	case Short:
		w.buf = w.order.AppendUint16(w.buf, uint16(x))
	case Int:
		w.buf = w.order.AppendUint32(w.buf, uint32(x))
	case Long:
		w.buf = w.order.AppendUint64(w.buf, uint64(x))
	case Float:
		w.buf = w.order.AppendUint32(w.buf, math.Float32bits(float32(x)))
	case Double:
		w.buf = w.order.AppendUint64(w.buf, math.Float64bits(float64(x)))
	case ByteArray:
		if err := w.writeLength(len(x)); err != nil {
			return err
		}
		for _, b := range x {
			w.buf = append(w.buf, byte(b))
		}
	case String:
		return w.writeString(string(x))
	case *List:
		if x == nil {
			return w.writeErr("nil list")
		}
		return w.writeList(x)
	case *Compound:
		if x == nil {
			return w.writeErr("nil compound")
		}
		return w.writeCompound(x)
	case IntArray:
		if err := w.writeLength(len(x)); err != nil {
			return err
		}
		for _, i := range x {
			w.buf = w.order.AppendUint32(w.buf, uint32(i))
		}
	case LongArray:
		if err := w.writeLength(len(x)); err != nil {
			return err
		}
		for _, l := range x {
			w.buf = w.order.AppendUint64(w.buf, uint64(l))
		}
	default:
		return w.writeErr("unknown tag value %T", v)
	}
	return nil
}

func (w *Writer) writeList(l *List) error {
	if !l.Elem.Valid() {
		return w.writeErr("unknown list element type %d", byte(l.Elem))
	}
	if l.Elem == TagEnd && len(l.Items) > 0 {
		return w.writeErr("list of %s with %d elements", TagEnd, len(l.Items))
	}
	w.buf = append(w.buf, byte(l.Elem))
	if err := w.writeLength(len(l.Items)); err != nil {
		return err
	}
	for i, item := range l.Items {
		w.push(indexSegment(i))
		if item == nil || item.Type() != l.Elem {
			err := w.writeErr("list element %T does not match %s", item, l.Elem)
			w.pop()
			return err
		}
		err := w.writePayload(item)
		w.pop()
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeCompound(c *Compound) error {
	for name, child := range c.All() {
		w.push(name)
		if child == nil {
			err := w.writeErr("nil value")
			w.pop()
			return err
		}
		if _, ok := child.(End); ok {
			err := w.writeErr("%s cannot be a compound child", TagEnd)
			w.pop()
			return err
		}
		if err := w.writeHeader(child.Type(), name); err != nil {
			w.pop()
			return err
		}
		err := w.writePayload(child)
		w.pop()
		if err != nil {
			return err
		}
	}
	w.buf = append(w.buf, byte(TagEnd))
	return nil
}
