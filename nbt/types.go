package nbt

import (
	"fmt"
	"iter"
	"math"
)

// TagType is the one-byte discriminant that precedes every named tag and
// every list.
type TagType byte

const (
	TagEnd       TagType = 0
	TagByte      TagType = 1
	TagShort     TagType = 2
	TagInt       TagType = 3
	TagLong      TagType = 4
	TagFloat     TagType = 5
	TagDouble    TagType = 6
	TagByteArray TagType = 7
	TagString    TagType = 8
	TagList      TagType = 9
	TagCompound  TagType = 10
	TagIntArray  TagType = 11
	TagLongArray TagType = 12
)

var tagNames = [...]string{
	TagEnd:       "TAG_End",
	TagByte:      "TAG_Byte",
	TagShort:     "TAG_Short",
	TagInt:       "TAG_Int",
	TagLong:      "TAG_Long",
	TagFloat:     "TAG_Float",
	TagDouble:    "TAG_Double",
	TagByteArray: "TAG_Byte_Array",
	TagString:    "TAG_String",
	TagList:      "TAG_List",
	TagCompound:  "TAG_Compound",
	TagIntArray:  "TAG_Int_Array",
	TagLongArray: "TAG_Long_Array",
}

func (t TagType) String() string {
	if t.Valid() {
		return tagNames[t]
	}
	return fmt.Sprintf("TAG_Unknown(%d)", byte(t))
}

// Valid reports whether t is one of the 13 known kinds.
func (t TagType) Valid() bool {
	return t <= TagLongArray
}

// Value is the payload of a tag. The set of implementations is closed: it is
// exactly the 13 types declared in this package.
type Value interface {
	Type() TagType
	isValue()
}

type (
	End       struct{}
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []int8
	String    string
	IntArray  []int32
	LongArray []int64
)

func (End) Type() TagType       { return TagEnd }
func (Byte) Type() TagType      { return TagByte }
func (Short) Type() TagType     { return TagShort }
func (Int) Type() TagType       { return TagInt }
func (Long) Type() TagType      { return TagLong }
func (Float) Type() TagType     { return TagFloat }
func (Double) Type() TagType    { return TagDouble }
func (ByteArray) Type() TagType { return TagByteArray }
func (String) Type() TagType    { return TagString }
func (*List) Type() TagType     { return TagList }
func (*Compound) Type() TagType { return TagCompound }
func (IntArray) Type() TagType  { return TagIntArray }
func (LongArray) Type() TagType { return TagLongArray }

func (End) isValue()       {}
func (Byte) isValue()      {}
func (Short) isValue()     {}
func (Int) isValue()       {}
func (Long) isValue()      {}
func (Float) isValue()     {}
func (Double) isValue()    {}
func (ByteArray) isValue() {}
func (String) isValue()    {}
func (*List) isValue()     {}
func (*Compound) isValue() {}
func (IntArray) isValue()  {}
func (LongArray) isValue() {}

// Tag is a named value. Names exist only on compound children and on the root;
// list elements are bare Values.
type Tag struct {
	Name  string
	Value Value
}

// Compound returns the tag's value as a compound, or nil if it is not one.
func (t Tag) Compound() *Compound {
	c, _ := t.Value.(*Compound)
	return c
}

// List is a homogeneous sequence of unnamed values. An empty list normally
// carries TagEnd as its element type.
type List struct {
	Elem  TagType
	Items []Value
}

// NewList builds a list, taking the element type from the first item.
func NewList(items ...Value) *List {
	l := &List{Elem: TagEnd}
	if len(items) > 0 {
		l.Elem = items[0].Type()
	}
	l.Items = append(l.Items, items...)
	return l
}

// Append adds v to the list. The first value appended to an End-typed empty
// list fixes the element type; later values must match it.
func (l *List) Append(v Value) error {
	if v == nil {
		return fmt.Errorf("cannot append nil value to list")
	}
	if len(l.Items) == 0 && l.Elem == TagEnd {
		l.Elem = v.Type()
	}
	if v.Type() != l.Elem {
		return fmt.Errorf("cannot append %s to list of %s", v.Type(), l.Elem)
	}
	l.Items = append(l.Items, v)
	return nil
}

func (l *List) Len() int {
	return len(l.Items)
}

// Compound is an insertion-ordered mapping from names to values.
type Compound struct {
	names  []string
	values map[string]Value
}

func NewCompound() *Compound {
	return &Compound{values: make(map[string]Value)}
}

// Set stores v under name. Replacing an existing name keeps its position.
func (c *Compound) Set(name string, v Value) *Compound {
	if c.values == nil {
		c.values = make(map[string]Value)
	}
	if _, exists := c.values[name]; !exists {
		c.names = append(c.names, name)
	}
	c.values[name] = v
	return c
}

func (c *Compound) Get(name string) (Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Delete removes name and reports whether it was present.
func (c *Compound) Delete(name string) bool {
	if _, ok := c.values[name]; !ok {
		return false
	}
	delete(c.values, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	return true
}

func (c *Compound) Len() int {
	return len(c.names)
}

// Names returns the child names in insertion order.
func (c *Compound) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// All iterates children in insertion order.
func (c *Compound) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range c.names {
			if !yield(name, c.values[name]) {
				return
			}
		}
	}
}

// Equal reports whether two values are structurally equal: same kinds, same
// payloads, same list element types and the same compound children. Compound
// child order is not significant. Floats compare by bit pattern.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}

	switch x := a.(type) {
	case End:
		return true
	case Byte:
		return x == b.(Byte)
	case Short:
		return x == b.(Short)
	case Int:
		return x == b.(Int)
	case Long:
		return x == b.(Long)
	case Float:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Double)))
	case String:
		return x == b.(String)
	case ByteArray:
		return equalSlices(x, b.(ByteArray))
	case IntArray:
		return equalSlices(x, b.(IntArray))
	case LongArray:
		return equalSlices(x, b.(LongArray))
	case *List:
		y := b.(*List)
		if x.Elem != y.Elem || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Compound:
		y := b.(*Compound)
		if x.Len() != y.Len() {
			return false
		}
		for name, v := range x.All() {
			w, ok := y.Get(name)
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalSlices[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch x := v.(type) {
	case ByteArray:
		return append(ByteArray(nil), x...)
	case IntArray:
		return append(IntArray(nil), x...)
	case LongArray:
		return append(LongArray(nil), x...)
	case *List:
		out := &List{Elem: x.Elem, Items: make([]Value, len(x.Items))}
		for i, item := range x.Items {
			out.Items[i] = Clone(item)
		}
		return out
	case *Compound:
		out := NewCompound()
		for name, child := range x.All() {
			out.Set(name, Clone(child))
		}
		return out
	default:
		// Scalars are immutable values.
		return v
	}
}
