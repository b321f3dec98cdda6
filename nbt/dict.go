package nbt

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strconv"
)

// FromDict converts a plain mapping into a compound.
//
//   - bool becomes Byte 0/1
//   - integers take the smallest of Byte, Short, Int, Long that holds them;
//     values outside the signed 64-bit range become a String of their decimal text
//   - float32 and float64 become Double
//   - string becomes String
//   - slices: empty gives an End-typed List; all integers in byte range give a
//     ByteArray, else all in int range give an IntArray, else all integers
//     give a LongArray; anything else gives a List of converted elements
//   - map[string]any becomes a nested Compound
//   - Values are used as-is
//
// Keys are visited in sorted order. Any other type is a *WriteError.
func FromDict(data map[string]any) (*Compound, error) {
	var t tracker
	return t.fromDict(data)
}

func (t *tracker) fromDict(data map[string]any) (*Compound, error) {
	c := NewCompound()
	for _, key := range slices.Sorted(maps.Keys(data)) {
		t.push(key)
		v, err := t.fromValue(data[key])
		t.pop()
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
	}
	return c, nil
}

// FromValue converts a single plain value with the rules of FromDict.
func FromValue(v any) (Value, error) {
	var t tracker
	return t.fromValue(v)
}

func (t *tracker) fromValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return nil, t.writeErr("nil value has no tag type")
	case Value:
		return x, nil
	case bool:
		if x {
			return Byte(1), nil
		}
		return Byte(0), nil
	case float32:
		return Double(x), nil
	case float64:
		return Double(x), nil
	case string:
		return String(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return smallestInt(i), nil
		}
		if _, ok := new(big.Int).SetString(x.String(), 10); ok {
			return String(x.String()), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, t.writeErr("invalid number %q", x.String())
		}
		return Double(f), nil
	case map[string]any:
		return t.fromDict(x)
	case []any:
		return t.fromSlice(x)
	}

	if i, ok, overflow := asInteger(v); ok {
		if overflow {
			return String(integerText(v)), nil
		}
		return smallestInt(i), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return t.fromSlice(items)
	}
	return nil, t.writeErr("unsupported type for tag conversion: %T", v)
}

func (t *tracker) fromSlice(items []any) (Value, error) {
	if len(items) == 0 {
		return &List{Elem: TagEnd}, nil
	}

	ints := make([]int64, len(items))
	allInts, fitByte, fitInt := true, true, true
	for i, item := range items {
		n, ok, overflow := asInteger(item)
		if !ok || overflow {
			allInts = false
			break
		}
		ints[i] = n
		fitByte = fitByte && n >= math.MinInt8 && n <= math.MaxInt8
		fitInt = fitInt && n >= math.MinInt32 && n <= math.MaxInt32
	}

	switch {
	case allInts && fitByte:
		out := make(ByteArray, len(ints))
		for i, n := range ints {
			out[i] = int8(n)
		}
		return out, nil
	case allInts && fitInt:
		out := make(IntArray, len(ints))
		for i, n := range ints {
			out[i] = int32(n)
		}
		return out, nil
	case allInts:
		return LongArray(ints), nil
	}

	l := &List{Elem: TagEnd}
	for i, item := range items {
		t.push(indexSegment(i))
		v, err := t.fromValue(item)
		if err == nil {
			if appendErr := l.Append(v); appendErr != nil {
				err = t.writeErr("%v", appendErr)
			}
		}
		t.pop()
		if err != nil {
			return nil, err
		}
	}
	return l, nil
}

func smallestInt(i int64) Value {
	switch {
	case i >= math.MinInt8 && i <= math.MaxInt8:
		return Byte(i)
	case i >= math.MinInt16 && i <= math.MaxInt16:
		return Short(i)
	case i >= math.MinInt32 && i <= math.MaxInt32:
		return Int(i)
	default:
		return Long(i)
	}
}

// asInteger reports whether v is an integer; overflow is set when it does not
// fit in int64.
func asInteger(v any) (n int64, ok bool, overflow bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true, false
	case int8:
		return int64(x), true, false
	case int16:
		return int64(x), true, false
	case int32:
		return int64(x), true, false
	case int64:
		return x, true, false
	case uint:
		return int64(x), true, uint64(x) > math.MaxInt64
	case uint8:
		return int64(x), true, false
	case uint16:
		return int64(x), true, false
	case uint32:
		return int64(x), true, false
	case uint64:
		return int64(x), true, x > math.MaxInt64
	case *big.Int:
		if x == nil {
			return 0, false, false
		}
		if x.IsInt64() {
			return x.Int64(), true, false
		}
		return 0, true, true
	default:
		return 0, false, false
	}
}

func integerText(v any) string {
	switch x := v.(type) {
	case *big.Int:
		return x.String()
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	default:
		return fmt.Sprint(v)
	}
}

// ToDict is the inverse of FromDict. Integer tags become int64, Float and
// Double become float64, the three array kinds become []int64, lists become
// []any and compounds become map[string]any.
func ToDict(c *Compound) map[string]any {
	out := make(map[string]any, c.Len())
	for name, v := range c.All() {
		out[name] = ToValue(v)
	}
	return out
}

// ToValue unwraps a single tag value with the rules of ToDict.
func ToValue(v Value) any {
	switch x := v.(type) {
	case End:
		return nil
	case Byte:
		return int64(x)
	case Short:
		return int64(x)
	case Int:
		return int64(x)
	case Long:
		return int64(x)
	case Float:
		return float64(x)
	case Double:
		return float64(x)
	case String:
		return string(x)
	case ByteArray:
		out := make([]int64, len(x))
		for i, b := range x {
			out[i] = int64(b)
		}
		return out
	case IntArray:
		out := make([]int64, len(x))
		for i, n := range x {
			out[i] = int64(n)
		}
		return out
	case LongArray:
		return append([]int64{}, x...)
	case *List:
		out := make([]any, len(x.Items))
		for i, item := range x.Items {
			out[i] = ToValue(item)
		}
		return out
	case *Compound:
		return ToDict(x)
	default:
		return nil
	}
}
