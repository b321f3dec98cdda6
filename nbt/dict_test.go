package nbt

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestFromDict_Inference(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tests := []struct {
		name  string
		input any
		want  Value
	}{
		{"bool_true", true, Byte(1)},
		{"bool_false", false, Byte(0)},
		{"byte", 100, Byte(100)},
		{"short", 300, Short(300)},
		{"int", -70000, Int(-70000)},
		{"long", int64(1) << 40, Long(1 << 40)},
		{"uint64_overflow", uint64(math.MaxUint64), String("18446744073709551615")},
		{"big_int", huge, String("123456789012345678901234567890")},
		{"float32", float32(0.5), Double(0.5)},
		{"float64", 3.25, Double(3.25)},
		{"string", "hello", String("hello")},
		{"byte_array", []any{1, -2, 3}, ByteArray{1, -2, 3}},
		{"int_array", []int{1, 1000}, IntArray{1, 1000}},
		{"long_array", []int64{1, 1 << 40}, LongArray{1, 1 << 40}},
		{"string_list", []string{"a", "b"}, NewList(String("a"), String("b"))},
		{"double_list", []any{1.5, 2.5}, NewList(Double(1.5), Double(2.5))},
		{"bool_list", []bool{true, false}, NewList(Byte(1), Byte(0))},
		{"empty_list", []any{}, &List{Elem: TagEnd}},
		{"nested_list", []any{[]any{"x"}, []any{"y", "z"}}, NewList(
			NewList(String("x")),
			NewList(String("y"), String("z")),
		)},
		{"compound", map[string]any{"a": 1}, NewCompound().Set("a", Byte(1))},
		{"value_passthrough", Float(1.5), Float(1.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromValue(tt.input)
			require.NoError(t, err)
			if !Equal(tt.want, got) {
				t.Errorf("FromValue(%v) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromDict_SortedKeys(t *testing.T) {
	c, err := FromDict(map[string]any{"zeta": 1, "alpha": 2, "mid": 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, c.Names())
}

func TestFromDict_Errors(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		path []string
	}{
		{
			name: "unsupported type",
			data: map[string]any{"ch": make(chan int)},
			path: []string{"ch"},
		},
		{
			name: "nil value",
			data: map[string]any{"display": map[string]any{"Name": nil}},
			path: []string{"display", "Name"},
		},
		{
			name: "mixed list",
			data: map[string]any{"lore": []any{"a", 1}},
			path: []string{"lore", "[1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromDict(tt.data)
			var werr *WriteError
			if !errors.As(err, &werr) {
				t.Fatalf("Expected *WriteError, got %T: %v", err, err)
			}
			assert.Equal(t, tt.path, werr.Path)
		})
	}
}

func TestToDict(t *testing.T) {
	c := NewCompound().
		Set("b", Byte(-1)).
		Set("s", Short(2)).
		Set("i", Int(3)).
		Set("l", Long(4)).
		Set("f", Float(0.5)).
		Set("d", Double(0.25)).
		Set("str", String("x")).
		Set("ba", ByteArray{1, 2}).
		Set("ia", IntArray{3}).
		Set("la", LongArray{}).
		Set("list", NewList(Int(1), Int(2))).
		Set("nested", NewCompound().Set("k", String("v")))

	want := map[string]any{
		"b":      int64(-1),
		"s":      int64(2),
		"i":      int64(3),
		"l":      int64(4),
		"f":      float64(0.5),
		"d":      float64(0.25),
		"str":    "x",
		"ba":     []int64{1, 2},
		"ia":     []int64{3},
		"la":     []int64{},
		"list":   []any{int64(1), int64(2)},
		"nested": map[string]any{"k": "v"},
	}
	assert.Equal(t, want, ToDict(c))
}

func TestDict_RoundTrip(t *testing.T) {
	// Bools come back as integers 0 and 1.
	input := map[string]any{
		"Unbreakable": true,
		"Damage":      int64(12),
		"display": map[string]any{
			"Name": "Excalibur",
			"Lore": []any{"line one", "line two"},
		},
		"ench":  []any{map[string]any{"id": int64(16), "lvl": int64(5)}},
		"Color": []int64{1 << 33},
	}
	want := map[string]any{
		"Unbreakable": int64(1),
		"Damage":      int64(12),
		"display": map[string]any{
			"Name": "Excalibur",
			"Lore": []any{"line one", "line two"},
		},
		"ench":  []any{map[string]any{"id": int64(16), "lvl": int64(5)}},
		"Color": []int64{1 << 33},
	}

	c, err := FromDict(input)
	require.NoError(t, err)

	data, err := Dump(Tag{Name: "tag", Value: c})
	require.NoError(t, err)
	root, err := Load(data)
	require.NoError(t, err)

	assert.Equal(t, want, ToDict(root.Compound()))
}

func TestStruct_RoundTrip(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{
		"name":   "Steve",
		"health": 20.0,
		"speed":  0.1,
		"tags":   []any{"a", "b"},
		"pos":    map[string]any{"x": 1.0, "y": 64.0},
	})
	require.NoError(t, err)

	c, err := FromStruct(s)
	require.NoError(t, err)

	health, _ := c.Get("health")
	assert.Equal(t, Byte(20), health)
	speed, _ := c.Get("speed")
	assert.Equal(t, Double(0.1), speed)

	c.Set("ids", IntArray{7, 8})
	back, err := ToStruct(c)
	require.NoError(t, err)

	m := back.AsMap()
	assert.Equal(t, "Steve", m["name"])
	assert.Equal(t, 20.0, m["health"])
	assert.Equal(t, []any{7.0, 8.0}, m["ids"])
	assert.Equal(t, map[string]any{"x": 1.0, "y": 64.0}, m["pos"])

	empty, err := FromStruct(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestCompound_Order(t *testing.T) {
	c := NewCompound().Set("b", Int(1)).Set("a", Int(2)).Set("c", Int(3))
	c.Set("b", Int(10))
	assert.Equal(t, []string{"b", "a", "c"}, c.Names())

	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
	assert.Equal(t, []string{"b", "c"}, c.Names())
	assert.Equal(t, 2, c.Len())

	v, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, Int(10), v)
}

func TestList_Append(t *testing.T) {
	l := &List{}
	require.NoError(t, l.Append(String("a")))
	assert.Equal(t, TagString, l.Elem)
	assert.Error(t, l.Append(Int(1)))
	assert.Error(t, l.Append(nil))
	assert.Equal(t, 1, l.Len())
}

func TestClone_Independent(t *testing.T) {
	orig := NewCompound().
		Set("arr", IntArray{1, 2}).
		Set("list", NewList(NewCompound().Set("k", String("v"))))

	cp := Clone(orig).(*Compound)
	require.True(t, Equal(orig, cp))

	arr, _ := cp.Get("arr")
	arr.(IntArray)[0] = 99
	list, _ := cp.Get("list")
	list.(*List).Items[0].(*Compound).Set("k", String("changed"))

	origArr, _ := orig.Get("arr")
	assert.Equal(t, IntArray{1, 2}, origArr)
	assert.False(t, Equal(orig, cp))
}

func TestEqual(t *testing.T) {
	a := NewCompound().Set("x", Int(1)).Set("y", String("s"))
	b := NewCompound().Set("y", String("s")).Set("x", Int(1))
	assert.True(t, Equal(a, b), "compound order is not significant")

	assert.False(t, Equal(Int(1), Long(1)))
	assert.False(t, Equal(&List{Elem: TagInt}, &List{Elem: TagEnd}))
	assert.True(t, Equal(Double(math.NaN()), Double(math.NaN())))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, End{}))
}
