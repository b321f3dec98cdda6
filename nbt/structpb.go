package nbt

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

// FromStruct converts a protobuf Struct into a compound. Struct numbers are
// doubles; integral ones inside the int64 range are narrowed to the smallest
// integer tag, the rest become Double.
func FromStruct(s *structpb.Struct) (*Compound, error) {
	if s == nil {
		return NewCompound(), nil
	}
	data, _ := narrowNumbers(s.AsMap()).(map[string]any)
	return FromDict(data)
}

// ToStruct converts a compound into a protobuf Struct. Arrays become list
// values; Long values beyond 2^53 lose precision.
func ToStruct(c *Compound) (*structpb.Struct, error) {
	data, _ := widenSlices(ToDict(c)).(map[string]any)
	s, err := structpb.NewStruct(data)
	if err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return s, nil
}

func narrowNumbers(v any) any {
	switch x := v.(type) {
	case float64:
		if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
			return int64(x)
		}
		return x
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, child := range x {
			out[k] = narrowNumbers(child)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, child := range x {
			out[i] = narrowNumbers(child)
		}
		return out
	default:
		return v
	}
}

// widenSlices turns the []int64 produced by ToDict into []any, the only slice
// type structpb accepts.
func widenSlices(v any) any {
	switch x := v.(type) {
	case []int64:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, child := range x {
			out[k] = widenSlices(child)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, child := range x {
			out[i] = widenSlices(child)
		}
		return out
	default:
		return v
	}
}
