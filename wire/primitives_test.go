package wire

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/anirudhraja/proxywire/schema"
)

// roundTrip packs v with t, checks the bytes and unpacks them again.
func roundTrip[T any](t *testing.T, dt DataType[T], v T, want []byte) {
	t.Helper()
	data, err := Pack(dt, v)
	if err != nil {
		t.Fatalf("Failed to pack %s %v: %v", dt.Name(), v, err)
	}
	if want != nil && !bytes.Equal(data, want) {
		t.Errorf("Pack(%s, %v) = % x, want % x", dt.Name(), v, data, want)
	}
	decoder := NewDecoder(data)
	got, err := Unpack(decoder, dt)
	if err != nil {
		t.Fatalf("Failed to unpack %s: %v", dt.Name(), err)
	}
	if !reflect.DeepEqual(got, v) {
		t.Errorf("Expected %v (%T), got %v (%T)", v, v, got, got)
	}
	if decoder.Remaining() != 0 {
		t.Errorf("%s left %d bytes unread", dt.Name(), decoder.Remaining())
	}
}

func TestPrimitives_FixedWidth(t *testing.T) {
	t.Run("byte", func(t *testing.T) {
		roundTrip(t, Byte, int8(-2), []byte{0xfe})
		roundTrip(t, Byte, int8(127), []byte{0x7f})
	})
	t.Run("ubyte", func(t *testing.T) {
		roundTrip(t, UByte, uint8(200), []byte{0xc8})
	})
	t.Run("boolean", func(t *testing.T) {
		roundTrip(t, Boolean, true, []byte{0x01})
		roundTrip(t, Boolean, false, []byte{0x00})
	})
	t.Run("short", func(t *testing.T) {
		roundTrip(t, Short, int16(-2), []byte{0xff, 0xfe})
		roundTrip(t, Short, int16(256), []byte{0x01, 0x00})
	})
	t.Run("ushort", func(t *testing.T) {
		roundTrip(t, UShort, uint16(25565), []byte{0x63, 0xdd})
	})
	t.Run("int", func(t *testing.T) {
		roundTrip(t, Int, int32(-1), []byte{0xff, 0xff, 0xff, 0xff})
		roundTrip(t, Int, int32(0x01020304), []byte{0x01, 0x02, 0x03, 0x04})
	})
	t.Run("long", func(t *testing.T) {
		roundTrip(t, Long, int64(math.MinInt64), []byte{0x80, 0, 0, 0, 0, 0, 0, 0})
	})
	t.Run("float", func(t *testing.T) {
		roundTrip(t, Float, float32(1.0), []byte{0x3f, 0x80, 0x00, 0x00})
	})
	t.Run("double", func(t *testing.T) {
		roundTrip(t, Double, -2.0, []byte{0xc0, 0, 0, 0, 0, 0, 0, 0})
	})
}

func TestPrimitives_Boolean_NonZero(t *testing.T) {
	v, err := NewDecoder([]byte{0x05}).DecodeBoolean()
	if err != nil || !v {
		t.Errorf("DecodeBoolean(05) = %v, %v; want true", v, err)
	}
}

func TestPrimitives_RawBytes(t *testing.T) {
	encoder := NewEncoder()
	encoder.EncodeRaw([]byte{0xca, 0xfe})
	encoder.EncodeByte(1)
	if !bytes.Equal(encoder.Bytes(), []byte{0xca, 0xfe, 0x01}) {
		t.Errorf("Unexpected bytes % x", encoder.Bytes())
	}
	if encoder.Len() != 3 {
		t.Errorf("Len() = %d, want 3", encoder.Len())
	}
	encoder.Reset()
	if encoder.Len() != 0 {
		t.Errorf("Reset left %d bytes", encoder.Len())
	}
}

func TestPrimitives_String(t *testing.T) {
	// The prefix counts UTF-8 bytes: é is two of them.
	roundTrip(t, String, "héllo", append([]byte{0x06}, "héllo"...))
	roundTrip(t, String, "", []byte{0x00})

	long := strings.Repeat("x", 300)
	roundTrip(t, String, long, append([]byte{0xac, 0x02}, long...))

	if got := StringSize("héllo"); got != 7 {
		t.Errorf("StringSize = %d, want 7", got)
	}

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"invalid_utf8", []byte{0x02, 0xc3, 0x28}, "not valid UTF-8"},
		{"negative_length", []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, "invalid bytes length: -1"},
		{"truncated", []byte{0x05, 'a', 'b'}, "string truncated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unpack(NewDecoder(tt.data), String)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
			if !strings.Contains(err.Error(), "wire path String") {
				t.Errorf("Expected error path String, got %v", err)
			}
		})
	}
}

func TestPrimitives_ByteArray(t *testing.T) {
	roundTrip(t, ByteArray, []byte{1, 2, 3}, []byte{0x03, 1, 2, 3})
	if got := BytesSize([]byte{1, 2, 3}); got != 4 {
		t.Errorf("BytesSize = %d, want 4", got)
	}

	// Decoded bytes must not alias the packet buffer.
	payload := []byte{0x02, 0xaa, 0xbb}
	out, err := NewDecoder(payload).DecodeBytes()
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	payload[1] = 0
	if out[0] != 0xaa {
		t.Error("DecodeBytes shares the input buffer")
	}
}

func TestPrimitives_UUID(t *testing.T) {
	id := uuid.MustParse("069a79f4-44e9-4726-a5be-fca90e38aaf5")
	roundTrip(t, UUID, id, id[:])

	_, err := NewDecoder(make([]byte, 15)).DecodeUUID()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestPrimitives_Underrun(t *testing.T) {
	tests := []struct {
		name   string
		decode func(*Decoder) error
	}{
		{"short", func(d *Decoder) error { _, err := Unpack(d, Short); return err }},
		{"int", func(d *Decoder) error { _, err := Unpack(d, Int); return err }},
		{"long", func(d *Decoder) error { _, err := Unpack(d, Long); return err }},
		{"double", func(d *Decoder) error { _, err := Unpack(d, Double); return err }},
		{"position", func(d *Decoder) error { _, err := Unpack(d, Position); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode(NewDecoder([]byte{0x01}))
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
			}
		})
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name string
		pos  schema.Pos
		want uint64
	}{
		{"origin", schema.Pos{}, 0},
		{"unit", schema.Pos{X: 1, Y: 2, Z: 3}, 1<<38 | 2<<26 | 3},
		{"negative", schema.Pos{X: -1, Y: -1, Z: -1}, math.MaxUint64},
		{"extremes", schema.Pos{X: -1 << 25, Y: 1<<11 - 1, Z: 1<<25 - 1}, 1<<63 | 0x7FF<<26 | 0x1FFFFFF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := make([]byte, 8)
			for i := range want {
				want[i] = byte(tt.want >> (56 - 8*i))
			}
			roundTrip(t, Position, tt.pos, want)
		})
	}

	t.Run("random", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 8))
		for i := 0; i < 5000; i++ {
			p := schema.Pos{
				X: int32(rng.IntN(1<<26)) - 1<<25,
				Y: int32(rng.IntN(1<<12)) - 1<<11,
				Z: int32(rng.IntN(1<<26)) - 1<<25,
			}
			data, err := Pack(Position, p)
			if err != nil {
				t.Fatalf("Failed to pack %+v: %v", p, err)
			}
			got, err := NewDecoder(data).DecodePosition()
			if err != nil {
				t.Fatalf("Failed to unpack %+v: %v", p, err)
			}
			if got != p {
				t.Fatalf("Round trip of %+v gave %+v", p, got)
			}
		}
	})
}

func TestAngle(t *testing.T) {
	tests := []struct {
		degrees float64
		want    uint8
	}{
		{0, 0},
		{180, 128},
		{90, 64},
		{-90, 192},
		{360, 0},
		{720 + 45, 32},
		{359.9, 0},
		{1.4, 1},
	}
	for _, tt := range tests {
		if got := AngleToByte(tt.degrees); got != tt.want {
			t.Errorf("AngleToByte(%v) = %d, want %d", tt.degrees, got, tt.want)
		}
	}

	if got := AngleFromByte(128); got != 180 {
		t.Errorf("AngleFromByte(128) = %v, want 180", got)
	}
	if got := AngleFromByte(64); got != 90 {
		t.Errorf("AngleFromByte(64) = %v, want 90", got)
	}

	// Lossy: a round trip lands on the nearest 1/256 turn.
	data, err := Pack(Angle, 100.0)
	if err != nil {
		t.Fatalf("Failed to pack angle: %v", err)
	}
	got, err := Unpack(NewDecoder(data), Angle)
	if err != nil {
		t.Fatalf("Failed to unpack angle: %v", err)
	}
	if got == 100.0 || math.Abs(got-100.0) > 360.0/512 {
		t.Errorf("Angle round trip of 100 gave %v", got)
	}
}

func TestFieldError(t *testing.T) {
	base := errors.New("need 2 bytes, have 1")
	err := wrapWithField(wrapWithField(base, "damage"), "Slot")

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %T", err)
	}
	if got := strings.Join(fieldErr.FieldPath, "."); got != "Slot.damage" {
		t.Errorf("expected path %q, got %q", "Slot.damage", got)
	}
	if err.Error() != "error at wire path Slot.damage: need 2 bytes, have 1" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("Unwrap should reach the underlying error")
	}
	if wrapWithField(nil, "x") != nil {
		t.Error("wrapping nil must stay nil")
	}
}
