package wire

import (
	"math"

	"github.com/anirudhraja/proxywire/schema"
)

// Position bit layout: x in bits 63..38, y in 37..26, z in 25..0.
const (
	posXBits = 26
	posYBits = 12
	posZBits = 26

	posXMask = 1<<posXBits - 1
	posYMask = 1<<posYBits - 1
	posZMask = 1<<posZBits - 1
)

// EncodePosition packs p into one big-endian 64-bit value. Coordinates outside
// x,z in [-2^25, 2^25) or y in [-2^11, 2^11) are truncated to their low bits.
func (e *Encoder) EncodePosition(p schema.Pos) {
	x := uint64(p.X) & posXMask
	y := uint64(p.Y) & posYMask
	z := uint64(p.Z) & posZMask
	NewFixedEncoder(e).EncodeFixed64(x<<(posYBits+posZBits) | y<<posZBits | z)
}

// DecodePosition unpacks a position. Each field is two's complement within
// its own width.
func (d *Decoder) DecodePosition() (schema.Pos, error) {
	v, err := NewFixedDecoder(d).DecodeFixed64()
	if err != nil {
		return schema.Pos{}, err
	}
	return schema.Pos{
		X: signExtend(v>>(posYBits+posZBits), posXBits),
		Y: signExtend((v>>posZBits)&posYMask, posYBits),
		Z: signExtend(v&posZMask, posZBits),
	}, nil
}

func signExtend(v uint64, width uint) int32 {
	n := int64(v)
	if n >= 1<<(width-1) {
		n -= 1 << width
	}
	return int32(n)
}

// AngleToByte quantizes degrees to 1/256 of a turn. The conversion is lossy:
// AngleFromByte(AngleToByte(a)) is within about 0.7 degrees of a mod 360.
func AngleToByte(degrees float64) uint8 {
	m := math.Mod(degrees, 360)
	if m < 0 {
		m += 360
	}
	return uint8(int64(math.RoundToEven(256*m/360)) & 0xFF)
}

// AngleFromByte returns the angle in degrees, in [0, 360).
func AngleFromByte(b uint8) float64 {
	return 360 * float64(b) / 256
}

// EncodeAngle writes degrees as a single quantized byte.
func (e *Encoder) EncodeAngle(degrees float64) {
	e.EncodeUByte(AngleToByte(degrees))
}

// DecodeAngle reads a quantized angle in degrees.
func (d *Decoder) DecodeAngle() (float64, error) {
	b, err := d.DecodeUByte()
	if err != nil {
		return 0, err
	}
	return AngleFromByte(b), nil
}
