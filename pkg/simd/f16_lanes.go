package simd

import (
	"math"

	"github.com/x448/float16"
)

// Vectorized float16 codec: 8- and 16-lane batches over fixed-size arrays, the
// batch shapes of the 256- and 512-bit conversion instructions. Each lane runs
// the same classification as the scalar codec, but selects the result from the
// candidate patterns {normal, subnormal, zero, infinity, NaN} with per-lane
// masks instead of branching, so inactive candidates are computed on garbage
// and masked away. Output is bit-identical to the scalar codec for every lane;
// the consistency tests hold the two paths together.

// mask16 returns all-ones when the lane condition holds, zero otherwise.
func mask16(c bool) uint16 {
	if c {
		return 0xFFFF
	}
	return 0
}

// mask32 is mask16 for 32-bit lanes.
func mask32(c bool) uint32 {
	if c {
		return 0xFFFFFFFF
	}
	return 0
}

func encodeF16Lane(x float32) uint16 {
	bits := math.Float32bits(x)
	sign := uint16(bits>>16) & 0x8000
	rounded := (bits & 0x7FFFFFFF) + f16RoundingBias
	e := rounded >> 23

	nanMask := mask16(isNaN32(x))
	infMask := mask16(halfRoundOverflows(e))
	normalMask := mask16(halfRoundToNormal(e))
	subMask := mask16(halfRoundToSubnormal(e))

	// Inactive candidates underflow or shift out of range; Go defines both
	// (wrap-around and zero for shifts past the width), and their lanes are
	// masked off below.
	normal := uint16((rounded - f16NormalRebias) >> 13)
	sub := uint16(((rounded & 0x7FFFFF) | 0x800000) >> (126 - e))

	picked := uint16(f16Inf)&infMask | normal&normalMask | sub&subMask
	return uint16(f16NaN)&nanMask | (sign|picked)&^nanMask
}

func decodeF16Lane(h uint16) uint32 {
	bits := uint32(h)
	sign := (bits & 0x8000) << 16
	exp := (bits >> 10) & 0x1F
	mant := bits & 0x3FF

	nanMask := mask32(halfIsNaN(h))
	infMask := mask32(halfIsInf(h))
	zeroMask := mask32(halfIsZero(h))
	subMask := mask32(halfIsSubnormal(h))
	normalMask := ^(nanMask | infMask | zeroMask | subMask)

	normal := (exp+112)<<23 | mant<<13

	b := (math.Float32bits(float32(mant)) >> 23) - 127
	sub := (103+b)<<23 | (mant<<(23-b))&0x7FFFFF

	return uint32(f32NaN)&nanMask |
		(sign|f32Inf)&infMask |
		sign&zeroMask |
		(sign|sub)&subMask |
		(sign|normal)&normalMask
}

// EncodeF16Lanes8 encodes 8 float32 lanes to half precision, bit-identical to
// EncodeF16 per lane.
func EncodeF16Lanes8(src *[8]float32, dst *[8]float16.Float16) {
	for i := 0; i < 8; i++ {
		dst[i] = float16.Float16(encodeF16Lane(src[i]))
	}
}

// EncodeF16Lanes16 encodes 16 float32 lanes to half precision, bit-identical to
// EncodeF16 per lane.
func EncodeF16Lanes16(src *[16]float32, dst *[16]float16.Float16) {
	for i := 0; i < 16; i++ {
		dst[i] = float16.Float16(encodeF16Lane(src[i]))
	}
}

// DecodeF16Lanes8 decodes 8 half-precision lanes to float32, bit-identical to
// DecodeF16 per lane.
func DecodeF16Lanes8(src *[8]float16.Float16, dst *[8]float32) {
	for i := 0; i < 8; i++ {
		dst[i] = math.Float32frombits(decodeF16Lane(uint16(src[i])))
	}
}

// DecodeF16Lanes16 decodes 16 half-precision lanes to float32, bit-identical to
// DecodeF16 per lane.
func DecodeF16Lanes16(src *[16]float16.Float16, dst *[16]float32) {
	for i := 0; i < 16; i++ {
		dst[i] = math.Float32frombits(decodeF16Lane(uint16(src[i])))
	}
}
