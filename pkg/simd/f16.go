package simd

import (
	"math"

	"github.com/x448/float16"
)

// Scalar float16 codec.
//
// The encoder adds a fixed rounding bias to the float32 bit pattern before
// classifying it, which rounds half-way cases up. For normal halves the bias is
// exactly half an ulp; in the subnormal range the effective shift is larger, so
// some subnormal ties round differently than round-to-nearest-even would. This
// matches the hardware conversion paths this codec mirrors and must not be
// "corrected": downstream consumers depend on the exact bit patterns.

const (
	// f16RoundingBias is added to the absolute float32 bit pattern before the
	// 13-bit truncating shift. It is half the ulp of that shift.
	f16RoundingBias = 0x1000

	// Classification thresholds on the biased float32 exponent (bits >> 23)
	// AFTER the rounding bias was added.
	f16ExpInf       = 143 // exponents from here saturate to infinity
	f16ExpNormal    = 113 // first exponent representable as a normal half
	f16ExpSubnormal = 102 // bottom of the subnormal band (the shift there underflows to zero)

	// f16NormalRebias rewrites the float32 exponent bias (127) into the half
	// bias (15) in one subtraction: (127-15) << 23.
	f16NormalRebias = 0x38000000

	// f16NaN is the canonical quiet NaN every NaN input encodes to, payload and
	// sign dropped.
	f16NaN = 0x7E00

	// f16Inf is the positive infinity bit pattern.
	f16Inf = 0x7C00

	// f32NaN is the canonical quiet NaN produced when decoding any half NaN.
	f32NaN = 0x7FC00000

	// f32Inf is the positive infinity float32 bit pattern.
	f32Inf = 0x7F800000
)

// isNaN32 is the numeric not-a-number test: NaN is the only value that does not
// equal itself. It must run before the rounding-bias add, whose carry would
// misclassify large NaN payloads as infinity.
func isNaN32(x float32) bool {
	return x != x
}

// halfRoundOverflows reports whether the biased exponent e saturates to the
// half-precision infinity.
func halfRoundOverflows(e uint32) bool {
	return e >= f16ExpInf
}

// halfRoundToNormal reports whether the biased exponent e lands in the half
// normal range.
func halfRoundToNormal(e uint32) bool {
	return e >= f16ExpNormal && e < f16ExpInf
}

// halfRoundToSubnormal reports whether the biased exponent e lands in the half
// subnormal range.
func halfRoundToSubnormal(e uint32) bool {
	return e >= f16ExpSubnormal && e < f16ExpNormal
}

// halfIsNaN reports whether the half bit pattern is a NaN (all-ones exponent,
// nonzero mantissa).
func halfIsNaN(h uint16) bool {
	return h&0x7C00 == 0x7C00 && h&0x3FF != 0
}

// halfIsInf reports whether the half bit pattern is an infinity of either sign.
func halfIsInf(h uint16) bool {
	return h&0x7FFF == f16Inf
}

// halfIsZero reports whether the half bit pattern is a zero of either sign.
func halfIsZero(h uint16) bool {
	return h&0x7FFF == 0
}

// halfIsSubnormal reports whether the half bit pattern is a nonzero subnormal
// (zero exponent, nonzero mantissa).
func halfIsSubnormal(h uint16) bool {
	return h&0x7C00 == 0 && h&0x3FF != 0
}

// EncodeF16 converts a float32 to the half-precision bit pattern, rounding
// half-up via the fixed bias.
func EncodeF16(x float32) float16.Float16 {
	if isNaN32(x) {
		return float16.Float16(f16NaN)
	}
	bits := math.Float32bits(x)
	sign := uint16(bits>>16) & 0x8000
	rounded := (bits & 0x7FFFFFFF) + f16RoundingBias
	e := rounded >> 23
	switch {
	case halfRoundOverflows(e):
		return float16.Float16(sign | f16Inf)
	case halfRoundToNormal(e):
		return float16.Float16(sign | uint16((rounded-f16NormalRebias)>>13))
	case halfRoundToSubnormal(e):
		// Make the implicit leading bit explicit and shift the mantissa into
		// the denormal field; the shift grows as the exponent shrinks.
		mant := (rounded & 0x7FFFFF) | 0x800000
		return float16.Float16(sign | uint16(mant>>(126-e)))
	default:
		// Too small for even a subnormal: collapse to signed zero.
		return float16.Float16(sign)
	}
}

// DecodeF16 converts a half-precision bit pattern to float32. Exact for every
// finite input; infinities keep their sign; every NaN decodes to the canonical
// quiet NaN.
func DecodeF16(h float16.Float16) float32 {
	bits := uint32(h)
	sign := (bits & 0x8000) << 16
	switch {
	case halfIsNaN(uint16(h)):
		return math.Float32frombits(f32NaN)
	case halfIsInf(uint16(h)):
		return math.Float32frombits(sign | f32Inf)
	case halfIsZero(uint16(h)):
		return math.Float32frombits(sign)
	case halfIsSubnormal(uint16(h)):
		mant := bits & 0x3FF
		// The float32 exponent field of float32(mant) is floor(log2(mant)):
		// a leading-zero count through the float unit.
		b := (math.Float32bits(float32(mant)) >> 23) - 127
		exp32 := 103 + b // value is mant × 2^-24
		mant32 := (mant << (23 - b)) & 0x7FFFFF
		return math.Float32frombits(sign | exp32<<23 | mant32)
	default:
		exp := (bits >> 10) & 0x1F
		mant := bits & 0x3FF
		return math.Float32frombits(sign | (exp+112)<<23 | mant<<13)
	}
}
