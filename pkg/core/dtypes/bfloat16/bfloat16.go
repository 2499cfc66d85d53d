// Package bfloat16 implements the bfloat16 type: the truncated 16-bit version of
// float32, with conversion semantics matching the reduced-precision codecs used by
// the elementwise kernels in this repository.
//
// The layout follows https://github.com/x448/float16 and the pending issue in
// https://github.com/x448/float16/issues/22
package bfloat16

import (
	"math"
	"strconv"
)

// BFloat16 (brain floating point) floating-point format is a computer number format
// occupying 16 bits in computer memory; it represents a wide dynamic range of
// numeric values by using a floating radix point.
// This format is a shortened (16-bit) version of the 32-bit IEEE 754
// single-precision floating-point format (binary32): it keeps the full 8-bit
// exponent and truncates the mantissa to 7 bits.
type BFloat16 uint16

const (
	// roundingBias is added to the float32 bit pattern before the truncating shift,
	// rounding half-way cases up (away from the truncated value). This is the
	// behavior of the hardware conversion paths this codec mirrors; it is not
	// round-to-nearest-even and must not be "corrected" to it.
	roundingBias = 0x8000

	// nanBits is the canonical quiet NaN. Every NaN input encodes to this exact
	// pattern; payloads are not preserved.
	nanBits = 0x7FC0
)

func (f BFloat16) Float32() float32 {
	return math.Float32frombits(uint32(f) << 16)
}

// FromFloat32 converts a float32 to a BFloat16, rounding half-up.
//
// NaN must be handled before the bias add: the carry out of a NaN payload would
// otherwise turn the result into an infinity or zero pattern.
func FromFloat32(x float32) BFloat16 {
	if x != x {
		return BFloat16(nanBits)
	}
	return BFloat16((math.Float32bits(x) + roundingBias) >> 16)
}

// FromFloat64 converts a float64 to a BFloat16.
func FromFloat64(x float64) BFloat16 {
	return FromFloat32(float32(x))
}

// FromBits convert an uint16 to a BFloat16.
func FromBits(uint16 uint16) BFloat16 {
	return BFloat16(uint16)
}

// Bits convert BFloat16 to an uint16.
func (f BFloat16) Bits() uint16 {
	return uint16(f)
}

// IsNaN reports whether f is an IEEE 754 "not-a-number" value.
func (f BFloat16) IsNaN() bool {
	return f&0x7F80 == 0x7F80 && f&0x007F != 0
}

// String implements fmt.Stringer, and prints a float representation of the BFloat16.
func (f BFloat16) String() string {
	return strconv.FormatFloat(float64(f.Float32()), 'f', -1, 32)
}

// Inf returns a BFloat16 with an infinity value with the specified sign.
// A sign >= 0 returns positive infinity.
// A sign < 0 returns negative infinity.
func Inf(sign int) BFloat16 {
	if sign >= 0 {
		return BFloat16(0x7F80)
	}
	return BFloat16(0xFF80)
}

// SmallestNonzero is the smallest nonzero denormal value for bfloat16 (9.1835e-41).
// It's the bfloat16 equivalent of [math.SmallestNonzeroFloat32] and
// [math.SmallestNonzeroFloat64]: 1 / 2**(127 - 1 + 7), kept as a typed const.
const SmallestNonzero = BFloat16(0x0001)
