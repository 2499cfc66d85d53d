package simd

import (
	"math"

	"github.com/gomlx/simplevec/pkg/core/dtypes/bfloat16"
)

// Vectorized bfloat16 codec. Encoding is the same round-half-up bias add as
// the scalar bfloat16.FromFloat32 followed by truncation to the top 16 bits;
// decoding zero-extends, which is exact because bfloat16 shares the float32
// exponent layout. The NaN guard runs per lane: without it the bias carry
// could turn an all-ones-payload NaN into a signed zero.

const (
	bf16RoundingBias = 0x8000
	bf16NaN          = 0x7FC0
)

func encodeBF16Lane(x float32) uint16 {
	nanMask := mask16(isNaN32(x))
	rounded := uint16((math.Float32bits(x) + bf16RoundingBias) >> 16)
	return uint16(bf16NaN)&nanMask | rounded&^nanMask
}

// EncodeBF16Lanes8 encodes 8 float32 lanes to bfloat16, bit-identical to
// bfloat16.FromFloat32 per lane.
func EncodeBF16Lanes8(src *[8]float32, dst *[8]bfloat16.BFloat16) {
	for i := 0; i < 8; i++ {
		dst[i] = bfloat16.BFloat16(encodeBF16Lane(src[i]))
	}
}

// EncodeBF16Lanes16 encodes 16 float32 lanes to bfloat16, bit-identical to
// bfloat16.FromFloat32 per lane.
func EncodeBF16Lanes16(src *[16]float32, dst *[16]bfloat16.BFloat16) {
	for i := 0; i < 16; i++ {
		dst[i] = bfloat16.BFloat16(encodeBF16Lane(src[i]))
	}
}

// DecodeBF16Lanes8 decodes 8 bfloat16 lanes to float32 exactly.
func DecodeBF16Lanes8(src *[8]bfloat16.BFloat16, dst *[8]float32) {
	for i := 0; i < 8; i++ {
		dst[i] = math.Float32frombits(uint32(src[i]) << 16)
	}
}

// DecodeBF16Lanes16 decodes 16 bfloat16 lanes to float32 exactly.
func DecodeBF16Lanes16(src *[16]bfloat16.BFloat16, dst *[16]float32) {
	for i := 0; i < 16; i++ {
		dst[i] = math.Float32frombits(uint32(src[i]) << 16)
	}
}
