// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package bfloat16

import (
	"math"
	"testing"

	gobfloat16 "github.com/d4l3k/go-bfloat16"
)

func TestFromFloat32(t *testing.T) {
	cases := []struct {
		name string
		in   uint32 // float32 bit pattern
		want BFloat16
	}{
		{"zero", 0x00000000, 0x0000},
		{"neg-zero", 0x80000000, 0x8000},
		{"one", 0x3F800000, 0x3F80},
		{"below-half-tie", 0x3F807FFF, 0x3F80}, // rounds down
		{"half-tie", 0x3F808000, 0x3F81},       // rounds up, not to even
		{"above-half-tie", 0x3F808001, 0x3F81},
		{"inf", 0x7F800000, 0x7F80},
		{"neg-inf", 0xFF800000, 0xFF80},
		{"f32-max", 0x7F7FFFFF, 0x7F80}, // overflows to infinity
		{"neg-f32-max", 0xFF7FFFFF, 0xFF80},
	}
	for _, c := range cases {
		got := FromFloat32(math.Float32frombits(c.in))
		if got != c.want {
			t.Errorf("%s: FromFloat32(%#08x) = %#04x, want %#04x", c.name, c.in, got, c.want)
		}
	}
}

func TestFromFloat32NaN(t *testing.T) {
	// Every NaN payload must collapse to the canonical quiet NaN: a straight bias
	// add would carry some payloads into the infinity or zero patterns.
	nanPayloads := []uint32{0x7FC00000, 0x7F800001, 0x7FFF8000, 0x7FFFFFFF, 0xFFC00000, 0xFFFF8000}
	for _, bits := range nanPayloads {
		got := FromFloat32(math.Float32frombits(bits))
		if got != BFloat16(nanBits) {
			t.Errorf("FromFloat32(NaN %#08x) = %#04x, want canonical %#04x", bits, got, nanBits)
		}
	}
}

func TestRoundTripAllBits(t *testing.T) {
	// Decode is exact, and every decoded value has zero low mantissa bits, so the
	// bias add cannot carry: encode(decode(b)) == b for every non-NaN pattern.
	for b := 0; b <= math.MaxUint16; b++ {
		bf := FromBits(uint16(b))
		if bf.IsNaN() {
			if got := FromFloat32(bf.Float32()); got != BFloat16(nanBits) {
				t.Fatalf("encode(decode(%#04x)) = %#04x, want canonical NaN %#04x", b, got, nanBits)
			}
			continue
		}
		if got := FromFloat32(bf.Float32()); got != bf {
			t.Fatalf("encode(decode(%#04x)) = %#04x, want identity", b, got)
		}
	}
}

func TestDecodeMatchesReference(t *testing.T) {
	// Zero-extend decode must agree with the d4l3k/go-bfloat16 reference for every
	// bit pattern, NaN payloads included (decode preserves payloads, encode does not).
	for b := 0; b <= math.MaxUint16; b++ {
		got := FromBits(uint16(b)).Float32()
		want := gobfloat16.ToFloat32(gobfloat16.BF16(uint16(b)))
		if math.Float32bits(got) != math.Float32bits(want) {
			t.Fatalf("decode(%#04x) = %#08x, reference %#08x",
				b, math.Float32bits(got), math.Float32bits(want))
		}
	}
}

func TestInfAndLimits(t *testing.T) {
	if got := Inf(1); got.Float32() != float32(math.Inf(1)) {
		t.Errorf("Inf(1) = %#04x", got.Bits())
	}
	if got := Inf(-1); got.Float32() != float32(math.Inf(-1)) {
		t.Errorf("Inf(-1) = %#04x", got.Bits())
	}
	if SmallestNonzero.Float32() == 0 {
		t.Error("SmallestNonzero decoded to zero")
	}
	if got := FromFloat32(SmallestNonzero.Float32()); got != SmallestNonzero {
		t.Errorf("SmallestNonzero does not round-trip: %#04x", got.Bits())
	}
}

func TestString(t *testing.T) {
	if got := FromFloat32(1.5).String(); got != "1.5" {
		t.Errorf("String() = %q, want \"1.5\"", got)
	}
}
