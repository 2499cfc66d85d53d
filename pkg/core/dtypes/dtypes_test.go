// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dtypes

import (
	"math"
	"testing"

	"github.com/gomlx/simplevec/pkg/core/dtypes/bfloat16"
	"github.com/x448/float16"
)

func TestDType_HighestLowestSmallestValues(t *testing.T) {
	if !math.IsInf(Float64.HighestValue().(float64), 1) {
		t.Fatal("expected Float64.HighestValue() to be +Inf")
	}
	if !math.IsInf(float64(Float32.LowestValue().(float32)), -1) {
		t.Fatal("expected Float32.LowestValue() to be -Inf")
	}
	if Int8.LowestValue().(int8) != math.MinInt8 {
		t.Fatalf("expected Int8.LowestValue() to be %d, got %v", math.MinInt8, Int8.LowestValue())
	}
	if Uint8.HighestValue().(uint8) != math.MaxUint8 {
		t.Fatalf("expected Uint8.HighestValue() to be %d, got %v", math.MaxUint8, Uint8.HighestValue())
	}
	_, ok := Float16.SmallestNonZeroValueForDType().(float16.Float16)
	if !ok {
		t.Fatal("expected Float16.SmallestNonZeroValueForDType() to be float16.Float16")
	}
	_, ok = BFloat16.SmallestNonZeroValueForDType().(bfloat16.BFloat16)
	if !ok {
		t.Fatal("expected BFloat16.SmallestNonZeroValueForDType() to be bfloat16.BFloat16")
	}
}

func TestMapOfNames(t *testing.T) {
	if MapOfNames["Float16"] != Float16 {
		t.Fatalf("expected MapOfNames[\"Float16\"] to be Float16, got %v", MapOfNames["Float16"])
	}
	if MapOfNames["float16"] != Float16 {
		t.Fatalf("expected MapOfNames[\"float16\"] to be Float16, got %v", MapOfNames["float16"])
	}
	if MapOfNames["F16"] != Float16 {
		t.Fatalf("expected MapOfNames[\"F16\"] to be Float16, got %v", MapOfNames["F16"])
	}
	if MapOfNames["f16"] != Float16 {
		t.Fatalf("expected MapOfNames[\"f16\"] to be Float16, got %v", MapOfNames["f16"])
	}

	if MapOfNames["BFloat16"] != BFloat16 {
		t.Fatalf("expected MapOfNames[\"BFloat16\"] to be BFloat16, got %v", MapOfNames["BFloat16"])
	}
	if MapOfNames["bfloat16"] != BFloat16 {
		t.Fatalf("expected MapOfNames[\"bfloat16\"] to be BFloat16, got %v", MapOfNames["bfloat16"])
	}
	if MapOfNames["BF16"] != BFloat16 {
		t.Fatalf("expected MapOfNames[\"BF16\"] to be BFloat16, got %v", MapOfNames["BF16"])
	}
	if MapOfNames["bf16"] != BFloat16 {
		t.Fatalf("expected MapOfNames[\"bf16\"] to be BFloat16, got %v", MapOfNames["bf16"])
	}
}

func TestFromAny(t *testing.T) {
	if FromAny(int64(7)) != Int64 {
		t.Fatalf("expected FromAny(int64(7)) to be Int64, got %v", FromAny(int64(7)))
	}
	if FromAny(float32(13)) != Float32 {
		t.Fatalf("expected FromAny(float32(13)) to be Float32, got %v", FromAny(float32(13)))
	}
	if FromAny(bfloat16.FromFloat32(1.0)) != BFloat16 {
		t.Fatalf("expected FromAny(bfloat16.FromFloat32(1.0)) to be BFloat16, got %v", FromAny(bfloat16.FromFloat32(1.0)))
	}
	if FromAny(float16.Fromfloat32(3.0)) != Float16 {
		t.Fatalf("expected FromAny(float16.Fromfloat32(3.0)) to be Float16, got %v", FromAny(float16.Fromfloat32(3.0)))
	}
}

func TestFromGenericsType(t *testing.T) {
	if FromGenericsType[bool]() != Bool {
		t.Fatalf("expected FromGenericsType[bool]() to be Bool, got %v", FromGenericsType[bool]())
	}
	if FromGenericsType[uint16]() != Uint16 {
		t.Fatalf("expected FromGenericsType[uint16]() to be Uint16, got %v", FromGenericsType[uint16]())
	}
	if FromGenericsType[float16.Float16]() != Float16 {
		t.Fatalf("expected FromGenericsType[float16.Float16]() to be Float16, got %v", FromGenericsType[float16.Float16]())
	}
	got := FromGenericsType[int]()
	if got != Int32 && got != Int64 {
		t.Fatalf("expected FromGenericsType[int]() to be Int32 or Int64, got %v", got)
	}
}

func TestSize(t *testing.T) {
	if Int64.Size() != 8 {
		t.Fatalf("expected Int64.Size() to be 8, got %d", Int64.Size())
	}
	if Float32.Size() != 4 {
		t.Fatalf("expected Float32.Size() to be 4, got %d", Float32.Size())
	}
	if BFloat16.Size() != 2 {
		t.Fatalf("expected BFloat16.Size() to be 2, got %d", BFloat16.Size())
	}
	if Float16.Bits() != 16 {
		t.Fatalf("expected Float16.Bits() to be 16, got %d", Float16.Bits())
	}
}

func TestString(t *testing.T) {
	if Float16.String() != "Float16" {
		t.Fatalf("expected Float16.String() to be \"Float16\", got %q", Float16.String())
	}
	if DType(99).String() != "DType(99)" {
		t.Fatalf("expected DType(99).String() to be \"DType(99)\", got %q", DType(99).String())
	}
}

func TestIsSupported(t *testing.T) {
	for dtype := Bool; dtype < MaxDType; dtype++ {
		if !dtype.IsSupported() {
			t.Fatalf("expected %s to be supported", dtype)
		}
	}
	if InvalidDType.IsSupported() {
		t.Fatal("expected InvalidDType to not be supported")
	}
	if DType(99).IsSupported() {
		t.Fatal("expected DType(99) to not be supported")
	}
}
