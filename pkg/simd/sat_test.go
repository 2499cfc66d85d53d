package simd

import (
	"math"
	"testing"
)

type satCase[T Integers] struct {
	a, b, want T
}

func checkSat[T Integers](t *testing.T, name string, fn func(a, b T) T, cases []satCase[T]) {
	t.Helper()
	for _, c := range cases {
		if got := fn(c.a, c.b); got != c.want {
			t.Errorf("%s(%d, %d) = %d, want %d", name, c.a, c.b, got, c.want)
		}
	}
}

func TestSaturatedAdd(t *testing.T) {
	checkSat(t, "SaturatedAdd[int8]", SaturatedAdd[int8], []satCase[int8]{
		{120, 10, 127}, // saturates, not 130
		{-120, -10, -128},
		{50, 20, 70},
		{127, 127, 127},
		{-128, -128, -128},
	})
	checkSat(t, "SaturatedAdd[uint8]", SaturatedAdd[uint8], []satCase[uint8]{
		{250, 10, 255}, // saturates, not 4
		{100, 50, 150},
		{255, 255, 255},
		{0, 0, 0},
	})
	checkSat(t, "SaturatedAdd[int16]", SaturatedAdd[int16], []satCase[int16]{
		{math.MaxInt16, 1, math.MaxInt16},
		{math.MinInt16, -1, math.MinInt16},
		{1000, 2000, 3000},
	})
	checkSat(t, "SaturatedAdd[uint16]", SaturatedAdd[uint16], []satCase[uint16]{
		{65530, 10, 65535},
		{100, 50, 150},
	})
	checkSat(t, "SaturatedAdd[int32]", SaturatedAdd[int32], []satCase[int32]{
		{math.MaxInt32, 1, math.MaxInt32},
		{math.MinInt32, -1, math.MinInt32},
		{math.MaxInt32, math.MinInt32, -1},
	})
	checkSat(t, "SaturatedAdd[uint32]", SaturatedAdd[uint32], []satCase[uint32]{
		{math.MaxUint32, 1, math.MaxUint32},
		{1 << 30, 1 << 30, 1 << 31},
	})
	checkSat(t, "SaturatedAdd[int64]", SaturatedAdd[int64], []satCase[int64]{
		{math.MaxInt64, 1, math.MaxInt64},
		{math.MinInt64, -1, math.MinInt64},
		{math.MaxInt64, math.MinInt64, -1},
		{1 << 62, 1 << 62, math.MaxInt64},
		{-(1 << 62), -(1 << 62), math.MinInt64},
	})
	checkSat(t, "SaturatedAdd[uint64]", SaturatedAdd[uint64], []satCase[uint64]{
		{math.MaxUint64, 1, math.MaxUint64},
		{1 << 63, 1 << 63, math.MaxUint64},
		{1 << 62, 1 << 62, 1 << 63},
	})
}

func TestSaturatedSub(t *testing.T) {
	checkSat(t, "SaturatedSub[int8]", SaturatedSub[int8], []satCase[int8]{
		{-120, 10, -128}, // saturates, not -130
		{120, -10, 127},
		{50, 50, 0},
	})
	checkSat(t, "SaturatedSub[uint8]", SaturatedSub[uint8], []satCase[uint8]{
		{10, 20, 0}, // saturates, not 246
		{100, 50, 50},
		{255, 1, 254},
	})
	checkSat(t, "SaturatedSub[int16]", SaturatedSub[int16], []satCase[int16]{
		{math.MinInt16, 1, math.MinInt16},
		{math.MaxInt16, -1, math.MaxInt16},
	})
	checkSat(t, "SaturatedSub[uint16]", SaturatedSub[uint16], []satCase[uint16]{
		{0, 1, 0},
		{1000, 999, 1},
	})
	checkSat(t, "SaturatedSub[int32]", SaturatedSub[int32], []satCase[int32]{
		{math.MinInt32, 1, math.MinInt32},
		{math.MaxInt32, -1, math.MaxInt32},
	})
	checkSat(t, "SaturatedSub[uint32]", SaturatedSub[uint32], []satCase[uint32]{
		{0, math.MaxUint32, 0},
		{math.MaxUint32, math.MaxUint32, 0},
	})
	checkSat(t, "SaturatedSub[int64]", SaturatedSub[int64], []satCase[int64]{
		{math.MinInt64, 1, math.MinInt64},
		{math.MaxInt64, -1, math.MaxInt64},
		{0, math.MinInt64, math.MaxInt64}, // -MinInt64 does not exist
	})
	checkSat(t, "SaturatedSub[uint64]", SaturatedSub[uint64], []satCase[uint64]{
		{0, 1, 0},
		{math.MaxUint64, 1, math.MaxUint64 - 1},
	})
}

func TestSaturatedMul(t *testing.T) {
	checkSat(t, "SaturatedMul[int8]", SaturatedMul[int8], []satCase[int8]{
		{16, 16, 127}, // 256 saturates
		{-16, 16, -128},
		{11, 11, 121},
	})
	checkSat(t, "SaturatedMul[uint8]", SaturatedMul[uint8], []satCase[uint8]{
		{16, 16, 255},
		{15, 15, 225},
	})
	checkSat(t, "SaturatedMul[int16]", SaturatedMul[int16], []satCase[int16]{
		{256, 256, math.MaxInt16},
		{-256, 256, math.MinInt16},
		{100, 100, 10000},
	})
	checkSat(t, "SaturatedMul[uint16]", SaturatedMul[uint16], []satCase[uint16]{
		{256, 256, math.MaxUint16},
		{255, 255, 65025},
	})
	checkSat(t, "SaturatedMul[int32]", SaturatedMul[int32], []satCase[int32]{
		{1 << 16, 1 << 16, math.MaxInt32},
		{-(1 << 16), 1 << 16, math.MinInt32},
		{46340, 46340, 2147395600}, // largest square below MaxInt32
	})
	checkSat(t, "SaturatedMul[uint32]", SaturatedMul[uint32], []satCase[uint32]{
		{1 << 16, 1 << 16, math.MaxUint32},
		{65535, 65535, 4294836225},
	})
	checkSat(t, "SaturatedMul[int64]", SaturatedMul[int64], []satCase[int64]{
		{1 << 32, 1 << 32, math.MaxInt64},
		{-(1 << 32), 1 << 32, math.MinInt64},
		{math.MinInt64, -1, math.MaxInt64},
		{1 << 31, 1 << 31, 1 << 62}, // large operands, exact product
		{1 << 20, 1 << 20, 1 << 40}, // small operands, exact path
		{math.MaxInt64, 0, 0},
	})
	checkSat(t, "SaturatedMul[uint64]", SaturatedMul[uint64], []satCase[uint64]{
		{math.MaxUint64, 2, math.MaxUint64},
		{1 << 32, 1 << 32, math.MaxUint64}, // 2^64 saturates
		{1 << 33, 1 << 30, 1 << 63},        // large operands, exact product
		{1 << 31, 1 << 31, 1 << 62},
	})
}

func TestSaturatedDiv(t *testing.T) {
	checkSat(t, "SaturatedDiv[int8]", SaturatedDiv[int8], []satCase[int8]{
		{math.MinInt8, -1, math.MaxInt8}, // the only overflowing quotient
		{100, 7, 14},
		{-100, 7, -14},
	})
	checkSat(t, "SaturatedDiv[uint8]", SaturatedDiv[uint8], []satCase[uint8]{
		{250, 5, 50},
		{255, 1, 255},
	})
	checkSat(t, "SaturatedDiv[int16]", SaturatedDiv[int16], []satCase[int16]{
		{math.MinInt16, -1, math.MaxInt16},
		{math.MinInt16, 1, math.MinInt16},
	})
	checkSat(t, "SaturatedDiv[uint16]", SaturatedDiv[uint16], []satCase[uint16]{
		{65535, 256, 255},
	})
	checkSat(t, "SaturatedDiv[int32]", SaturatedDiv[int32], []satCase[int32]{
		{math.MinInt32, -1, math.MaxInt32},
		{math.MaxInt32, -1, -math.MaxInt32},
	})
	checkSat(t, "SaturatedDiv[uint32]", SaturatedDiv[uint32], []satCase[uint32]{
		{math.MaxUint32, 2, math.MaxUint32 / 2},
	})
	checkSat(t, "SaturatedDiv[int64]", SaturatedDiv[int64], []satCase[int64]{
		{math.MinInt64, -1, math.MaxInt64},
		{math.MinInt64, 2, math.MinInt64 / 2},
	})
	checkSat(t, "SaturatedDiv[uint64]", SaturatedDiv[uint64], []satCase[uint64]{
		{math.MaxUint64, 1, math.MaxUint64},
	})
}
