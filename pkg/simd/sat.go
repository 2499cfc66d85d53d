package simd

import "math"

// Saturating integer arithmetic, mirroring the clamped vector instructions the
// dispatcher's integer paths map to. Results clamp to the type's representable
// range instead of wrapping. 8/16/32-bit operations compute in a wider
// intermediate and clamp; the 64-bit variants have no wider integer type and
// use compare tricks (add, sub) or a range check plus a float64 intermediate
// (mul). Floating-point values never saturate, so no float variants exist.
//
// The constraints deliberately carry no ~ approximations: the type switches
// below match exact types, and a named integer type would silently fall
// through to the wrapping default.

// SignedInts are the fixed-size signed integer types.
type SignedInts interface {
	int8 | int16 | int32 | int64
}

// UnsignedInts are the fixed-size unsigned integer types.
type UnsignedInts interface {
	uint8 | uint16 | uint32 | uint64
}

// Integers are the types the saturating helpers operate on.
type Integers interface {
	SignedInts | UnsignedInts
}

// SaturatedAdd returns a+b clamped to T's range.
// For example, uint8: 250 + 10 = 255 (not 4); int8: 120 + 10 = 127.
func SaturatedAdd[T Integers](a, b T) T {
	switch av := any(a).(type) {
	case int8:
		sum := int16(av) + int16(any(b).(int8))
		if sum > math.MaxInt8 {
			sum = math.MaxInt8
		}
		if sum < math.MinInt8 {
			sum = math.MinInt8
		}
		return T(sum)
	case int16:
		sum := int32(av) + int32(any(b).(int16))
		if sum > math.MaxInt16 {
			sum = math.MaxInt16
		}
		if sum < math.MinInt16 {
			sum = math.MinInt16
		}
		return T(sum)
	case int32:
		sum := int64(av) + int64(any(b).(int32))
		if sum > math.MaxInt32 {
			sum = math.MaxInt32
		}
		if sum < math.MinInt32 {
			sum = math.MinInt32
		}
		return T(sum)
	case int64:
		bv := any(b).(int64)
		var sum int64
		switch {
		case bv > 0 && av > math.MaxInt64-bv:
			sum = math.MaxInt64
		case bv < 0 && av < math.MinInt64-bv:
			sum = math.MinInt64
		default:
			sum = av + bv
		}
		return T(sum)
	case uint8:
		sum := uint16(av) + uint16(any(b).(uint8))
		if sum > math.MaxUint8 {
			sum = math.MaxUint8
		}
		return T(sum)
	case uint16:
		sum := uint32(av) + uint32(any(b).(uint16))
		if sum > math.MaxUint16 {
			sum = math.MaxUint16
		}
		return T(sum)
	case uint32:
		sum := uint64(av) + uint64(any(b).(uint32))
		if sum > math.MaxUint32 {
			sum = math.MaxUint32
		}
		return T(sum)
	case uint64:
		bv := any(b).(uint64)
		var sum uint64
		if av > math.MaxUint64-bv {
			sum = math.MaxUint64
		} else {
			sum = av + bv
		}
		return T(sum)
	default:
		return a + b
	}
}

// SaturatedSub returns a-b clamped to T's range.
// For example, uint8: 10 - 20 = 0 (not 246); int8: -120 - 10 = -128.
func SaturatedSub[T Integers](a, b T) T {
	switch av := any(a).(type) {
	case int8:
		diff := int16(av) - int16(any(b).(int8))
		if diff > math.MaxInt8 {
			diff = math.MaxInt8
		}
		if diff < math.MinInt8 {
			diff = math.MinInt8
		}
		return T(diff)
	case int16:
		diff := int32(av) - int32(any(b).(int16))
		if diff > math.MaxInt16 {
			diff = math.MaxInt16
		}
		if diff < math.MinInt16 {
			diff = math.MinInt16
		}
		return T(diff)
	case int32:
		diff := int64(av) - int64(any(b).(int32))
		if diff > math.MaxInt32 {
			diff = math.MaxInt32
		}
		if diff < math.MinInt32 {
			diff = math.MinInt32
		}
		return T(diff)
	case int64:
		bv := any(b).(int64)
		var diff int64
		switch {
		case bv < 0 && av > math.MaxInt64+bv:
			diff = math.MaxInt64
		case bv > 0 && av < math.MinInt64+bv:
			diff = math.MinInt64
		default:
			diff = av - bv
		}
		return T(diff)
	case uint8:
		diff := int16(av) - int16(any(b).(uint8))
		if diff < 0 {
			diff = 0
		}
		return T(diff)
	case uint16:
		diff := int32(av) - int32(any(b).(uint16))
		if diff < 0 {
			diff = 0
		}
		return T(diff)
	case uint32:
		diff := int64(av) - int64(any(b).(uint32))
		if diff < 0 {
			diff = 0
		}
		return T(diff)
	case uint64:
		bv := any(b).(uint64)
		var diff uint64
		if bv <= av {
			diff = av - bv
		}
		return T(diff)
	default:
		return a - b
	}
}

// SaturatedMul returns a*b clamped to T's range. The 64-bit cases multiply
// exactly when both magnitudes fit a 32-bit half, and otherwise estimate the
// product in float64 to detect overflow; products within half a float64 ulp of
// the 2^63 (or 2^64) boundary may clamp even though they barely fit.
func SaturatedMul[T Integers](a, b T) T {
	switch av := any(a).(type) {
	case int8:
		product := int16(av) * int16(any(b).(int8))
		if product > math.MaxInt8 {
			product = math.MaxInt8
		}
		if product < math.MinInt8 {
			product = math.MinInt8
		}
		return T(product)
	case int16:
		product := int32(av) * int32(any(b).(int16))
		if product > math.MaxInt16 {
			product = math.MaxInt16
		}
		if product < math.MinInt16 {
			product = math.MinInt16
		}
		return T(product)
	case int32:
		product := int64(av) * int64(any(b).(int32))
		if product > math.MaxInt32 {
			product = math.MaxInt32
		}
		if product < math.MinInt32 {
			product = math.MinInt32
		}
		return T(product)
	case int64:
		return T(mulSat64(av, any(b).(int64)))
	case uint8:
		product := uint16(av) * uint16(any(b).(uint8))
		if product > math.MaxUint8 {
			product = math.MaxUint8
		}
		return T(product)
	case uint16:
		product := uint32(av) * uint32(any(b).(uint16))
		if product > math.MaxUint16 {
			product = math.MaxUint16
		}
		return T(product)
	case uint32:
		product := uint64(av) * uint64(any(b).(uint32))
		if product > math.MaxUint32 {
			product = math.MaxUint32
		}
		return T(product)
	case uint64:
		return T(mulSatU64(av, any(b).(uint64)))
	default:
		return a * b
	}
}

// mulSat64 multiplies signed 64-bit values with clamping. Operands with
// magnitude below 2^31 cannot overflow and multiply directly; larger operands
// are screened through a float64 product, which has the range to spot overflow.
// Whenever the screen passes, the true product fits and the exact integer
// multiply is returned.
func mulSat64(a, b int64) int64 {
	if a > -(1<<31) && a < 1<<31 && b > -(1<<31) && b < 1<<31 {
		return a * b
	}
	p := float64(a) * float64(b)
	if p >= math.MaxInt64 {
		return math.MaxInt64
	}
	if p <= math.MinInt64 {
		return math.MinInt64
	}
	return a * b
}

// mulSatU64 is mulSat64 for unsigned 64-bit values.
func mulSatU64(a, b uint64) uint64 {
	if a < 1<<32 && b < 1<<32 {
		return a * b
	}
	p := float64(a) * float64(b)
	if p >= math.MaxUint64 {
		return math.MaxUint64
	}
	return a * b
}

// SaturatedDiv returns a/b clamped to T's range. The only quotient a signed
// division cannot represent is MIN / -1, which clamps to MAX; unsigned
// division never overflows. Division by zero is not masked and faults the same
// way the / operator does.
func SaturatedDiv[T Integers](a, b T) T {
	switch av := any(a).(type) {
	case int8:
		q := int16(av) / int16(any(b).(int8))
		if q > math.MaxInt8 {
			q = math.MaxInt8
		}
		return T(q)
	case int16:
		q := int32(av) / int32(any(b).(int16))
		if q > math.MaxInt16 {
			q = math.MaxInt16
		}
		return T(q)
	case int32:
		q := int64(av) / int64(any(b).(int32))
		if q > math.MaxInt32 {
			q = math.MaxInt32
		}
		return T(q)
	case int64:
		bv := any(b).(int64)
		var q int64
		if av == math.MinInt64 && bv == -1 {
			q = math.MaxInt64
		} else {
			q = av / bv
		}
		return T(q)
	case uint8:
		return T(av / any(b).(uint8))
	case uint16:
		return T(av / any(b).(uint16))
	case uint32:
		return T(av / any(b).(uint32))
	case uint64:
		return T(av / any(b).(uint64))
	default:
		return a / b
	}
}
