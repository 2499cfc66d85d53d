package elementwise

import (
	"github.com/gomlx/simplevec/pkg/core/dtypes"
	"github.com/gomlx/simplevec/pkg/simd"
)

// Saturated arithmetic on slices: results clamp to the type's range instead
// of wrapping, so int8 120+10 gives 127 and uint8 250+10 gives 255. Floats
// are excluded on purpose, they already saturate to +/-Inf in hardware.

// SaturatedAddSlices computes out[i] = x[i] + y[i] with saturation.
func SaturatedAddSlices[T PODIntegerConstraints](e *Engine, x, y, out []T) {
	Apply2(e, x, y, out, simd.SaturatedAdd[T])
}

// SaturatedSubSlices computes out[i] = x[i] - y[i] with saturation.
func SaturatedSubSlices[T PODIntegerConstraints](e *Engine, x, y, out []T) {
	Apply2(e, x, y, out, simd.SaturatedSub[T])
}

// SaturatedMulSlices computes out[i] = x[i] * y[i] with saturation.
func SaturatedMulSlices[T PODIntegerConstraints](e *Engine, x, y, out []T) {
	Apply2(e, x, y, out, simd.SaturatedMul[T])
}

// SaturatedDivSlices computes out[i] = x[i] / y[i] with saturation: the only
// saturating case is MinInt / -1, which overflows a two's complement type.
// Division by zero panics as it does for the Go operator.
func SaturatedDivSlices[T PODIntegerConstraints](e *Engine, x, y, out []T) {
	Apply2(e, x, y, out, simd.SaturatedDiv[T])
}

var (
	saturatedAddDispatcher = NewDTypeDispatcher("SaturatedAdd")
	saturatedSubDispatcher = NewDTypeDispatcher("SaturatedSub")
	saturatedMulDispatcher = NewDTypeDispatcher("SaturatedMul")
	saturatedDivDispatcher = NewDTypeDispatcher("SaturatedDiv")
)

func registerSaturatedOps[T PODIntegerConstraints]() {
	dtype := dtypes.FromGenericsType[T]()
	saturatedAddDispatcher.Register(dtype, priorityGeneric, func(params ...any) {
		SaturatedAddSlices(params[0].(*Engine), params[1].([]T), params[2].([]T), params[3].([]T))
	})
	saturatedSubDispatcher.Register(dtype, priorityGeneric, func(params ...any) {
		SaturatedSubSlices(params[0].(*Engine), params[1].([]T), params[2].([]T), params[3].([]T))
	})
	saturatedMulDispatcher.Register(dtype, priorityGeneric, func(params ...any) {
		SaturatedMulSlices(params[0].(*Engine), params[1].([]T), params[2].([]T), params[3].([]T))
	})
	saturatedDivDispatcher.Register(dtype, priorityGeneric, func(params ...any) {
		SaturatedDivSlices(params[0].(*Engine), params[1].([]T), params[2].([]T), params[3].([]T))
	})
}

func init() {
	registerSaturatedOps[int8]()
	registerSaturatedOps[int16]()
	registerSaturatedOps[int32]()
	registerSaturatedOps[int64]()
	registerSaturatedOps[uint8]()
	registerSaturatedOps[uint16]()
	registerSaturatedOps[uint32]()
	registerSaturatedOps[uint64]()
}

// SaturatedAddAny is SaturatedAddSlices dispatching on the runtime dtype of
// the slices. x, y and out must be integer slices of the same element type.
func SaturatedAddAny(e *Engine, x, y, out any) {
	saturatedAddDispatcher.Dispatch(dtypeOfSlice(x), e, x, y, out)
}

// SaturatedSubAny is SaturatedSubSlices dispatching on the runtime dtype.
func SaturatedSubAny(e *Engine, x, y, out any) {
	saturatedSubDispatcher.Dispatch(dtypeOfSlice(x), e, x, y, out)
}

// SaturatedMulAny is SaturatedMulSlices dispatching on the runtime dtype.
func SaturatedMulAny(e *Engine, x, y, out any) {
	saturatedMulDispatcher.Dispatch(dtypeOfSlice(x), e, x, y, out)
}

// SaturatedDivAny is SaturatedDivSlices dispatching on the runtime dtype.
func SaturatedDivAny(e *Engine, x, y, out any) {
	saturatedDivDispatcher.Dispatch(dtypeOfSlice(x), e, x, y, out)
}
