package elementwise

import (
	"reflect"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/simplevec/pkg/core/dtypes"
	"github.com/gomlx/simplevec/pkg/core/dtypes/bfloat16"
	"github.com/gomlx/simplevec/pkg/simd"
	"github.com/x448/float16"
)

// Convert =========================================================================================================

// convertFnType is the signature stored in convertPairMap. A type alias, so
// instantiations of the generic converters can be stored as any and asserted
// back directly.
type convertFnType = func(dst, src any)

var convertPairMap = NewDTypePairMap("Convert")

// dtypeOfSlice returns the dtype of the slice's element type.
// It panics (with an exception) if slice is not a slice of a supported type.
// The element type must be the dtype's canonical Go type: []int or named
// types would pass the dtype lookup but fail the later type assertions.
func dtypeOfSlice(slice any) dtypes.DType {
	t := reflect.TypeOf(slice)
	if t == nil || t.Kind() != reflect.Slice {
		exceptions.Panicf("expected a slice of a supported dtype, got %T", slice)
	}
	dtype := dtypes.FromGoType(t.Elem())
	if dtype == dtypes.InvalidDType || dtype.GoType() != t.Elem() {
		exceptions.Panicf("slice element type %s is not a supported dtype", t.Elem())
	}
	return dtype
}

// Convert copies src into dst, converting every element to dst's element
// type. Both must be slices of supported types with the same length.
// Narrowing integer conversions truncate the Go way; conversions through a
// 16-bit float encode with the usual rounding of the codec.
func Convert(dst, src any) {
	fromDType := dtypeOfSlice(src)
	toDType := dtypeOfSlice(dst)
	convertFn := convertPairMap.Get(fromDType, toDType).(convertFnType)
	convertFn(dst, src)
}

// CanConvert reports whether Convert supports the pair (from, to).
func CanConvert(from, to dtypes.DType) bool {
	return convertPairMap.Has(from, to)
}

func convertGeneric[FromT, ToT PODNumericConstraints](dst, src any) {
	srcFlat := src.([]FromT)
	dstFlat := dst.([]ToT)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		dstFlat[idx] = ToT(value)
	}
}

func convertCopy[T SupportedTypesConstraints](dst, src any) {
	srcFlat := src.([]T)
	dstFlat := dst.([]T)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	copy(dstFlat, srcFlat)
}

func convertFromFloat16[_ float16.Float16, ToT PODNumericConstraints](dst, src any) {
	srcFlat := src.([]float16.Float16)
	dstFlat := dst.([]ToT)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		dstFlat[idx] = ToT(simd.DecodeF16(value))
	}
}

func convertToFloat16[FromT PODNumericConstraints, _ float16.Float16](dst, src any) {
	srcFlat := src.([]FromT)
	dstFlat := dst.([]float16.Float16)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		dstFlat[idx] = simd.EncodeF16(float32(value))
	}
}

func convertFromBFloat16[_ bfloat16.BFloat16, ToT PODNumericConstraints](dst, src any) {
	srcFlat := src.([]bfloat16.BFloat16)
	dstFlat := dst.([]ToT)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		dstFlat[idx] = ToT(value.Float32())
	}
}

func convertToBFloat16[FromT PODNumericConstraints, _ bfloat16.BFloat16](dst, src any) {
	srcFlat := src.([]FromT)
	dstFlat := dst.([]bfloat16.BFloat16)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		dstFlat[idx] = bfloat16.FromFloat32(float32(value))
	}
}

func convertFromBool[_ bool, ToT PODNumericConstraints](dst, src any) {
	srcFlat := src.([]bool)
	dstFlat := dst.([]ToT)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		if value {
			dstFlat[idx] = ToT(1)
		} else {
			dstFlat[idx] = ToT(0)
		}
	}
}

func convertToBool[FromT PODNumericConstraints, _ bool](dst, src any) {
	srcFlat := src.([]FromT)
	dstFlat := dst.([]bool)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		dstFlat[idx] = value != 0
	}
}

func convertFloat16ToBool(dst, src any) {
	srcFlat := src.([]float16.Float16)
	dstFlat := dst.([]bool)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		dstFlat[idx] = simd.DecodeF16(value) != 0
	}
}

func convertBoolToFloat16(dst, src any) {
	srcFlat := src.([]bool)
	dstFlat := dst.([]float16.Float16)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	zero, one := simd.EncodeF16(0), simd.EncodeF16(1)
	for idx, value := range srcFlat {
		if value {
			dstFlat[idx] = one
		} else {
			dstFlat[idx] = zero
		}
	}
}

func convertBFloat16ToBool(dst, src any) {
	srcFlat := src.([]bfloat16.BFloat16)
	dstFlat := dst.([]bool)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		dstFlat[idx] = value.Float32() != 0
	}
}

func convertBoolToBFloat16(dst, src any) {
	srcFlat := src.([]bool)
	dstFlat := dst.([]bfloat16.BFloat16)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	zero, one := bfloat16.FromFloat32(0), bfloat16.FromFloat32(1)
	for idx, value := range srcFlat {
		if value {
			dstFlat[idx] = one
		} else {
			dstFlat[idx] = zero
		}
	}
}

func convertFloat16ToBFloat16(dst, src any) {
	srcFlat := src.([]float16.Float16)
	dstFlat := dst.([]bfloat16.BFloat16)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		dstFlat[idx] = bfloat16.FromFloat32(simd.DecodeF16(value))
	}
}

func convertBFloat16ToFloat16(dst, src any) {
	srcFlat := src.([]bfloat16.BFloat16)
	dstFlat := dst.([]float16.Float16)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	for idx, value := range srcFlat {
		dstFlat[idx] = simd.EncodeF16(value.Float32())
	}
}

// registerConvertFrom registers the conversions from one plain numeric source
// type to every supported target dtype.
func registerConvertFrom[FromT PODNumericConstraints]() {
	from := dtypes.FromGenericsType[FromT]()
	convertPairMap.Register(from, dtypes.Int8, priorityGeneric, convertGeneric[FromT, int8])
	convertPairMap.Register(from, dtypes.Int16, priorityGeneric, convertGeneric[FromT, int16])
	convertPairMap.Register(from, dtypes.Int32, priorityGeneric, convertGeneric[FromT, int32])
	convertPairMap.Register(from, dtypes.Int64, priorityGeneric, convertGeneric[FromT, int64])
	convertPairMap.Register(from, dtypes.Uint8, priorityGeneric, convertGeneric[FromT, uint8])
	convertPairMap.Register(from, dtypes.Uint16, priorityGeneric, convertGeneric[FromT, uint16])
	convertPairMap.Register(from, dtypes.Uint32, priorityGeneric, convertGeneric[FromT, uint32])
	convertPairMap.Register(from, dtypes.Uint64, priorityGeneric, convertGeneric[FromT, uint64])
	convertPairMap.Register(from, dtypes.Float32, priorityGeneric, convertGeneric[FromT, float32])
	convertPairMap.Register(from, dtypes.Float64, priorityGeneric, convertGeneric[FromT, float64])
	convertPairMap.Register(from, dtypes.Float16, priorityGeneric, convertToFloat16[FromT, float16.Float16])
	convertPairMap.Register(from, dtypes.BFloat16, priorityGeneric, convertToBFloat16[FromT, bfloat16.BFloat16])
	convertPairMap.Register(from, dtypes.Bool, priorityGeneric, convertToBool[FromT, bool])
}

func init() {
	registerConvertFrom[int8]()
	registerConvertFrom[int16]()
	registerConvertFrom[int32]()
	registerConvertFrom[int64]()
	registerConvertFrom[uint8]()
	registerConvertFrom[uint16]()
	registerConvertFrom[uint32]()
	registerConvertFrom[uint64]()
	registerConvertFrom[float32]()
	registerConvertFrom[float64]()
}

func init() {
	// Float16 sources decode through the portable codec.
	convertPairMap.Register(dtypes.Float16, dtypes.Int8, priorityGeneric, convertFromFloat16[float16.Float16, int8])
	convertPairMap.Register(dtypes.Float16, dtypes.Int16, priorityGeneric, convertFromFloat16[float16.Float16, int16])
	convertPairMap.Register(dtypes.Float16, dtypes.Int32, priorityGeneric, convertFromFloat16[float16.Float16, int32])
	convertPairMap.Register(dtypes.Float16, dtypes.Int64, priorityGeneric, convertFromFloat16[float16.Float16, int64])
	convertPairMap.Register(dtypes.Float16, dtypes.Uint8, priorityGeneric, convertFromFloat16[float16.Float16, uint8])
	convertPairMap.Register(dtypes.Float16, dtypes.Uint16, priorityGeneric, convertFromFloat16[float16.Float16, uint16])
	convertPairMap.Register(dtypes.Float16, dtypes.Uint32, priorityGeneric, convertFromFloat16[float16.Float16, uint32])
	convertPairMap.Register(dtypes.Float16, dtypes.Uint64, priorityGeneric, convertFromFloat16[float16.Float16, uint64])
	convertPairMap.Register(dtypes.Float16, dtypes.Float32, priorityGeneric, convertFromFloat16[float16.Float16, float32])
	convertPairMap.Register(dtypes.Float16, dtypes.Float64, priorityGeneric, convertFromFloat16[float16.Float16, float64])

	// BFloat16 sources.
	convertPairMap.Register(dtypes.BFloat16, dtypes.Int8, priorityGeneric, convertFromBFloat16[bfloat16.BFloat16, int8])
	convertPairMap.Register(dtypes.BFloat16, dtypes.Int16, priorityGeneric, convertFromBFloat16[bfloat16.BFloat16, int16])
	convertPairMap.Register(dtypes.BFloat16, dtypes.Int32, priorityGeneric, convertFromBFloat16[bfloat16.BFloat16, int32])
	convertPairMap.Register(dtypes.BFloat16, dtypes.Int64, priorityGeneric, convertFromBFloat16[bfloat16.BFloat16, int64])
	convertPairMap.Register(dtypes.BFloat16, dtypes.Uint8, priorityGeneric, convertFromBFloat16[bfloat16.BFloat16, uint8])
	convertPairMap.Register(dtypes.BFloat16, dtypes.Uint16, priorityGeneric, convertFromBFloat16[bfloat16.BFloat16, uint16])
	convertPairMap.Register(dtypes.BFloat16, dtypes.Uint32, priorityGeneric, convertFromBFloat16[bfloat16.BFloat16, uint32])
	convertPairMap.Register(dtypes.BFloat16, dtypes.Uint64, priorityGeneric, convertFromBFloat16[bfloat16.BFloat16, uint64])
	convertPairMap.Register(dtypes.BFloat16, dtypes.Float32, priorityGeneric, convertFromBFloat16[bfloat16.BFloat16, float32])
	convertPairMap.Register(dtypes.BFloat16, dtypes.Float64, priorityGeneric, convertFromBFloat16[bfloat16.BFloat16, float64])

	// Bool sources.
	convertPairMap.Register(dtypes.Bool, dtypes.Int8, priorityGeneric, convertFromBool[bool, int8])
	convertPairMap.Register(dtypes.Bool, dtypes.Int16, priorityGeneric, convertFromBool[bool, int16])
	convertPairMap.Register(dtypes.Bool, dtypes.Int32, priorityGeneric, convertFromBool[bool, int32])
	convertPairMap.Register(dtypes.Bool, dtypes.Int64, priorityGeneric, convertFromBool[bool, int64])
	convertPairMap.Register(dtypes.Bool, dtypes.Uint8, priorityGeneric, convertFromBool[bool, uint8])
	convertPairMap.Register(dtypes.Bool, dtypes.Uint16, priorityGeneric, convertFromBool[bool, uint16])
	convertPairMap.Register(dtypes.Bool, dtypes.Uint32, priorityGeneric, convertFromBool[bool, uint32])
	convertPairMap.Register(dtypes.Bool, dtypes.Uint64, priorityGeneric, convertFromBool[bool, uint64])
	convertPairMap.Register(dtypes.Bool, dtypes.Float32, priorityGeneric, convertFromBool[bool, float32])
	convertPairMap.Register(dtypes.Bool, dtypes.Float64, priorityGeneric, convertFromBool[bool, float64])

	// Pairs among bool, float16 and bfloat16.
	convertPairMap.Register(dtypes.Float16, dtypes.Bool, priorityGeneric, convertFloat16ToBool)
	convertPairMap.Register(dtypes.Bool, dtypes.Float16, priorityGeneric, convertBoolToFloat16)
	convertPairMap.Register(dtypes.BFloat16, dtypes.Bool, priorityGeneric, convertBFloat16ToBool)
	convertPairMap.Register(dtypes.Bool, dtypes.BFloat16, priorityGeneric, convertBoolToBFloat16)
	convertPairMap.Register(dtypes.Float16, dtypes.BFloat16, priorityGeneric, convertFloat16ToBFloat16)
	convertPairMap.Register(dtypes.BFloat16, dtypes.Float16, priorityGeneric, convertBFloat16ToFloat16)

	// Same-dtype conversions are plain copies. priorityTyped so they also
	// override the generic numeric diagonal.
	convertPairMap.Register(dtypes.Bool, dtypes.Bool, priorityTyped, convertCopy[bool])
	convertPairMap.Register(dtypes.Int8, dtypes.Int8, priorityTyped, convertCopy[int8])
	convertPairMap.Register(dtypes.Int16, dtypes.Int16, priorityTyped, convertCopy[int16])
	convertPairMap.Register(dtypes.Int32, dtypes.Int32, priorityTyped, convertCopy[int32])
	convertPairMap.Register(dtypes.Int64, dtypes.Int64, priorityTyped, convertCopy[int64])
	convertPairMap.Register(dtypes.Uint8, dtypes.Uint8, priorityTyped, convertCopy[uint8])
	convertPairMap.Register(dtypes.Uint16, dtypes.Uint16, priorityTyped, convertCopy[uint16])
	convertPairMap.Register(dtypes.Uint32, dtypes.Uint32, priorityTyped, convertCopy[uint32])
	convertPairMap.Register(dtypes.Uint64, dtypes.Uint64, priorityTyped, convertCopy[uint64])
	convertPairMap.Register(dtypes.Float16, dtypes.Float16, priorityTyped, convertCopy[float16.Float16])
	convertPairMap.Register(dtypes.Float32, dtypes.Float32, priorityTyped, convertCopy[float32])
	convertPairMap.Register(dtypes.Float64, dtypes.Float64, priorityTyped, convertCopy[float64])
	convertPairMap.Register(dtypes.BFloat16, dtypes.BFloat16, priorityTyped, convertCopy[bfloat16.BFloat16])
}

// Lane-batched fast paths for the hot 16-bit float to float32 pairs. They are
// bit-identical to the scalar converters, so registration only happens when
// vector batching is enabled.

func convertFloat16ToFloat32Lanes(dst, src any) {
	srcFlat := src.([]float16.Float16)
	dstFlat := dst.([]float32)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	n := len(srcFlat)
	i := 0
	for ; i+16 <= n; i += 16 {
		simd.DecodeF16Lanes16((*[16]float16.Float16)(srcFlat[i:i+16]), (*[16]float32)(dstFlat[i:i+16]))
	}
	for ; i < n; i++ {
		dstFlat[i] = simd.DecodeF16(srcFlat[i])
	}
}

func convertFloat32ToFloat16Lanes(dst, src any) {
	srcFlat := src.([]float32)
	dstFlat := dst.([]float16.Float16)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	n := len(srcFlat)
	i := 0
	for ; i+16 <= n; i += 16 {
		simd.EncodeF16Lanes16((*[16]float32)(srcFlat[i:i+16]), (*[16]float16.Float16)(dstFlat[i:i+16]))
	}
	for ; i < n; i++ {
		dstFlat[i] = simd.EncodeF16(srcFlat[i])
	}
}

func convertBFloat16ToFloat32Lanes(dst, src any) {
	srcFlat := src.([]bfloat16.BFloat16)
	dstFlat := dst.([]float32)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	n := len(srcFlat)
	i := 0
	for ; i+16 <= n; i += 16 {
		simd.DecodeBF16Lanes16((*[16]bfloat16.BFloat16)(srcFlat[i:i+16]), (*[16]float32)(dstFlat[i:i+16]))
	}
	for ; i < n; i++ {
		dstFlat[i] = srcFlat[i].Float32()
	}
}

func convertFloat32ToBFloat16Lanes(dst, src any) {
	srcFlat := src.([]float32)
	dstFlat := dst.([]bfloat16.BFloat16)
	checkSameLen("Convert", len(srcFlat), len(dstFlat))
	n := len(srcFlat)
	i := 0
	for ; i+16 <= n; i += 16 {
		simd.EncodeBF16Lanes16((*[16]float32)(srcFlat[i:i+16]), (*[16]bfloat16.BFloat16)(dstFlat[i:i+16]))
	}
	for ; i < n; i++ {
		dstFlat[i] = bfloat16.FromFloat32(srcFlat[i])
	}
}

func init() {
	if simd.Detect().Width == simd.WidthScalar {
		return
	}
	// priorityTyped overrides the generic registrations above.
	convertPairMap.Register(dtypes.Float16, dtypes.Float32, priorityTyped, convertFloat16ToFloat32Lanes)
	convertPairMap.Register(dtypes.Float32, dtypes.Float16, priorityTyped, convertFloat32ToFloat16Lanes)
	convertPairMap.Register(dtypes.BFloat16, dtypes.Float32, priorityTyped, convertBFloat16ToFloat32Lanes)
	convertPairMap.Register(dtypes.Float32, dtypes.BFloat16, priorityTyped, convertFloat32ToBFloat16Lanes)
}
