package elementwise

import (
	"github.com/gomlx/simplevec/pkg/core/dtypes/bfloat16"
	"github.com/x448/float16"
)

// SupportedTypesConstraints enumerates the element types the engine operates on.
type SupportedTypesConstraints interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | float16.Float16 | bfloat16.BFloat16
}

// PODNumericConstraints are used for generics over the Golang pod (plain-old-data) types.
// Float16 and BFloat16 are not included because they are specialized types, not natively
// supported by Go; they go through the float32 widening paths instead.
type PODNumericConstraints interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64
}

// PODSignedNumericConstraints are used for generics over the signed Golang pod types.
type PODSignedNumericConstraints interface {
	int8 | int16 | int32 | int64 | float32 | float64
}

// PODIntegerConstraints are used for generics over the Golang pod integer types.
type PODIntegerConstraints interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64
}

// PODUnsignedConstraints are used for generics over the Golang pod unsigned types.
type PODUnsignedConstraints interface {
	uint8 | uint16 | uint32 | uint64
}

// PODFloatConstraints are used for generics over the Golang pod float types.
type PODFloatConstraints interface {
	float32 | float64
}

// Float32SourceConstraints are the storage types the widening paths can decode
// to float32 losslessly enough to carry a transform: the two 16-bit formats
// plus float32 itself.
type Float32SourceConstraints interface {
	float16.Float16 | bfloat16.BFloat16 | float32
}

// Float32SinkConstraints are the storage types the widening paths can encode a
// float32 result into. float64 is a sink only: storing widens exactly, but
// loading would have to narrow and lose bits.
type Float32SinkConstraints interface {
	float16.Float16 | bfloat16.BFloat16 | float32 | float64
}
