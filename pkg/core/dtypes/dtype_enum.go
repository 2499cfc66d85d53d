package dtypes

import "strconv"

// The values are kept 1:1 with the PJRT buffer type enum (pjrt_c_api.h), the same
// numbering used by gopjrt and GoMLX, so buffers exchanged with those backends
// round-trip without translation. Values of PJRT types this core does not support
// (complex, F8 variants, sub-byte types) are deliberately not declared.

// DType is an enum that represents the data type of an element in a buffer view.
//
// The canonical names follow the Go type names; the short PJRT/XLA aliases (S8,
// F32, ...) are provided below.
type DType int32

const (
	// InvalidDType is the zero value, and serves as the default for "no dtype".
	// It matches PJRT_Buffer_Type_INVALID.
	InvalidDType DType = 0

	// Bool is a two-state predicate (PJRT_Buffer_Type_PRED).
	Bool DType = 1

	// Int8 is a signed integer of fixed 8-bit width (PJRT_Buffer_Type_S8).
	Int8 DType = 2

	// Int16 (PJRT_Buffer_Type_S16).
	Int16 DType = 3

	// Int32 (PJRT_Buffer_Type_S32).
	Int32 DType = 4

	// Int64 (PJRT_Buffer_Type_S64).
	Int64 DType = 5

	// Uint8 is an unsigned integer of fixed 8-bit width (PJRT_Buffer_Type_U8).
	Uint8 DType = 6

	// Uint16 (PJRT_Buffer_Type_U16).
	Uint16 DType = 7

	// Uint32 (PJRT_Buffer_Type_U32).
	Uint32 DType = 8

	// Uint64 (PJRT_Buffer_Type_U64).
	Uint64 DType = 9

	// Float16 is the IEEE-754 half-precision format: 1 sign, 5 exponent and
	// 10 mantissa bits (PJRT_Buffer_Type_F16).
	Float16 DType = 10

	// Float32 (PJRT_Buffer_Type_F32).
	Float32 DType = 11

	// Float64 (PJRT_Buffer_Type_F64).
	Float64 DType = 12

	// BFloat16 is the truncated 16-bit floating-point format: 1 sign, 8 exponent
	// (same range as float32) and 7 mantissa bits (PJRT_Buffer_Type_BF16).
	BFloat16 DType = 13
)

// MaxDType is one past the highest supported DType value, for fixed-size dispatch
// tables indexed by DType.
const MaxDType = BFloat16 + 1

// Aliases from the PJRT C API.
const (
	// INVALID (or PJRT_Buffer_Type_INVALID) is the C enum name for InvalidDType.
	INVALID = InvalidDType

	// PRED (or PJRT_Buffer_Type_PRED) is the C enum name for Bool.
	PRED = Bool

	// S8 (or PJRT_Buffer_Type_S8) is the C enum name for Int8.
	S8 = Int8

	// S16 (or PJRT_Buffer_Type_S16) is the C enum name for Int16.
	S16 = Int16

	// S32 (or PJRT_Buffer_Type_S32) is the C enum name for Int32.
	S32 = Int32

	// S64 (or PJRT_Buffer_Type_S64) is the C enum name for Int64.
	S64 = Int64

	// U8 (or PJRT_Buffer_Type_U8) is the C enum name for Uint8.
	U8 = Uint8

	// U16 (or PJRT_Buffer_Type_U16) is the C enum name for Uint16.
	U16 = Uint16

	// U32 (or PJRT_Buffer_Type_U32) is the C enum name for Uint32.
	U32 = Uint32

	// U64 (or PJRT_Buffer_Type_U64) is the C enum name for Uint64.
	U64 = Uint64

	// F16 (or PJRT_Buffer_Type_F16) is the C enum name for Float16.
	F16 = Float16

	// F32 (or PJRT_Buffer_Type_F32) is the C enum name for Float32.
	F32 = Float32

	// F64 (or PJRT_Buffer_Type_F64) is the C enum name for Float64.
	F64 = Float64

	// BF16 (or PJRT_Buffer_Type_BF16) is the C enum name for BFloat16.
	BF16 = BFloat16
)

// MapOfNames to their dtypes. It includes also aliases to the various dtypes.
// It is also later initialized to include the lower-case version of the names.
var MapOfNames = map[string]DType{
	"InvalidDType": InvalidDType,
	"INVALID":      InvalidDType,
	"Bool":         Bool,
	"PRED":         Bool,
	"Int8":         Int8,
	"S8":           Int8,
	"Int16":        Int16,
	"S16":          Int16,
	"Int32":        Int32,
	"S32":          Int32,
	"Int64":        Int64,
	"S64":          Int64,
	"Uint8":        Uint8,
	"U8":           Uint8,
	"Uint16":       Uint16,
	"U16":          Uint16,
	"Uint32":       Uint32,
	"U32":          Uint32,
	"Uint64":       Uint64,
	"U64":          Uint64,
	"Float16":      Float16,
	"F16":          Float16,
	"Float32":      Float32,
	"F32":          Float32,
	"Float64":      Float64,
	"F64":          Float64,
	"BFloat16":     BFloat16,
	"BF16":         BFloat16,
}

// namesOfDTypes is the reverse of MapOfNames restricted to the canonical names.
var namesOfDTypes = [MaxDType]string{
	"InvalidDType", "Bool",
	"Int8", "Int16", "Int32", "Int64",
	"Uint8", "Uint16", "Uint32", "Uint64",
	"Float16", "Float32", "Float64", "BFloat16",
}

// String implements fmt.Stringer.
func (dtype DType) String() string {
	if dtype < 0 || dtype >= MaxDType {
		return "DType(" + strconv.Itoa(int(dtype)) + ")"
	}
	return namesOfDTypes[dtype]
}
