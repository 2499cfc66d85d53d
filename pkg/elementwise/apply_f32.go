package elementwise

import (
	"github.com/gomlx/simplevec/pkg/core/dtypes/bfloat16"
	"github.com/gomlx/simplevec/pkg/simd"
	"github.com/x448/float16"
)

// The widening paths run every transform in float32: decode a lane batch from
// the storage format, transform each lane, encode into the output storage
// format. When the output is float32/float64 the encode step is a plain store,
// there is nothing to round. The codecs below are the tag-dispatch table that
// binds a storage type to its lane kernels; each ApplyF32 call resolves its
// pair once, not per element.

// loadCodec decodes one storage type to float32, in batches and one at a time.
type loadCodec[S Float32SourceConstraints] struct {
	lanes8  func(src *[8]S, dst *[8]float32)
	lanes16 func(src *[16]S, dst *[16]float32)
	scalar  func(S) float32
}

// storeCodec encodes float32 results into one storage type.
type storeCodec[S Float32SinkConstraints] struct {
	lanes8  func(src *[8]float32, dst *[8]S)
	lanes16 func(src *[16]float32, dst *[16]S)
	scalar  func(float32) S
}

func loadCodecFor[S Float32SourceConstraints]() loadCodec[S] {
	var zero S
	var c any
	switch any(zero).(type) {
	case float16.Float16:
		c = loadCodec[float16.Float16]{
			lanes8:  simd.DecodeF16Lanes8,
			lanes16: simd.DecodeF16Lanes16,
			scalar:  simd.DecodeF16,
		}
	case bfloat16.BFloat16:
		c = loadCodec[bfloat16.BFloat16]{
			lanes8:  simd.DecodeBF16Lanes8,
			lanes16: simd.DecodeBF16Lanes16,
			scalar:  bfloat16.BFloat16.Float32,
		}
	case float32:
		c = loadCodec[float32]{
			lanes8:  func(src, dst *[8]float32) { *dst = *src },
			lanes16: func(src, dst *[16]float32) { *dst = *src },
			scalar:  func(x float32) float32 { return x },
		}
	}
	return c.(loadCodec[S])
}

func storeCodecFor[S Float32SinkConstraints]() storeCodec[S] {
	var zero S
	var c any
	switch any(zero).(type) {
	case float16.Float16:
		c = storeCodec[float16.Float16]{
			lanes8:  simd.EncodeF16Lanes8,
			lanes16: simd.EncodeF16Lanes16,
			scalar:  simd.EncodeF16,
		}
	case bfloat16.BFloat16:
		c = storeCodec[bfloat16.BFloat16]{
			lanes8:  simd.EncodeBF16Lanes8,
			lanes16: simd.EncodeBF16Lanes16,
			scalar:  bfloat16.FromFloat32,
		}
	case float32:
		c = storeCodec[float32]{
			lanes8:  func(src, dst *[8]float32) { *dst = *src },
			lanes16: func(src, dst *[16]float32) { *dst = *src },
			scalar:  func(x float32) float32 { return x },
		}
	case float64:
		c = storeCodec[float64]{
			lanes8: func(src *[8]float32, dst *[8]float64) {
				for i, x := range src {
					dst[i] = float64(x)
				}
			},
			lanes16: func(src *[16]float32, dst *[16]float64) {
				for i, x := range src {
					dst[i] = float64(x)
				}
			},
			scalar: func(x float32) float64 { return float64(x) },
		}
	}
	return c.(storeCodec[S])
}

// ApplyF32 decodes in to float32, applies transform per element, and encodes
// into out. In-place use (same backing slice for in and out) is fine when the
// types match. The transform must be pure.
func ApplyF32[In Float32SourceConstraints, Out Float32SinkConstraints](
	e *Engine, in []In, out []Out, transform func(float32) float32) {
	checkSameLen("ApplyF32", len(in), len(out))
	load := loadCodecFor[In]()
	store := storeCodecFor[Out]()
	width := e.caps.Width
	e.parallelize(len(in), func(start, end int) {
		applyF32Chunk(width, load, store, in[start:end], out[start:end], transform)
	})
}

// ApplyF32InPlace is ApplyF32 writing back into data.
func ApplyF32InPlace[S Float32SourceConstraints](e *Engine, data []S, transform func(float32) float32) {
	ApplyF32(e, data, data, transform)
}

// Apply2F32 is the binary form: out[i] = encode(transform(decode(x[i]), decode(y[i]))).
func Apply2F32[In Float32SourceConstraints, Out Float32SinkConstraints](
	e *Engine, x, y []In, out []Out, transform func(a, b float32) float32) {
	checkSameLen("Apply2F32", len(x), len(out))
	checkSameLen("Apply2F32", len(y), len(out))
	load := loadCodecFor[In]()
	store := storeCodecFor[Out]()
	width := e.caps.Width
	e.parallelize(len(out), func(start, end int) {
		apply2F32Chunk(width, load, store, x[start:end], y[start:end], out[start:end], transform)
	})
}

func applyF32Chunk[In Float32SourceConstraints, Out Float32SinkConstraints](
	width simd.VectorWidth, load loadCodec[In], store storeCodec[Out],
	in []In, out []Out, transform func(float32) float32) {
	n := len(in)
	i := 0
	switch width {
	case simd.WidthWide:
		var lanes [16]float32
		for ; i+16 <= n; i += 16 {
			load.lanes16((*[16]In)(in[i:i+16]), &lanes)
			for j, x := range lanes {
				lanes[j] = transform(x)
			}
			store.lanes16(&lanes, (*[16]Out)(out[i:i+16]))
		}
	case simd.WidthMid:
		var lanes [8]float32
		for ; i+8 <= n; i += 8 {
			load.lanes8((*[8]In)(in[i:i+8]), &lanes)
			for j, x := range lanes {
				lanes[j] = transform(x)
			}
			store.lanes8(&lanes, (*[8]Out)(out[i:i+8]))
		}
	}
	for ; i < n; i++ {
		out[i] = store.scalar(transform(load.scalar(in[i])))
	}
}

func apply2F32Chunk[In Float32SourceConstraints, Out Float32SinkConstraints](
	width simd.VectorWidth, load loadCodec[In], store storeCodec[Out],
	x, y []In, out []Out, transform func(a, b float32) float32) {
	n := len(out)
	i := 0
	switch width {
	case simd.WidthWide:
		var xs, ys [16]float32
		for ; i+16 <= n; i += 16 {
			load.lanes16((*[16]In)(x[i:i+16]), &xs)
			load.lanes16((*[16]In)(y[i:i+16]), &ys)
			for j := range xs {
				xs[j] = transform(xs[j], ys[j])
			}
			store.lanes16(&xs, (*[16]Out)(out[i:i+16]))
		}
	case simd.WidthMid:
		var xs, ys [8]float32
		for ; i+8 <= n; i += 8 {
			load.lanes8((*[8]In)(x[i:i+8]), &xs)
			load.lanes8((*[8]In)(y[i:i+8]), &ys)
			for j := range xs {
				xs[j] = transform(xs[j], ys[j])
			}
			store.lanes8(&xs, (*[8]Out)(out[i:i+8]))
		}
	}
	for ; i < n; i++ {
		out[i] = store.scalar(transform(load.scalar(x[i]), load.scalar(y[i])))
	}
}
