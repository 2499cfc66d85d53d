package elementwise

import (
	"github.com/gomlx/exceptions"
)

// checkSameLen enforces the equal-length precondition before anything is
// written. Compiled out under the nochecks tag; a violated check panics with
// an exceptions error and the output is untouched.
func checkSameLen(name string, inLen, outLen int) {
	if sanityChecks && inLen != outLen {
		exceptions.Panicf("%s: input length %d does not match output length %d (no elements written)",
			name, inLen, outLen)
	}
}

// Apply writes transform(in[i]) to out[i] for every element. in and out may
// be the same slice; other forms of overlap are the caller's problem. The
// transform must be pure: it can run concurrently and in any order.
func Apply[T SupportedTypesConstraints](e *Engine, in, out []T, transform func(T) T) {
	checkSameLen("Apply", len(in), len(out))
	lanes := e.caps.Width.Lanes()
	e.parallelize(len(in), func(start, end int) {
		applyChunk(lanes, in[start:end], out[start:end], transform)
	})
}

// ApplyInPlace is Apply writing back into data.
func ApplyInPlace[T SupportedTypesConstraints](e *Engine, data []T, transform func(T) T) {
	Apply(e, data, data, transform)
}

// Apply2 writes transform(x[i], y[i]) to out[i] for every element. Any of the
// slices may alias each other exactly.
func Apply2[T SupportedTypesConstraints](e *Engine, x, y, out []T, transform func(x, y T) T) {
	checkSameLen("Apply2", len(x), len(out))
	checkSameLen("Apply2", len(y), len(out))
	lanes := e.caps.Width.Lanes()
	e.parallelize(len(out), func(start, end int) {
		apply2Chunk(lanes, x[start:end], y[start:end], out[start:end], transform)
	})
}

// applyChunk processes full lane batches with bounds-check-free inner loops,
// then the remainder one element at a time. Both loops run the same transform
// on the same values, so the split is invisible in the output.
func applyChunk[T SupportedTypesConstraints](lanes int, in, out []T, transform func(T) T) {
	n := len(in)
	body := 0
	if lanes > 1 {
		body = n - n%lanes
		for i := 0; i < body; i += lanes {
			src := in[i : i+lanes : i+lanes]
			dst := out[i : i+lanes : i+lanes]
			for j, x := range src {
				dst[j] = transform(x)
			}
		}
	}
	for i := body; i < n; i++ {
		out[i] = transform(in[i])
	}
}

func apply2Chunk[T SupportedTypesConstraints](lanes int, x, y, out []T, transform func(x, y T) T) {
	n := len(out)
	body := 0
	if lanes > 1 {
		body = n - n%lanes
		for i := 0; i < body; i += lanes {
			xs := x[i : i+lanes : i+lanes]
			ys := y[i : i+lanes : i+lanes]
			dst := out[i : i+lanes : i+lanes]
			for j := range dst {
				dst[j] = transform(xs[j], ys[j])
			}
		}
	}
	for i := body; i < n; i++ {
		out[i] = transform(x[i], y[i])
	}
}
