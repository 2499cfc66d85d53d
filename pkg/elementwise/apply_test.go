package elementwise

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/simplevec/pkg/core/dtypes/bfloat16"
	"github.com/gomlx/simplevec/pkg/simd"
	"github.com/x448/float16"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

// engineForWidth builds a single-goroutine engine pinned to one vector width.
func engineForWidth(width simd.VectorWidth) *Engine {
	return New(WithCapabilities(simd.ForWidth(width)), WithPool(nil))
}

func forEachWidth(t *testing.T, fn func(t *testing.T, e *Engine)) {
	for _, width := range simd.VectorWidthValues() {
		t.Run(width.String(), func(t *testing.T) {
			fn(t, engineForWidth(width))
		})
	}
}

func testApplyIdentity[T SupportedTypesConstraints](t *testing.T, e *Engine, values []T) {
	t.Helper()
	out := make([]T, len(values))
	Apply(e, values, out, func(x T) T { return x })
	for i, want := range values {
		if out[i] != want {
			t.Errorf("identity[%d]: got %v, want %v", i, out[i], want)
		}
	}
}

// TestApplyIdentity checks the identity transform returns every value of
// every supported element type unchanged, at every width. The 16-bit float
// slices include raw NaN bit patterns: Apply treats them as opaque values.
func TestApplyIdentity(t *testing.T) {
	const n = 67
	forEachWidth(t, func(t *testing.T, e *Engine) {
		bools := make([]bool, n)
		int8s := make([]int8, n)
		int64s := make([]int64, n)
		uint16s := make([]uint16, n)
		float32s := make([]float32, n)
		float64s := make([]float64, n)
		halfs := make([]float16.Float16, n)
		bfloats := make([]bfloat16.BFloat16, n)
		for i := 0; i < n; i++ {
			bools[i] = i%3 == 0
			int8s[i] = int8(i*7 - 100)
			int64s[i] = int64(i)*0x100000001 - 5
			uint16s[i] = uint16(i * 977)
			float32s[i] = float32(i)*0.5 - 16
			float64s[i] = float64(i)*1e100 - 1
			halfs[i] = float16.Frombits(uint16(i * 1021))
			bfloats[i] = bfloat16.FromBits(uint16(i * 1021))
		}
		// Infinities pass through as themselves.
		float32s[0] = float32(math.Inf(1))
		float64s[0] = math.Inf(-1)

		t.Run("bool", func(t *testing.T) { testApplyIdentity(t, e, bools) })
		t.Run("int8", func(t *testing.T) { testApplyIdentity(t, e, int8s) })
		t.Run("int64", func(t *testing.T) { testApplyIdentity(t, e, int64s) })
		t.Run("uint16", func(t *testing.T) { testApplyIdentity(t, e, uint16s) })
		t.Run("float32", func(t *testing.T) { testApplyIdentity(t, e, float32s) })
		t.Run("float64", func(t *testing.T) { testApplyIdentity(t, e, float64s) })
		t.Run("float16", func(t *testing.T) { testApplyIdentity(t, e, halfs) })
		t.Run("bfloat16", func(t *testing.T) { testApplyIdentity(t, e, bfloats) })
	})
}

// TestApplyWidthConsistency checks that vector widths only change the batch
// size, never the values: every width must produce the scalar result for
// every length, including the lengths that leave a remainder.
func TestApplyWidthConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	scalar := engineForWidth(simd.WidthScalar)
	transform := func(x float32) float32 { return x*3 - 1 }
	intTransform := func(x int32) int32 { return x*x + 1 }

	for _, width := range []simd.VectorWidth{simd.WidthMid, simd.WidthWide} {
		e := engineForWidth(width)
		t.Run(width.String(), func(t *testing.T) {
			for n := 0; n <= 70; n++ {
				in := make([]float32, n)
				intIn := make([]int32, n)
				for i := range in {
					in[i] = rng.Float32()*2000 - 1000
					intIn[i] = rng.Int31() - 1<<30
				}
				want := make([]float32, n)
				got := make([]float32, n)
				Apply(scalar, in, want, transform)
				Apply(e, in, got, transform)
				for i := range want {
					if got[i] != want[i] {
						t.Fatalf("n=%d float32[%d]: got %v, want %v", n, i, got[i], want[i])
					}
				}
				intWant := make([]int32, n)
				intGot := make([]int32, n)
				Apply(scalar, intIn, intWant, intTransform)
				Apply(e, intIn, intGot, intTransform)
				for i := range intWant {
					if intGot[i] != intWant[i] {
						t.Fatalf("n=%d int32[%d]: got %v, want %v", n, i, intGot[i], intWant[i])
					}
				}
			}
		})
	}
}

// TestApplyParallelConsistency checks that splitting work across the pool
// changes nothing in the output.
func TestApplyParallelConsistency(t *testing.T) {
	const n = 100_000
	rng := rand.New(rand.NewSource(17))
	in := make([]float64, n)
	for i := range in {
		in[i] = rng.NormFloat64() * 100
	}
	transform := func(x float64) float64 { return math.Sqrt(math.Abs(x)) + x }

	serial := New(WithPool(nil))
	parallel := New(WithMinParallel(512))
	if !parallel.Workers().IsEnabled() {
		t.Skip("workers pool disabled")
	}

	want := make([]float64, n)
	got := make([]float64, n)
	Apply(serial, in, want, transform)
	Apply(parallel, in, got, transform)
	for i := range want {
		if math.Float64bits(got[i]) != math.Float64bits(want[i]) {
			t.Fatalf("parallel[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestApplyInPlace(t *testing.T) {
	forEachWidth(t, func(t *testing.T, e *Engine) {
		data := make([]int16, 41)
		for i := range data {
			data[i] = int16(i - 20)
		}
		ApplyInPlace(e, data, func(x int16) int16 { return 2 * x })
		for i := range data {
			if want := int16(2 * (i - 20)); data[i] != want {
				t.Errorf("in place[%d]: got %d, want %d", i, data[i], want)
			}
		}
	})
}

func TestApply2(t *testing.T) {
	forEachWidth(t, func(t *testing.T, e *Engine) {
		const n = 53
		x := make([]uint32, n)
		y := make([]uint32, n)
		out := make([]uint32, n)
		for i := range x {
			x[i] = uint32(i * 3)
			y[i] = uint32(i * 5)
		}
		Apply2(e, x, y, out, func(a, b uint32) uint32 { return a + b })
		for i := range out {
			if want := uint32(i * 8); out[i] != want {
				t.Errorf("apply2[%d]: got %d, want %d", i, out[i], want)
			}
		}
	})
}

// TestApplyLengthMismatch checks the precondition fires before anything is
// written: a 5 input against a 4 output panics and leaves the output alone.
func TestApplyLengthMismatch(t *testing.T) {
	e := New(WithPool(nil))
	in := []float32{1, 2, 3, 4, 5}
	out := []float32{-1, -1, -1, -1}
	err := exceptions.TryCatch[error](func() {
		Apply(e, in, out, func(x float32) float32 { return x + 1 })
	})
	if err == nil {
		t.Fatal("expected an exception for mismatched lengths")
	}
	if want := "no elements written"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not mention %q", err, want)
	}
	for i, v := range out {
		if v != -1 {
			t.Errorf("output[%d] modified to %v", i, v)
		}
	}

	// Same check for the second operand of the binary form.
	err = exceptions.TryCatch[error](func() {
		Apply2(e, out, in, out, func(a, b float32) float32 { return a + b })
	})
	if err == nil {
		t.Fatal("expected an exception for mismatched y length")
	}
}

// TestApplySharedEngine checks an engine is safe to share: concurrent Apply
// calls over disjoint slices must not interfere.
func TestApplySharedEngine(t *testing.T) {
	e := New(WithMinParallel(128))
	const goroutines = 8
	const n = 10_000
	var group errgroup.Group
	for g := 0; g < goroutines; g++ {
		offset := int64(g * 1000)
		group.Go(func() error {
			in := make([]int64, n)
			out := make([]int64, n)
			for i := range in {
				in[i] = int64(i) + offset
			}
			Apply(e, in, out, func(x int64) int64 { return x + 1 })
			for i := range out {
				if out[i] != in[i]+1 {
					return fmt.Errorf("goroutine %d: out[%d]=%d, want %d", offset/1000, i, out[i], in[i]+1)
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		t.Fatal(err)
	}
}
