// Package elementwise applies scalar transforms over typed slices.
//
// The Engine is the composition point: it holds the vector capabilities and
// the workers pool, and the free functions (Apply, ApplyF32, Convert, the
// saturating slice operations) use them to pick a code path per element type.
// Native Go numeric types are transformed directly; the 16-bit float formats
// are decoded to float32 a lane batch at a time, transformed, and re-encoded
// through the matching codec. Every vector path finishes the remainder with a
// scalar loop that is bit-identical to the batched one, so results never
// depend on the selected width or on chunking.
//
// Engines are stateless after construction and safe for concurrent use, as
// long as concurrent calls write to disjoint output slices.
package elementwise

import (
	"sync"

	"github.com/gomlx/simplevec/internal/workerspool"
	"github.com/gomlx/simplevec/pkg/simd"
	"k8s.io/klog/v2"
)

// minParallelizeChunk is the default minimum number of elements to
// parallelize over, and the default chunk size handed to each worker.
const minParallelizeChunk = 4096

// Engine selects code paths for the elementwise operations. Build one with
// New at initialization time and share it; the zero value is not usable.
type Engine struct {
	caps        simd.Capabilities
	workers     *workerspool.Pool
	minParallel int
}

// Option configures an Engine created by New.
type Option func(*Engine)

// WithCapabilities pins the vector capabilities instead of probing the CPU.
// Combine with simd.ForWidth to force a width, e.g. to compare paths in tests.
func WithCapabilities(caps simd.Capabilities) Option {
	return func(e *Engine) {
		e.caps = caps
	}
}

// WithPool sets the workers pool used to parallelize large inputs. A nil pool
// makes the engine strictly single-goroutine.
func WithPool(pool *workerspool.Pool) Option {
	return func(e *Engine) {
		e.workers = pool
	}
}

// WithMinParallel sets the minimum number of elements before work is split
// across the pool, which is also the per-worker chunk size. Values below 1
// are clamped to the default.
func WithMinParallel(n int) Option {
	return func(e *Engine) {
		e.minParallel = n
	}
}

// New returns an Engine. Defaults: hardware-probed capabilities (simd.Detect),
// a fresh workers pool with one slot per CPU, and the default parallelization
// threshold.
func New(options ...Option) *Engine {
	e := &Engine{
		caps:        simd.Detect(),
		workers:     workerspool.New(),
		minParallel: minParallelizeChunk,
	}
	for _, option := range options {
		option(e)
	}
	if e.minParallel < 1 {
		e.minParallel = minParallelizeChunk
	}
	if klog.V(1).Enabled() {
		parallelism := 0
		if e.workers != nil {
			parallelism = e.workers.MaxParallelism()
		}
		klog.Infof("elementwise: new engine: %s, parallelism=%d, chunk=%d", e.caps, parallelism, e.minParallel)
	}
	return e
}

// Capabilities returns the vector capabilities the engine dispatches on.
func (e *Engine) Capabilities() simd.Capabilities {
	return e.caps
}

// Workers returns the engine's pool, nil if the engine is single-goroutine.
func (e *Engine) Workers() *workerspool.Pool {
	return e.workers
}

// parallelize runs chunk over [0, n) in minParallel-sized pieces through the
// workers pool, or inline when the input is small or the pool is off. Chunk
// boundaries never affect results: every operation built on it treats each
// element independently.
func (e *Engine) parallelize(n int, chunk func(start, end int)) {
	if e.workers == nil || !e.workers.IsEnabled() || n <= e.minParallel {
		chunk(0, n)
		return
	}
	var wg sync.WaitGroup
	for ii := 0; ii < n; ii += e.minParallel {
		iiEnd := min(ii+e.minParallel, n)
		wg.Add(1)
		e.workers.WaitToStart(func() {
			chunk(ii, iiEnd)
			wg.Done()
		})
	}
	wg.Wait()
}
