// Package simd selects the widest usable vector width for the running CPU and
// implements the lane-level kernels the elementwise engine builds on: the
// float16/bfloat16 codecs (scalar and 8/16-lane) and the saturating integer
// helpers.
//
// The lane kernels are portable Go written in the shape of the hardware vector
// instructions they mirror (fixed-size batches, per-lane masks, no branches on
// lane values), so every width runs on every CPU and is bit-identical to the
// scalar path. Detection only decides which batch size is worth using.
package simd

import (
	"os"
	"sync"

	"k8s.io/klog/v2"
)

//go:generate go tool enumer -type=VectorWidth -trimprefix=Width -transform=snake -values -text -output=gen_vectorwidth_enumer.go caps.go

// VectorWidth is the ordered capability level of the vector units available to
// the kernels. Selection order is always WidthWide, then WidthMid, then
// WidthScalar.
type VectorWidth int

const (
	// WidthScalar processes one element at a time. Always available, and the
	// reference the wider paths must match bit-for-bit.
	WidthScalar VectorWidth = iota

	// WidthMid is the 128/256-bit class (NEON, AVX2): 8 float32 lanes per batch.
	WidthMid

	// WidthWide is the 512-bit class (AVX-512): 16 float32 lanes per batch.
	WidthWide
)

// Lanes returns the number of float32 lanes processed per batch at this width.
func (w VectorWidth) Lanes() int {
	switch w {
	case WidthMid:
		return 8
	case WidthWide:
		return 16
	default:
		return 1
	}
}

// Capabilities describes what the probe found. It is an explicit value passed
// to whoever needs it (the elementwise engine takes one at construction) rather
// than ambient package state.
type Capabilities struct {
	// Width is the selected vector width.
	Width VectorWidth

	// Raw CPU flags that backed the selection.
	AVX2, AVX512F, AVX512BW bool // amd64
	NEON                    bool // arm64

	// Overridden is set when an environment variable changed the selection.
	Overridden bool
}

// Environment variables inspected by Detect, once, at first use.
const (
	// NoSIMDEnv forces WidthScalar when set to a non-empty value.
	NoSIMDEnv = "SIMPLEVEC_NOSIMD"

	// WidthEnv caps the detected width: one of "scalar", "mid" or "wide".
	// It can only narrow the hardware selection, never widen it.
	WidthEnv = "SIMPLEVEC_WIDTH"
)

var (
	detectOnce sync.Once
	detected   Capabilities
)

// Detect probes the CPU once and returns the resulting Capabilities. Later
// calls return the memoized value. It is safe for concurrent use.
func Detect() Capabilities {
	detectOnce.Do(func() {
		detected = detect()
		klog.V(1).Infof("simd: detected %s", detected)
	})
	return detected
}

func detect() Capabilities {
	caps := hwCapabilities()
	if os.Getenv(NoSIMDEnv) != "" {
		caps.Width = WidthScalar
		caps.Overridden = true
		return caps
	}
	if value := os.Getenv(WidthEnv); value != "" {
		w, err := VectorWidthString(value)
		if err != nil {
			klog.Warningf("simd: ignoring %s=%q: %v", WidthEnv, value, err)
			return caps
		}
		if w < caps.Width {
			caps.Width = w
			caps.Overridden = true
		}
	}
	return caps
}

// ForWidth returns a Capabilities pinned to the given width, bypassing the
// hardware probe. The kernels behind every width are portable, so this is
// valid on any CPU; it exists so tests and callers can force a narrower (or
// wider) batch size and compare results.
func ForWidth(w VectorWidth) Capabilities {
	return Capabilities{Width: w, Overridden: true}
}

// String implements fmt.Stringer with the width and the flags that backed it.
func (c Capabilities) String() string {
	s := c.Width.String()
	var flags string
	if c.AVX512F && c.AVX512BW {
		flags = "avx512f+bw"
	} else if c.AVX2 {
		flags = "avx2"
	} else if c.NEON {
		flags = "neon"
	}
	if flags != "" {
		s += " (" + flags + ")"
	}
	if c.Overridden {
		s += " (overridden)"
	}
	return s
}
