//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func hwCapabilities() Capabilities {
	caps := Capabilities{NEON: cpu.ARM64.HasASIMD}
	if caps.NEON {
		// NEON is 128-bit; the mid kernels still run 8 lanes per batch, two
		// registers worth.
		caps.Width = WidthMid
	}
	return caps
}
