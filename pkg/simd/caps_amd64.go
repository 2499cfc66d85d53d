//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func hwCapabilities() Capabilities {
	caps := Capabilities{
		AVX2:     cpu.X86.HasAVX2,
		AVX512F:  cpu.X86.HasAVX512F,
		AVX512BW: cpu.X86.HasAVX512BW,
	}
	switch {
	case caps.AVX512F && caps.AVX512BW:
		caps.Width = WidthWide
	case caps.AVX2:
		caps.Width = WidthMid
	default:
		caps.Width = WidthScalar
	}
	return caps
}
