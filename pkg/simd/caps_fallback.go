//go:build !amd64 && !arm64

package simd

func hwCapabilities() Capabilities {
	return Capabilities{Width: WidthScalar}
}
