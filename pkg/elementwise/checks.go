//go:build !nochecks

package elementwise

// sanityChecks gates the precondition checks on the apply entry points.
// Build with -tags nochecks to compile them out.
const sanityChecks = true
