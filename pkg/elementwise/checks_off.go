//go:build nochecks

package elementwise

const sanityChecks = false
