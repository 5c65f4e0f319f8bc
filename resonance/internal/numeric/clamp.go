// Package numeric holds small generic numeric helpers used by the
// resonance package's scale-adaptive derivation.
package numeric

import "golang.org/x/exp/constraints"

// Clamp restricts x to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
