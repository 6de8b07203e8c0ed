// Package conv provides checked integer conversions.
//
// The functions panic on overflow: an automaton or text large enough to
// overflow a state index is a programming error, not an input error.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// uint comparison avoids overflow on 32-bit platforms.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
