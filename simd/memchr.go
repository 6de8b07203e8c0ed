// Package simd provides word-at-a-time byte scanning.
//
// The functions process 8 bytes per step using uint64 bitwise operations
// (SWAR, SIMD Within A Register). The matcher uses them to find and count
// line terminators in stretches of input where no thread is alive.
package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
	lo7 = 0x7f7f7f7f7f7f7f7f
)

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Example:
//
//	simd.Memchr([]byte("ab\ncd"), '\n') // 2
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) < 8 {
		for i, c := range haystack {
			if c == needle {
				return i
			}
		}
		return -1
	}

	// Broadcast the needle: 0x0a becomes 0x0a0a0a0a0a0a0a0a.
	mask := uint64(needle) * lo8
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		v := binary.LittleEndian.Uint64(haystack[i:]) ^ mask
		// Flags may be wrong above the first zero byte, never below it.
		if zero := (v - lo8) & ^v & hi8; zero != 0 {
			return i + bits.TrailingZeros64(zero)/8
		}
	}
	for ; i < len(haystack); i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// Count returns the number of instances of needle in haystack.
func Count(haystack []byte, needle byte) int {
	mask := uint64(needle) * lo8
	n := 0
	i := 0
	for ; i+8 <= len(haystack); i += 8 {
		v := binary.LittleEndian.Uint64(haystack[i:]) ^ mask
		// Exact zero-byte test: no borrow crosses byte lanes.
		t := ((v & lo7) + lo7) | v
		n += bits.OnesCount64(^t & hi8)
	}
	for ; i < len(haystack); i++ {
		if haystack[i] == needle {
			n++
		}
	}
	return n
}
