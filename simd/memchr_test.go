package simd

import (
	"bytes"
	"math/rand/v2"
	"testing"
)

func TestMemchr(t *testing.T) {
	tests := []struct {
		name     string
		haystack []byte
		needle   byte
		want     int
	}{
		{"empty", []byte{}, 'a', -1},
		{"single match", []byte{'a'}, 'a', 0},
		{"single no match", []byte{'a'}, 'b', -1},
		{"short middle", []byte("hello"), 'l', 2},
		{"newline", []byte("ab\ncd"), '\n', 2},
		{"null byte", []byte{1, 2, 0, 3}, 0, 2},
		{"high byte", []byte{1, 2, 255, 4, 5, 6, 7, 8, 9}, 255, 2},
		{"chunk boundary", []byte("aaaaaaaab"), 'b', 8},
		{"second chunk", []byte("the quick brown fox jumps"), 'j', 20},
		{"tail", []byte("0123456789abcdefXYZ"), 'Z', 18},
		{"long absent", []byte("the quick brown fox jumps over the lazy dog"), '!', -1},
		// 0x01 right after a zero lane must not be reported first.
		{"borrow", []byte{0x0b, 0x0a, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b}, 0x0a, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Memchr(tt.haystack, tt.needle); got != tt.want {
				t.Errorf("Memchr(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name     string
		haystack []byte
		needle   byte
		want     int
	}{
		{"empty", nil, '\n', 0},
		{"short", []byte("a\nb\n"), '\n', 2},
		{"none", []byte("no line breaks in here"), '\n', 0},
		{"all", bytes.Repeat([]byte{'\n'}, 19), '\n', 19},
		{"adjacent lanes", []byte{0x0a, 0x0b, 0x0a, 0x0b, 0x0a, 0x0b, 0x0a, 0x0b, 0x0a}, 0x0a, 5},
		{"zero needle", []byte{0, 1, 0, 1, 0, 1, 0, 1, 0, 1}, 0, 5},
		{"high needle", []byte{0x80, 0xff, 0x80, 0x7f, 0x80, 0, 0x80, 0x81}, 0x80, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.haystack, tt.needle); got != tt.want {
				t.Errorf("Count(%q, %q) = %d, want %d", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

// TestAgainstBytes compares both functions with the bytes package on
// random input drawn from a small alphabet.
func TestAgainstBytes(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	alphabet := []byte{0, 1, '\n', 0x0b, 0x7f, 0x80, 0xff}
	for i := 0; i < 2000; i++ {
		haystack := make([]byte, r.IntN(70))
		for j := range haystack {
			haystack[j] = alphabet[r.IntN(len(alphabet))]
		}
		needle := alphabet[r.IntN(len(alphabet))]

		if got, want := Memchr(haystack, needle), bytes.IndexByte(haystack, needle); got != want {
			t.Fatalf("Memchr(%v, %#x) = %d, want %d", haystack, needle, got, want)
		}
		if got, want := Count(haystack, needle), bytes.Count(haystack, []byte{needle}); got != want {
			t.Fatalf("Count(%v, %#x) = %d, want %d", haystack, needle, got, want)
		}
	}
}

func BenchmarkMemchr(b *testing.B) {
	haystack := append(bytes.Repeat([]byte("abcdefgh"), 8192), '\n')
	b.SetBytes(int64(len(haystack)))
	for i := 0; i < b.N; i++ {
		Memchr(haystack, '\n')
	}
}

func BenchmarkCount(b *testing.B) {
	haystack := bytes.Repeat([]byte("abcdefg\n"), 8192)
	b.SetBytes(int64(len(haystack)))
	for i := 0; i < b.N; i++ {
		Count(haystack, '\n')
	}
}
