package syntax

// Character classes of the pattern alphabet. Every table is in ascending
// byte order. Together the four classes cover exactly the bytes the grammar
// can match: tab, space and 0x21-0x7F.
var (
	// Letters is A-Z followed by a-z.
	Letters = byteRanges(0x41, 0x5b, 0x61, 0x7b)

	// Digits is 0-9.
	Digits = byteRanges(0x30, 0x3a)

	// Whitespace is tab and space. Newline is never part of any class.
	Whitespace = []byte{'\t', ' '}

	// Punctuation is every printable non-alphanumeric byte plus DEL,
	// special bytes included.
	Punctuation = byteRanges(0x21, 0x30, 0x3a, 0x41, 0x5b, 0x61, 0x7b, 0x80)
)

// specials are the operator bytes; they match literally only when escaped.
const specials = `|*().+?\`

// IsSpecial reports whether c is one of the operator bytes | * ( ) . + ? \.
func IsSpecial(c byte) bool {
	for i := 0; i < len(specials); i++ {
		if specials[i] == c {
			return true
		}
	}
	return false
}

// Specials returns the operator bytes in a fixed order.
func Specials() []byte {
	return []byte(specials)
}

// byteRanges expands half-open [lo, hi) pairs into a byte slice.
func byteRanges(bounds ...int) []byte {
	var out []byte
	for i := 0; i+1 < len(bounds); i += 2 {
		for c := bounds[i]; c < bounds[i+1]; c++ {
			out = append(out, byte(c))
		}
	}
	return out
}
