package prefilter_test

import (
	"fmt"

	"github.com/coregx/earlgrep/literal"
	"github.com/coregx/earlgrep/prefilter"
)

// ExampleSearch finds every occurrence, overlapping ones included.
func ExampleSearch() {
	text := []byte("Hello I am Bobby Daigle. ABABABAB")
	fmt.Println(prefilter.Search(text, []byte("Bobby")))
	fmt.Println(prefilter.Search(text, []byte("ABAB")))
	// Output:
	// [11]
	// [25 27 29]
}

// ExampleBuilder selects a prefilter for an extracted prefix.
func ExampleBuilder() {
	prefix := literal.NewLiteral([]byte("hello"), false)
	pf, err := prefilter.NewBuilder(prefix, nil).Build()
	if err != nil {
		panic(err)
	}
	haystack := []byte("foo hello world")
	pos := pf.Find(haystack, 0)
	fmt.Println(pf)
	fmt.Printf("candidate at %d, resume at %d\n", pos, pos+pf.Delay())
	// Output:
	// BoyerMoore("hello")
	// candidate at 4, resume at 9
}

// ExampleNewAhoCorasick finds the starts of a literal set.
func ExampleNewAhoCorasick() {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("Pyth"), false),
		literal.NewLiteral([]byte("Perl"), true),
	)
	ac, err := prefilter.NewAhoCorasick(seq)
	if err != nil {
		panic(err)
	}
	fmt.Println(ac.Candidates([]byte("Perl or Python")))
	// Output:
	// [0 8]
}
