// Package earlgrep provides a line-oriented regular expression matcher built
// from first principles.
//
// A pattern is parsed by an Earley parser over a small grammar, compiled to
// a Thompson NFA whose epsilon edges are then eliminated, and searched with
// a Pike-style simulation. When every match must begin with a known
// literal, Boyer-Moore (or Aho-Corasick for a set of literals) finds the
// candidate starts first.
//
// Basic usage:
//
//	lines, err := earlgrep.Match(`Bobby\w\s+`, "Hello I am Bobby Daigle.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(lines) // [1:Bobby Daigle]
//
// Syntax:
//
//	x|y   alternation        x*  zero or more
//	xy    concatenation      x+  one or more
//	(x)   grouping           x?  zero or one
//	.     letter, digit, tab, space or punctuation
//	\s    letter             \S  anything but a letter
//	\d    digit              \D  anything but a digit
//	\w    tab or space       \W  anything but a tab or space
//	\c    the special byte c, one of | * ( ) . + ? \
//
// Every other printable ASCII byte, tab and space matches itself. A newline
// never matches: matching is done line by line.
//
// Within a line, matches never overlap. Candidates are considered by start;
// one that overlaps the match kept so far replaces it only if it ends later.
// Empty matches are never reported.
package earlgrep

import (
	"strconv"

	"github.com/coregx/earlgrep/meta"
	"github.com/coregx/earlgrep/syntax"
)

// Regex represents a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines, except for
// ResetStats.
//
// Example:
//
//	re := earlgrep.MustCompile(`(ab)+`)
//	fmt.Println(re.MatchLines("abababwhatabab")) // [1:ababab 1:abab]
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Match compiles pattern and returns its matches in text, each formatted as
// "<line>:<matched text>" with 1-based line numbers, in order of line and
// then of start.
//
// Example:
//
//	earlgrep.Match("a|b|c|123", "123") // ["1:123"], nil
//	earlgrep.Match(`\d`, "abc")        // [], nil
func Match(pattern, text string) ([]string, error) {
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return re.MatchLines(text), nil
}

// Compile compiles a pattern.
//
// Returns an error wrapping syntax.ErrInvalidPattern if the pattern does not
// parse.
//
// Example:
//
//	re, err := earlgrep.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, meta.DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// Example:
//
//	var bobby = earlgrep.MustCompile(`Bobby\w\s+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("earlgrep: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := earlgrep.DefaultConfig()
//	config.EnablePrefilter = false // simulate at every offset
//	re, _ := earlgrep.CompileWithConfig("Bobby", config)
func CompileWithConfig(pattern string, config meta.Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() meta.Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a string that escapes all special bytes inside the
// argument text; the returned string is a pattern matching the literal
// text, provided the text holds only bytes the syntax can express.
//
// Example:
//
//	earlgrep.QuoteMeta("a+b?") // `a\+b\?`
func QuoteMeta(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if syntax.IsSpecial(s[i]) {
			n++
		}
	}

	// If no escaping needed, return original
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if syntax.IsSpecial(s[i]) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// MatchLines returns the matches in text formatted as "<line>:<text>".
func (r *Regex) MatchLines(text string) []string {
	matches := r.engine.FindAll([]byte(text))
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = strconv.Itoa(m.Line()) + ":" + m.String()
	}
	return out
}

// Match reports whether the byte slice b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether the string s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// FindAll returns up to n matches of b; n < 0 returns all of them.
//
// Example:
//
//	re := earlgrep.MustCompile(`\d`)
//	re.FindAll([]byte("a1b2c3"), -1) // ["1" "2" "3"]
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	matches := r.FindAllMatches(b, n)
	if matches == nil {
		return nil
	}
	out := make([][]byte, len(matches))
	for i, m := range matches {
		out[i] = m.Bytes()
	}
	return out
}

// FindAllString returns up to n matches of s; n < 0 returns all of them.
func (r *Regex) FindAllString(s string, n int) []string {
	matches := r.FindAllMatches([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.String()
	}
	return out
}

// FindAllIndex returns the [start, end) offsets of up to n matches of b;
// n < 0 returns all of them.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	matches := r.FindAllMatches(b, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = []int{m.Start(), m.End()}
	}
	return out
}

// FindAllMatches returns up to n matches of b with their line numbers;
// n < 0 returns all of them.
func (r *Regex) FindAllMatches(b []byte, n int) []meta.Match {
	if n == 0 {
		return nil
	}
	matches := r.engine.FindAll(b)
	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}
	return matches
}

// Count returns the number of matches of b.
func (r *Regex) Count(b []byte) int {
	return r.engine.Count(b)
}

// Prefix returns the literal every match begins with, or "" if there is
// none.
func (r *Regex) Prefix() string {
	return string(r.engine.Prefix().Bytes)
}

// Strategy returns the search strategy selected for the pattern.
func (r *Regex) Strategy() meta.Strategy {
	return r.engine.Strategy()
}

// Stats returns execution statistics.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}

// ResetStats resets execution statistics to zero.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}

// String returns the source text used to compile the pattern.
func (r *Regex) String() string {
	return r.pattern
}
