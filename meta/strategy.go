package meta

import (
	"fmt"

	"github.com/coregx/earlgrep/literal"
)

// Strategy represents how candidate match starts are found.
type Strategy int

const (
	// UseNFA seeds the PikeVM at every offset.
	// Selected for:
	//   - Patterns that can begin with many different bytes
	//   - When EnablePrefilter is false in config
	UseNFA Strategy = iota

	// UsePrefix searches for the literal prefix with Boyer-Moore and runs
	// the reduced automaton from the end of each occurrence.
	// Selected for:
	//   - Patterns whose every match begins with the same bytes,
	//     e.g. `Bobby\s+` or `(ab)+`
	UsePrefix

	// UseLiteralSet searches for a set of equal-length literals with
	// Aho-Corasick and runs the full automaton from each occurrence.
	// Selected for:
	//   - Alternations of literals without a common prefix, e.g. `Python|Perl`
	//   - When EnableLiteralSet is true and the set is small enough
	UseLiteralSet
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "UseNFA"
	case UsePrefix:
		return "UsePrefix"
	case UseLiteralSet:
		return "UseLiteralSet"
	default:
		return "Unknown"
	}
}

// SelectStrategy picks the strategy for the extracted literals.
//
// A prefix always wins: Boyer-Moore skips through the input and the
// automaton starts after the bytes it has already verified. A literal set
// needs at least two literals; one literal would have been a prefix.
func SelectStrategy(prefix literal.Literal, set *literal.Seq, config Config) Strategy {
	if !config.EnablePrefilter {
		return UseNFA
	}
	if prefix.Len() > 0 {
		return UsePrefix
	}
	if config.EnableLiteralSet && set.Len() >= 2 && set.Len() <= config.MaxLiteralSetSize {
		return UseLiteralSet
	}
	return UseNFA
}

// StrategyReason explains the choice made by SelectStrategy, for logging.
func StrategyReason(strategy Strategy, prefix literal.Literal, set *literal.Seq, config Config) string {
	switch strategy {
	case UsePrefix:
		return fmt.Sprintf("every match begins with %q", prefix.Bytes)
	case UseLiteralSet:
		return fmt.Sprintf("every match begins with one of %d literals", set.Len())
	}
	switch {
	case !config.EnablePrefilter:
		return "prefilter disabled"
	case set.Len() > config.MaxLiteralSetSize:
		return fmt.Sprintf("literal set too large (%d > %d)", set.Len(), config.MaxLiteralSetSize)
	default:
		return "no literal begins every match"
	}
}
