// Package meta implements the engine that turns a pattern into an automaton
// and picks how candidate match starts are found before the automaton runs.
//
// Three strategies are available:
//   - UsePrefix: every match begins with one literal prefix. Boyer-Moore
//     finds its occurrences and the PikeVM resumes right after each one on
//     a reduced automaton
//   - UseLiteralSet: every match begins with one of a few equal-length
//     literals. Aho-Corasick finds their starts and the PikeVM runs the full
//     automaton from there
//   - UseNFA: the PikeVM tries every offset
//
// All strategies report the same matches; they differ only in how much of
// the input the PikeVM has to simulate.
package meta

// Config controls strategy selection and compilation limits.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // always simulate every offset
//	engine, err := meta.CompileWithConfig("a|b|c", config)
type Config struct {
	// EnablePrefilter enables literal-based candidate search.
	// When false, the strategy is always UseNFA.
	// Default: true
	EnablePrefilter bool

	// EnableLiteralSet allows UseLiteralSet when no prefix is available.
	// Default: true
	EnableLiteralSet bool

	// MaxLiteralSetLen caps the length of literal-set literals.
	// Default: 8
	MaxLiteralSetLen int

	// MaxLiteralSetSize is the largest literal set worth searching for.
	// Bigger sets are dropped and the strategy falls back to UseNFA.
	// Default: 64
	MaxLiteralSetSize int

	// MaxRecursionDepth limits recursion over the parse tree during
	// compilation.
	// Default: 10000
	MaxRecursionDepth int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:   true,
		EnableLiteralSet:  true,
		MaxLiteralSetLen:  8,
		MaxLiteralSetSize: 64,
		MaxRecursionDepth: 10000,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MaxLiteralSetLen: 1 to 64
//   - MaxLiteralSetSize: 2 to 1,000
//   - MaxRecursionDepth: 10 to 100,000
func (c Config) Validate() error {
	if c.EnablePrefilter && c.EnableLiteralSet {
		if c.MaxLiteralSetLen < 1 || c.MaxLiteralSetLen > 64 {
			return &ConfigError{
				Field:   "MaxLiteralSetLen",
				Message: "must be between 1 and 64",
			}
		}
		if c.MaxLiteralSetSize < 2 || c.MaxLiteralSetSize > 1_000 {
			return &ConfigError{
				Field:   "MaxLiteralSetSize",
				Message: "must be between 2 and 1,000",
			}
		}
	}

	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 100_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 10 and 100,000",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "earlgrep: invalid config: " + e.Field + ": " + e.Message
}
