package meta

import (
	"strings"
	"testing"

	"github.com/coregx/earlgrep/literal"
)

func TestStrategyString(t *testing.T) {
	tests := []struct {
		s    Strategy
		want string
	}{
		{UseNFA, "UseNFA"},
		{UsePrefix, "UsePrefix"},
		{UseLiteralSet, "UseLiteralSet"},
		{Strategy(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Strategy(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestSelectStrategy(t *testing.T) {
	prefix := literal.NewLiteral([]byte("ab"), false)
	set := literal.NewSeq(
		literal.NewLiteral([]byte("ab"), true),
		literal.NewLiteral([]byte("cd"), true),
	)
	noSets := DefaultConfig()
	noSets.EnableLiteralSet = false
	noPrefilter := DefaultConfig()
	noPrefilter.EnablePrefilter = false
	small := DefaultConfig()
	small.MaxLiteralSetSize = 2

	tests := []struct {
		name   string
		prefix literal.Literal
		set    *literal.Seq
		config Config
		want   Strategy
	}{
		{"prefix", prefix, nil, DefaultConfig(), UsePrefix},
		{"prefix over set", prefix, set, DefaultConfig(), UsePrefix},
		{"set", literal.Literal{}, set, DefaultConfig(), UseLiteralSet},
		{"set disabled", literal.Literal{}, set, noSets, UseNFA},
		{"prefilter disabled", prefix, set, noPrefilter, UseNFA},
		{"single literal", literal.Literal{}, literal.NewSeq(prefix), DefaultConfig(), UseNFA},
		{"set at limit", literal.Literal{}, set, small, UseLiteralSet},
		{"nothing", literal.Literal{}, nil, DefaultConfig(), UseNFA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectStrategy(tt.prefix, tt.set, tt.config); got != tt.want {
				t.Errorf("SelectStrategy() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCompiledStrategy checks which strategy real patterns end up with.
func TestCompiledStrategy(t *testing.T) {
	tests := []struct {
		pattern string
		want    Strategy
		prefix  string
	}{
		{"Bobby", UsePrefix, "Bobby"},
		{"(ab)+", UsePrefix, "ab"},
		{"Python|Perl", UsePrefix, "P"},
		{`Bobby\w\s+`, UsePrefix, "Bobby"},
		{"a|b|c|123", UseLiteralSet, ""},
		{"Python|Ruby", UseLiteralSet, ""},
		{`\d`, UseLiteralSet, ""},
		{".+", UseNFA, ""},
		{"a*", UseNFA, ""},
		{`\s+`, UseLiteralSet, ""},
		{`\D+`, UseNFA, ""},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			engine, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.pattern, err)
			}
			if engine.Strategy() != tt.want {
				t.Errorf("Strategy() = %v, want %v", engine.Strategy(), tt.want)
			}
			if got := string(engine.Prefix().Bytes); got != tt.prefix {
				t.Errorf("Prefix() = %q, want %q", got, tt.prefix)
			}
			if (engine.Prefilter() == nil) != (tt.want == UseNFA) {
				t.Errorf("Prefilter() = %v with strategy %v", engine.Prefilter(), tt.want)
			}
			if tt.want != UsePrefix && engine.SearchNFA() != engine.NFA() {
				t.Error("SearchNFA() should be NFA() without a prefix")
			}
		})
	}
}

func TestStrategyReason(t *testing.T) {
	tests := []struct {
		pattern string
		config  func(*Config)
		want    string
	}{
		{"Bobby", func(*Config) {}, `"Bobby"`},
		{"Python|Ruby", func(*Config) {}, "one of 2 literals"},
		{".+", func(*Config) {}, "no literal"},
		{"Bobby", func(c *Config) { c.EnablePrefilter = false }, "disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			config := DefaultConfig()
			tt.config(&config)
			engine, err := CompileWithConfig(tt.pattern, config)
			if err != nil {
				t.Fatal(err)
			}
			got := StrategyReason(engine.Strategy(), engine.Prefix(), engine.Literals(), config)
			if !strings.Contains(got, tt.want) {
				t.Errorf("StrategyReason() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
