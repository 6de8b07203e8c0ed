// Command earlgrep prints the matches of a pattern in a file.
package main

import (
	"fmt"
	"sync"

	"v.io/x/lib/cmdline"
	"v.io/x/lib/vlog"

	"github.com/coregx/earlgrep"
)

var (
	flagCount       bool
	flagNoPrefilter bool
	flagExplain     bool
)

// configureLogging applies the logging flags once per process.
var configureLogging = sync.OnceValue(vlog.ConfigureLibraryLoggerFromFlags)

var cmdRoot = &cmdline.Command{
	Runner: cmdline.RunnerFunc(runMatch),
	Name:   "earlgrep",
	Short:  "prints the matches of a pattern in a file",
	Long: `
Command earlgrep prints every match of a pattern in a file, one per output
line, as "<line>:<matched text>". Line numbers start at 1. Within a line
matches never overlap and are reported from left to right.

Patterns use a small syntax: | alternates, * + ? repeat, ( ) group and .
matches any letter, digit, tab, space or punctuation byte. \s matches a
letter, \d a digit and \w a tab or space; \S \D \W match their
complements. A backslash before | * ( ) . + ? or \ matches that byte.
`,
	ArgsName: "<pattern> <file>",
	ArgsLong: `
<pattern> is the pattern to search for.

<file> is the file to search; "-" reads standard input.
`,
}

func init() {
	cmdRoot.Flags.BoolVar(&flagCount, "c", false, "Print only the number of matches.")
	cmdRoot.Flags.BoolVar(&flagNoPrefilter, "no-prefilter", false, "Simulate the automaton at every offset instead of searching for literals first.")
	cmdRoot.Flags.BoolVar(&flagExplain, "explain", false, "Print the selected search strategy before the matches.")
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(cmdRoot)
}

func runMatch(env *cmdline.Env, args []string) error {
	if expected, got := 2, len(args); got != expected {
		return env.UsageErrorf("incorrect number of arguments, got %d, expected %d", got, expected)
	}
	if err := configureLogging(); err != nil {
		return err
	}
	pattern, name := args[0], args[1]

	config := earlgrep.DefaultConfig()
	if flagNoPrefilter {
		config.EnablePrefilter = false
	}
	re, err := earlgrep.CompileWithConfig(pattern, config)
	if err != nil {
		return err
	}

	text, release, err := readInput(env, name)
	if err != nil {
		vlog.Errorf("earlgrep: reading %s: %v", name, err)
		return err
	}
	vlog.VI(1).Infof("earlgrep: searching %d bytes of %s for %q", len(text), name, pattern)

	if err := printMatches(env, re, text); err != nil {
		release()
		return err
	}
	return release()
}

// printMatches writes the result for text; matches are written straight
// from text, which may be a read-only mapping.
func printMatches(env *cmdline.Env, re *earlgrep.Regex, text []byte) error {
	if flagExplain {
		fmt.Fprintf(env.Stdout, "# strategy %v, prefix %q\n", re.Strategy(), re.Prefix())
	}
	if flagCount {
		_, err := fmt.Fprintln(env.Stdout, re.Count(text))
		return err
	}
	for _, m := range re.FindAllMatches(text, -1) {
		if _, err := fmt.Fprintf(env.Stdout, "%d:%s\n", m.Line(), m.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
