package main

import (
	"io"

	"v.io/x/lib/cmdline"
)

// readInput returns the contents of the named file, or of standard input
// for "-". The contents are valid until release is called.
func readInput(env *cmdline.Env, name string) (text []byte, release func() error, err error) {
	if name == "-" {
		b, err := io.ReadAll(env.Stdin)
		return b, noRelease, err
	}
	return readFile(name)
}

func noRelease() error { return nil }
